// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelplatform/staking/api"
	"github.com/pixelplatform/staking/client"
	"github.com/pixelplatform/staking/genesis"
	"github.com/pixelplatform/staking/staking"
	"github.com/pixelplatform/staking/test/testledger"
)

type harness struct {
	t   *testing.T
	l   *testledger.Ledger
	url string
	dir string
}

func newHarness(t *testing.T) *harness {
	l, err := testledger.New()
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	ts := httptest.NewServer(api.New(l.Ledger, api.Options{}))
	t.Cleanup(ts.Close)
	return &harness{t, l, ts.URL, t.TempDir()}
}

// keyFile writes the account key in the solana-keygen JSON format.
func (h *harness) keyFile(acc genesis.DevAccount) string {
	ints := make([]int, len(acc.PrivateKey))
	for i, b := range acc.PrivateKey {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	require.NoError(h.t, err)
	path := filepath.Join(h.dir, acc.Address.String()+".json")
	require.NoError(h.t, os.WriteFile(path, data, 0o600))
	return path
}

func (h *harness) run(signer genesis.DevAccount, args ...string) (solana.Signature, error) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	args = append([]string{"pixel"}, args...)
	args = append(args, "--sign", h.keyFile(signer), "--env", h.url, "--verbosity", "1")
	if err := app.Run(args); err != nil {
		return solana.Signature{}, err
	}
	return solana.SignatureFromBase58(strings.TrimSpace(out.String()))
}

func (h *harness) mustRun(signer genesis.DevAccount, args ...string) solana.Signature {
	id, err := h.run(signer, args...)
	require.NoError(h.t, err)
	receipt, err := h.l.Receipt(id)
	require.NoError(h.t, err)
	require.NotNil(h.t, receipt, "no receipt for %v", id)
	return id
}

func TestCommands(t *testing.T) {
	h := newHarness(t)
	admin, issuer, staker := testledger.Admin(), testledger.Issuer(), testledger.Staker(0)
	a0, a1 := testledger.Asset(0, 0), testledger.Asset(0, 1)

	h.mustRun(admin, "generate_vault_address")
	h.mustRun(admin, "add_to_whitelist", "--creator", issuer.Address.String())
	h.mustRun(staker, "stake", "--nft", a0.Mint.String(), "--nft", a1.Mint.String())

	c := client.New(h.url)
	for _, a := range []staking.StakedAsset{a0, a1} {
		stake, err := c.Stake(context.Background(), a.Mint)
		require.NoError(t, err)
		assert.True(t, stake.Active)
		assert.Equal(t, staker.Address, stake.Owner)
	}

	h.l.Elapse(10)
	id := h.mustRun(staker, "claim", "--nft", a0.Mint.String())
	receipt, err := h.l.Receipt(id)
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, uint64(450_000), receipt.Events[0].Amount)

	h.mustRun(staker, "unstake", "--nft", a1.Mint.String())

	_, err = h.run(staker, "unstake", "--nft", a1.Mint.String())
	assert.ErrorContains(t, err, "code 5")
}

func TestCommandErrors(t *testing.T) {
	h := newHarness(t)
	staker := testledger.Staker(0)
	a0, a1 := testledger.Asset(0, 0), testledger.Asset(0, 1)

	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"no nft", []string{"claim"}, "missing --nft"},
		{"several nfts", []string{"claim", "--nft", a0.Mint.String(), "--nft", a1.Mint.String()}, "expected a single --nft"},
		{"bad nft", []string{"stake", "--nft", "not-an-address"}, "invalid --nft"},
		{"no creator", []string{"add_to_whitelist"}, "missing --creator"},
		{"not admin", []string{"generate_vault_address"}, "code 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.run(staker, tt.args...)
			assert.ErrorContains(t, err, tt.err)
		})
	}

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"pixel", "generate_vault_address", "--env", h.url})
	assert.ErrorContains(t, err, "missing --sign")

	err = app.Run([]string{"pixel", "claim", "--nft", a0.Mint.String(), "--sign", h.keyFile(staker), "--env", "mainnet"})
	assert.ErrorContains(t, err, "unknown network")
}
