// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelplatform/staking/lvldb"
	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/state"
	"github.com/pixelplatform/staking/test/datagen"
	"github.com/pixelplatform/staking/token"
)

func TestDevnet(t *testing.T) {
	program := datagen.RandAddress()
	gene, err := NewDevnet(program)
	require.NoError(t, err)
	assert.Equal(t, "devnet", gene.Name())

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	id, err := gene.Build(db)
	require.NoError(t, err)
	assert.Equal(t, gene.ID(), id)

	st := state.New(db)
	for _, acc := range DevAccounts() {
		lamports, err := st.GetLamports(acc.Address)
		require.NoError(t, err)
		assert.Equal(t, devLamports, lamports)
	}

	acc, err := st.GetAccount(program)
	require.NoError(t, err)
	assert.True(t, acc.Executable)

	vault, err := pda.New(program).Vault()
	require.NoError(t, err)
	float := holding(t, st, vault.Address, DevRewardMint)
	assert.Equal(t, devRewardFloat, float.Amount)

	for _, asset := range DevAssets() {
		h := holding(t, st, asset.Owner, asset.Mint)
		assert.Equal(t, uint64(1), h.Amount)

		addr, err := deriver.Metadata(asset.Mint)
		require.NoError(t, err)
		acc, err := st.GetAccount(addr)
		require.NoError(t, err)
		var md token.Metadata
		require.NoError(t, token.Decode(acc.Data, &md))
		issuer, ok := md.Issuer()
		require.True(t, ok)
		assert.Equal(t, asset.Issuer, issuer.Address)
		assert.Equal(t, asset.Verified, issuer.Verified)
	}
}

func TestGenesisID(t *testing.T) {
	program := datagen.RandAddress()
	g1, err := NewDevnet(program)
	require.NoError(t, err)
	g2, err := NewDevnet(program)
	require.NoError(t, err)
	assert.Equal(t, g1.ID(), g2.ID())

	g3, err := NewDevnet(datagen.RandAddress())
	require.NoError(t, err)
	assert.NotEqual(t, g1.ID(), g3.ID())
}

func TestHoldingSupply(t *testing.T) {
	mint, authority := datagen.RandAddress(), datagen.RandAddress()
	a, b := datagen.RandAddress(), datagen.RandAddress()

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	_, err = new(Builder).
		Mint(mint, authority, 6).
		Holding(a, mint, 10).
		Holding(b, mint, 5).
		Holding(a, mint, 1).
		Build(db)
	require.NoError(t, err)

	st := state.New(db)
	assert.Equal(t, uint64(11), holding(t, st, a, mint).Amount)
	assert.Equal(t, uint64(5), holding(t, st, b, mint).Amount)

	acc, err := st.GetAccount(mint)
	require.NoError(t, err)
	var m token.Mint
	require.NoError(t, token.Decode(acc.Data, &m))
	assert.Equal(t, uint64(16), m.Supply)

	_, err = new(Builder).Holding(a, datagen.RandAddress(), 1).Build(db)
	assert.Error(t, err)
}

func TestLoadDocument(t *testing.T) {
	doc := DevDocument()
	issuer := DevAccounts()[1].Address

	content := "name: custom\nlaunchTime: 1700000000\nrewardFloat: 500\n" +
		"accounts:\n  - address: " + issuer.String() + "\n    lamports: 42\n" +
		"mints:\n  - address: " + DevRewardMint.String() + "\n    authority: " + issuer.String() + "\n    decimals: 6\n" +
		"assets:\n  - mint: " + doc.Assets[0].Mint.String() + "\n    owner: " + doc.Assets[0].Owner.String() +
		"\n    issuer: " + issuer.String() + "\n    verified: true\n"

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", loaded.Name)
	assert.Equal(t, uint64(500), loaded.RewardFloat)
	require.Len(t, loaded.Accounts, 1)
	assert.Equal(t, issuer, loaded.Accounts[0].Address)
	require.Len(t, loaded.Assets, 1)
	assert.Equal(t, doc.Assets[0].Mint, loaded.Assets[0].Mint)
	assert.True(t, loaded.Assets[0].Verified)

	gene, err := loaded.Genesis(datagen.RandAddress(), DevRewardMint)
	require.NoError(t, err)
	assert.Equal(t, "custom", gene.Name())
	assert.False(t, gene.ID().IsZero())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func holding(t *testing.T, st *state.State, owner, mint pixel.Address) token.Holding {
	addr, err := deriver.Holding(owner, mint)
	require.NoError(t, err)
	acc, err := st.GetAccount(addr)
	require.NoError(t, err)
	require.Equal(t, pixel.TokenProgramID, acc.Owner)
	var h token.Holding
	require.NoError(t, token.Decode(acc.Data, &h))
	return h
}
