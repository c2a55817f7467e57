// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pda

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/test/datagen"
)

func TestFindIsDeterministic(t *testing.T) {
	program := datagen.RandAddress()
	d := New(program)

	vault, err := d.Vault()
	require.NoError(t, err)

	again, err := New(program).Vault()
	require.NoError(t, err)
	assert.Equal(t, vault, again)

	other, err := New(datagen.RandAddress()).Vault()
	require.NoError(t, err)
	assert.NotEqual(t, vault.Address, other.Address)

	addr, err := Create(program, pixel.VaultSeed, []byte{vault.Bump})
	require.NoError(t, err)
	assert.Equal(t, vault.Address, addr)
}

func TestVerify(t *testing.T) {
	d := New(datagen.RandAddress())
	issuer := datagen.RandAddress()

	wl, err := d.Whitelist(issuer)
	require.NoError(t, err)

	bump, ok := d.Verify(wl.Address, pixel.WhitelistSeed, issuer.Bytes())
	assert.True(t, ok)
	assert.Equal(t, wl.Bump, bump)

	_, ok = d.Verify(datagen.RandAddress(), pixel.WhitelistSeed, issuer.Bytes())
	assert.False(t, ok)

	_, ok = d.Verify(wl.Address, pixel.WhitelistSeed, datagen.RandAddress().Bytes())
	assert.False(t, ok)
}

func TestDistinctSeedsGiveDistinctAddresses(t *testing.T) {
	d := New(datagen.RandAddress())
	asset := datagen.RandAddress()

	record, err := d.StakeRecord(asset)
	require.NoError(t, err)
	wl, err := d.Whitelist(asset)
	require.NoError(t, err)
	vault, err := d.Vault()
	require.NoError(t, err)

	assert.NotEqual(t, record.Address, wl.Address)
	assert.NotEqual(t, record.Address, vault.Address)
}

func TestStandardDerivations(t *testing.T) {
	d := New(datagen.RandAddress())
	owner := datagen.RandAddress()
	mint := datagen.RandAddress()

	holding, err := d.Holding(owner, mint)
	require.NoError(t, err)
	expected, _, err := solana.FindAssociatedTokenAddress(owner.PublicKey(), mint.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, pixel.Address(expected), holding)

	metadata, err := d.Metadata(mint)
	require.NoError(t, err)
	expected, _, err = solana.FindTokenMetadataAddress(mint.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, pixel.Address(expected), metadata)
}

func TestSeedTooLong(t *testing.T) {
	d := New(datagen.RandAddress())
	_, err := d.Find(make([]byte, 33))
	assert.Error(t, err)
}
