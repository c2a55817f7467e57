// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelplatform/staking/genesis"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/runtime"
	"github.com/pixelplatform/staking/test/datagen"
)

func TestFullCycle(t *testing.T) {
	ts := newTest(t).Ready()
	staker, asset := Staker(0), Asset(0, 0)
	t0 := ts.now

	ts.Stake(staker, asset).
		AssertActive(asset, staker, true).
		AssertInVault(asset, staker, true).
		AssertCounters(asset, 0, 0)
	assert.Equal(t, t0, ts.Record(asset).StakedAt)

	ts.Elapse(181).
		Claim(staker, asset).
		AssertReward(staker, pixel.MaxPayoutPerAsset).
		AssertCounters(asset, pixel.MaxPayoutPerAsset, pixel.MaxPayoutPerAsset).
		Claim(staker, asset).
		AssertReward(staker, pixel.MaxPayoutPerAsset).
		AssertCounters(asset, pixel.MaxPayoutPerAsset, pixel.MaxPayoutPerAsset)

	ts.Unstake(staker, asset).
		AssertActive(asset, staker, false).
		AssertInVault(asset, staker, false).
		AssertFails(ErrInactiveStaking, ts.must(ts.builder.Claim(staker, asset))).
		AssertFails(ErrInactiveStaking, ts.must(ts.builder.Unstake(staker, asset)))

	// the closed vault holding refunds its rent
	vaultHolding, err := ts.Deriver().Holding(ts.vault(), asset.Mint)
	require.NoError(t, err)
	acc, err := ts.st.GetAccount(vaultHolding)
	require.NoError(t, err)
	assert.True(t, acc.IsEmpty())

	var ops []string
	for _, ev := range ts.events {
		ops = append(ops, ev.Op)
	}
	assert.Equal(t, []string{"generate_vault", "add_to_whitelist", "stake", "claim", "claim", "unstake"}, ops)
	assert.Equal(t, runtime.Event{Op: "claim", Asset: asset.Mint, Owner: staker, Amount: pixel.MaxPayoutPerAsset}, ts.events[3])
	assert.Equal(t, uint64(0), ts.events[4].Amount)
}

func TestAccrual(t *testing.T) {
	ts := newTest(t).Ready()
	staker, asset := Staker(1), Asset(1, 0)

	ts.Stake(staker, asset).
		Elapse(1).
		Claim(staker, asset).
		AssertReward(staker, 0).
		Elapse(2).
		Claim(staker, asset).
		AssertReward(staker, 3*pixel.DailyUnit).
		AssertCounters(asset, 3*pixel.DailyUnit, 3*pixel.DailyUnit).
		Elapse(1).
		Unstake(staker, asset).
		AssertReward(staker, 6*pixel.DailyUnit).
		AssertCounters(asset, 6*pixel.DailyUnit, 6*pixel.DailyUnit)
}

func TestRestakeKeepsHarvested(t *testing.T) {
	ts := newTest(t).Ready()
	staker, asset := Staker(0), Asset(0, 1)

	ts.Stake(staker, asset).
		Elapse(10).
		Unstake(staker, asset).
		AssertCounters(asset, 450_000, 450_000)

	ts.Stake(staker, asset).
		AssertActive(asset, staker, true).
		AssertInVault(asset, staker, true).
		AssertCounters(asset, 450_000, 0).
		Elapse(200).
		Claim(staker, asset).
		AssertReward(staker, pixel.MaxPayoutPerAsset).
		AssertCounters(asset, pixel.MaxPayoutPerAsset, pixel.MaxPayoutPerAsset-450_000).
		Elapse(200).
		Claim(staker, asset).
		AssertReward(staker, pixel.MaxPayoutPerAsset)
}

func TestAdminOps(t *testing.T) {
	ts := newTest(t)
	other := Staker(0)

	ts.AssertFails(ErrUnauthorisedAccess, ts.must(ts.builder.GenerateVault(other))).
		AssertFails(ErrUnauthorisedAccess, ts.must(ts.builder.AddToWhitelist(other, Issuer())))

	// idempotent
	ts.GenerateVault().GenerateVault().Whitelist(Issuer()).Whitelist(Issuer())

	vault, err := ts.st.GetAccount(ts.vault())
	require.NoError(t, err)
	assert.Equal(t, ts.Program(), vault.Owner)
	assert.Equal(t, runtime.DefaultRent.MinimumBalance(0), vault.Lamports)

	// admin must sign
	ins := ts.must(ts.builder.GenerateVault(Admin()))
	accounts := metas(ins)
	accounts[0].IsSigner = false
	assert.ErrorIs(t, ts.exec(accounts, []byte{byte(TagGenerateVault)}), ErrUnauthorisedAccess)

	// whitelist record of another issuer
	ins = ts.must(ts.builder.AddToWhitelist(Admin(), Issuer()))
	accounts = metas(ins)
	accounts[1].Key = datagen.RandAddress()
	assert.ErrorIs(t, ts.exec(accounts, []byte{byte(TagAddToWhitelist)}), ErrInvalidInstructionData)
}

func TestStakeErrors(t *testing.T) {
	ts := newTest(t).GenerateVault()
	staker := Staker(0)

	ts.AssertFails(ErrWhitelistError, ts.must(ts.builder.Stake(staker, Asset(0, 0)))).
		Whitelist(Issuer()).
		AssertFails(ErrUnverifiedAddress, ts.must(ts.builder.Stake(staker, Unverified()))).
		Stake(staker, Asset(0, 0)).
		AssertFails(ErrInvalidInstructionData, ts.must(ts.builder.Stake(staker, Asset(0, 0))))

	// the asset belongs to staker 0
	ins := ts.must(ts.builder.Stake(Staker(1), Asset(0, 1)))
	assert.True(t, runtime.IsHostError(ts.run(ins, nil)))

	ins = ts.must(ts.builder.Stake(staker, Asset(0, 1)))
	accounts := metas(ins)
	accounts[0].IsSigner = false
	data, err := ins.Data()
	require.NoError(t, err)
	assert.ErrorIs(t, ts.exec(accounts, data), ErrUnauthorisedAccess)

	// malformed payloads
	assert.ErrorIs(t, ts.exec(metas(ins), (&Instruction{Tag: TagStake, Count: 2}).Encode()), ErrInvalidInstructionData)
	assert.ErrorIs(t, ts.exec(metas(ins), []byte{byte(TagStake)}), ErrInvalidInstructionData)
	assert.ErrorIs(t, ts.exec(metas(ins), []byte{9}), ErrInvalidInstructionData)
}

func TestStakeBatch(t *testing.T) {
	ts := newTest(t).Ready()
	staker := Staker(0)

	// one unverified asset fails the whole batch
	ts.AssertFails(ErrUnverifiedAddress, ts.must(ts.builder.Stake(staker, Asset(0, 0), Unverified()))).
		AssertInVault(Asset(0, 0), staker, false).
		AssertFails(ErrInvalidInstructionData, ts.must(ts.builder.Stake(staker, Asset(0, 0), Asset(0, 0))))

	ts.Stake(staker, Asset(0, 0), Asset(0, 1)).
		AssertActive(Asset(0, 0), staker, true).
		AssertActive(Asset(0, 1), staker, true).
		AssertInVault(Asset(0, 0), staker, true).
		AssertInVault(Asset(0, 1), staker, true)

	_, err := ts.builder.Stake(staker)
	assert.Error(t, err)
	assets := make([]StakedAsset, pixel.MaxStakeBatch+1)
	_, err = ts.builder.Stake(staker, assets...)
	assert.Error(t, err)
	assert.Equal(t, 36, StakeAccountsLen(5))
}

func TestSettleErrors(t *testing.T) {
	ts := newTest(t).Ready()
	owner, other := Staker(0), Staker(1)
	asset := Asset(0, 0)

	ts.AssertFails(ErrInactiveStaking, ts.must(ts.builder.Claim(owner, asset))).
		Stake(owner, asset).
		Elapse(5).
		AssertFails(ErrUnauthorisedAccess, ts.must(ts.builder.Claim(other, asset))).
		AssertFails(ErrUnauthorisedAccess, ts.must(ts.builder.Unstake(other, asset)))

	ins := ts.must(ts.builder.Claim(owner, asset))
	accounts := metas(ins)
	accounts[0].IsSigner = false
	assert.ErrorIs(t, ts.exec(accounts, []byte{byte(TagClaim)}), ErrUnauthorisedAccess)
	assert.ErrorIs(t, ts.exec(metas(ins)[:SettleAccountsLen-1], []byte{byte(TagClaim)}), ErrInvalidInstructionData)

	ts.AssertReward(owner, 0).AssertInVault(asset, owner, true)
}

func TestAddressSubstitution(t *testing.T) {
	ts := newTest(t).Ready()
	staker := Staker(0)

	stake := ts.must(ts.builder.Stake(staker, Asset(0, 0)))
	stakeData, err := stake.Data()
	require.NoError(t, err)
	for i := range metas(stake) {
		accounts := metas(stake)
		accounts[i].Key = datagen.RandAddress()
		assert.ErrorIs(t, ts.exec(accounts, stakeData), ErrInvalidInstructionData, "stake slot %d", i)
	}

	ts.Stake(staker, Asset(0, 0)).Elapse(3)
	ins := ts.must(ts.builder.Claim(staker, Asset(0, 0)))
	for _, tag := range []Tag{TagClaim, TagUnstake} {
		for i := range SettleAccountsLen {
			accounts := metas(ins)
			accounts[i].Key = datagen.RandAddress()
			assert.ErrorIs(t, ts.exec(accounts, []byte{byte(tag)}), ErrInvalidInstructionData, "%v slot %d", tag, i)
		}
	}
	ts.AssertReward(staker, 0).AssertActive(Asset(0, 0), staker, true)
}

func TestProcessorAccessors(t *testing.T) {
	ts := newTest(t)
	assert.Equal(t, Admin(), ts.Admin())
	assert.Equal(t, genesis.DevRewardMint, ts.RewardMint())
	assert.Equal(t, ts.Deriver().Program(), ts.Program())
	assert.Equal(t, pixel.MaxPayoutPerAsset, ts.Schedule().MaxPayout)
}
