// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelplatform/staking/genesis"
	"github.com/pixelplatform/staking/lvldb"
	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/reward"
	"github.com/pixelplatform/staking/runtime"
	"github.com/pixelplatform/staking/state"
	"github.com/pixelplatform/staking/test/datagen"
	"github.com/pixelplatform/staking/token"
)

type StakingTest struct {
	*Processor
	t       *testing.T
	st      *state.State
	builder *Builder
	now     uint64
	events  []runtime.Event
}

func newTest(t *testing.T) *StakingTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	program := datagen.RandAddress()
	gene, err := genesis.NewDevnet(program)
	require.NoError(t, err)
	_, err = gene.Build(db)
	require.NoError(t, err)

	deriver := pda.New(program)
	return &StakingTest{
		Processor: New(deriver, Admin(), genesis.DevRewardMint, reward.Default),
		t:         t,
		st:        state.New(db),
		builder:   NewBuilder(deriver, genesis.DevRewardMint),
		now:       1_700_000_000,
	}
}

func Admin() pixel.Address  { return genesis.DevAccounts()[0].Address }
func Issuer() pixel.Address { return genesis.DevAccounts()[1].Address }

// Staker returns the i-th dev staker.
func Staker(i int) pixel.Address { return genesis.DevAccounts()[2+i].Address }

// Asset returns the j-th verified asset of the i-th dev staker.
func Asset(i, j int) StakedAsset {
	a := genesis.DevAssets()[2*i+j]
	return StakedAsset{a.Mint, a.Issuer}
}

// Unverified returns the asset of staker 0 whose issuer is not verified.
func Unverified() StakedAsset {
	assets := genesis.DevAssets()
	a := assets[len(assets)-1]
	return StakedAsset{a.Mint, a.Issuer}
}

func metas(ins solana.Instruction) []runtime.AccountMeta {
	accounts := ins.Accounts()
	out := make([]runtime.AccountMeta, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, runtime.AccountMeta{
			Key:        pixel.Address(a.PublicKey),
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		})
	}
	return out
}

// exec runs one instruction, reverting its writes on failure.
func (ts *StakingTest) exec(accounts []runtime.AccountMeta, data []byte) error {
	cp := ts.st.NewCheckpoint()
	ctx := runtime.NewContext(ts.st, ts.Deriver(), accounts, ts.now)
	if err := ts.Execute(ctx, data); err != nil {
		ts.st.RevertTo(cp)
		return err
	}
	ts.events = append(ts.events, ctx.Events()...)
	return nil
}

func (ts *StakingTest) run(ins solana.Instruction, err error) error {
	require.NoError(ts.t, err)
	data, err := ins.Data()
	require.NoError(ts.t, err)
	return ts.exec(metas(ins), data)
}

func (ts *StakingTest) Elapse(days uint64) *StakingTest {
	ts.now += days * pixel.SecondsPerDay
	return ts
}

func (ts *StakingTest) GenerateVault() *StakingTest {
	require.NoError(ts.t, ts.run(ts.builder.GenerateVault(Admin())), "generate vault")
	return ts
}

func (ts *StakingTest) Whitelist(issuer pixel.Address) *StakingTest {
	require.NoError(ts.t, ts.run(ts.builder.AddToWhitelist(Admin(), issuer)), "add to whitelist")
	return ts
}

func (ts *StakingTest) Stake(staker pixel.Address, assets ...StakedAsset) *StakingTest {
	require.NoError(ts.t, ts.run(ts.builder.Stake(staker, assets...)), "stake")
	return ts
}

func (ts *StakingTest) Claim(staker pixel.Address, asset StakedAsset) *StakingTest {
	require.NoError(ts.t, ts.run(ts.builder.Claim(staker, asset)), "claim")
	return ts
}

func (ts *StakingTest) Unstake(staker pixel.Address, asset StakedAsset) *StakingTest {
	require.NoError(ts.t, ts.run(ts.builder.Unstake(staker, asset)), "unstake")
	return ts
}

func (ts *StakingTest) Ready() *StakingTest {
	return ts.GenerateVault().Whitelist(Issuer())
}

func (ts *StakingTest) Record(asset StakedAsset) *StakeRecord {
	addr, err := ts.Deriver().StakeRecord(asset.Mint)
	require.NoError(ts.t, err)
	acc, err := ts.st.GetAccount(addr.Address)
	require.NoError(ts.t, err)
	require.Equal(ts.t, ts.Program(), acc.Owner, "stake record of %v not created", asset.Mint)
	rec, err := DecodeStakeRecord(acc.Data)
	require.NoError(ts.t, err)
	return rec
}

func (ts *StakingTest) balance(owner, mint pixel.Address) uint64 {
	addr, err := ts.Deriver().Holding(owner, mint)
	require.NoError(ts.t, err)
	acc, err := ts.st.GetAccount(addr)
	require.NoError(ts.t, err)
	if acc.Owner != pixel.TokenProgramID {
		return 0
	}
	var h token.Holding
	require.NoError(ts.t, token.Decode(acc.Data, &h))
	return h.Amount
}

func (ts *StakingTest) vault() pixel.Address {
	vault, err := ts.Deriver().Vault()
	require.NoError(ts.t, err)
	return vault.Address
}

func (ts *StakingTest) AssertActive(asset StakedAsset, owner pixel.Address, active bool) *StakingTest {
	rec := ts.Record(asset)
	assert.Equal(ts.t, active, rec.Active, "active mismatch")
	assert.Equal(ts.t, owner, rec.Owner, "owner mismatch")
	assert.Equal(ts.t, asset.Mint, rec.Mint, "mint mismatch")
	return ts
}

func (ts *StakingTest) AssertCounters(asset StakedAsset, harvested, withdrawn uint64) *StakingTest {
	rec := ts.Record(asset)
	assert.Equal(ts.t, harvested, rec.Harvested, "harvested mismatch")
	assert.Equal(ts.t, withdrawn, rec.Withdrawn, "withdrawn mismatch")
	return ts
}

func (ts *StakingTest) AssertInVault(asset StakedAsset, owner pixel.Address, inVault bool) *StakingTest {
	var want uint64
	if inVault {
		want = 1
	}
	assert.Equal(ts.t, want, ts.balance(ts.vault(), asset.Mint), "vault holding mismatch")
	assert.Equal(ts.t, 1-want, ts.balance(owner, asset.Mint), "owner holding mismatch")
	return ts
}

func (ts *StakingTest) AssertReward(owner pixel.Address, amount uint64) *StakingTest {
	assert.Equal(ts.t, amount, ts.balance(owner, genesis.DevRewardMint), "reward balance mismatch")
	return ts
}

func (ts *StakingTest) must(ins solana.Instruction, err error) solana.Instruction {
	require.NoError(ts.t, err)
	return ins
}

// AssertFails runs the instruction and checks it fails with want, leaving state untouched.
func (ts *StakingTest) AssertFails(want error, ins solana.Instruction) *StakingTest {
	before := ts.st.Stage().Len()
	assert.ErrorIs(ts.t, ts.run(ins, nil), want)
	assert.Equal(ts.t, before, ts.st.Stage().Len(), "failed instruction left changes")
	return ts
}
