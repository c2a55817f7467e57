// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelplatform/staking/eventdb"
	"github.com/pixelplatform/staking/genesis"
	"github.com/pixelplatform/staking/kv"
	"github.com/pixelplatform/staking/lvldb"
	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/reward"
	"github.com/pixelplatform/staking/staking"
	"github.com/pixelplatform/staking/test/datagen"
)

const launchTime = 1_700_000_000

type testLedger struct {
	*Ledger
	t       *testing.T
	db      kv.Store
	gene    *genesis.Genesis
	builder *staking.Builder
	now     atomic.Uint64
}

func newTestLedger(t *testing.T, opts Options) *testLedger {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { events.Close() })

	program := datagen.RandAddress()
	gene, err := genesis.NewDevnet(program)
	require.NoError(t, err)

	deriver := pda.New(program)
	tl := &testLedger{
		t:       t,
		db:      db,
		gene:    gene,
		builder: staking.NewBuilder(deriver, genesis.DevRewardMint),
	}
	tl.now.Store(launchTime)
	opts.Clock = tl.now.Load

	processor := staking.New(deriver, admin().Address, genesis.DevRewardMint, reward.Default)
	tl.Ledger, err = New(db, gene, processor, events, opts)
	require.NoError(t, err)
	return tl
}

func admin() genesis.DevAccount  { return genesis.DevAccounts()[0] }
func issuer() genesis.DevAccount { return genesis.DevAccounts()[1] }
func staker() genesis.DevAccount { return genesis.DevAccounts()[2] }

func asset(j int) staking.StakedAsset {
	a := genesis.DevAssets()[j]
	return staking.StakedAsset{Mint: a.Mint, Issuer: a.Issuer}
}

func (tl *testLedger) elapse(days uint64) {
	tl.now.Add(days * pixel.SecondsPerDay)
}

func (tl *testLedger) sign(tx *solana.Transaction, signers ...genesis.DevAccount) {
	tx.Signatures = nil
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for _, s := range signers {
			if s.Address.PublicKey() == key {
				k := s.PrivateKey
				return &k
			}
		}
		return nil
	})
	require.NoError(tl.t, err)
}

func (tl *testLedger) newTx(hash pixel.Bytes32, signer genesis.DevAccount, instructions ...solana.Instruction) *solana.Transaction {
	tx, err := solana.NewTransaction(instructions, solana.Hash(hash), solana.TransactionPayer(signer.Address.PublicKey()))
	require.NoError(tl.t, err)
	tl.sign(tx, signer)
	return tx
}

func (tl *testLedger) tx(signer genesis.DevAccount, instructions ...solana.Instruction) *solana.Transaction {
	latest, _ := tl.LatestBlockhash()
	return tl.newTx(latest, signer, instructions...)
}

func (tl *testLedger) must(ins solana.Instruction, err error) solana.Instruction {
	require.NoError(tl.t, err)
	return ins
}

func (tl *testLedger) exec(signer genesis.DevAccount, instructions ...solana.Instruction) *Receipt {
	receipt, err := tl.Execute(context.Background(), tl.tx(signer, instructions...))
	require.NoError(tl.t, err)
	return receipt
}

func (tl *testLedger) setup() {
	tl.exec(admin(), tl.must(tl.builder.GenerateVault(admin().Address)))
	tl.exec(admin(), tl.must(tl.builder.AddToWhitelist(admin().Address, issuer().Address)))
}

func (tl *testLedger) stakeRecord(a staking.StakedAsset) *staking.StakeRecord {
	addr, err := tl.Processor().Deriver().StakeRecord(a.Mint)
	require.NoError(tl.t, err)
	acc, err := tl.Account(addr.Address)
	require.NoError(tl.t, err)
	rec, err := staking.DecodeStakeRecord(acc.Data)
	require.NoError(tl.t, err)
	return rec
}

func TestGenesis(t *testing.T) {
	tl := newTestLedger(t, Options{})

	latest, slot := tl.LatestBlockhash()
	assert.Equal(t, tl.gene.ID(), latest)
	assert.Equal(t, tl.gene.ID(), tl.GenesisID())
	assert.Equal(t, uint64(0), slot)

	acc, err := tl.Account(admin().Address)
	require.NoError(t, err)
	assert.NotZero(t, acc.Lamports)

	// reopen
	tl.setup()
	latest, slot = tl.LatestBlockhash()
	reopened, err := New(tl.db, tl.gene, tl.Processor(), nil, Options{})
	require.NoError(t, err)
	got, gotSlot := reopened.LatestBlockhash()
	assert.Equal(t, latest, got)
	assert.Equal(t, slot, gotSlot)
	assert.Equal(t, uint64(2), gotSlot)

	// blockhashes before the reopen are still valid
	tx := tl.newTx(tl.gene.ID(), admin(), tl.must(tl.builder.AddToWhitelist(admin().Address, staker().Address)))
	_, err = reopened.Execute(context.Background(), tx)
	assert.NoError(t, err)

	other, err := genesis.NewDevnet(datagen.RandAddress())
	require.NoError(t, err)
	_, err = New(tl.db, other, tl.Processor(), nil, Options{})
	assert.ErrorContains(t, err, "genesis mismatch")
}

func TestStakeAndClaim(t *testing.T) {
	tl := newTestLedger(t, Options{})
	tl.setup()

	a := asset(0)
	receipt := tl.exec(staker(), tl.must(tl.builder.Stake(staker().Address, a)))
	assert.Equal(t, uint64(3), receipt.Slot)
	assert.Equal(t, uint64(launchTime), receipt.Time)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "stake", receipt.Events[0].Op)

	rec := tl.stakeRecord(a)
	assert.True(t, rec.Active)
	assert.Equal(t, staker().Address, rec.Owner)
	assert.Equal(t, uint64(launchTime), rec.StakedAt)

	tl.elapse(10)
	receipt = tl.exec(staker(), tl.must(tl.builder.Claim(staker().Address, a)))
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, uint64(450_000), receipt.Events[0].Amount)

	stored, err := tl.Receipt(receipt.TxID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, receipt.Blockhash, stored.Blockhash)
	assert.Equal(t, receipt.Events, stored.Events)

	latest, _ := tl.LatestBlockhash()
	assert.Equal(t, receipt.Blockhash, latest)

	none, err := tl.Receipt(solana.Signature{})
	assert.NoError(t, err)
	assert.Nil(t, none)

	events, err := tl.Events().Filter(context.Background(), &eventdb.Filter{Asset: &a.Mint})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "stake", events[0].Op)
	assert.Equal(t, "claim", events[1].Op)
	assert.Equal(t, receipt.TxID, events[1].TxID)
	assert.Equal(t, uint64(450_000), events[1].Amount)
}

func TestRejections(t *testing.T) {
	tl := newTestLedger(t, Options{})
	tl.setup()
	ctx := context.Background()
	whitelist := tl.must(tl.builder.AddToWhitelist(admin().Address, staker().Address))

	t.Run("bad signature", func(t *testing.T) {
		tx := tl.tx(admin(), whitelist)
		tx.Signatures[0][0] ^= 0xff
		_, err := tl.Execute(ctx, tx)
		assert.Equal(t, ErrSignatureFailure, err)
	})

	t.Run("wrong signer", func(t *testing.T) {
		tx := tl.tx(admin(), whitelist)
		other := tl.tx(staker(), tl.must(tl.builder.Claim(staker().Address, asset(0))))
		tx.Signatures = other.Signatures
		_, err := tl.Execute(ctx, tx)
		assert.Equal(t, ErrSignatureFailure, err)
	})

	t.Run("not the administrator", func(t *testing.T) {
		key, addr := datagen.RandKey()
		ins := tl.must(tl.builder.AddToWhitelist(addr, staker().Address))
		latest, _ := tl.LatestBlockhash()
		tx, err := solana.NewTransaction([]solana.Instruction{ins}, solana.Hash(latest), solana.TransactionPayer(addr.PublicKey()))
		require.NoError(t, err)
		_, err = tx.Sign(func(solana.PublicKey) *solana.PrivateKey { return &key })
		require.NoError(t, err)

		_, err = tl.Execute(ctx, tx)
		assert.ErrorIs(t, err, staking.ErrUnauthorisedAccess)
	})

	t.Run("missing signatures", func(t *testing.T) {
		tx := tl.tx(admin(), whitelist)
		tx.Signatures = nil
		_, err := tl.Execute(ctx, tx)
		assert.Equal(t, ErrMissingSignatures, err)
	})

	t.Run("unknown blockhash", func(t *testing.T) {
		tx := tl.newTx(datagen.RandomHash(), admin(), whitelist)
		_, err := tl.Execute(ctx, tx)
		assert.Equal(t, ErrBlockhashNotFound, err)
		assert.True(t, IsRejection(err))
	})

	t.Run("replay", func(t *testing.T) {
		tx := tl.tx(admin(), whitelist)
		_, err := tl.Execute(ctx, tx)
		require.NoError(t, err)
		_, err = tl.Execute(ctx, tx)
		assert.Equal(t, ErrAlreadyProcessed, err)
	})

	t.Run("foreign program", func(t *testing.T) {
		ins := solana.NewInstruction(
			datagen.RandAddress().PublicKey(),
			solana.AccountMetaSlice{solana.NewAccountMeta(admin().Address.PublicKey(), true, true)},
			[]byte{0},
		)
		_, err := tl.Execute(ctx, tl.tx(admin(), ins))
		assert.Equal(t, ErrUnsupportedProgram, err)
	})

	t.Run("invalid account index", func(t *testing.T) {
		tx := tl.tx(admin(), whitelist)
		tx.Message.Instructions[0].Accounts[1] = 200
		tl.sign(tx, admin())
		_, err := tl.Execute(ctx, tx)
		assert.Equal(t, ErrInvalidAccountRef, err)
	})

	t.Run("no instructions", func(t *testing.T) {
		tx := tl.tx(admin(), whitelist)
		tx.Message.Instructions = nil
		tl.sign(tx, admin())
		_, err := tl.Execute(ctx, tx)
		assert.Equal(t, ErrNoInstructions, err)
	})

	t.Run("program error", func(t *testing.T) {
		_, slot := tl.LatestBlockhash()
		_, err := tl.Execute(ctx, tl.tx(staker(), tl.must(tl.builder.Claim(staker().Address, asset(0)))))
		assert.ErrorIs(t, err, staking.ErrInactiveStaking)
		assert.False(t, IsRejection(err))
		assert.ErrorContains(t, err, "instruction 0")

		_, after := tl.LatestBlockhash()
		assert.Equal(t, slot, after)
	})
}

func TestAtomicTransaction(t *testing.T) {
	tl := newTestLedger(t, Options{})
	tl.setup()

	target := datagen.RandAddress()
	whitelist, err := tl.Processor().Deriver().Whitelist(target)
	require.NoError(t, err)
	_, slot := tl.LatestBlockhash()

	// the second instruction fails after the first succeeded
	tx := tl.tx(admin(),
		tl.must(tl.builder.AddToWhitelist(admin().Address, target)),
		tl.must(tl.builder.Claim(admin().Address, asset(0))),
	)
	_, err = tl.Execute(context.Background(), tx)
	assert.ErrorIs(t, err, staking.ErrInactiveStaking)
	assert.ErrorContains(t, err, "instruction 1")

	acc, err := tl.Account(whitelist.Address)
	require.NoError(t, err)
	assert.NotEqual(t, tl.Processor().Program(), acc.Owner)
	_, after := tl.LatestBlockhash()
	assert.Equal(t, slot, after)

	receipt, err := tl.Receipt(tx.Signatures[0])
	assert.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestConcurrentClaims(t *testing.T) {
	tl := newTestLedger(t, Options{})
	tl.setup()

	a := asset(0)
	tl.exec(staker(), tl.must(tl.builder.Stake(staker().Address, a)))
	tl.elapse(10)

	claim := tl.must(tl.builder.Claim(staker().Address, a))
	latest, _ := tl.LatestBlockhash()
	txs := []*solana.Transaction{
		tl.newTx(latest, staker(), claim),
		tl.newTx(tl.gene.ID(), staker(), claim),
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total uint64
	)
	for _, tx := range txs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := tl.Execute(context.Background(), tx)
			assert.NoError(t, err)
			if receipt == nil {
				return
			}
			mu.Lock()
			total += receipt.Events[0].Amount
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(450_000), total)
	rec := tl.stakeRecord(a)
	assert.Equal(t, uint64(450_000), rec.Harvested)
	assert.Equal(t, uint64(450_000), rec.Withdrawn)
}

func TestConcurrentStakes(t *testing.T) {
	tl := newTestLedger(t, Options{})
	tl.setup()

	var wg sync.WaitGroup
	for j := range 2 {
		tx := tl.tx(staker(), tl.must(tl.builder.Stake(staker().Address, asset(j))))
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tl.Execute(context.Background(), tx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, slot := tl.LatestBlockhash()
	assert.Equal(t, uint64(4), slot)
	assert.True(t, tl.stakeRecord(asset(0)).Active)
	assert.True(t, tl.stakeRecord(asset(1)).Active)
}

func TestRecentWindow(t *testing.T) {
	tl := newTestLedger(t, Options{RecentWindow: 3})

	whitelist := tl.must(tl.builder.AddToWhitelist(admin().Address, issuer().Address))
	stale := tl.newTx(tl.gene.ID(), admin(), tl.must(tl.builder.GenerateVault(admin().Address)))

	for range 3 {
		tl.exec(admin(), whitelist)
	}
	_, err := tl.Execute(context.Background(), stale)
	assert.Equal(t, ErrBlockhashNotFound, err)

	reopened, err := New(tl.db, tl.gene, tl.Processor(), nil, Options{RecentWindow: 3})
	require.NoError(t, err)
	_, err = reopened.Execute(context.Background(), stale)
	assert.Equal(t, ErrBlockhashNotFound, err)

	_, err = reopened.Execute(context.Background(), tl.tx(admin(), tl.must(tl.builder.GenerateVault(admin().Address))))
	assert.NoError(t, err)
}
