// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testledger runs an in-memory devnet ledger with a manual clock.
package testledger

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/gagliardetto/solana-go"

	"github.com/pixelplatform/staking/eventdb"
	"github.com/pixelplatform/staking/genesis"
	"github.com/pixelplatform/staking/ledger"
	"github.com/pixelplatform/staking/lvldb"
	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/reward"
	"github.com/pixelplatform/staking/staking"
)

// LaunchTime is the initial clock of the ledger.
const LaunchTime = 1_700_000_000

// Ledger wraps a devnet ledger with helpers to build and submit transactions.
type Ledger struct {
	*ledger.Ledger
	Builder *staking.Builder

	db     *lvldb.LevelDB
	events *eventdb.EventDB
	now    atomic.Uint64
}

// New creates the ledger of the devnet program.
func New() (*Ledger, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	events, err := eventdb.NewMem()
	if err != nil {
		return nil, err
	}
	gene, err := genesis.NewDevnet(genesis.DevProgram)
	if err != nil {
		return nil, err
	}

	deriver := pda.New(genesis.DevProgram)
	l := &Ledger{
		Builder: staking.NewBuilder(deriver, genesis.DevRewardMint),
		db:      db,
		events:  events,
	}
	l.now.Store(LaunchTime)

	processor := staking.New(deriver, Admin().Address, genesis.DevRewardMint, reward.Default)
	l.Ledger, err = ledger.New(db, gene, processor, events, ledger.Options{Clock: l.now.Load})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Close closes the databases.
func (l *Ledger) Close() error {
	return errors.Join(l.events.Close(), l.db.Close())
}

func Admin() genesis.DevAccount  { return genesis.DevAccounts()[0] }
func Issuer() genesis.DevAccount { return genesis.DevAccounts()[1] }

// Staker returns the i-th dev staker.
func Staker(i int) genesis.DevAccount { return genesis.DevAccounts()[2+i] }

// Asset returns the j-th verified asset of the i-th dev staker.
func Asset(i, j int) staking.StakedAsset {
	a := genesis.DevAssets()[2*i+j]
	return staking.StakedAsset{Mint: a.Mint, Issuer: a.Issuer}
}

// Elapse advances the clock.
func (l *Ledger) Elapse(days uint64) {
	l.now.Add(days * pixel.SecondsPerDay)
}

// Tx builds a transaction paid and signed by signer, referencing the latest blockhash.
func (l *Ledger) Tx(signer genesis.DevAccount, instructions ...solana.Instruction) (*solana.Transaction, error) {
	latest, _ := l.LatestBlockhash()
	tx, err := solana.NewTransaction(instructions, solana.Hash(latest), solana.TransactionPayer(signer.Address.PublicKey()))
	if err != nil {
		return nil, err
	}
	key := signer.PrivateKey
	if _, err := tx.Sign(func(pk solana.PublicKey) *solana.PrivateKey {
		if pk == key.PublicKey() {
			return &key
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return tx, nil
}

// Exec builds and executes a transaction.
func (l *Ledger) Exec(signer genesis.DevAccount, instructions ...solana.Instruction) (*ledger.Receipt, error) {
	tx, err := l.Tx(signer, instructions...)
	if err != nil {
		return nil, err
	}
	return l.Execute(context.Background(), tx)
}

// Setup generates the vault and whitelists the dev issuer.
func (l *Ledger) Setup() error {
	vault, err := l.Builder.GenerateVault(Admin().Address)
	if err != nil {
		return err
	}
	whitelist, err := l.Builder.AddToWhitelist(Admin().Address, Issuer().Address)
	if err != nil {
		return err
	}
	_, err = l.Exec(Admin(), vault, whitelist)
	return err
}

// Stake stakes the assets of staker.
func (l *Ledger) Stake(staker genesis.DevAccount, assets ...staking.StakedAsset) (*ledger.Receipt, error) {
	ins, err := l.Builder.Stake(staker.Address, assets...)
	if err != nil {
		return nil, err
	}
	return l.Exec(staker, ins)
}
