// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/pixelplatform/staking/kv"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/stackedmap"
)

// AccountsBucket is the kv bucket of accounts.
const AccountsBucket = kv.Bucket("a")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages the accounts of the ledger.
type State struct {
	getter kv.Getter
	cache  map[pixel.Address]Account
	sm     *stackedmap.StackedMap[pixel.Address, Account]
}

// New create state object reading committed accounts from the store.
func New(store kv.Getter) *State {
	s := &State{
		getter: AccountsBucket.NewGetter(store),
		cache:  make(map[pixel.Address]Account),
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return s
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(addr pixel.Address) (Account, bool, error) {
	if acc, ok := s.cache[addr]; ok {
		return acc, true, nil
	}
	acc, err := loadAccount(s.getter, addr)
	if err != nil {
		return Account{}, false, err
	}
	s.cache[addr] = acc
	return acc, true, nil
}

// GetAccount returns a copy of the account at the given address.
// A never written account is returned as empty, owned by the system program.
func (s *State) GetAccount(addr pixel.Address) (*Account, error) {
	acc, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, &Error{err}
	}
	cpy := acc.Copy()
	return &cpy, nil
}

// SetAccount replaces the account at the given address.
func (s *State) SetAccount(addr pixel.Address, acc *Account) {
	s.sm.Put(addr, acc.Copy())
}

// GetLamports returns the lamports of the given address.
func (s *State) GetLamports(addr pixel.Address) (uint64, error) {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return 0, err
	}
	return acc.Lamports, nil
}

// GetOwner returns the owner program of the given address.
func (s *State) GetOwner(addr pixel.Address) (pixel.Address, error) {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return pixel.Address{}, err
	}
	return acc.Owner, nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// changes returns the latest value of every written account.
func (s *State) changes() map[pixel.Address]Account {
	changes := make(map[pixel.Address]Account)
	s.sm.Journal(func(addr pixel.Address, acc Account) bool {
		changes[addr] = acc
		return true
	})
	return changes
}

// Stage makes a stage object to commit changes.
func (s *State) Stage() *Stage {
	return &Stage{changes: s.changes()}
}
