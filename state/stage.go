// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/kv"
	"github.com/pixelplatform/staking/pixel"
)

// Stage abstracts changes on the accounts.
type Stage struct {
	changes map[pixel.Address]Account
}

// Len returns the number of changed accounts.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Addresses returns addresses of the changed accounts in ascending order.
func (s *Stage) Addresses() []pixel.Address {
	addrs := make([]pixel.Address, 0, len(s.changes))
	for addr := range s.changes {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, func(a, b pixel.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return addrs
}

// Hash computes the digest of the changes in address order.
func (s *Stage) Hash() (pixel.Bytes32, error) {
	hw := pixel.NewBlake2b()
	for _, addr := range s.Addresses() {
		acc := s.changes[addr]
		data, err := rlp.EncodeToBytes(&acc)
		if err != nil {
			return pixel.Bytes32{}, err
		}
		hw.Write(addr[:])
		hw.Write(data)
	}
	var h pixel.Bytes32
	hw.Sum(h[:0])
	return h, nil
}

// Commit writes the changed accounts into the putter.
// Empty accounts are deleted.
func (s *Stage) Commit(putter kv.Putter) error {
	bucket := AccountsBucket.NewPutter(putter)
	for addr, acc := range s.changes {
		if err := saveAccount(bucket, addr, &acc); err != nil {
			return errors.Wrapf(err, "save account %v", addr)
		}
	}
	return nil
}
