// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/pixelplatform/staking/kv"
	"github.com/pixelplatform/staking/pixel"
)

// Account is the ledger representation of an account.
// RLP encoded objects are stored in the accounts bucket.
type Account struct {
	Lamports   uint64
	Owner      pixel.Address
	Data       []byte
	Executable bool
}

// emptyAccount returns the view of a never written account.
func emptyAccount() Account {
	return Account{Owner: pixel.SystemProgramID}
}

// IsEmpty returns if an account is empty.
// An empty account has zero lamports, no data and is owned by the system program.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 &&
		len(a.Data) == 0 &&
		!a.Executable &&
		a.Owner == pixel.SystemProgramID
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() Account {
	cpy := *a
	if a.Data != nil {
		cpy.Data = bytes.Clone(a.Data)
	}
	return cpy
}

func loadAccount(getter kv.Getter, addr pixel.Address) (Account, error) {
	data, err := getter.Get(addr.Bytes())
	if err != nil {
		if getter.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return Account{}, err
	}
	var acc Account
	if err := rlp.DecodeBytes(data, &acc); err != nil {
		return Account{}, err
	}
	return acc, nil
}

func saveAccount(putter kv.Putter, addr pixel.Address, acc *Account) error {
	if acc.IsEmpty() {
		return putter.Delete(addr.Bytes())
	}
	data, err := rlp.EncodeToBytes(acc)
	if err != nil {
		return err
	}
	return putter.Put(addr.Bytes(), data)
}
