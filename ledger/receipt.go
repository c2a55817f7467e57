// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"

	"github.com/pixelplatform/staking/kv"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/runtime"
)

// Receipt is the outcome of a committed transaction.
type Receipt struct {
	TxID      solana.Signature
	Slot      uint64
	Time      uint64
	Blockhash pixel.Bytes32
	Events    []runtime.Event
}

func saveReceipt(putter kv.Putter, r *Receipt) error {
	data, err := rlp.EncodeToBytes(r)
	if err != nil {
		return err
	}
	return putter.Put(r.TxID[:], data)
}

func loadReceipt(getter kv.Getter, txID solana.Signature) (*Receipt, error) {
	data, err := getter.Get(txID[:])
	if err != nil {
		return nil, err
	}
	var r Receipt
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
