// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"encoding/base64"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/ledger"
	"github.com/pixelplatform/staking/pixel"
)

// RawTx is a base64 encoded wire transaction.
type RawTx struct {
	Raw string `json:"raw"`
}

func (r *RawTx) decode() (*solana.Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(r.Raw)
	if err != nil {
		return nil, err
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(data))
	if err != nil {
		return nil, err
	}
	if len(tx.Signatures) == 0 {
		return nil, errors.New("unsigned transaction")
	}
	return tx, nil
}

// EncodeRawTx encodes the wire form of tx.
func EncodeRawTx(tx *solana.Transaction) (*RawTx, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &RawTx{base64.StdEncoding.EncodeToString(data)}, nil
}

// SendResult is the outcome of a submitted transaction.
type SendResult struct {
	ID        string `json:"id"`
	Slot      uint64 `json:"slot"`
	Blockhash string `json:"blockhash"`
}

type Event struct {
	Op     string        `json:"op"`
	Asset  pixel.Address `json:"asset"`
	Owner  pixel.Address `json:"owner"`
	Amount uint64        `json:"amount"`
}

type Receipt struct {
	ID        string   `json:"id"`
	Slot      uint64   `json:"slot"`
	Time      uint64   `json:"time"`
	Blockhash string   `json:"blockhash"`
	Events    []*Event `json:"events"`
}

func convertReceipt(r *ledger.Receipt) *Receipt {
	out := &Receipt{
		ID:        r.TxID.String(),
		Slot:      r.Slot,
		Time:      r.Time,
		Blockhash: r.Blockhash.String(),
		Events:    make([]*Event, 0, len(r.Events)),
	}
	for _, ev := range r.Events {
		out.Events = append(out.Events, &Event{ev.Op, ev.Asset, ev.Owner, ev.Amount})
	}
	return out
}
