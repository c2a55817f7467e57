// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/gagliardetto/solana-go"

	"github.com/pixelplatform/staking/pixel"
)

// Event is a recorded program event.
type Event struct {
	Seq    uint64
	Slot   uint64
	Time   uint64
	TxID   solana.Signature
	Index  uint32
	Op     string
	Asset  pixel.Address
	Owner  pixel.Address
	Amount uint64
}

type OrderType string

const (
	ASC  OrderType = "asc"
	DESC OrderType = "desc"
)

// Range is an inclusive range of event times. A To lower than From leaves the range open.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects events. Nil criteria match everything.
type Filter struct {
	Asset   *pixel.Address
	Owner   *pixel.Address
	Op      string
	TxID    *solana.Signature
	Range   *Range
	Order   OrderType
	Options *Options
}
