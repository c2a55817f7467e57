// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/pixelplatform/staking/eventdb"
	"github.com/pixelplatform/staking/pixel"
)

// Event is the json form of a recorded event.
type Event struct {
	Seq    uint64        `json:"seq"`
	Slot   uint64        `json:"slot"`
	Time   uint64        `json:"time"`
	TxID   string        `json:"txId"`
	Index  uint32        `json:"index"`
	Op     string        `json:"op"`
	Asset  pixel.Address `json:"asset"`
	Owner  pixel.Address `json:"owner"`
	Amount uint64        `json:"amount"`
}

func convertEvent(e *eventdb.Event) *Event {
	return &Event{
		Seq:    e.Seq,
		Slot:   e.Slot,
		Time:   e.Time,
		TxID:   e.TxID.String(),
		Index:  e.Index,
		Op:     e.Op,
		Asset:  e.Asset,
		Owner:  e.Owner,
		Amount: e.Amount,
	}
}
