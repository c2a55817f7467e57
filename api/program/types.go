// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package program

import "github.com/pixelplatform/staking/pixel"

type Vault struct {
	Address       pixel.Address `json:"address"`
	Bump          uint8         `json:"bump"`
	Initialized   bool          `json:"initialized"`
	RewardHolding pixel.Address `json:"rewardHolding"`
	RewardFloat   uint64        `json:"rewardFloat"`
}

type WhitelistEntry struct {
	Issuer   pixel.Address `json:"issuer"`
	Address  pixel.Address `json:"address"`
	Approved bool          `json:"approved"`
}

type Stake struct {
	Address       pixel.Address `json:"address"`
	StakedAt      uint64        `json:"stakedAt"`
	Owner         pixel.Address `json:"owner"`
	Mint          pixel.Address `json:"mint"`
	Active        bool          `json:"active"`
	Withdrawn     uint64        `json:"withdrawn"`
	Harvested     uint64        `json:"harvested"`
	PendingReward uint64        `json:"pendingReward"`
}

// Asset describes the issuer metadata of a mint.
type Asset struct {
	Mint     pixel.Address `json:"mint"`
	Metadata pixel.Address `json:"metadata"`
	Issuer   pixel.Address `json:"issuer"`
	Verified bool          `json:"verified"`
}

type Blockhash struct {
	Blockhash string `json:"blockhash"`
	Slot      uint64 `json:"slot"`
	GenesisID string `json:"genesisId"`
}
