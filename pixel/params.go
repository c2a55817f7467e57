// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pixel

import (
	"github.com/gagliardetto/solana-go"
)

// Seeds of program derived accounts.
var (
	VaultSeed     = []byte("vault")
	WhitelistSeed = []byte("whitelist")
	MetadataSeed  = []byte("metadata")
)

// Well-known program and sysvar addresses.
var (
	SystemProgramID          = Address(solana.SystemProgramID)
	TokenProgramID           = Address(solana.TokenProgramID)
	AssociatedTokenProgramID = Address(solana.SPLAssociatedTokenAccountProgramID)
	MetadataProgramID        = Address(solana.TokenMetadataProgramID)
	RentSysvarID             = Address(solana.SysVarRentPubkey)
)

// Protocol parameters.
const (
	SecondsPerDay    uint64 = 86400
	RewardPeriodDays uint64 = 180

	// DailyUnit is the reward increment added per elapsed day.
	DailyUnit uint64 = 10_000
	// MaxPayoutPerAsset equals the cumulative reward at the last day of the period.
	MaxPayoutPerAsset uint64 = DailyUnit * (RewardPeriodDays - 1) * RewardPeriodDays / 2

	// StakeRecordSize is the encoded size of a stake record.
	StakeRecordSize = 8 + AddressLength + AddressLength + 1 + 8 + 8

	// MaxStakeBatch is the maximum number of assets staked by one instruction.
	MaxStakeBatch = 5

	// StakedAmount is the number of asset units moved into the vault per stake.
	StakedAmount uint64 = 1
)
