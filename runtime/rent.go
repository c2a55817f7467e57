// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

// AccountStorageOverhead is the per account size charged on top of its data.
const AccountStorageOverhead = 128

// Rent defines the rent exemption policy.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionYears      uint64
}

// DefaultRent mirrors the mainnet rent parameters.
var DefaultRent = Rent{
	LamportsPerByteYear: 3480,
	ExemptionYears:      2,
}

// MinimumBalance returns the lamports needed for an account of the given data size to be rent exempt.
func (r Rent) MinimumBalance(size int) uint64 {
	return (uint64(size) + AccountStorageOverhead) * r.LamportsPerByteYear * r.ExemptionYears
}

// Shortfall returns the lamports to add to an account holding balance so it reaches
// the rent exempt minimum, which is never below one lamport.
func (r Rent) Shortfall(size int, balance uint64) uint64 {
	required := max(r.MinimumBalance(size), 1)
	if balance >= required {
		return 0
	}
	return required - balance
}
