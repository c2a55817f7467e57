// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pixel

import (
	"errors"

	"github.com/mr-tron/base58"
)

// Bytes32 array of 32 bytes.
type Bytes32 [32]byte

// String implements stringer, in base58 form.
func (b Bytes32) String() string {
	return base58.Encode(b[:])
}

// Bytes returns byte slice form of Bytes32.
func (b Bytes32) Bytes() []byte {
	return b[:]
}

// IsZero returns if Bytes32 has all zero bytes.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// ParseBytes32 convert base58 string into Bytes32.
func ParseBytes32(s string) (Bytes32, error) {
	var b Bytes32
	raw, err := base58.Decode(s)
	if err != nil {
		return b, err
	}
	if len(raw) != len(b) {
		return b, errors.New("invalid length")
	}
	copy(b[:], raw)
	return b, nil
}

// BytesToBytes32 converts bytes slice into Bytes32.
// If b is larger than Bytes32 length, b will be cropped (from the left).
// If b is smaller than Bytes32 length, b will be extended (from the left).
func BytesToBytes32(b []byte) Bytes32 {
	var out Bytes32
	if len(b) > len(out) {
		b = b[len(b)-len(out):]
	}
	copy(out[len(out)-len(b):], b)
	return out
}
