// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pixel

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

const (
	// AddressLength length of address in bytes.
	AddressLength = solana.PublicKeyLength
)

// Address address of account.
type Address solana.PublicKey

// String implements the stringer interface.
func (a Address) String() string {
	return solana.PublicKey(a).String()
}

// Bytes returns byte slice form of address.
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero returns whether the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// PublicKey returns the ed25519 public key form of the address.
func (a Address) PublicKey() solana.PublicKey {
	return solana.PublicKey(a)
}

// ParseAddress convert base58 presented address into Address type.
func ParseAddress(s string) (*Address, error) {
	if s == "" {
		return nil, errors.New("empty address")
	}
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return nil, err
	}
	addr := Address(pk)
	return &addr, nil
}

// MustParseAddress convert string presented address into Address type, panic on error.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return *addr
}

// BytesToAddress converts bytes slice into address.
// If b is larger than address length, b will be cropped (from the left).
// If b is smaller than address length, b will be extended (from the left).
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = *addr
	return nil
}
