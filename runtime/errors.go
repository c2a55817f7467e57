// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "errors"

// Error is a failure raised by a host program.
// It aborts the transaction like a program error does.
type Error struct {
	message string
}

func newError(message string) *Error {
	return &Error{message}
}

func (e *Error) Error() string {
	return e.message
}

// IsHostError returns whether err is or wraps a host program failure.
func IsHostError(err error) bool {
	var he *Error
	return errors.As(err, &he)
}

var (
	ErrMissingSignature     = newError("missing required signature")
	ErrReadonlyAccount      = newError("account is not writable")
	ErrAccountNotPresent    = newError("account not present in instruction")
	ErrInsufficientLamports = newError("insufficient lamports")
	ErrLamportsOverflow     = newError("lamports overflow")
	ErrAccountAlreadyInUse  = newError("account already in use")
	ErrInvalidAccountOwner  = newError("invalid account owner")
	ErrAccountCarriesData   = newError("transfer source must not carry data")
	ErrExternalDataModified = newError("instruction modified data of an account it does not own")
	ErrAccountDataSize      = newError("account data size changed")
	ErrInvalidAccountData   = newError("invalid account data")
	ErrInvalidMint          = newError("invalid mint")
	ErrMintMismatch         = newError("account mint mismatch")
	ErrOwnerMismatch        = newError("owner does not match")
	ErrInsufficientFunds    = newError("insufficient funds")
	ErrUninitializedAccount = newError("uninitialized account")
	ErrAccountFrozen        = newError("account is frozen")
	ErrNonZeroBalance       = newError("non-native account can only be closed if its balance is zero")
	ErrInvalidSeeds         = newError("invalid seeds for program address")
	ErrMaxDataLength        = newError("max permitted data length exceeded")
)
