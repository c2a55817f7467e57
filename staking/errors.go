// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"
	"fmt"
)

// Code identifies the kind of a staking error.
type Code uint32

const (
	CodeInvalidInstructionData Code = iota
	CodeCannotSubmitThisClaim
	CodeUnauthorisedAccess
	CodeDeserializeError
	CodeUnverifiedAddress
	CodeInactiveStaking
	CodeWhitelistError
)

var codeNames = [...]string{
	"InvalidInstructionData",
	"CannotSubmitThisClaim",
	"UnauthorisedAccess",
	"DeserializeError",
	"UnverifiedAddress",
	"InactiveStaking",
	"WhitelistError",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", uint32(c))
}

// Error is a failure of a staking operation.
// Errors with the same code match each other under errors.Is.
type Error struct {
	code    Code
	message string
}

func newError(code Code, message string) *Error {
	return &Error{code, message}
}

func (e *Error) Error() string {
	return e.message
}

// Code returns the kind of the error.
func (e *Error) Code() Code {
	return e.code
}

// Is reports whether target is a staking error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

// With returns an error of the same kind carrying detail.
func (e *Error) With(format string, args ...any) *Error {
	return &Error{e.code, e.message + ": " + fmt.Sprintf(format, args...)}
}

var (
	ErrInvalidInstructionData = newError(CodeInvalidInstructionData, "invalid instruction data")
	ErrCannotSubmitThisClaim  = newError(CodeCannotSubmitThisClaim, "cannot submit this claim")
	ErrUnauthorisedAccess     = newError(CodeUnauthorisedAccess, "unauthorised access")
	ErrDeserializeError       = newError(CodeDeserializeError, "failed to deserialize stake record")
	ErrUnverifiedAddress      = newError(CodeUnverifiedAddress, "issuer address is not verified")
	ErrInactiveStaking        = newError(CodeInactiveStaking, "staking is not active")
	ErrWhitelistError         = newError(CodeWhitelistError, "issuer is not whitelisted")
)

// IsStakingError returns whether err is or wraps a staking error.
func IsStakingError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}

// CodeOf returns the code of a staking error.
func CodeOf(err error) (Code, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.code, true
	}
	return 0, false
}
