// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "errors"

// Rejection is the error of a transaction refused before any instruction ran.
type Rejection struct {
	msg string
}

func (r *Rejection) Error() string {
	return r.msg
}

var (
	ErrBlockhashNotFound  = &Rejection{"blockhash not found"}
	ErrAlreadyProcessed   = &Rejection{"already processed"}
	ErrMissingSignatures  = &Rejection{"missing required signatures"}
	ErrSignatureFailure   = &Rejection{"signature verification failed"}
	ErrUnsupportedProgram = &Rejection{"unsupported program"}
	ErrInvalidAccountRef  = &Rejection{"invalid account index"}
	ErrNoInstructions     = &Rejection{"transaction has no instructions"}
)

// IsRejection returns whether err is or wraps a rejection.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}
