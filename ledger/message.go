// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/runtime"
)

// verifySignatures checks that every required signer signed the message.
func verifySignatures(tx *solana.Transaction) error {
	msg := &tx.Message
	required := int(msg.Header.NumRequiredSignatures)
	if required == 0 || len(tx.Signatures) != required || len(msg.AccountKeys) < required {
		return ErrMissingSignatures
	}
	content, err := msg.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "marshal message")
	}
	for i, sig := range tx.Signatures {
		if !sig.Verify(msg.AccountKeys[i], content) {
			return ErrSignatureFailure
		}
	}
	return nil
}

// accountMetas resolves the signer and writable flags of every message account.
func accountMetas(msg *solana.Message) []runtime.AccountMeta {
	var (
		h        = msg.Header
		n        = len(msg.AccountKeys)
		signed   = int(h.NumRequiredSignatures)
		signedRW = signed - int(h.NumReadonlySignedAccounts)
		unsigned = n - int(h.NumReadonlyUnsignedAccounts)
	)
	metas := make([]runtime.AccountMeta, n)
	for i, key := range msg.AccountKeys {
		metas[i] = runtime.AccountMeta{
			Key:        pixel.Address(key),
			IsSigner:   i < signed,
			IsWritable: i < signedRW || (i >= signed && i < unsigned),
		}
	}
	return metas
}

// lockSets splits the message accounts into writable and readonly ones.
func lockSets(metas []runtime.AccountMeta) (writable, readonly []pixel.Address) {
	for _, m := range metas {
		if m.IsWritable {
			writable = append(writable, m.Key)
		} else {
			readonly = append(readonly, m.Key)
		}
	}
	return
}

// instruction is a compiled instruction resolved against the message accounts.
type instruction struct {
	program  pixel.Address
	accounts []runtime.AccountMeta
	data     []byte
}

func resolveInstructions(msg *solana.Message, metas []runtime.AccountMeta, program pixel.Address) ([]instruction, error) {
	if len(msg.Instructions) == 0 {
		return nil, ErrNoInstructions
	}
	out := make([]instruction, 0, len(msg.Instructions))
	for _, ci := range msg.Instructions {
		if int(ci.ProgramIDIndex) >= len(metas) {
			return nil, ErrInvalidAccountRef
		}
		if metas[ci.ProgramIDIndex].Key != program {
			return nil, ErrUnsupportedProgram
		}
		accounts := make([]runtime.AccountMeta, 0, len(ci.Accounts))
		for _, idx := range ci.Accounts {
			if int(idx) >= len(metas) {
				return nil, ErrInvalidAccountRef
			}
			accounts = append(accounts, metas[idx])
		}
		out = append(out, instruction{program, accounts, ci.Data})
	}
	return out, nil
}
