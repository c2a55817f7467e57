// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pixelplatform/staking/pixel"
)

// MaxPermittedDataLength is the largest account data allowed.
const MaxPermittedDataLength = 10 * 1024 * 1024

// Transfer moves lamports between accounts.
// The source must sign, be owned by the system program and carry no data.
func (c *Context) Transfer(from, to pixel.Address, lamports uint64, signers ...Signer) error {
	if !c.isSigner(from, signers) {
		logger.Debug("transfer: from account must sign", "from", from)
		return ErrMissingSignature
	}
	src, err := c.writable(from)
	if err != nil {
		return err
	}
	if _, err := c.writable(to); err != nil {
		return err
	}
	if src.Owner != pixel.SystemProgramID {
		return ErrInvalidAccountOwner
	}
	if len(src.Data) != 0 {
		return ErrAccountCarriesData
	}
	if lamports > src.Lamports {
		logger.Debug("transfer: insufficient lamports", "have", src.Lamports, "need", lamports)
		return ErrInsufficientLamports
	}
	if from == to {
		return nil
	}
	src.Lamports -= lamports
	c.state.SetAccount(from, src)

	return c.credit(to, lamports)
}

// Allocate sets the data size of an unused account.
func (c *Context) Allocate(addr pixel.Address, space int, signers ...Signer) error {
	if !c.isSigner(addr, signers) {
		logger.Debug("allocate: account must sign", "account", addr)
		return ErrMissingSignature
	}
	acc, err := c.writable(addr)
	if err != nil {
		return err
	}
	if len(acc.Data) != 0 || acc.Owner != pixel.SystemProgramID {
		logger.Debug("allocate: account already in use", "account", addr)
		return ErrAccountAlreadyInUse
	}
	if space < 0 || space > MaxPermittedDataLength {
		return ErrMaxDataLength
	}
	acc.Data = make([]byte, space)
	c.state.SetAccount(addr, acc)
	return nil
}

// Assign changes the owner program of a system owned account.
func (c *Context) Assign(addr, owner pixel.Address, signers ...Signer) error {
	acc, err := c.writable(addr)
	if err != nil {
		return err
	}
	if acc.Owner == owner {
		return nil
	}
	if !c.isSigner(addr, signers) {
		logger.Debug("assign: account must sign", "account", addr)
		return ErrMissingSignature
	}
	if acc.Owner != pixel.SystemProgramID {
		return ErrInvalidAccountOwner
	}
	acc.Owner = owner
	c.state.SetAccount(addr, acc)
	return nil
}

// FundRentExempt tops up addr from payer until it is rent exempt for the given data size.
func (c *Context) FundRentExempt(payer, addr pixel.Address, size int, signers ...Signer) error {
	acc, err := c.Account(addr)
	if err != nil {
		return err
	}
	shortfall := c.rent.Shortfall(size, acc.Lamports)
	if shortfall == 0 {
		return nil
	}
	return c.Transfer(payer, addr, shortfall, signers...)
}

func (c *Context) credit(addr pixel.Address, lamports uint64) error {
	acc, err := c.state.GetAccount(addr)
	if err != nil {
		return err
	}
	if acc.Lamports+lamports < acc.Lamports {
		return ErrLamportsOverflow
	}
	acc.Lamports += lamports
	c.state.SetAccount(addr, acc)
	return nil
}
