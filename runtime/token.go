// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/state"
	"github.com/pixelplatform/staking/token"
)

// Holding loads and decodes a holding account.
func (c *Context) Holding(addr pixel.Address) (*token.Holding, error) {
	acc, err := c.Account(addr)
	if err != nil {
		return nil, err
	}
	return decodeHolding(acc)
}

// Mint loads and decodes a mint account.
func (c *Context) Mint(addr pixel.Address) (*token.Mint, error) {
	acc, err := c.Account(addr)
	if err != nil {
		return nil, err
	}
	if acc.Owner != pixel.TokenProgramID {
		return nil, ErrInvalidMint
	}
	var m token.Mint
	if err := token.Decode(acc.Data, &m); err != nil || !m.Initialized {
		return nil, ErrInvalidMint
	}
	return &m, nil
}

// CreateHolding creates the associated holding account of owner for mint, paid by payer.
// It is a no-op if the account is already a holding.
func (c *Context) CreateHolding(payer, owner, mint pixel.Address) (pixel.Address, error) {
	addr, err := c.deriver.Holding(owner, mint)
	if err != nil {
		return pixel.Address{}, err
	}
	acc, err := c.writable(addr)
	if err != nil {
		return pixel.Address{}, err
	}
	if acc.Owner == pixel.TokenProgramID {
		return addr, nil
	}
	if _, err := c.Mint(mint); err != nil {
		return pixel.Address{}, err
	}
	if err := c.FundRentExempt(payer, addr, token.HoldingSize); err != nil {
		return pixel.Address{}, err
	}
	// the associated account program signs for the address it derived
	if acc, err = c.state.GetAccount(addr); err != nil {
		return pixel.Address{}, err
	}
	if len(acc.Data) != 0 || acc.Owner != pixel.SystemProgramID {
		return pixel.Address{}, ErrAccountAlreadyInUse
	}
	data, err := token.Encode(&token.Holding{
		Mint:  mint,
		Owner: owner,
		State: token.Initialized,
	})
	if err != nil {
		return pixel.Address{}, err
	}
	acc.Data = data
	acc.Owner = pixel.TokenProgramID
	c.state.SetAccount(addr, acc)

	logger.Debug("holding created", "address", addr, "owner", owner, "mint", mint)
	return addr, nil
}

// TokenTransfer moves amount between holdings of the same mint.
// The authority must own the source holding and sign.
func (c *Context) TokenTransfer(from, to, authority pixel.Address, amount uint64, signers ...Signer) error {
	if !c.isSigner(authority, signers) {
		return ErrMissingSignature
	}
	srcAcc, err := c.writable(from)
	if err != nil {
		return err
	}
	dstAcc, err := c.writable(to)
	if err != nil {
		return err
	}
	src, err := decodeHolding(srcAcc)
	if err != nil {
		return err
	}
	dst, err := decodeHolding(dstAcc)
	if err != nil {
		return err
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}
	if src.Owner != authority {
		return ErrOwnerMismatch
	}
	if src.Amount < amount {
		logger.Debug("token transfer: insufficient funds", "have", src.Amount, "need", amount)
		return ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	if dst.Amount+amount < dst.Amount {
		return ErrInvalidAccountData
	}
	src.Amount -= amount
	dst.Amount += amount

	if err := c.putHolding(from, srcAcc, src); err != nil {
		return err
	}
	return c.putHolding(to, dstAcc, dst)
}

// CloseHolding closes an empty holding, crediting its lamports to dest.
func (c *Context) CloseHolding(addr, dest, authority pixel.Address, signers ...Signer) error {
	if !c.isSigner(authority, signers) {
		return ErrMissingSignature
	}
	acc, err := c.writable(addr)
	if err != nil {
		return err
	}
	if _, err := c.writable(dest); err != nil {
		return err
	}
	h, err := decodeHolding(acc)
	if err != nil {
		return err
	}
	if h.Owner != authority {
		return ErrOwnerMismatch
	}
	if h.Amount != 0 {
		return ErrNonZeroBalance
	}
	lamports := acc.Lamports
	c.state.SetAccount(addr, &state.Account{Owner: pixel.SystemProgramID})
	return c.credit(dest, lamports)
}

func (c *Context) putHolding(addr pixel.Address, acc *state.Account, h *token.Holding) error {
	data, err := token.Encode(h)
	if err != nil {
		return err
	}
	acc.Data = data
	c.state.SetAccount(addr, acc)
	return nil
}

func decodeHolding(acc *state.Account) (*token.Holding, error) {
	if acc.Owner != pixel.TokenProgramID {
		return nil, ErrInvalidAccountOwner
	}
	var h token.Holding
	if err := token.Decode(acc.Data, &h); err != nil {
		return nil, ErrInvalidAccountData
	}
	switch h.State {
	case token.Uninitialized:
		return nil, ErrUninitializedAccount
	case token.Frozen:
		return nil, ErrAccountFrozen
	}
	return &h, nil
}
