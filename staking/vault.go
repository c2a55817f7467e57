// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/runtime"
)

// generateVault accounts: [admin, system program, vault, rent sysvar]
func (p *Processor) generateVault(ctx *runtime.Context) error {
	accounts := ctx.Accounts()
	if err := checkCount(accounts, 4); err != nil {
		return err
	}
	admin, system, vaultAcc, rent := accounts[0], accounts[1], accounts[2], accounts[3]

	if err := p.checkAdmin(admin); err != nil {
		return err
	}
	if err := (programKeys{system: &system.Key, rent: &rent.Key}).check(); err != nil {
		return err
	}
	vault, err := p.deriver.Vault()
	if err != nil {
		return errors.Wrap(err, "derive vault")
	}
	if err := checkKey("vault", vaultAcc.Key, vault.Address); err != nil {
		return err
	}

	if err := claimAccount(ctx, admin.Key, vault.Address, 0, pixel.VaultSeed, []byte{vault.Bump}); err != nil {
		return err
	}
	logger.Debug("vault generated", "address", vault.Address)
	ctx.Emit(runtime.Event{Op: TagGenerateVault.String(), Owner: vault.Address})
	return nil
}

// escrow moves assets out of the vault. Transfers authorized by the vault
// are only reachable through it.
type escrow struct {
	ctx    *runtime.Context
	vault  pixel.Address
	signer runtime.Signer
}

func (p *Processor) openEscrow(ctx *runtime.Context, vault pda.Derived) (*escrow, error) {
	signer, err := ctx.Sign(pixel.VaultSeed, []byte{vault.Bump})
	if err != nil {
		return nil, err
	}
	return &escrow{ctx, vault.Address, signer}, nil
}

// release transfers amount from a vault holding.
func (e *escrow) release(from, to pixel.Address, amount uint64) error {
	return e.ctx.TokenTransfer(from, to, e.vault, amount, e.signer)
}

// close closes an empty vault holding, refunding its rent to dest.
func (e *escrow) close(holding, dest pixel.Address) error {
	return e.ctx.CloseHolding(holding, dest, e.vault, e.signer)
}
