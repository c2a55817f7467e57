// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/runtime"
	"github.com/pixelplatform/staking/token"
)

func checkCount(accounts []runtime.AccountMeta, n int) error {
	if len(accounts) != n {
		return ErrInvalidInstructionData.With("expected %d accounts, got %d", n, len(accounts))
	}
	return nil
}

func checkKey(name string, got, want pixel.Address) error {
	if got != want {
		return ErrInvalidInstructionData.With("%s: expected %v, got %v", name, want, got)
	}
	return nil
}

func checkSigner(acc runtime.AccountMeta) error {
	if !acc.IsSigner {
		return ErrUnauthorisedAccess.With("%v must sign", acc.Key)
	}
	return nil
}

func (p *Processor) checkAdmin(acc runtime.AccountMeta) error {
	if acc.Key != p.admin {
		return ErrUnauthorisedAccess.With("%v is not the administrator", acc.Key)
	}
	return checkSigner(acc)
}

// programKeys are the program and sysvar accounts an instruction references.
type programKeys struct {
	system, rent, assetProgram, assocProgram *pixel.Address
}

func (k programKeys) check() error {
	for _, c := range []struct {
		name string
		got  *pixel.Address
		want pixel.Address
	}{
		{"system program", k.system, pixel.SystemProgramID},
		{"rent sysvar", k.rent, pixel.RentSysvarID},
		{"asset program", k.assetProgram, pixel.TokenProgramID},
		{"associated account program", k.assocProgram, pixel.AssociatedTokenProgramID},
	} {
		if c.got == nil {
			continue
		}
		if err := checkKey(c.name, *c.got, c.want); err != nil {
			return err
		}
	}
	return nil
}

// resolveIssuer validates the metadata account of mint and returns its first creator.
func (p *Processor) resolveIssuer(ctx *runtime.Context, metadata, mint pixel.Address) (token.Creator, error) {
	expected, err := p.deriver.Metadata(mint)
	if err != nil {
		return token.Creator{}, errors.Wrap(err, "derive metadata")
	}
	if err := checkKey("issuer metadata", metadata, expected); err != nil {
		return token.Creator{}, err
	}
	acc, err := ctx.Account(metadata)
	if err != nil {
		return token.Creator{}, err
	}
	if acc.Owner != pixel.MetadataProgramID {
		return token.Creator{}, ErrInvalidInstructionData.With("metadata of %v does not exist", mint)
	}
	var md token.Metadata
	if err := token.Decode(acc.Data, &md); err != nil {
		return token.Creator{}, ErrInvalidInstructionData.With("metadata of %v: %v", mint, err)
	}
	if md.Mint != mint {
		return token.Creator{}, ErrInvalidInstructionData.With("metadata describes %v, not %v", md.Mint, mint)
	}
	issuer, ok := md.Issuer()
	if !ok {
		return token.Creator{}, ErrInvalidInstructionData.With("metadata of %v lists no creator", mint)
	}
	return issuer, nil
}

// checkWhitelist validates the whitelist record address of issuer.
func (p *Processor) checkWhitelist(addr, issuer pixel.Address) error {
	expected, err := p.deriver.Whitelist(issuer)
	if err != nil {
		return errors.Wrap(err, "derive whitelist")
	}
	return checkKey("whitelist record", addr, expected.Address)
}

// checkHolding validates the associated holding address of owner for mint.
func (p *Processor) checkHolding(name string, addr, owner, mint pixel.Address) error {
	expected, err := p.deriver.Holding(owner, mint)
	if err != nil {
		return errors.Wrap(err, "derive holding")
	}
	return checkKey(name, addr, expected)
}

// claimAccount funds addr to rent exemption from payer, allocates size bytes
// and assigns it to the program. It does nothing if the program already owns addr.
func claimAccount(ctx *runtime.Context, payer, addr pixel.Address, size int, seeds ...[]byte) error {
	acc, err := ctx.Account(addr)
	if err != nil {
		return err
	}
	if acc.Owner == ctx.Program() {
		return nil
	}
	if err := ctx.FundRentExempt(payer, addr, size); err != nil {
		return err
	}
	signer, err := ctx.Sign(seeds...)
	if err != nil {
		return err
	}
	if size > 0 {
		if err := ctx.Allocate(addr, size, signer); err != nil {
			return err
		}
	}
	return ctx.Assign(addr, ctx.Program(), signer)
}
