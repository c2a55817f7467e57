// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/runtime"
)

// addToWhitelist accounts: [admin, issuer, whitelist record, system program, rent sysvar]
//
// The record carries no data. Its existence under the program is the approval.
func (p *Processor) addToWhitelist(ctx *runtime.Context) error {
	accounts := ctx.Accounts()
	if err := checkCount(accounts, 5); err != nil {
		return err
	}
	admin, issuer, record, system, rent := accounts[0], accounts[1], accounts[2], accounts[3], accounts[4]

	if err := p.checkAdmin(admin); err != nil {
		return err
	}
	if err := (programKeys{system: &system.Key, rent: &rent.Key}).check(); err != nil {
		return err
	}
	whitelist, err := p.deriver.Whitelist(issuer.Key)
	if err != nil {
		return errors.Wrap(err, "derive whitelist")
	}
	if err := checkKey("whitelist record", record.Key, whitelist.Address); err != nil {
		return err
	}

	if err := claimAccount(ctx, admin.Key, whitelist.Address, 0,
		pixel.WhitelistSeed, issuer.Key.Bytes(), []byte{whitelist.Bump}); err != nil {
		return err
	}
	logger.Debug("issuer whitelisted", "issuer", issuer.Key)
	ctx.Emit(runtime.Event{Op: TagAddToWhitelist.String(), Owner: issuer.Key})
	return nil
}

// IsWhitelisted returns whether the program owns the whitelist record of issuer.
func (p *Processor) IsWhitelisted(ctx *runtime.Context, issuer pixel.Address) (bool, error) {
	whitelist, err := p.deriver.Whitelist(issuer)
	if err != nil {
		return false, err
	}
	acc, err := ctx.Account(whitelist.Address)
	if err != nil {
		return false, err
	}
	return acc.Owner == p.Program(), nil
}
