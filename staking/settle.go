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

// SettleAccountsLen is the account count of claim and unstake instructions.
const SettleAccountsLen = 15

// settleAccounts is the validated account set of a claim or unstake.
type settleAccounts struct {
	staker       pixel.Address
	mint         pixel.Address
	record       pda.Derived
	vault        pda.Derived
	stakerReward pixel.Address
	vaultReward  pixel.Address
	stakerAsset  pixel.Address
	vaultAsset   pixel.Address
	stake        *StakeRecord
}

// authorizeSettle validates accounts:
// [staker, system program, asset, asset program, rent sysvar,
// associated account program, stake record, vault, staker reward holding,
// vault reward holding, staker asset holding, vault asset holding,
// metadata, whitelist record, reward mint]
func (p *Processor) authorizeSettle(ctx *runtime.Context) (*settleAccounts, error) {
	accounts := ctx.Accounts()
	if err := checkCount(accounts, SettleAccountsLen); err != nil {
		return nil, err
	}
	staker := accounts[0]
	if err := checkSigner(staker); err != nil {
		return nil, err
	}
	if err := (programKeys{
		system:       &accounts[1].Key,
		assetProgram: &accounts[3].Key,
		rent:         &accounts[4].Key,
		assocProgram: &accounts[5].Key,
	}).check(); err != nil {
		return nil, err
	}

	s := &settleAccounts{
		staker:       staker.Key,
		mint:         accounts[2].Key,
		stakerReward: accounts[8].Key,
		vaultReward:  accounts[9].Key,
		stakerAsset:  accounts[10].Key,
		vaultAsset:   accounts[11].Key,
	}
	var err error
	if s.record, err = p.deriver.StakeRecord(s.mint); err != nil {
		return nil, errors.Wrap(err, "derive stake record")
	}
	if err := checkKey("stake record", accounts[6].Key, s.record.Address); err != nil {
		return nil, err
	}
	if s.vault, err = p.deriver.Vault(); err != nil {
		return nil, errors.Wrap(err, "derive vault")
	}
	if err := checkKey("vault", accounts[7].Key, s.vault.Address); err != nil {
		return nil, err
	}
	for _, h := range []struct {
		name        string
		addr        pixel.Address
		owner, mint pixel.Address
	}{
		{"staker reward holding", s.stakerReward, s.staker, p.rewardMint},
		{"vault reward holding", s.vaultReward, s.vault.Address, p.rewardMint},
		{"staker holding", s.stakerAsset, s.staker, s.mint},
		{"vault holding", s.vaultAsset, s.vault.Address, s.mint},
	} {
		if err := p.checkHolding(h.name, h.addr, h.owner, h.mint); err != nil {
			return nil, err
		}
	}
	issuer, err := p.resolveIssuer(ctx, accounts[12].Key, s.mint)
	if err != nil {
		return nil, err
	}
	if err := p.checkWhitelist(accounts[13].Key, issuer.Address); err != nil {
		return nil, err
	}
	if err := checkKey("reward mint", accounts[14].Key, p.rewardMint); err != nil {
		return nil, err
	}

	acc, err := ctx.Account(s.record.Address)
	if err != nil {
		return nil, err
	}
	if acc.Owner != p.Program() {
		return nil, ErrInactiveStaking.With("asset %v was never staked", s.mint)
	}
	if s.stake, err = DecodeStakeRecord(acc.Data); err != nil {
		return nil, err
	}
	if !issuer.Verified {
		return nil, ErrUnverifiedAddress.With("issuer %v of %v", issuer.Address, s.mint)
	}
	if !s.stake.Active {
		return nil, ErrInactiveStaking.With("asset %v", s.mint)
	}
	if s.stake.Owner != s.staker {
		return nil, ErrUnauthorisedAccess.With("%v does not own the stake of %v", s.staker, s.mint)
	}
	if s.stake.Mint != s.mint {
		return nil, ErrInvalidInstructionData.With("stake record is of %v", s.stake.Mint)
	}
	return s, nil
}

// settle pays the accrued reward of a stake and, when unstaking, returns the asset.
func (p *Processor) settle(ctx *runtime.Context, unstake bool) error {
	s, err := p.authorizeSettle(ctx)
	if err != nil {
		return err
	}
	esc, err := p.openEscrow(ctx, s.vault)
	if err != nil {
		return err
	}

	rec := s.stake
	amount := p.schedule.Calculate(ctx.Now(), rec.StakedAt, rec.Harvested, rec.Withdrawn)

	if _, err := ctx.CreateHolding(s.staker, s.staker, p.rewardMint); err != nil {
		return err
	}
	if err := esc.release(s.vaultReward, s.stakerReward, amount); err != nil {
		return err
	}

	op := TagClaim
	if unstake {
		op = TagUnstake
		if _, err := ctx.CreateHolding(s.staker, s.staker, s.mint); err != nil {
			return err
		}
		if err := esc.release(s.vaultAsset, s.stakerAsset, pixel.StakedAmount); err != nil {
			return err
		}
		if err := esc.close(s.vaultAsset, s.staker); err != nil {
			return err
		}
		rec.Active = false
	}

	rec.Harvested = min(satAdd(rec.Harvested, amount), p.schedule.MaxPayout)
	rec.Withdrawn = satAdd(rec.Withdrawn, amount)
	if err := ctx.SetData(s.record.Address, rec.Encode()); err != nil {
		return err
	}

	logger.Debug("settled", "op", op, "asset", s.mint, "owner", s.staker, "reward", amount)
	ctx.Emit(runtime.Event{Op: op.String(), Asset: s.mint, Owner: s.staker, Amount: amount})
	return nil
}

func satAdd(a, b uint64) uint64 {
	if c := a + b; c >= a {
		return c
	}
	return ^uint64(0)
}
