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

const (
	stakeHeadLen  = 12
	stakeBlockLen = 6
)

// StakeAccountsLen returns the account count of a stake instruction of n assets.
func StakeAccountsLen(n int) int {
	return stakeHeadLen + (n-1)*stakeBlockLen
}

// stakeBlock is the per asset account group of a stake instruction.
type stakeBlock struct {
	mint, metadata, source, destination, record, whitelist pixel.Address
}

// stakeItem is a validated stake of one asset.
type stakeItem struct {
	mint        pixel.Address
	source      pixel.Address
	destination pixel.Address
	record      pda.Derived
	prior       *StakeRecord
}

// stakeBlocks splits the account list into per asset groups.
//
// The first group is interleaved with the shared accounts:
// [staker, asset, metadata, vault, staker holding, vault holding,
// asset program, system program, rent sysvar, associated account program,
// stake record, whitelist record]. Every further asset appends
// [asset, metadata, staker holding, vault holding, stake record, whitelist record].
func stakeBlocks(accounts []runtime.AccountMeta, n int) []stakeBlock {
	blocks := make([]stakeBlock, 0, n)
	blocks = append(blocks, stakeBlock{
		mint:        accounts[1].Key,
		metadata:    accounts[2].Key,
		source:      accounts[4].Key,
		destination: accounts[5].Key,
		record:      accounts[10].Key,
		whitelist:   accounts[11].Key,
	})
	for i := 1; i < n; i++ {
		b := accounts[stakeHeadLen+(i-1)*stakeBlockLen:]
		blocks = append(blocks, stakeBlock{
			mint:        b[0].Key,
			metadata:    b[1].Key,
			source:      b[2].Key,
			destination: b[3].Key,
			record:      b[4].Key,
			whitelist:   b[5].Key,
		})
	}
	return blocks
}

func (p *Processor) stake(ctx *runtime.Context, n int) error {
	if n < 1 || n > pixel.MaxStakeBatch {
		return ErrInvalidInstructionData.With("batch of %d assets", n)
	}
	accounts := ctx.Accounts()
	if err := checkCount(accounts, StakeAccountsLen(n)); err != nil {
		return err
	}
	staker := accounts[0]
	if err := checkSigner(staker); err != nil {
		return err
	}
	if err := (programKeys{
		assetProgram: &accounts[6].Key,
		system:       &accounts[7].Key,
		rent:         &accounts[8].Key,
		assocProgram: &accounts[9].Key,
	}).check(); err != nil {
		return err
	}
	vault, err := p.deriver.Vault()
	if err != nil {
		return errors.Wrap(err, "derive vault")
	}
	if err := checkKey("vault", accounts[3].Key, vault.Address); err != nil {
		return err
	}

	items := make([]*stakeItem, 0, n)
	seen := make(map[pixel.Address]bool, n)
	for _, b := range stakeBlocks(accounts, n) {
		if seen[b.mint] {
			return ErrInvalidInstructionData.With("asset %v repeated in batch", b.mint)
		}
		seen[b.mint] = true

		item, err := p.validateStake(ctx, staker.Key, vault.Address, b)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	for _, item := range items {
		if err := p.applyStake(ctx, staker.Key, vault.Address, item); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) validateStake(ctx *runtime.Context, staker, vault pixel.Address, b stakeBlock) (*stakeItem, error) {
	record, err := p.deriver.StakeRecord(b.mint)
	if err != nil {
		return nil, errors.Wrap(err, "derive stake record")
	}
	if err := checkKey("stake record", b.record, record.Address); err != nil {
		return nil, err
	}
	issuer, err := p.resolveIssuer(ctx, b.metadata, b.mint)
	if err != nil {
		return nil, err
	}
	if err := p.checkWhitelist(b.whitelist, issuer.Address); err != nil {
		return nil, err
	}
	listed, err := p.IsWhitelisted(ctx, issuer.Address)
	if err != nil {
		return nil, err
	}
	if !listed {
		return nil, ErrWhitelistError.With("issuer %v", issuer.Address)
	}
	if !issuer.Verified {
		return nil, ErrUnverifiedAddress.With("issuer %v of %v", issuer.Address, b.mint)
	}
	if err := p.checkHolding("staker holding", b.source, staker, b.mint); err != nil {
		return nil, err
	}
	if err := p.checkHolding("vault holding", b.destination, vault, b.mint); err != nil {
		return nil, err
	}

	item := &stakeItem{
		mint:        b.mint,
		source:      b.source,
		destination: b.destination,
		record:      record,
	}
	acc, err := ctx.Account(record.Address)
	if err != nil {
		return nil, err
	}
	if acc.Owner == p.Program() {
		prior, err := DecodeStakeRecord(acc.Data)
		if err != nil {
			return nil, err
		}
		if prior.Active {
			return nil, ErrInvalidInstructionData.With("asset %v already staked", b.mint)
		}
		item.prior = prior
	}
	return item, nil
}

func (p *Processor) applyStake(ctx *runtime.Context, staker, vault pixel.Address, item *stakeItem) error {
	if err := claimAccount(ctx, staker, item.record.Address, pixel.StakeRecordSize,
		item.mint.Bytes(), []byte{item.record.Bump}); err != nil {
		return err
	}

	rec := &StakeRecord{
		StakedAt: ctx.Now(),
		Owner:    staker,
		Mint:     item.mint,
		Active:   true,
	}
	// lifetime harvest survives a re-stake, the withdrawn window does not
	if item.prior != nil {
		rec.Harvested = item.prior.Harvested
	}
	if err := ctx.SetData(item.record.Address, rec.Encode()); err != nil {
		return err
	}

	if _, err := ctx.CreateHolding(staker, vault, item.mint); err != nil {
		return err
	}
	if err := ctx.TokenTransfer(item.source, item.destination, staker, pixel.StakedAmount); err != nil {
		return err
	}

	logger.Debug("staked", "asset", item.mint, "owner", staker)
	ctx.Emit(runtime.Event{Op: TagStake.String(), Asset: item.mint, Owner: staker, Amount: pixel.StakedAmount})
	return nil
}
