// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
)

// StakedAsset identifies an asset and the issuer its metadata names.
type StakedAsset struct {
	Mint   pixel.Address
	Issuer pixel.Address
}

// Builder assembles client instructions with fully derived account lists.
type Builder struct {
	deriver    *pda.Deriver
	rewardMint pixel.Address
}

// NewBuilder creates a builder for the deriver's program.
func NewBuilder(deriver *pda.Deriver, rewardMint pixel.Address) *Builder {
	return &Builder{deriver, rewardMint}
}

func meta(addr pixel.Address, writable, signer bool) *solana.AccountMeta {
	return solana.NewAccountMeta(addr.PublicKey(), writable, signer)
}

func (b *Builder) instruction(accounts solana.AccountMetaSlice, ins *Instruction) solana.Instruction {
	return solana.NewInstruction(b.deriver.Program().PublicKey(), accounts, ins.Encode())
}

// GenerateVault builds the vault creation instruction.
func (b *Builder) GenerateVault(admin pixel.Address) (solana.Instruction, error) {
	vault, err := b.deriver.Vault()
	if err != nil {
		return nil, err
	}
	return b.instruction(solana.AccountMetaSlice{
		meta(admin, true, true),
		meta(pixel.SystemProgramID, false, false),
		meta(vault.Address, true, false),
		meta(pixel.RentSysvarID, false, false),
	}, &Instruction{Tag: TagGenerateVault}), nil
}

// AddToWhitelist builds the instruction approving issuer.
func (b *Builder) AddToWhitelist(admin, issuer pixel.Address) (solana.Instruction, error) {
	whitelist, err := b.deriver.Whitelist(issuer)
	if err != nil {
		return nil, err
	}
	return b.instruction(solana.AccountMetaSlice{
		meta(admin, true, true),
		meta(issuer, true, false),
		meta(whitelist.Address, true, false),
		meta(pixel.SystemProgramID, false, false),
		meta(pixel.RentSysvarID, false, false),
	}, &Instruction{Tag: TagAddToWhitelist}), nil
}

type assetKeys struct {
	metadata, source, destination, record, whitelist pixel.Address
}

func (b *Builder) assetKeys(owner, vault pixel.Address, asset StakedAsset) (k assetKeys, err error) {
	if k.metadata, err = b.deriver.Metadata(asset.Mint); err != nil {
		return
	}
	if k.source, err = b.deriver.Holding(owner, asset.Mint); err != nil {
		return
	}
	if k.destination, err = b.deriver.Holding(vault, asset.Mint); err != nil {
		return
	}
	record, err := b.deriver.StakeRecord(asset.Mint)
	if err != nil {
		return
	}
	whitelist, err := b.deriver.Whitelist(asset.Issuer)
	if err != nil {
		return
	}
	k.record, k.whitelist = record.Address, whitelist.Address
	return
}

// Stake builds a batched stake of up to MaxStakeBatch assets.
func (b *Builder) Stake(staker pixel.Address, assets ...StakedAsset) (solana.Instruction, error) {
	if len(assets) == 0 || len(assets) > pixel.MaxStakeBatch {
		return nil, errors.Errorf("stake batch of %d assets", len(assets))
	}
	vault, err := b.deriver.Vault()
	if err != nil {
		return nil, err
	}
	first, err := b.assetKeys(staker, vault.Address, assets[0])
	if err != nil {
		return nil, err
	}
	accounts := solana.AccountMetaSlice{
		meta(staker, true, true),
		meta(assets[0].Mint, false, false),
		meta(first.metadata, false, false),
		meta(vault.Address, false, false),
		meta(first.source, true, false),
		meta(first.destination, true, false),
		meta(pixel.TokenProgramID, false, false),
		meta(pixel.SystemProgramID, false, false),
		meta(pixel.RentSysvarID, false, false),
		meta(pixel.AssociatedTokenProgramID, false, false),
		meta(first.record, true, false),
		meta(first.whitelist, false, false),
	}
	for _, asset := range assets[1:] {
		k, err := b.assetKeys(staker, vault.Address, asset)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts,
			meta(asset.Mint, false, false),
			meta(k.metadata, false, false),
			meta(k.source, true, false),
			meta(k.destination, true, false),
			meta(k.record, true, false),
			meta(k.whitelist, false, false),
		)
	}
	return b.instruction(accounts, &Instruction{Tag: TagStake, Count: uint8(len(assets))}), nil
}

// Claim builds the instruction paying the accrued reward of asset.
func (b *Builder) Claim(staker pixel.Address, asset StakedAsset) (solana.Instruction, error) {
	return b.settle(TagClaim, staker, asset)
}

// Unstake builds the instruction paying the accrued reward of asset and returning it.
func (b *Builder) Unstake(staker pixel.Address, asset StakedAsset) (solana.Instruction, error) {
	return b.settle(TagUnstake, staker, asset)
}

func (b *Builder) settle(tag Tag, staker pixel.Address, asset StakedAsset) (solana.Instruction, error) {
	vault, err := b.deriver.Vault()
	if err != nil {
		return nil, err
	}
	k, err := b.assetKeys(staker, vault.Address, asset)
	if err != nil {
		return nil, err
	}
	stakerReward, err := b.deriver.Holding(staker, b.rewardMint)
	if err != nil {
		return nil, err
	}
	vaultReward, err := b.deriver.Holding(vault.Address, b.rewardMint)
	if err != nil {
		return nil, err
	}
	return b.instruction(solana.AccountMetaSlice{
		meta(staker, true, true),
		meta(pixel.SystemProgramID, false, false),
		meta(asset.Mint, false, false),
		meta(pixel.TokenProgramID, false, false),
		meta(pixel.RentSysvarID, false, false),
		meta(pixel.AssociatedTokenProgramID, false, false),
		meta(k.record, true, false),
		meta(vault.Address, false, false),
		meta(stakerReward, true, false),
		meta(vaultReward, true, false),
		meta(k.source, true, false),
		meta(k.destination, true, false),
		meta(k.metadata, false, false),
		meta(k.whitelist, true, false),
		meta(b.rewardMint, false, false),
	}, &Instruction{Tag: tag}), nil
}
