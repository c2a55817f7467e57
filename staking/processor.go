// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pixelplatform/staking/log"
	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/reward"
	"github.com/pixelplatform/staking/runtime"
)

var logger = log.WithContext("pkg", "staking")

// Processor executes staking instructions.
//
// Every instruction re-derives each address it is handed and validates the
// whole account list before the first state change. A failed instruction
// leaves partial writes behind, so callers run it on a state checkpoint and
// revert on error.
type Processor struct {
	deriver    *pda.Deriver
	admin      pixel.Address
	rewardMint pixel.Address
	schedule   reward.Schedule
}

// New creates a processor for the deriver's program.
func New(deriver *pda.Deriver, admin, rewardMint pixel.Address, schedule reward.Schedule) *Processor {
	return &Processor{
		deriver:    deriver,
		admin:      admin,
		rewardMint: rewardMint,
		schedule:   schedule,
	}
}

// Program returns the program address.
func (p *Processor) Program() pixel.Address { return p.deriver.Program() }

// Deriver returns the address deriver of the program.
func (p *Processor) Deriver() *pda.Deriver { return p.deriver }

// Admin returns the administrator address.
func (p *Processor) Admin() pixel.Address { return p.admin }

// RewardMint returns the reward asset.
func (p *Processor) RewardMint() pixel.Address { return p.rewardMint }

// Schedule returns the reward schedule.
func (p *Processor) Schedule() reward.Schedule { return p.schedule }

// Execute decodes and runs one instruction.
func (p *Processor) Execute(ctx *runtime.Context, data []byte) error {
	ins, err := DecodeInstruction(data)
	if err != nil {
		return err
	}
	switch ins.Tag {
	case TagGenerateVault:
		return p.generateVault(ctx)
	case TagAddToWhitelist:
		return p.addToWhitelist(ctx)
	case TagStake:
		return p.stake(ctx, int(ins.Count))
	case TagUnstake:
		return p.settle(ctx, true)
	case TagClaim:
		return p.settle(ctx, false)
	}
	return ErrInvalidInstructionData
}
