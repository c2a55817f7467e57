// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward computes staking rewards.
//
// Reward accrues per whole elapsed day. The first two days pay nothing, then
// day d adds DailyUnit*(d-1), summed cumulatively until PeriodDays. Past the
// period the stake is worth MaxPayout. Amounts already withdrawn are deducted,
// and the total ever harvested per asset never exceeds MaxPayout.
package reward

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pixel"
)

// Schedule holds the parameters of the linear cumulative reward curve.
type Schedule struct {
	DailyUnit     uint64 `yaml:"dailyUnit" json:"dailyUnit"`
	PeriodDays    uint64 `yaml:"periodDays" json:"periodDays"`
	MaxPayout     uint64 `yaml:"maxPayout" json:"maxPayout"`
	SecondsPerDay uint64 `yaml:"secondsPerDay" json:"secondsPerDay"`
}

// Default is the schedule with the protocol parameters.
var Default = Schedule{
	DailyUnit:     pixel.DailyUnit,
	PeriodDays:    pixel.RewardPeriodDays,
	MaxPayout:     pixel.MaxPayoutPerAsset,
	SecondsPerDay: pixel.SecondsPerDay,
}

// Validate checks the curve is representable and never exceeds the cap before the period ends.
func (s Schedule) Validate() error {
	if s.SecondsPerDay == 0 {
		return errors.New("seconds per day must be positive")
	}
	if s.PeriodDays < 2 {
		return errors.New("period must be at least 2 days")
	}
	tri := triangular(s.PeriodDays)
	hi, peak := bits.Mul64(s.DailyUnit, tri)
	if hi != 0 {
		return errors.New("period reward overflows")
	}
	if peak > s.MaxPayout {
		return errors.Errorf("period reward %d exceeds max payout %d", peak, s.MaxPayout)
	}
	return nil
}

// ElapsedDays returns the whole days between stakedAt and now, zero if now precedes stakedAt.
func (s Schedule) ElapsedDays(now, stakedAt uint64) uint64 {
	return satSub(now, stakedAt) / s.SecondsPerDay
}

// Accrued returns the gross reward of a stake after the given number of days.
func (s Schedule) Accrued(days uint64) uint64 {
	switch {
	case days < 2:
		return 0
	case days > s.PeriodDays:
		return s.MaxPayout
	default:
		return s.DailyUnit * triangular(days)
	}
}

// Calculate returns the reward payable now for a stake begun at stakedAt,
// given the amounts already withdrawn in this period and harvested over the asset lifetime.
func (s Schedule) Calculate(now, stakedAt, harvested, withdrawn uint64) uint64 {
	reward := satSub(s.Accrued(s.ElapsedDays(now, stakedAt)), withdrawn)
	return min(reward, satSub(s.MaxPayout, harvested))
}

// Calculate computes the reward with the default schedule.
func Calculate(now, stakedAt, harvested, withdrawn uint64) uint64 {
	return Default.Calculate(now, stakedAt, harvested, withdrawn)
}

// triangular returns 1+2+...+(days-1).
func triangular(days uint64) uint64 {
	if days%2 == 0 {
		return (days / 2) * (days - 1)
	}
	return days * ((days - 1) / 2)
}

func satSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
