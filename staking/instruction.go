// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"

	bin "github.com/gagliardetto/binary"

	"github.com/pixelplatform/staking/pixel"
)

// Tag is the operation discriminant of an instruction.
type Tag uint8

const (
	TagGenerateVault Tag = iota
	TagAddToWhitelist
	TagStake
	TagUnstake
	TagClaim
)

func (t Tag) String() string {
	switch t {
	case TagGenerateVault:
		return "generate_vault"
	case TagAddToWhitelist:
		return "add_to_whitelist"
	case TagStake:
		return "stake"
	case TagUnstake:
		return "unstake"
	case TagClaim:
		return "claim"
	}
	return "unknown"
}

// Instruction is the decoded payload of a staking instruction.
type Instruction struct {
	Tag Tag
	// Count is the number of assets of a stake.
	Count uint8
}

func (i *Instruction) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteByte(byte(i.Tag)); err != nil {
		return err
	}
	if i.Tag == TagStake {
		return encoder.WriteByte(i.Count)
	}
	return nil
}

func (i *Instruction) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	tag, err := decoder.ReadByte()
	if err != nil {
		return err
	}
	i.Tag = Tag(tag)
	switch i.Tag {
	case TagGenerateVault, TagAddToWhitelist, TagUnstake, TagClaim:
		return nil
	case TagStake:
		if i.Count, err = decoder.ReadByte(); err != nil {
			return err
		}
		if i.Count == 0 || i.Count > pixel.MaxStakeBatch {
			return ErrInvalidInstructionData.With("stake count %d", i.Count)
		}
		return nil
	}
	return ErrInvalidInstructionData.With("unknown tag %d", tag)
}

// Encode serializes the instruction.
func (i *Instruction) Encode() []byte {
	buf := new(bytes.Buffer)
	_ = i.MarshalWithEncoder(bin.NewBinEncoder(buf))
	return buf.Bytes()
}

// DecodeInstruction parses an instruction payload.
func DecodeInstruction(data []byte) (*Instruction, error) {
	var i Instruction
	decoder := bin.NewBinDecoder(data)
	if err := i.UnmarshalWithDecoder(decoder); err != nil {
		if IsStakingError(err) {
			return nil, err
		}
		return nil, ErrInvalidInstructionData.With("%v", err)
	}
	if decoder.HasRemaining() {
		return nil, ErrInvalidInstructionData.With("trailing bytes")
	}
	return &i, nil
}
