// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/test/datagen"
)

func TestInstructionCodec(t *testing.T) {
	assert.Equal(t, []byte{0}, (&Instruction{Tag: TagGenerateVault}).Encode())
	assert.Equal(t, []byte{2, 3}, (&Instruction{Tag: TagStake, Count: 3}).Encode())
	assert.Equal(t, []byte{4}, (&Instruction{Tag: TagClaim, Count: 3}).Encode())

	ins, err := DecodeInstruction([]byte{2, 5})
	require.NoError(t, err)
	assert.Equal(t, &Instruction{Tag: TagStake, Count: 5}, ins)

	ins, err = DecodeInstruction([]byte{3})
	require.NoError(t, err)
	assert.Equal(t, "unstake", ins.Tag.String())

	for _, data := range [][]byte{
		nil,
		{5},
		{0, 0},
		{2},
		{2, 0},
		{2, 6},
		{4, 1},
	} {
		_, err := DecodeInstruction(data)
		assert.ErrorIs(t, err, ErrInvalidInstructionData, "%x", data)
	}
}

func TestStakeRecordCodec(t *testing.T) {
	rec := &StakeRecord{
		StakedAt:  1_700_000_000,
		Owner:     datagen.RandAddress(),
		Mint:      datagen.RandAddress(),
		Active:    true,
		Withdrawn: 7,
		Harvested: 9,
	}
	data := rec.Encode()
	assert.Len(t, data, pixel.StakeRecordSize)
	assert.Equal(t, 89, pixel.StakeRecordSize)

	decoded, err := DecodeStakeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, rec, decoded)

	_, err = DecodeStakeRecord(data[:88])
	assert.ErrorIs(t, err, ErrDeserializeError)
	_, err = DecodeStakeRecord(append(data, 0))
	assert.ErrorIs(t, err, ErrDeserializeError)

	bad := append([]byte(nil), data...)
	bad[72] = 2
	_, err = DecodeStakeRecord(bad)
	assert.ErrorIs(t, err, ErrDeserializeError)
}

func TestErrors(t *testing.T) {
	err := ErrWhitelistError.With("issuer %d", 1)
	assert.Equal(t, "issuer is not whitelisted: issuer 1", err.Error())
	assert.ErrorIs(t, err, ErrWhitelistError)
	assert.NotErrorIs(t, err, ErrInactiveStaking)

	wrapped := errors.Wrap(err, "execute")
	code, ok := CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeWhitelistError, code)
	assert.Equal(t, "WhitelistError", code.String())
	assert.True(t, IsStakingError(wrapped))

	_, ok = CodeOf(errors.New("other"))
	assert.False(t, ok)
	assert.Equal(t, "Code(9)", Code(9).String())
}
