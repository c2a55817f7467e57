// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pixel"
)

// StakeRecord is the ledger entry of one staked asset.
type StakeRecord struct {
	StakedAt  uint64        `json:"stakedAt"`
	Owner     pixel.Address `json:"owner"`
	Mint      pixel.Address `json:"mint"`
	Active    bool          `json:"active"`
	Withdrawn uint64        `json:"withdrawn"`
	Harvested uint64        `json:"harvested"`
}

func (r *StakeRecord) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint64(r.StakedAt, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteBytes(r.Owner[:], false); err != nil {
		return err
	}
	if err := encoder.WriteBytes(r.Mint[:], false); err != nil {
		return err
	}
	if err := encoder.WriteBool(r.Active); err != nil {
		return err
	}
	if err := encoder.WriteUint64(r.Withdrawn, bin.LE); err != nil {
		return err
	}
	return encoder.WriteUint64(r.Harvested, bin.LE)
}

func (r *StakeRecord) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if r.StakedAt, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	b, err := decoder.ReadBytes(pixel.AddressLength)
	if err != nil {
		return err
	}
	copy(r.Owner[:], b)
	if b, err = decoder.ReadBytes(pixel.AddressLength); err != nil {
		return err
	}
	copy(r.Mint[:], b)

	active, err := decoder.ReadByte()
	if err != nil {
		return err
	}
	if active > 1 {
		return errors.Errorf("invalid bool %d", active)
	}
	r.Active = active == 1

	if r.Withdrawn, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	r.Harvested, err = decoder.ReadUint64(bin.LE)
	return err
}

// Encode serializes the record.
func (r *StakeRecord) Encode() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, pixel.StakeRecordSize))
	_ = r.MarshalWithEncoder(bin.NewBinEncoder(buf))
	return buf.Bytes()
}

// DecodeStakeRecord parses record data, which must be exactly StakeRecordSize bytes.
func DecodeStakeRecord(data []byte) (*StakeRecord, error) {
	if len(data) != pixel.StakeRecordSize {
		return nil, ErrDeserializeError.With("size %d", len(data))
	}
	var r StakeRecord
	if err := r.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return nil, ErrDeserializeError.With("%v", err)
	}
	return &r, nil
}
