// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token defines the account layouts of the asset and metadata programs.
package token

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pixel"
)

// Encoded sizes of fixed layouts.
const (
	MintSize    = pixel.AddressLength + 8 + 1 + 1
	HoldingSize = pixel.AddressLength + pixel.AddressLength + 8 + 1
)

// HoldingState is the lifecycle state of a holding account.
type HoldingState uint8

const (
	Uninitialized HoldingState = iota
	Initialized
	Frozen
)

var errInvalidBool = errors.New("invalid bool")

// Mint describes an asset.
type Mint struct {
	MintAuthority pixel.Address
	Supply        uint64
	Decimals      uint8
	Initialized   bool
}

func (m *Mint) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(m.MintAuthority[:], false); err != nil {
		return err
	}
	if err := encoder.WriteUint64(m.Supply, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteByte(m.Decimals); err != nil {
		return err
	}
	return encoder.WriteBool(m.Initialized)
}

func (m *Mint) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = readAddress(decoder, &m.MintAuthority); err != nil {
		return err
	}
	if m.Supply, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	if m.Decimals, err = decoder.ReadByte(); err != nil {
		return err
	}
	m.Initialized, err = readBool(decoder)
	return err
}

// Holding is the balance of one owner for one mint.
type Holding struct {
	Mint   pixel.Address
	Owner  pixel.Address
	Amount uint64
	State  HoldingState
}

func (h *Holding) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteBytes(h.Mint[:], false); err != nil {
		return err
	}
	if err := encoder.WriteBytes(h.Owner[:], false); err != nil {
		return err
	}
	if err := encoder.WriteUint64(h.Amount, bin.LE); err != nil {
		return err
	}
	return encoder.WriteByte(byte(h.State))
}

func (h *Holding) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = readAddress(decoder, &h.Mint); err != nil {
		return err
	}
	if err = readAddress(decoder, &h.Owner); err != nil {
		return err
	}
	if h.Amount, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	state, err := decoder.ReadByte()
	if err != nil {
		return err
	}
	if HoldingState(state) > Frozen {
		return errors.Errorf("invalid holding state %d", state)
	}
	h.State = HoldingState(state)
	return nil
}

// Creator is an issuing authority listed in asset metadata.
type Creator struct {
	Address  pixel.Address
	Verified bool
	Share    uint8
}

// Metadata is the issuer metadata of an asset.
type Metadata struct {
	UpdateAuthority pixel.Address
	Mint            pixel.Address
	Creators        []Creator
}

// Issuer returns the first creator, the authority checked against the whitelist.
func (m *Metadata) Issuer() (Creator, bool) {
	if len(m.Creators) == 0 {
		return Creator{}, false
	}
	return m.Creators[0], true
}

func (m *Metadata) MarshalWithEncoder(encoder *bin.Encoder) error {
	if len(m.Creators) > 255 {
		return errors.New("too many creators")
	}
	if err := encoder.WriteBytes(m.UpdateAuthority[:], false); err != nil {
		return err
	}
	if err := encoder.WriteBytes(m.Mint[:], false); err != nil {
		return err
	}
	if err := encoder.WriteByte(byte(len(m.Creators))); err != nil {
		return err
	}
	for _, c := range m.Creators {
		if err := encoder.WriteBytes(c.Address[:], false); err != nil {
			return err
		}
		if err := encoder.WriteBool(c.Verified); err != nil {
			return err
		}
		if err := encoder.WriteByte(c.Share); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metadata) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = readAddress(decoder, &m.UpdateAuthority); err != nil {
		return err
	}
	if err = readAddress(decoder, &m.Mint); err != nil {
		return err
	}
	n, err := decoder.ReadByte()
	if err != nil {
		return err
	}
	m.Creators = make([]Creator, n)
	for i := range m.Creators {
		c := &m.Creators[i]
		if err = readAddress(decoder, &c.Address); err != nil {
			return err
		}
		if c.Verified, err = readBool(decoder); err != nil {
			return err
		}
		if c.Share, err = decoder.ReadByte(); err != nil {
			return err
		}
	}
	return nil
}

type marshaler interface {
	MarshalWithEncoder(encoder *bin.Encoder) error
}

type unmarshaler interface {
	UnmarshalWithDecoder(decoder *bin.Decoder) error
}

// Encode serializes a layout.
func Encode(v marshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := v.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode deserializes a layout, rejecting trailing bytes.
func Decode(data []byte, v unmarshaler) error {
	decoder := bin.NewBinDecoder(data)
	if err := v.UnmarshalWithDecoder(decoder); err != nil {
		return err
	}
	if decoder.HasRemaining() {
		return errors.New("trailing bytes")
	}
	return nil
}

func readAddress(decoder *bin.Decoder, addr *pixel.Address) error {
	b, err := decoder.ReadBytes(pixel.AddressLength)
	if err != nil {
		return err
	}
	copy(addr[:], b)
	return nil
}

func readBool(decoder *bin.Decoder) (bool, error) {
	b, err := decoder.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errInvalidBool
}
