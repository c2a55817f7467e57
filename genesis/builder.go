// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/kv"
	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/runtime"
	"github.com/pixelplatform/staking/state"
	"github.com/pixelplatform/staking/token"
)

// holdings and metadata are derived under fixed programs, whatever the deriver's own program is.
var deriver = pda.New(pixel.Address{})

// Builder helper to build the genesis state.
type Builder struct {
	timestamp  uint64
	stateProcs []func(state *state.State) error
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process.
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Lamports credits lamports to a system account.
func (b *Builder) Lamports(addr pixel.Address, lamports uint64) *Builder {
	return b.State(func(st *state.State) error {
		acc, err := st.GetAccount(addr)
		if err != nil {
			return err
		}
		if acc.Lamports+lamports < acc.Lamports {
			return errors.Errorf("lamports of %v overflow", addr)
		}
		acc.Lamports += lamports
		st.SetAccount(addr, acc)
		return nil
	})
}

// Program marks addr as an executable program account.
func (b *Builder) Program(addr pixel.Address) *Builder {
	return b.State(func(st *state.State) error {
		st.SetAccount(addr, &state.Account{
			Lamports:   1,
			Owner:      pixel.SystemProgramID,
			Executable: true,
		})
		return nil
	})
}

// Mint creates an initialized mint with zero supply.
func (b *Builder) Mint(addr, authority pixel.Address, decimals uint8) *Builder {
	return b.State(func(st *state.State) error {
		return putTokenAccount(st, addr, token.MintSize, &token.Mint{
			MintAuthority: authority,
			Decimals:      decimals,
			Initialized:   true,
		})
	})
}

// Holding mints amount into the associated holding of owner.
// The mint must have been created before.
func (b *Builder) Holding(owner, mint pixel.Address, amount uint64) *Builder {
	return b.State(func(st *state.State) error {
		acc, err := st.GetAccount(mint)
		if err != nil {
			return err
		}
		var m token.Mint
		if acc.Owner != pixel.TokenProgramID || token.Decode(acc.Data, &m) != nil {
			return errors.Errorf("mint %v not created", mint)
		}
		if m.Supply+amount < m.Supply {
			return errors.Errorf("supply of %v overflows", mint)
		}
		m.Supply += amount
		if err := putTokenAccount(st, mint, token.MintSize, &m); err != nil {
			return err
		}

		addr, err := deriver.Holding(owner, mint)
		if err != nil {
			return err
		}
		h := token.Holding{Mint: mint, Owner: owner, State: token.Initialized}
		if acc, err = st.GetAccount(addr); err != nil {
			return err
		}
		if acc.Owner == pixel.TokenProgramID {
			if err := token.Decode(acc.Data, &h); err != nil {
				return err
			}
		}
		h.Amount += amount
		return putTokenAccount(st, addr, token.HoldingSize, &h)
	})
}

// Metadata creates the issuer metadata account of mint.
func (b *Builder) Metadata(mint, updateAuthority pixel.Address, creators ...token.Creator) *Builder {
	return b.State(func(st *state.State) error {
		addr, err := deriver.Metadata(mint)
		if err != nil {
			return err
		}
		data, err := token.Encode(&token.Metadata{
			UpdateAuthority: updateAuthority,
			Mint:            mint,
			Creators:        creators,
		})
		if err != nil {
			return err
		}
		st.SetAccount(addr, &state.Account{
			Lamports: runtime.DefaultRent.MinimumBalance(len(data)),
			Owner:    pixel.MetadataProgramID,
			Data:     data,
		})
		return nil
	})
}

// Build applies the state processes to the store and returns the genesis ID.
func (b *Builder) Build(store kv.Store) (pixel.Bytes32, error) {
	st := state.New(store)
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return pixel.Bytes32{}, errors.Wrap(err, "state process")
		}
	}

	stage := st.Stage()
	root, err := stage.Hash()
	if err != nil {
		return pixel.Bytes32{}, errors.Wrap(err, "hash state")
	}
	batch := store.NewBatch()
	if err := stage.Commit(batch); err != nil {
		return pixel.Bytes32{}, errors.Wrap(err, "commit state")
	}
	if err := batch.Write(); err != nil {
		return pixel.Bytes32{}, errors.Wrap(err, "write state")
	}

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], b.timestamp)
	return pixel.Blake2b(ts[:], root[:]), nil
}

type encoder interface {
	MarshalWithEncoder(*bin.Encoder) error
}

func putTokenAccount(st *state.State, addr pixel.Address, size int, v encoder) error {
	data, err := token.Encode(v)
	if err != nil {
		return err
	}
	st.SetAccount(addr, &state.Account{
		Lamports: runtime.DefaultRent.MinimumBalance(size),
		Owner:    pixel.TokenProgramID,
		Data:     data,
	})
	return nil
}
