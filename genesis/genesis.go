// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pixelplatform/staking/kv"
	"github.com/pixelplatform/staking/lvldb"
	"github.com/pixelplatform/staking/pixel"
)

// Genesis to build the initial ledger state.
type Genesis struct {
	builder *Builder
	id      pixel.Bytes32
	name    string
}

// NewGenesis creates a genesis, computing its ID on a scratch store.
func NewGenesis(name string, builder *Builder) (*Genesis, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	id, err := builder.Build(db)
	if err != nil {
		return nil, err
	}
	return &Genesis{builder, id, name}, nil
}

// Build writes the genesis accounts into store.
func (g *Genesis) Build(store kv.Store) (pixel.Bytes32, error) {
	return g.builder.Build(store)
}

// ID returns genesis ID. It seeds the recent blockhash chain.
func (g *Genesis) ID() pixel.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}
