// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pixelplatform/staking/pda"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/token"
)

// Document is the file form of a genesis.
type Document struct {
	Name        string    `yaml:"name"`
	LaunchTime  uint64    `yaml:"launchTime"`
	Accounts    []Account `yaml:"accounts"`
	Mints       []Mint    `yaml:"mints"`
	Holdings    []Holding `yaml:"holdings"`
	Assets      []Asset   `yaml:"assets"`
	RewardFloat uint64    `yaml:"rewardFloat"`
}

// Account is a funded system account.
type Account struct {
	Address  pixel.Address `yaml:"address"`
	Lamports uint64        `yaml:"lamports"`
}

// Mint is a fungible mint.
type Mint struct {
	Address   pixel.Address `yaml:"address"`
	Authority pixel.Address `yaml:"authority"`
	Decimals  uint8         `yaml:"decimals"`
}

// Holding is a minted balance.
type Holding struct {
	Owner  pixel.Address `yaml:"owner"`
	Mint   pixel.Address `yaml:"mint"`
	Amount uint64        `yaml:"amount"`
}

// Asset is a collectible of supply one with its issuer metadata.
type Asset struct {
	Mint     pixel.Address `yaml:"mint"`
	Owner    pixel.Address `yaml:"owner"`
	Issuer   pixel.Address `yaml:"issuer"`
	Verified bool          `yaml:"verified"`
}

// Load reads a genesis document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &doc, nil
}

// Builder returns the builder of the document for program.
// The reward float is minted to the vault holding of rewardMint.
func (d *Document) Builder(program, rewardMint pixel.Address) (*Builder, error) {
	b := new(Builder).Timestamp(d.LaunchTime).Program(program)
	for _, a := range d.Accounts {
		b.Lamports(a.Address, a.Lamports)
	}
	for _, m := range d.Mints {
		b.Mint(m.Address, m.Authority, m.Decimals)
	}
	for _, h := range d.Holdings {
		b.Holding(h.Owner, h.Mint, h.Amount)
	}
	for _, a := range d.Assets {
		b.Mint(a.Mint, a.Issuer, 0).
			Holding(a.Owner, a.Mint, 1).
			Metadata(a.Mint, a.Issuer, token.Creator{Address: a.Issuer, Verified: a.Verified, Share: 100})
	}
	if d.RewardFloat > 0 {
		vault, err := pda.New(program).Vault()
		if err != nil {
			return nil, err
		}
		b.Holding(vault.Address, rewardMint, d.RewardFloat)
	}
	return b, nil
}

// Genesis builds the genesis of the document for program.
func (d *Document) Genesis(program, rewardMint pixel.Address) (*Genesis, error) {
	b, err := d.Builder(program, rewardMint)
	if err != nil {
		return nil, err
	}
	name := d.Name
	if name == "" {
		name = "custom"
	}
	return NewGenesis(name, b)
}
