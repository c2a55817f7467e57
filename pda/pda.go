// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pda derives program addresses from seeds.
//
// A derived address is off the ed25519 curve, so no private key exists for it.
// Anyone holding the seeds and the program address can recompute and verify it.
package pda

import (
	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pixel"
)

const defaultCacheSize = 4096

// Derived is the result of a derivation.
type Derived struct {
	Address pixel.Address
	Bump    uint8
}

// Deriver derives addresses of a program, caching results.
type Deriver struct {
	program pixel.Address
	cache   *lru.Cache
}

// New creates a deriver for the given program.
func New(program pixel.Address) *Deriver {
	cache, _ := lru.New(defaultCacheSize)
	return &Deriver{program, cache}
}

// Program returns the program address derivations are namespaced by.
func (d *Deriver) Program() pixel.Address {
	return d.program
}

// Find derives the address of the program for the given seeds.
func (d *Deriver) Find(seeds ...[]byte) (Derived, error) {
	return d.find(d.program, seeds)
}

// Verify reports whether addr is the derivation of seeds, returning its bump.
func (d *Deriver) Verify(addr pixel.Address, seeds ...[]byte) (uint8, bool) {
	derived, err := d.Find(seeds...)
	if err != nil || derived.Address != addr {
		return 0, false
	}
	return derived.Bump, true
}

// Vault derives the singleton escrow address.
func (d *Deriver) Vault() (Derived, error) {
	return d.Find(pixel.VaultSeed)
}

// Whitelist derives the approval record address of an issuer.
func (d *Deriver) Whitelist(issuer pixel.Address) (Derived, error) {
	return d.Find(pixel.WhitelistSeed, issuer.Bytes())
}

// StakeRecord derives the stake record address of an asset.
func (d *Deriver) StakeRecord(asset pixel.Address) (Derived, error) {
	return d.Find(asset.Bytes())
}

// Holding derives the associated holding account of owner for mint.
func (d *Deriver) Holding(owner, mint pixel.Address) (pixel.Address, error) {
	derived, err := d.find(pixel.AssociatedTokenProgramID, [][]byte{
		owner.Bytes(),
		pixel.TokenProgramID.Bytes(),
		mint.Bytes(),
	})
	return derived.Address, err
}

// Metadata derives the issuer metadata address of mint.
func (d *Deriver) Metadata(mint pixel.Address) (pixel.Address, error) {
	derived, err := d.find(pixel.MetadataProgramID, [][]byte{
		pixel.MetadataSeed,
		pixel.MetadataProgramID.Bytes(),
		mint.Bytes(),
	})
	return derived.Address, err
}

func (d *Deriver) find(program pixel.Address, seeds [][]byte) (Derived, error) {
	key := cacheKey(program, seeds)
	if v, ok := d.cache.Get(key); ok {
		return v.(Derived), nil
	}
	addr, bump, err := solana.FindProgramAddress(seeds, program.PublicKey())
	if err != nil {
		return Derived{}, errors.Wrap(err, "find program address")
	}
	derived := Derived{pixel.Address(addr), bump}
	d.cache.Add(key, derived)
	return derived, nil
}

// Create computes the address for seeds with the bump already appended by the caller.
// It fails if the result lies on the curve.
func Create(program pixel.Address, seeds ...[]byte) (pixel.Address, error) {
	addr, err := solana.CreateProgramAddress(seeds, program.PublicKey())
	if err != nil {
		return pixel.Address{}, err
	}
	return pixel.Address(addr), nil
}

// cacheKey joins program and length prefixed seeds.
func cacheKey(program pixel.Address, seeds [][]byte) string {
	n := len(program)
	for _, s := range seeds {
		n += 1 + len(s)
	}
	buf := make([]byte, 0, n)
	buf = append(buf, program[:]...)
	for _, s := range seeds {
		buf = append(buf, byte(len(s)))
		buf = append(buf, s...)
	}
	return string(buf)
}
