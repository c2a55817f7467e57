// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package datagen generates random values for tests.
package datagen

import (
	"crypto/rand"

	"github.com/gagliardetto/solana-go"

	"github.com/pixelplatform/staking/pixel"
)

func RandAddress() (addr pixel.Address) {
	rand.Read(addr[:])
	return
}

func RandomHash() (h pixel.Bytes32) {
	rand.Read(h[:])
	return
}

// RandKey generates an ed25519 key pair, returning the key and its address.
func RandKey() (solana.PrivateKey, pixel.Address) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return key, pixel.Address(key.PublicKey())
}
