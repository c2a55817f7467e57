// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ed25519"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/pixelplatform/staking/pixel"
)

// DevAccount account for development.
type DevAccount struct {
	Address    pixel.Address
	PrivateKey solana.PrivateKey
}

const (
	devAccountCount        = 6
	devLamports     uint64 = 1_000_000_000_000
	devLaunchTime          = 1_700_000_000
	devRewardFloat         = 1_000 * pixel.MaxPayoutPerAsset
)

var (
	// DevRewardMint is the reward mint of the devnet.
	DevRewardMint = devAddress("reward mint")
	// DevProgram is the staking program id of the devnet.
	DevProgram = devAddress("staking program")

	devAccounts = sync.OnceValue(func() []DevAccount {
		accs := make([]DevAccount, 0, devAccountCount)
		for i := range devAccountCount {
			seed := pixel.Blake2b([]byte("pixel dev account"), []byte{byte(i)})
			key := solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:]))
			accs = append(accs, DevAccount{pixel.Address(key.PublicKey()), key})
		}
		return accs
	})
)

func devAddress(name string) pixel.Address {
	return pixel.Address(pixel.Blake2b([]byte("pixel dev"), []byte(name)))
}

// DevAccounts returns pre-funded accounts of the devnet.
// The first is the administrator and the second issues the dev assets.
func DevAccounts() []DevAccount {
	return devAccounts()
}

// DevAssets returns the collectibles of the devnet.
// Each staker account owns two verified assets. The last asset has an unverified issuer.
func DevAssets() []Asset {
	accs := DevAccounts()
	issuer := accs[1].Address

	var assets []Asset
	for i, acc := range accs[2:] {
		for j := range 2 {
			assets = append(assets, Asset{
				Mint:     devAddress(string([]byte{'a', byte(i), byte(j)})),
				Owner:    acc.Address,
				Issuer:   issuer,
				Verified: true,
			})
		}
	}
	assets = append(assets, Asset{
		Mint:   devAddress("unverified"),
		Owner:  accs[2].Address,
		Issuer: issuer,
	})
	return assets
}

// DevDocument returns the genesis document of the devnet.
func DevDocument() *Document {
	doc := &Document{
		Name:        "devnet",
		LaunchTime:  devLaunchTime,
		RewardFloat: devRewardFloat,
		Mints: []Mint{
			{Address: DevRewardMint, Authority: DevAccounts()[0].Address, Decimals: 6},
		},
		Assets: DevAssets(),
	}
	for _, acc := range DevAccounts() {
		doc.Accounts = append(doc.Accounts, Account{acc.Address, devLamports})
	}
	return doc
}

// NewDevnet create genesis for the devnet.
func NewDevnet(program pixel.Address) (*Genesis, error) {
	return DevDocument().Genesis(program, DevRewardMint)
}
