// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/pixel"
)

// DefaultRecentWindow is the number of latest blockhashes a transaction may reference.
const DefaultRecentWindow = 300

// recentHashes is the window of the latest blockhashes.
type recentHashes struct {
	cache *lru.Cache
	size  int
}

func newRecentHashes(size int) *recentHashes {
	cache, _ := lru.New(size)
	return &recentHashes{cache, size}
}

func (r *recentHashes) contains(hash pixel.Bytes32) bool {
	return r.cache.Contains(hash)
}

func (r *recentHashes) add(hash pixel.Bytes32) {
	r.cache.Add(hash, struct{}{})
}

// encode serializes the window as it will be after adding next, oldest first.
func (r *recentHashes) encode(next pixel.Bytes32) []byte {
	keys := r.cache.Keys()
	if len(keys) >= r.size {
		keys = keys[len(keys)-r.size+1:]
	}
	out := make([]byte, 0, (len(keys)+1)*32)
	for _, k := range keys {
		h := k.(pixel.Bytes32)
		out = append(out, h[:]...)
	}
	return append(out, next[:]...)
}

func (r *recentHashes) load(data []byte) error {
	if len(data)%32 != 0 {
		return errors.Errorf("recent blockhashes of %d bytes", len(data))
	}
	for i := 0; i < len(data); i += 32 {
		r.add(pixel.BytesToBytes32(data[i : i+32]))
	}
	return nil
}
