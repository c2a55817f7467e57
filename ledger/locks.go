// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"sync"

	"github.com/pixelplatform/staking/pixel"
)

// lockTable grants account locks all-or-nothing.
// A writable account is held exclusively, a readonly account is shared among readers.
type lockTable struct {
	mu      sync.Mutex
	writers map[pixel.Address]bool
	readers map[pixel.Address]int
	changed chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{
		writers: make(map[pixel.Address]bool),
		readers: make(map[pixel.Address]int),
		changed: make(chan struct{}),
	}
}

func (t *lockTable) free(writable, readonly []pixel.Address) bool {
	for _, addr := range writable {
		if t.writers[addr] || t.readers[addr] > 0 {
			return false
		}
	}
	for _, addr := range readonly {
		if t.writers[addr] {
			return false
		}
	}
	return true
}

// acquire blocks until every account can be locked, then locks them all.
// The returned func releases the locks.
func (t *lockTable) acquire(ctx context.Context, writable, readonly []pixel.Address) (func(), error) {
	for {
		t.mu.Lock()
		if t.free(writable, readonly) {
			for _, addr := range writable {
				t.writers[addr] = true
			}
			for _, addr := range readonly {
				t.readers[addr]++
			}
			t.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() { t.release(writable, readonly) })
			}, nil
		}
		wait := t.changed
		t.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (t *lockTable) release(writable, readonly []pixel.Address) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, addr := range writable {
		delete(t.writers, addr)
	}
	for _, addr := range readonly {
		if t.readers[addr]--; t.readers[addr] <= 0 {
			delete(t.readers, addr)
		}
	}
	close(t.changed)
	t.changed = make(chan struct{})
}
