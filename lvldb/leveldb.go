// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb implements kv.Store on goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/pixelplatform/staking/kv"
)

var _ kv.Store = (*LevelDB)(nil)

const (
	minCacheSize = 16
	minOpenFiles = 16
)

// Options tunes a persistent database.
type Options struct {
	// CacheSize is the memory in MiB shared by the block cache and the write buffer.
	CacheSize              int
	OpenFilesCacheCapacity int
}

type LevelDB struct {
	db *leveldb.DB
	// batchOpt syncs committed batches of persistent databases.
	batchOpt *opt.WriteOptions
}

// New opens the database at path, creating it if missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open storage at %v", path)
	}
	return open(stg, opts, true)
}

// NewMem creates an in-memory database.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{}, false)
}

func open(stg storage.Storage, opts Options, durable bool) (*LevelDB, error) {
	cacheSize := max(opts.CacheSize, minCacheSize)
	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: max(opts.OpenFilesCacheCapacity, minOpenFiles),
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db: db, batchOpt: &opt.WriteOptions{Sync: durable}}, nil
}

func (l *LevelDB) IsNotFound(err error) bool { return errors.Is(err, leveldb.ErrNotFound) }

func (l *LevelDB) Get(key []byte) ([]byte, error) { return l.db.Get(key, nil) }

func (l *LevelDB) Has(key []byte) (bool, error) { return l.db.Has(key, nil) }

func (l *LevelDB) Put(key, value []byte) error { return l.db.Put(key, value, nil) }

func (l *LevelDB) Delete(key []byte) error { return l.db.Delete(key, nil) }

// Close closes the database. Later operations fail.
func (l *LevelDB) Close() error { return l.db.Close() }

// NewBatch creates a batch applied in one write.
func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{owner: l}
}

type batch struct {
	owner *LevelDB
	leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.Batch.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.Batch.Delete(key)
	return nil
}

func (b *batch) Write() error {
	return b.owner.db.Write(&b.Batch, b.owner.batchOpt)
}
