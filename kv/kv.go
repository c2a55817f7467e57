// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value store accounts, receipts and ledger
// metadata are persisted to, and key prefix buckets over it.
package kv

// Getter reads keys. Reading a missing key fails with an error
// recognized by IsNotFound.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Batch buffers writes until Write applies them atomically.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Store is a closable database with atomic batches.
type Store interface {
	Getter
	Putter
	NewBatch() Batch
	Close() error
}

// Bucket is a key prefix partitioning a store.
type Bucket string

// Key prefixes key with the bucket name.
func (b Bucket) Key(key []byte) []byte {
	full := make([]byte, 0, len(b)+len(key))
	full = append(full, b...)
	return append(full, key...)
}

// NewGetter reads keys of the bucket from src.
func (b Bucket) NewGetter(src Getter) Getter {
	return prefixed{bucket: b, get: src}
}

// NewPutter writes keys of the bucket to dst.
func (b Bucket) NewPutter(dst Putter) Putter {
	return prefixed{bucket: b, put: dst}
}

// prefixed serves one side of a bucket, the other is nil.
type prefixed struct {
	bucket Bucket
	get    Getter
	put    Putter
}

func (p prefixed) Get(key []byte) ([]byte, error) { return p.get.Get(p.bucket.Key(key)) }
func (p prefixed) Has(key []byte) (bool, error)   { return p.get.Has(p.bucket.Key(key)) }
func (p prefixed) IsNotFound(err error) bool      { return p.get.IsNotFound(err) }
func (p prefixed) Put(key, value []byte) error    { return p.put.Put(p.bucket.Key(key), value) }
func (p prefixed) Delete(key []byte) error        { return p.put.Delete(p.bucket.Key(key)) }
