// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/marketd/fault"
)

// Handle - the pool operations used by higher layers
//
// satisfied by PoolHandle for production use and by MemoryHandle for
// unit tests
type Handle interface {
	Put(key []byte, value []byte)
	PutN(key []byte, value uint64)
	Get(key []byte) []byte
	GetN(key []byte) (uint64, bool)
	Delete(key []byte)
	Has(key []byte) bool
	LastElement() (Element, bool)
}

// PoolHandle - handle for a storage pool
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		fault.Panic("pool.Put nil database")
		return
	}
	err := poolData.db.Put(p.prefixKey(key), value, nil)
	fault.PanicIfError("pool.Put", err)
}

// PutN - store a uint64 as an 8 byte big endian record
func (p *PoolHandle) PutN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.Put(key, buffer)
}

// Get - read a value for a given key
//
// this returns the actual element - copy the result if it must be preserved
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil
	}
	value, err := poolData.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	fault.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 (or more) bytes in the record
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		fault.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, true
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		fault.Panic("pool.Delete nil database")
		return
	}
	err := poolData.db.Delete(p.prefixKey(key), nil)
	fault.PanicIfError("pool.Delete", err)
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return false
	}
	value, err := poolData.db.Has(p.prefixKey(key), nil)
	fault.PanicIfError("pool.Has", err)
	return value
}

// LastElement - get the element with the highest key in a pool
func (p *PoolHandle) LastElement() (Element, bool) {
	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return Element{}, false
	}

	iter := poolData.db.NewIterator(&maxRange, nil)

	found := false
	result := Element{}
	if iter.Last() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		result.Key = dataKey
		result.Value = dataValue
		found = true
	}
	iter.Release()
	err := iter.Error()
	fault.PanicIfError("pool.LastElement", err)
	return result, found
}
