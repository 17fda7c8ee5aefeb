// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/bitmark-inc/marketd/fault"
)

// MemoryHandle - a Handle backed by process memory
//
// for unit tests of the layers above storage; a real database is not
// required to exercise ledger logic
type MemoryHandle struct {
	sync.RWMutex
	records map[string][]byte
}

// NewMemoryHandle - create an empty in-memory pool
func NewMemoryHandle() *MemoryHandle {
	return &MemoryHandle{
		records: make(map[string][]byte),
	}
}

// Put - store a key/value bytes pair
func (m *MemoryHandle) Put(key []byte, value []byte) {
	m.Lock()
	defer m.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.records[string(key)] = v
}

// PutN - store a uint64 as an 8 byte big endian record
func (m *MemoryHandle) PutN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	m.Put(key, buffer)
}

// Get - read a value for a given key, nil if not present
func (m *MemoryHandle) Get(key []byte) []byte {
	m.RLock()
	defer m.RUnlock()
	value, ok := m.records[string(key)]
	if !ok {
		return nil
	}
	v := make([]byte, len(value))
	copy(v, value)
	return v
}

// GetN - read a record and decode first 8 bytes as big endian uint64
func (m *MemoryHandle) GetN(key []byte) (uint64, bool) {
	buffer := m.Get(key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		fault.Panicf("memory.GetN truncated record for: %x: %x", key, buffer)
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, true
}

// Delete - remove a key
func (m *MemoryHandle) Delete(key []byte) {
	m.Lock()
	defer m.Unlock()
	delete(m.records, string(key))
}

// Has - check if a key exists
func (m *MemoryHandle) Has(key []byte) bool {
	m.RLock()
	defer m.RUnlock()
	_, ok := m.records[string(key)]
	return ok
}

// LastElement - get the element with the highest key
func (m *MemoryHandle) LastElement() (Element, bool) {
	m.RLock()
	defer m.RUnlock()

	if 0 == len(m.records) {
		return Element{}, false
	}

	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	last := keys[len(keys)-1]
	value := m.records[last]

	result := Element{
		Key:   make([]byte, len(last)),
		Value: make([]byte, len(value)),
	}
	copy(result.Key, last)
	copy(result.Value, value)

	return result, true
}
