// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
)

// Record - the stored state of one asset
type Record struct {
	Owner       account.Account
	Creator     account.Account
	MetadataRef string
}

// pool value layout:
//   owner    32 bytes
//   creator  32 bytes
//   metadata reference, remainder of the record
const minimumRecordLength = 2 * account.Size

// Pack - asset record to a pool value
func (record Record) Pack() []byte {
	buffer := make([]byte, 0, minimumRecordLength+len(record.MetadataRef))
	buffer = append(buffer, record.Owner.Bytes()...)
	buffer = append(buffer, record.Creator.Bytes()...)
	buffer = append(buffer, record.MetadataRef...)
	return buffer
}

// Unpack - pool value to an asset record
func Unpack(buffer []byte) (Record, error) {
	if len(buffer) < minimumRecordLength {
		return Record{}, fault.AssetNotFound
	}

	owner, err := account.FromBytes(buffer[:account.Size])
	if nil != err {
		return Record{}, err
	}
	creator, err := account.FromBytes(buffer[account.Size : 2*account.Size])
	if nil != err {
		return Record{}, err
	}

	return Record{
		Owner:       owner,
		Creator:     creator,
		MetadataRef: string(buffer[minimumRecordLength:]),
	}, nil
}

// assetKey - pool key for an asset id
func assetKey(assetId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, assetId)
	return key
}
