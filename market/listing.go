// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/binary"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
)

// ListingRecord - the stored state of one listing
type ListingRecord struct {
	Seller account.Account
	Price  uint64
	Active bool
}

// pool value layout:
//   seller  32 bytes
//   price    8 bytes big endian
//   active   1 byte
const listingRecordLength = account.Size + 8 + 1

// pack - listing record to a pool value
func (listing ListingRecord) pack() []byte {
	buffer := make([]byte, listingRecordLength)
	copy(buffer, listing.Seller.Bytes())
	binary.BigEndian.PutUint64(buffer[account.Size:], listing.Price)
	if listing.Active {
		buffer[listingRecordLength-1] = 1
	}
	return buffer
}

// unpackListing - pool value to a listing record
func unpackListing(buffer []byte) (ListingRecord, error) {
	if listingRecordLength != len(buffer) {
		return ListingRecord{}, fault.NotListed
	}

	seller, err := account.FromBytes(buffer[:account.Size])
	if nil != err {
		return ListingRecord{}, err
	}

	return ListingRecord{
		Seller: seller,
		Price:  binary.BigEndian.Uint64(buffer[account.Size : account.Size+8]),
		Active: 1 == buffer[listingRecordLength-1],
	}, nil
}

// listingKey - pool key for an asset id
func listingKey(assetId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, assetId)
	return key
}
