// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/marketd/fault"
)

// Size - length of an account identifier in bytes
const Size = 32

// number of checksum bytes appended to the Base58 form
const checksumLength = 4

// Account - opaque account identifier
//
// the caller identity for every operation; the surrounding execution
// environment is responsible for authenticating it, this module only
// records and compares identifiers
type Account [Size]byte

// Zero - the empty account
//
// used as the "no account" value e.g. the creator of an unminted asset
var Zero Account

// FromBytes - create an account from a raw byte slice
func FromBytes(buffer []byte) (Account, error) {
	var account Account
	if Size != len(buffer) {
		return Zero, fault.AccountLengthIsInvalid
	}
	copy(account[:], buffer)
	return account, nil
}

// FromBase58 - decode the checksummed Base58 representation
func FromBase58(s string) (Account, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Zero, fault.AccountLengthIsInvalid
	}
	if Size+checksumLength != len(buffer) {
		return Zero, fault.AccountLengthIsInvalid
	}

	digest := sha3.Sum256(buffer[:Size])
	for i := 0; i < checksumLength; i += 1 {
		if digest[i] != buffer[Size+i] {
			return Zero, fault.AccountChecksumFailed
		}
	}

	return FromBytes(buffer[:Size])
}

// Bytes - the raw bytes of an account
func (account Account) Bytes() []byte {
	return account[:]
}

// IsZero - check for the empty account
func (account Account) IsZero() bool {
	return Zero == account
}

// String - Base58 with a SHA3-256 based checksum suffix
func (account Account) String() string {
	digest := sha3.Sum256(account[:])
	buffer := make([]byte, 0, Size+checksumLength)
	buffer = append(buffer, account[:]...)
	buffer = append(buffer, digest[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an account to its text form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert from text form, checking the checksum
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}
