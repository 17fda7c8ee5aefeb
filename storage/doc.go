// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database divided into a series of pools,
// each pool being prefixed by a single ASCII letter
//
// the prefix ensures a separate namespace for each key in a pool, all
// pool records are arbitrary binary data
//
//	Assets    A  assetId     -> owner ++ creator ++ metadata
//	Approvals P  assetId     -> approved operator
//	Listings  L  assetId     -> seller ++ price ++ active flag
//	Balances  W  account     -> pending withdrawal amount
//	Cash      C  account     -> spendable amount held by the funds channel
package storage
