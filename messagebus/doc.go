// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - queue of ledger events
//
// every successful mint, list, delist and sale places one event record
// on the queue; an external indexer drains the queue via Chan()
package messagebus
