// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funds - the value transfer channel
//
// moves value between accounts and the marketplace: payments are
// acquired from the buyer during a sale and released to an account on
// withdrawal
//
// the Channel interface is the seam to the surrounding execution
// environment; Ledger is the storage backed implementation used by the
// daemon
package funds
