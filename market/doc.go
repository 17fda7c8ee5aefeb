// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package market - the marketplace ledger
//
// a state machine per asset id:
//
//	Unlisted → Listed   list:   custody moves from the seller to the
//	                            marketplace escrow account
//	Listed → Unlisted   delist: custody returns to the seller
//	Listed → Unlisted   buy:    custody moves to the buyer, proceeds
//	                            split between creator and seller
//
// a listing record exists if and only if the marketplace holds custody
// of that asset; terminal operations deactivate the record before any
// external transfer and erase it entirely on completion
//
// sale proceeds are not paid out directly: they accumulate as pending
// balances and are collected by the account itself via Withdraw (pull
// payments); the pending balance is zeroed strictly before the value
// release and restored if the release fails
//
// every state mutating entry point is protected by a single busy flag:
// a nested call arriving while an operation is in progress, e.g. from
// inside the value release hook, is refused with ReentrantCall
package market
