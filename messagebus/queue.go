// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"time"

	"github.com/bitmark-inc/marketd/account"
)

// internal constants
const (
	queueSize = 1000
)

// EventKind - classification of an event record
type EventKind int

// all possible events
const (
	Minted EventKind = iota
	Listed
	Delisted
	Sold
)

// Event - a single observable ledger event
//
// Account is the creator for Minted and the seller otherwise;
// Counterparty is only set for Sold (the buyer)
type Event struct {
	Kind         EventKind
	Account      account.Account
	Counterparty account.Account
	AssetId      uint64
	Price        uint64
	MetadataRef  string
	Timestamp    time.Time
}

var (
	// for queueing data
	queue = make(chan Event, queueSize)
)

// Send - place an event on the queue
//
// the timestamp is assigned here so all events share one clock
func Send(event Event) {
	event.Timestamp = time.Now().UTC()
	queue <- event
}

// Chan - channel to read events from
func Chan() <-chan Event {
	return queue
}

// Flush - discard all queued events
func Flush() {
	for {
		select {
		case <-queue:
		default:
			return
		}
	}
}

// String - event kind as text
func (k EventKind) String() string {
	switch k {
	case Minted:
		return "Minted"
	case Listed:
		return "Listed"
	case Delisted:
		return "Delisted"
	case Sold:
		return "Sold"
	default:
		return "*Unknown*"
	}
}
