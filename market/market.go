// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/funds"
	"github.com/bitmark-inc/marketd/messagebus"
	"github.com/bitmark-inc/marketd/registry"
	"github.com/bitmark-inc/marketd/storage"
)

// royalty share of every sale routed to the asset creator
//
// the division truncates before the multiplication: a price of 99
// yields 0 royalty, not 4; this order is the observable behaviour
// depended upon by indexers, do not "fix" it
const (
	royaltyDivisor    = 100
	royaltyMultiplier = 5
)

// Market - the operations consumed by the RPC layer
type Market interface {
	List(assetId uint64, price uint64, caller account.Account) error
	Delist(assetId uint64, caller account.Account) error
	Buy(assetId uint64, payment uint64, caller account.Account) error
	Withdraw(caller account.Account) (uint64, error)
	PendingBalance(of account.Account) uint64
	Listing(assetId uint64) (ListingRecord, bool)
	Escrow() account.Account
}

type marketData struct {
	sync.Mutex // guards the flags below

	log      *logger.L
	listings storage.Handle
	balances storage.Handle
	registry registry.Registry
	channel  funds.Channel
	escrow   account.Account

	// serialises mutating operations: independent callers queue here
	// while another operation is in flight
	operationMutex sync.Mutex

	// the non-reentrant guard: busy is set for the duration of every
	// state mutating operation and owner records the goroutine inside
	// it, so a nested call from a channel hook is refused while any
	// other caller just waits its turn
	busy  bool
	owner uint64

	// set once during initialise
	initialised bool
}

// global data
var globalData marketData

// Initialise - connect the marketplace to its collaborators
//
// the registry reference is fixed here for the life of the process
func Initialise(listings storage.Handle, balances storage.Handle, reg registry.Registry, channel funds.Channel) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("market")
	globalData.log.Info("starting…")

	globalData.listings = listings
	globalData.balances = balances
	globalData.registry = reg
	globalData.channel = channel
	globalData.busy = false

	// the escrow account: a designated identifier that can never
	// collide with a client account derived from key material
	digest := sha3.Sum256([]byte("marketd.escrow"))
	escrow, err := account.FromBytes(digest[:])
	if nil != err {
		return err
	}
	globalData.escrow = escrow

	globalData.initialised = true
	return nil
}

// Finalise - shutdown the marketplace
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// Get - return the Market interface
func Get() Market {
	return &globalData
}

// enter - acquire the operation lock and the non-reentrant guard
//
// a nested call from the goroutine already inside an operation is
// refused immediately; any other caller blocks until the operation in
// flight completes
func (m *marketData) enter() error {
	id := goroutineId()

	m.Lock()
	if !m.initialised {
		m.Unlock()
		return fault.NotInitialised
	}
	if m.busy && id == m.owner {
		m.Unlock()
		return fault.ReentrantCall
	}
	m.Unlock()

	m.operationMutex.Lock()

	m.Lock()
	m.busy = true
	m.owner = id
	m.Unlock()

	return nil
}

// exit - clear the guard and release the operation lock, must run on
// every exit path
func (m *marketData) exit() {
	m.Lock()
	m.busy = false
	m.owner = 0
	m.Unlock()
	m.operationMutex.Unlock()
}

// goroutineId - numeric id from the header line of the stack trace:
// "goroutine N [state]:"
func goroutineId() uint64 {
	buffer := make([]byte, 64)
	buffer = buffer[:runtime.Stack(buffer, false)]
	buffer = bytes.TrimPrefix(buffer, []byte("goroutine "))
	i := bytes.IndexByte(buffer, ' ')
	if i <= 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(buffer[:i]), 10, 64)
	if nil != err {
		return 0
	}
	return id
}

// List - place an asset for sale
//
// custody of the asset moves to the marketplace escrow account for the
// duration of the listing; this registry level transfer is the escrow
// mechanism, there is no separate vault
func (m *marketData) List(assetId uint64, price uint64, caller account.Account) error {
	if err := m.enter(); nil != err {
		return err
	}
	defer m.exit()

	if 0 == price {
		return fault.ZeroPrice
	}
	if m.listings.Has(listingKey(assetId)) {
		return fault.AlreadyListed
	}

	owner, err := m.registry.OwnerOf(assetId)
	if nil != err {
		return err
	}
	if caller != owner {
		return fault.NotAssetOwner
	}

	// escrow: the marketplace becomes the on-record owner
	err = m.registry.Transfer(caller, m.escrow, assetId, caller)
	if nil != err {
		return err
	}

	listing := ListingRecord{
		Seller: caller,
		Price:  price,
		Active: true,
	}
	m.listings.Put(listingKey(assetId), listing.pack())

	m.log.Infof("list: id: %d  seller: %s  price: %d", assetId, caller, price)

	messagebus.Send(messagebus.Event{
		Kind:    messagebus.Listed,
		Account: caller,
		AssetId: assetId,
		Price:   price,
	})

	return nil
}

// Delist - take an asset off sale
//
// only the account that created the listing may delist; the asset is
// returned to that account
func (m *marketData) Delist(assetId uint64, caller account.Account) error {
	if err := m.enter(); nil != err {
		return err
	}
	defer m.exit()

	listing, ok := m.readListing(assetId)
	if !ok {
		return fault.NotListed
	}
	if caller != listing.Seller {
		return fault.NotListingSeller
	}

	// the seller is captured above: the record is deactivated before
	// the external transfer and only erased afterwards
	listing.Active = false
	m.listings.Put(listingKey(assetId), listing.pack())

	err := m.registry.Transfer(m.escrow, listing.Seller, assetId, m.escrow)
	if nil != err {
		// custody was not in escrow: the listing/custody invariant
		// is broken, restore the record and report
		m.log.Criticalf("delist: id: %d  escrow transfer failed: %s", assetId, err)
		listing.Active = true
		m.listings.Put(listingKey(assetId), listing.pack())
		return fault.TransferFailed
	}

	m.log.Infof("delist: id: %d  seller: %s", assetId, listing.Seller)

	messagebus.Send(messagebus.Event{
		Kind:    messagebus.Delisted,
		Account: listing.Seller,
		AssetId: assetId,
		Price:   listing.Price,
	})

	m.listings.Delete(listingKey(assetId))

	return nil
}

// Buy - purchase a listed asset
//
// all or nothing: the listing is deactivated, the payment is acquired
// from the buyer, the proceeds are split between creator and seller as
// pending balances, custody moves to the buyer, the Sold event is
// emitted and the listing record is erased
//
// an overpayment is not lost: the excess above the listing price is
// credited to the buyer's own pending balance
func (m *marketData) Buy(assetId uint64, payment uint64, caller account.Account) error {
	if err := m.enter(); nil != err {
		return err
	}
	defer m.exit()

	listing, ok := m.readListing(assetId)
	if !ok {
		return fault.NotListed
	}
	if payment < listing.Price {
		return fault.InsufficientPayment
	}

	// deactivate strictly before any external call
	listing.Active = false
	m.listings.Put(listingKey(assetId), listing.pack())

	err := m.channel.Acquire(caller, payment)
	if nil != err {
		m.log.Warnf("buy: id: %d  payment acquire failed: %s", assetId, err)
		listing.Active = true
		m.listings.Put(listingKey(assetId), listing.pack())
		return fault.TransferFailed
	}

	royalty := listing.Price / royaltyDivisor * royaltyMultiplier
	sellerAmount := listing.Price - royalty
	excess := payment - listing.Price

	creator := m.registry.CreatorOf(assetId)

	m.credit(creator, royalty)
	m.credit(listing.Seller, sellerAmount)
	m.credit(caller, excess)

	err = m.registry.Transfer(m.escrow, caller, assetId, m.escrow)
	if nil != err {
		// payment is already taken and split: there is no safe
		// unwinding from a custody failure here
		m.log.Criticalf("buy: id: %d  escrow transfer failed: %s", assetId, err)
		fault.Panicf("buy: asset %d custody lost during sale", assetId)
	}

	m.log.Infof("sold: id: %d  seller: %s  buyer: %s  price: %d", assetId, listing.Seller, caller, listing.Price)

	messagebus.Send(messagebus.Event{
		Kind:         messagebus.Sold,
		Account:      listing.Seller,
		Counterparty: caller,
		AssetId:      assetId,
		Price:        listing.Price,
	})

	m.listings.Delete(listingKey(assetId))

	return nil
}

// Withdraw - collect the accumulated proceeds of an account
//
// the balance is zeroed strictly before the value release; if the
// release fails the balance is restored, so the operation is all or
// nothing
func (m *marketData) Withdraw(caller account.Account) (uint64, error) {
	if err := m.enter(); nil != err {
		return 0, err
	}
	defer m.exit()

	amount, ok := m.balances.GetN(caller.Bytes())
	if !ok || 0 == amount {
		return 0, fault.NothingToWithdraw
	}

	// zero before release
	m.balances.Delete(caller.Bytes())

	err := m.channel.Release(caller, amount)
	if nil != err {
		m.log.Warnf("withdraw: %s  release failed: %s", caller, err)
		m.balances.PutN(caller.Bytes(), amount)
		return 0, fault.TransferFailed
	}

	m.log.Infof("withdraw: %s  amount: %d", caller, amount)

	return amount, nil
}

// PendingBalance - accumulated proceeds owed to an account
func (m *marketData) PendingBalance(of account.Account) uint64 {
	amount, _ := m.balances.GetN(of.Bytes())
	return amount
}

// Listing - current listing for an asset id
func (m *marketData) Listing(assetId uint64) (ListingRecord, bool) {
	return m.readListing(assetId)
}

// Escrow - the marketplace custody account
func (m *marketData) Escrow() account.Account {
	return m.escrow
}

// credit - accumulate a pending balance
func (m *marketData) credit(to account.Account, amount uint64) {
	if 0 == amount {
		return
	}
	balance, _ := m.balances.GetN(to.Bytes())
	m.balances.PutN(to.Bytes(), balance+amount)
}

// readListing - fetch and unpack one active listing
func (m *marketData) readListing(assetId uint64) (ListingRecord, bool) {
	buffer := m.listings.Get(listingKey(assetId))
	if nil == buffer {
		return ListingRecord{}, false
	}
	listing, err := unpackListing(buffer)
	if nil != err {
		m.log.Criticalf("corrupt listing record for id: %d", assetId)
		return ListingRecord{}, false
	}
	if !listing.Active {
		// transient deactivated record, terminal operation in progress
		return ListingRecord{}, false
	}
	return listing, true
}
