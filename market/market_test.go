// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/funds"
	"github.com/bitmark-inc/marketd/market"
	"github.com/bitmark-inc/marketd/messagebus"
	"github.com/bitmark-inc/marketd/registry"
	"github.com/bitmark-inc/marketd/storage"
)

const (
	testingDirName = "testing"
	logCategory    = "market_test"
)

var (
	alice   = makeAccount("alice")
	bob     = makeAccount("bob")
	charlie = makeAccount("charlie")
)

// deterministic test account
func makeAccount(name string) account.Account {
	digest := sha3.Sum256([]byte(name))
	a, _ := account.FromBytes(digest[:])
	return a
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      fmt.Sprintf("%s.log", logCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// remove all files created by test
func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// common setup: registry and market on in-memory pools with a cash ledger
func setup(t *testing.T) (registry.Registry, market.Market, *funds.Ledger) {
	setupTestLogger()
	messagebus.Flush()

	err := registry.Initialise(storage.NewMemoryHandle(), storage.NewMemoryHandle())
	if nil != err {
		t.Fatalf("registry initialise error: %s", err)
	}

	ledger := funds.New(storage.NewMemoryHandle())

	err = market.Initialise(storage.NewMemoryHandle(), storage.NewMemoryHandle(), registry.Get(), ledger)
	if nil != err {
		t.Fatalf("market initialise error: %s", err)
	}

	return registry.Get(), market.Get(), ledger
}

func teardown() {
	_ = market.Finalise()
	_ = registry.Finalise()
	teardownTestLogger()
}

// drain one event and check its kind
func nextEvent(t *testing.T, kind messagebus.EventKind) messagebus.Event {
	select {
	case event := <-messagebus.Chan():
		if kind != event.Kind {
			t.Fatalf("event kind: actual: %s  expected: %s", event.Kind, kind)
		}
		return event
	default:
		t.Fatalf("no %s event queued", kind)
		return messagebus.Event{}
	}
}

// listing preconditions: ownership, price and uniqueness
func TestListPreconditions(t *testing.T) {
	r, m, _ := setup(t)
	defer teardown()

	assetId, _ := r.Mint("meta", alice)

	// not the owner
	err := m.List(assetId, 100, bob)
	assert.Equal(t, fault.NotAssetOwner, err, "wrong error for non-owner")

	// zero price
	err = m.List(assetId, 0, alice)
	assert.Equal(t, fault.ZeroPrice, err, "wrong error for zero price")

	// unminted asset
	err = m.List(999, 100, alice)
	assert.Equal(t, fault.AssetNotFound, err, "wrong error for unminted asset")

	// valid listing
	err = m.List(assetId, 100, alice)
	assert.Nil(t, err, "list failed")

	// escrow holds custody while listed
	owner, _ := r.OwnerOf(assetId)
	assert.Equal(t, m.Escrow(), owner, "custody not in escrow")

	listing, ok := m.Listing(assetId)
	assert.True(t, ok, "no listing record")
	assert.Equal(t, alice, listing.Seller, "wrong seller")
	assert.Equal(t, uint64(100), listing.Price, "wrong price")
	assert.True(t, listing.Active, "listing not active")

	// double listing
	err = m.List(assetId, 100, alice)
	assert.Equal(t, fault.AlreadyListed, err, "wrong error for double listing")

	nextEvent(t, messagebus.Minted)
	event := nextEvent(t, messagebus.Listed)
	assert.Equal(t, assetId, event.AssetId, "wrong event asset id")
	assert.Equal(t, uint64(100), event.Price, "wrong event price")
}

// delisting returns the asset to exactly the account that listed it
func TestDelist(t *testing.T) {
	r, m, _ := setup(t)
	defer teardown()

	assetId, _ := r.Mint("meta", alice)
	_ = m.List(assetId, 100, alice)

	// only the seller may delist
	err := m.Delist(assetId, bob)
	assert.Equal(t, fault.NotListingSeller, err, "wrong error for non-seller")

	err = m.Delist(assetId, alice)
	assert.Nil(t, err, "delist failed")

	// asset returned to the seller
	owner, _ := r.OwnerOf(assetId)
	assert.Equal(t, alice, owner, "asset not returned to seller")

	// the record is erased, not merely deactivated
	_, ok := m.Listing(assetId)
	assert.False(t, ok, "listing record survived delist")

	err = m.Delist(assetId, alice)
	assert.Equal(t, fault.NotListed, err, "wrong error for second delist")

	nextEvent(t, messagebus.Minted)
	nextEvent(t, messagebus.Listed)
	event := nextEvent(t, messagebus.Delisted)
	assert.Equal(t, alice, event.Account, "wrong event seller")
}

// self sale: seller is also the creator so all proceeds accumulate in
// one pending balance
func TestBuySelfSale(t *testing.T) {
	r, m, ledger := setup(t)
	defer teardown()

	assetId, _ := r.Mint("meta", alice)
	assert.Equal(t, uint64(1), assetId, "wrong first asset id")

	err := m.List(assetId, 100, alice)
	assert.Nil(t, err, "list failed")

	_ = ledger.Deposit(bob, 100)

	err = m.Buy(assetId, 100, bob)
	assert.Nil(t, err, "buy failed")

	// custody moved to the buyer
	owner, _ := r.OwnerOf(assetId)
	assert.Equal(t, bob, owner, "asset not transferred to buyer")

	// creator == seller: the royalty merges back into one balance
	assert.Equal(t, uint64(100), m.PendingBalance(alice), "wrong seller balance")
	assert.Equal(t, uint64(0), m.PendingBalance(bob), "unexpected buyer balance")
	assert.Equal(t, uint64(0), ledger.Balance(bob), "payment not acquired")

	// the listing record no longer exists
	_, ok := m.Listing(assetId)
	assert.False(t, ok, "listing record survived sale")
	assert.Equal(t, fault.NotListed, m.Buy(assetId, 100, charlie), "wrong error for second buy")
	assert.Equal(t, fault.NotListed, m.Delist(assetId, alice), "wrong error for delist after sale")

	nextEvent(t, messagebus.Minted)
	nextEvent(t, messagebus.Listed)
	event := nextEvent(t, messagebus.Sold)
	assert.Equal(t, alice, event.Account, "wrong event seller")
	assert.Equal(t, bob, event.Counterparty, "wrong event buyer")
	assert.Equal(t, uint64(100), event.Price, "wrong event price")
}

// royalty split: creator differs from seller
func TestBuyRoyaltySplit(t *testing.T) {
	r, m, ledger := setup(t)
	defer teardown()

	// alice mints, bob ends up owning, creator remains alice
	assetId, _ := r.Mint("meta", alice)
	_ = r.Transfer(alice, bob, assetId, alice)

	_ = m.List(assetId, 100, bob)
	_ = ledger.Deposit(charlie, 100)

	err := m.Buy(assetId, 100, charlie)
	assert.Nil(t, err, "buy failed")

	// 5% to the creator, the rest to the seller
	assert.Equal(t, uint64(5), m.PendingBalance(alice), "wrong creator royalty")
	assert.Equal(t, uint64(95), m.PendingBalance(bob), "wrong seller amount")

	owner, _ := r.OwnerOf(assetId)
	assert.Equal(t, charlie, owner, "asset not transferred to buyer")
}

// the truncation order of the royalty computation is observable:
// floor(price/100)*5, so a price of 99 carries no royalty at all
func TestBuyRoyaltyTruncation(t *testing.T) {
	r, m, ledger := setup(t)
	defer teardown()

	prices := []struct {
		price   uint64
		royalty uint64
	}{
		{99, 0},
		{100, 5},
		{199, 5},
		{250, 10},
		{1, 0},
	}

	for i, item := range prices {
		assetId, _ := r.Mint(fmt.Sprintf("meta-%d", i), alice)
		_ = r.Transfer(alice, bob, assetId, alice)

		_ = m.List(assetId, item.price, bob)
		_ = ledger.Deposit(charlie, item.price)

		creatorBefore := m.PendingBalance(alice)
		sellerBefore := m.PendingBalance(bob)

		err := m.Buy(assetId, item.price, charlie)
		assert.Nil(t, err, "buy failed")

		assert.Equal(t, item.royalty, m.PendingBalance(alice)-creatorBefore,
			"price %d: wrong royalty", item.price)
		assert.Equal(t, item.price-item.royalty, m.PendingBalance(bob)-sellerBefore,
			"price %d: wrong seller amount", item.price)
	}
}

// underpayment is refused with no effect
func TestBuyInsufficientPayment(t *testing.T) {
	r, m, ledger := setup(t)
	defer teardown()

	assetId, _ := r.Mint("meta", alice)
	_ = m.List(assetId, 100, alice)
	_ = ledger.Deposit(bob, 99)

	err := m.Buy(assetId, 99, bob)
	assert.Equal(t, fault.InsufficientPayment, err, "wrong error for underpayment")

	// listing unchanged, nothing credited, nothing acquired
	listing, ok := m.Listing(assetId)
	assert.True(t, ok, "listing lost after failed buy")
	assert.True(t, listing.Active, "listing deactivated after failed buy")
	assert.Equal(t, uint64(0), m.PendingBalance(alice), "unexpected seller credit")
	assert.Equal(t, uint64(99), ledger.Balance(bob), "payment wrongly acquired")
}

// excess payment is not lost: it accumulates as the buyer's own
// pending balance
func TestBuyOverpayment(t *testing.T) {
	r, m, ledger := setup(t)
	defer teardown()

	assetId, _ := r.Mint("meta", alice)
	_ = m.List(assetId, 100, alice)
	_ = ledger.Deposit(bob, 120)

	err := m.Buy(assetId, 120, bob)
	assert.Nil(t, err, "buy failed")

	assert.Equal(t, uint64(100), m.PendingBalance(alice), "wrong seller balance")
	assert.Equal(t, uint64(20), m.PendingBalance(bob), "excess not credited to buyer")
	assert.Equal(t, uint64(0), ledger.Balance(bob), "wrong remaining cash")

	// conservation: everything the buyer paid is accounted for
	total := m.PendingBalance(alice) + m.PendingBalance(bob)
	assert.Equal(t, uint64(120), total, "value lost or created")
}

// a failed payment acquisition reactivates the listing
func TestBuyPaymentFailure(t *testing.T) {
	r, m, _ := setup(t)
	defer teardown()

	assetId, _ := r.Mint("meta", alice)
	_ = m.List(assetId, 100, alice)

	// bob has no funds at all
	err := m.Buy(assetId, 100, bob)
	assert.Equal(t, fault.TransferFailed, err, "wrong error for failed payment")

	listing, ok := m.Listing(assetId)
	assert.True(t, ok, "listing lost after failed payment")
	assert.True(t, listing.Active, "listing not restored after failed payment")

	// escrow still holds custody
	owner, _ := r.OwnerOf(assetId)
	assert.Equal(t, m.Escrow(), owner, "custody left escrow on failure")
}

// withdraw pays the full balance exactly once
func TestWithdraw(t *testing.T) {
	r, m, ledger := setup(t)
	defer teardown()

	assetId, _ := r.Mint("meta", alice)
	_ = m.List(assetId, 100, alice)
	_ = ledger.Deposit(bob, 100)
	_ = m.Buy(assetId, 100, bob)

	amount, err := m.Withdraw(alice)
	assert.Nil(t, err, "withdraw failed")
	assert.Equal(t, uint64(100), amount, "wrong withdrawal amount")
	assert.Equal(t, uint64(100), ledger.Balance(alice), "funds not released")
	assert.Equal(t, uint64(0), m.PendingBalance(alice), "balance not zeroed")

	// a second withdrawal with no intervening sale fails
	_, err = m.Withdraw(alice)
	assert.Equal(t, fault.NothingToWithdraw, err, "wrong error for empty balance")
}

// a value channel that can be scripted to fail or re-enter
type hostileChannel struct {
	ledger       *funds.Ledger
	failRelease  bool
	reenter      func() error
	reenterError error
}

func (h *hostileChannel) Acquire(from account.Account, amount uint64) error {
	return h.ledger.Acquire(from, amount)
}

func (h *hostileChannel) Release(to account.Account, amount uint64) error {
	if nil != h.reenter {
		h.reenterError = h.reenter()
	}
	if h.failRelease {
		return fault.TransferFailed
	}
	return h.ledger.Release(to, amount)
}

// a failed release rolls the pending balance back
func TestWithdrawReleaseFailure(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()
	messagebus.Flush()

	err := registry.Initialise(storage.NewMemoryHandle(), storage.NewMemoryHandle())
	assert.Nil(t, err, "registry initialise failed")
	defer registry.Finalise()

	ledger := funds.New(storage.NewMemoryHandle())
	hostile := &hostileChannel{ledger: ledger, failRelease: true}

	err = market.Initialise(storage.NewMemoryHandle(), storage.NewMemoryHandle(), registry.Get(), hostile)
	assert.Nil(t, err, "market initialise failed")
	defer market.Finalise()

	r := registry.Get()
	m := market.Get()

	assetId, _ := r.Mint("meta", alice)
	_ = m.List(assetId, 100, alice)
	_ = ledger.Deposit(bob, 100)
	_ = m.Buy(assetId, 100, bob)

	_, err = m.Withdraw(alice)
	assert.Equal(t, fault.TransferFailed, err, "wrong error for failed release")

	// all or nothing: the balance was restored
	assert.Equal(t, uint64(100), m.PendingBalance(alice), "balance lost on failed release")

	// and a later successful withdrawal still works
	hostile.failRelease = false
	amount, err := m.Withdraw(alice)
	assert.Nil(t, err, "retry withdraw failed")
	assert.Equal(t, uint64(100), amount, "wrong retry amount")
}

// a nested mutating call from inside the release hook is refused
func TestWithdrawReentrancy(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()
	messagebus.Flush()

	err := registry.Initialise(storage.NewMemoryHandle(), storage.NewMemoryHandle())
	assert.Nil(t, err, "registry initialise failed")
	defer registry.Finalise()

	ledger := funds.New(storage.NewMemoryHandle())
	hostile := &hostileChannel{ledger: ledger}

	err = market.Initialise(storage.NewMemoryHandle(), storage.NewMemoryHandle(), registry.Get(), hostile)
	assert.Nil(t, err, "market initialise failed")
	defer market.Finalise()

	r := registry.Get()
	m := market.Get()

	assetId, _ := r.Mint("meta", alice)
	_ = m.List(assetId, 100, alice)
	_ = ledger.Deposit(bob, 100)
	_ = m.Buy(assetId, 100, bob)

	// the hook attempts a second withdrawal while the first is in
	// flight
	hostile.reenter = func() error {
		_, err := m.Withdraw(alice)
		return err
	}

	amount, err := m.Withdraw(alice)
	assert.Nil(t, err, "outer withdraw failed")
	assert.Equal(t, uint64(100), amount, "wrong amount")

	// the nested call was refused, so the balance was paid exactly once
	assert.Equal(t, fault.ReentrantCall, hostile.reenterError, "nested call not refused")
	assert.Equal(t, uint64(100), ledger.Balance(alice), "double payout detected")
	assert.Equal(t, uint64(0), m.PendingBalance(alice), "balance not zeroed")
}

// a value channel whose release blocks until told to proceed, to hold
// an operation in flight
type slowChannel struct {
	ledger  *funds.Ledger
	entered chan struct{}
	proceed chan struct{}
}

func (s *slowChannel) Acquire(from account.Account, amount uint64) error {
	return s.ledger.Acquire(from, amount)
}

func (s *slowChannel) Release(to account.Account, amount uint64) error {
	close(s.entered)
	<-s.proceed
	return s.ledger.Release(to, amount)
}

// an independent operation arriving from another goroutine while one
// is in flight waits for its turn; only a nested call is refused
func TestConcurrentOperationsSerialise(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()
	messagebus.Flush()

	err := registry.Initialise(storage.NewMemoryHandle(), storage.NewMemoryHandle())
	assert.Nil(t, err, "registry initialise failed")
	defer registry.Finalise()

	ledger := funds.New(storage.NewMemoryHandle())
	slow := &slowChannel{
		ledger:  ledger,
		entered: make(chan struct{}),
		proceed: make(chan struct{}),
	}

	err = market.Initialise(storage.NewMemoryHandle(), storage.NewMemoryHandle(), registry.Get(), slow)
	assert.Nil(t, err, "market initialise failed")
	defer market.Finalise()

	r := registry.Get()
	m := market.Get()

	first, _ := r.Mint("meta-1", alice)
	second, _ := r.Mint("meta-2", bob)

	_ = m.List(first, 100, alice)
	_ = ledger.Deposit(charlie, 100)
	_ = m.Buy(first, 100, charlie)

	withdrawDone := make(chan error)
	go func() {
		_, err := m.Withdraw(alice)
		withdrawDone <- err
	}()

	// wait until the withdrawal is inside its release call
	<-slow.entered

	listDone := make(chan error)
	go func() {
		listDone <- m.List(second, 200, bob)
	}()

	// the list call queues behind the withdrawal in flight
	select {
	case err := <-listDone:
		t.Fatalf("list completed during withdrawal: error: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(slow.proceed)

	assert.Nil(t, <-withdrawDone, "withdraw failed")
	assert.Nil(t, <-listDone, "independent concurrent list refused")

	// both operations took full effect
	assert.Equal(t, uint64(100), ledger.Balance(alice), "funds not released")
	listing, ok := m.Listing(second)
	assert.True(t, ok, "no listing record after queued list")
	assert.Equal(t, bob, listing.Seller, "wrong seller on queued listing")
}
