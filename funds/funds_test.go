// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funds_test

import (
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/funds"
	"github.com/bitmark-inc/marketd/storage"
)

// deterministic test account
func makeAccount(name string) account.Account {
	digest := sha3.Sum256([]byte(name))
	a, _ := account.FromBytes(digest[:])
	return a
}

// deposit, acquire and release round trip
func TestLedger(t *testing.T) {

	alice := makeAccount("alice")
	ledger := funds.New(storage.NewMemoryHandle())

	if 0 != ledger.Balance(alice) {
		t.Fatalf("balance: actual: %d  expected: 0", ledger.Balance(alice))
	}

	err := ledger.Deposit(alice, 150)
	if nil != err {
		t.Fatalf("deposit error: %s", err)
	}
	if 150 != ledger.Balance(alice) {
		t.Fatalf("balance: actual: %d  expected: 150", ledger.Balance(alice))
	}

	err = ledger.Acquire(alice, 100)
	if nil != err {
		t.Fatalf("acquire error: %s", err)
	}
	if 50 != ledger.Balance(alice) {
		t.Fatalf("balance: actual: %d  expected: 50", ledger.Balance(alice))
	}

	err = ledger.Acquire(alice, 100)
	if fault.InsufficientFunds != err {
		t.Fatalf("unexpected error: %v", err)
	}
	if 50 != ledger.Balance(alice) {
		t.Fatalf("failed acquire changed the balance: %d", ledger.Balance(alice))
	}

	err = ledger.Release(alice, 25)
	if nil != err {
		t.Fatalf("release error: %s", err)
	}
	if 75 != ledger.Balance(alice) {
		t.Fatalf("balance: actual: %d  expected: 75", ledger.Balance(alice))
	}
}

// the zero account can never receive value
func TestZeroAccount(t *testing.T) {

	ledger := funds.New(storage.NewMemoryHandle())

	if fault.ZeroAccount != ledger.Deposit(account.Zero, 10) {
		t.Error("deposit to zero account was accepted")
	}
	if fault.ZeroAccount != ledger.Release(account.Zero, 10) {
		t.Error("release to zero account was accepted")
	}
}
