// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funds

import (
	"sync"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/storage"
)

// Channel - value movement to and from accounts
//
// both operations report failure so that the caller can roll back; a
// failed Release during withdrawal restores the pending balance
type Channel interface {
	Acquire(from account.Account, amount uint64) error
	Release(to account.Account, amount uint64) error
}

// Ledger - a Channel backed by a storage pool of account balances
type Ledger struct {
	sync.Mutex
	cash storage.Handle
}

// New - create a ledger on a cash pool
func New(cash storage.Handle) *Ledger {
	return &Ledger{
		cash: cash,
	}
}

// Deposit - add spendable value to an account
func (l *Ledger) Deposit(to account.Account, amount uint64) error {
	if to.IsZero() {
		return fault.ZeroAccount
	}

	l.Lock()
	defer l.Unlock()

	balance, _ := l.cash.GetN(to.Bytes())
	l.cash.PutN(to.Bytes(), balance+amount)
	return nil
}

// Balance - current spendable value of an account
func (l *Ledger) Balance(of account.Account) uint64 {
	l.Lock()
	defer l.Unlock()

	balance, _ := l.cash.GetN(of.Bytes())
	return balance
}

// Acquire - draw value from an account into marketplace custody
func (l *Ledger) Acquire(from account.Account, amount uint64) error {
	l.Lock()
	defer l.Unlock()

	balance, _ := l.cash.GetN(from.Bytes())
	if balance < amount {
		return fault.InsufficientFunds
	}
	l.cash.PutN(from.Bytes(), balance-amount)
	return nil
}

// Release - pay value out to an account
func (l *Ledger) Release(to account.Account, amount uint64) error {
	if to.IsZero() {
		return fault.ZeroAccount
	}

	l.Lock()
	defer l.Unlock()

	balance, _ := l.cash.GetN(to.Bytes())
	l.cash.PutN(to.Bytes(), balance+amount)
	return nil
}
