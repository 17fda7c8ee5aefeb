// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/funds"
	"github.com/bitmark-inc/marketd/market"
	"github.com/bitmark-inc/marketd/messagebus"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/registry"
	"github.com/bitmark-inc/marketd/rpc/fixtures"
	"github.com/bitmark-inc/marketd/rpc/trade"
	"github.com/bitmark-inc/marketd/storage"
)

func setup(t *testing.T, normal bool) (*trade.Trade, *funds.Ledger) {
	fixtures.SetupTestLogger()
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

	return trade.New(
		logger.New(fixtures.LogCategory),
		func(_ mode.Mode) bool { return normal },
		market.Get(),
	), ledger
}

func teardown() {
	_ = market.Finalise()
	_ = registry.Finalise()
	fixtures.TeardownTestLogger()
}

func TestTradeListAndStatus(t *testing.T) {
	tr, _ := setup(t, true)
	defer teardown()

	assetId, err := registry.Get().Mint("meta", fixtures.Seller)
	assert.Nil(t, err, "wrong mint")

	arg := trade.ListArguments{
		AssetId: assetId,
		Price:   1000,
		Caller:  fixtures.Seller,
	}
	var reply trade.ListReply
	err = tr.List(&arg, &reply)
	assert.Nil(t, err, "wrong list")
	assert.Equal(t, assetId, reply.AssetId, "wrong asset id")

	// escrow now holds the asset
	owner, err := registry.Get().OwnerOf(assetId)
	assert.Nil(t, err, "wrong owner query")
	assert.Equal(t, reply.Escrow, owner, "wrong custody")

	statusArg := trade.StatusArguments{AssetId: assetId}
	var statusReply trade.StatusReply
	err = tr.Status(&statusArg, &statusReply)
	assert.Nil(t, err, "wrong status")
	assert.True(t, statusReply.Listed, "wrong listed flag")
	assert.Equal(t, fixtures.Seller, statusReply.Seller, "wrong seller")
	assert.Equal(t, uint64(1000), statusReply.Price, "wrong price")
}

func TestTradeListWhenNotInNormal(t *testing.T) {
	tr, _ := setup(t, false)
	defer teardown()

	arg := trade.ListArguments{
		AssetId: 1,
		Price:   1000,
		Caller:  fixtures.Seller,
	}
	var reply trade.ListReply
	err := tr.List(&arg, &reply)
	assert.Equal(t, fault.NotAvailableDuringStartup, err, "wrong error")
}

func TestTradeDelist(t *testing.T) {
	tr, _ := setup(t, true)
	defer teardown()

	assetId, err := registry.Get().Mint("meta", fixtures.Seller)
	assert.Nil(t, err, "wrong mint")

	listArg := trade.ListArguments{AssetId: assetId, Price: 1000, Caller: fixtures.Seller}
	var listReply trade.ListReply
	err = tr.List(&listArg, &listReply)
	assert.Nil(t, err, "wrong list")

	arg := trade.DelistArguments{AssetId: assetId, Caller: fixtures.Seller}
	var reply trade.DelistReply
	err = tr.Delist(&arg, &reply)
	assert.Nil(t, err, "wrong delist")

	// asset returned to seller
	owner, err := registry.Get().OwnerOf(assetId)
	assert.Nil(t, err, "wrong owner query")
	assert.Equal(t, fixtures.Seller, owner, "wrong owner")

	statusArg := trade.StatusArguments{AssetId: assetId}
	var statusReply trade.StatusReply
	err = tr.Status(&statusArg, &statusReply)
	assert.Nil(t, err, "wrong status")
	assert.False(t, statusReply.Listed, "wrong listed flag")
}

func TestTradeBuyWithdrawBalance(t *testing.T) {
	tr, ledger := setup(t, true)
	defer teardown()

	assetId, err := registry.Get().Mint("meta", fixtures.Seller)
	assert.Nil(t, err, "wrong mint")

	listArg := trade.ListArguments{AssetId: assetId, Price: 1000, Caller: fixtures.Seller}
	var listReply trade.ListReply
	err = tr.List(&listArg, &listReply)
	assert.Nil(t, err, "wrong list")

	err = ledger.Deposit(fixtures.Buyer, 1000)
	assert.Nil(t, err, "wrong deposit")

	buyArg := trade.BuyArguments{AssetId: assetId, Payment: 1000, Caller: fixtures.Buyer}
	var buyReply trade.BuyReply
	err = tr.Buy(&buyArg, &buyReply)
	assert.Nil(t, err, "wrong buy")

	owner, err := registry.Get().OwnerOf(assetId)
	assert.Nil(t, err, "wrong owner query")
	assert.Equal(t, fixtures.Buyer, owner, "wrong owner")

	// seller was the creator so royalty and proceeds combine
	balArg := trade.BalanceArguments{Account: fixtures.Seller}
	var balReply trade.BalanceReply
	err = tr.Balance(&balArg, &balReply)
	assert.Nil(t, err, "wrong balance")
	assert.Equal(t, uint64(1000), balReply.Amount, "wrong pending amount")

	withdrawArg := trade.WithdrawArguments{Caller: fixtures.Seller}
	var withdrawReply trade.WithdrawReply
	err = tr.Withdraw(&withdrawArg, &withdrawReply)
	assert.Nil(t, err, "wrong withdraw")
	assert.Equal(t, uint64(1000), withdrawReply.Amount, "wrong withdrawn amount")

	assert.Equal(t, uint64(1000), ledger.Balance(fixtures.Seller), "wrong ledger balance")
}

func TestTradeBuyUnderpaid(t *testing.T) {
	tr, ledger := setup(t, true)
	defer teardown()

	assetId, err := registry.Get().Mint("meta", fixtures.Seller)
	assert.Nil(t, err, "wrong mint")

	listArg := trade.ListArguments{AssetId: assetId, Price: 1000, Caller: fixtures.Seller}
	var listReply trade.ListReply
	err = tr.List(&listArg, &listReply)
	assert.Nil(t, err, "wrong list")

	err = ledger.Deposit(fixtures.Buyer, 500)
	assert.Nil(t, err, "wrong deposit")

	buyArg := trade.BuyArguments{AssetId: assetId, Payment: 500, Caller: fixtures.Buyer}
	var buyReply trade.BuyReply
	err = tr.Buy(&buyArg, &buyReply)
	assert.Equal(t, fault.InsufficientPayment, err, "wrong error")
}

func TestTradeWithdrawWhenNothingPending(t *testing.T) {
	tr, _ := setup(t, true)
	defer teardown()

	arg := trade.WithdrawArguments{Caller: fixtures.Other}
	var reply trade.WithdrawReply
	err := tr.Withdraw(&arg, &reply)
	assert.Equal(t, fault.NothingToWithdraw, err, "wrong error")
}
