// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trade

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/market"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
)

// Trade - type for the RPC
type Trade struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	Market       market.Market
}

const (
	rateLimitTrade = 200
	rateBurstTrade = 100
)

// New - create the trade service
func New(log *logger.L, isNormalMode func(mode.Mode) bool, mkt market.Market) *Trade {
	return &Trade{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitTrade, rateBurstTrade),
		IsNormalMode: isNormalMode,
		Market:       mkt,
	}
}

// ListArguments - arguments for list RPC request
type ListArguments struct {
	AssetId uint64          `json:"assetId"`
	Price   uint64          `json:"price"`
	Caller  account.Account `json:"caller"` // base58
}

// ListReply - result of list RPC request
type ListReply struct {
	AssetId uint64          `json:"assetId"`
	Escrow  account.Account `json:"escrow"`
}

// List - place an asset for sale
func (trade *Trade) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.Limit(trade.Limiter); nil != err {
		return err
	}
	if !trade.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStartup
	}

	trade.Log.Infof("Trade.List: %+v", arguments)

	err := trade.Market.List(arguments.AssetId, arguments.Price, arguments.Caller)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	reply.Escrow = trade.Market.Escrow()
	return nil
}

// DelistArguments - arguments for delist RPC request
type DelistArguments struct {
	AssetId uint64          `json:"assetId"`
	Caller  account.Account `json:"caller"`
}

// DelistReply - result of delist RPC request
type DelistReply struct {
	AssetId uint64 `json:"assetId"`
}

// Delist - take an asset off sale, returning it to the seller
func (trade *Trade) Delist(arguments *DelistArguments, reply *DelistReply) error {
	if err := ratelimit.Limit(trade.Limiter); nil != err {
		return err
	}
	if !trade.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStartup
	}

	trade.Log.Infof("Trade.Delist: %+v", arguments)

	err := trade.Market.Delist(arguments.AssetId, arguments.Caller)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	return nil
}

// BuyArguments - arguments for buy RPC request
type BuyArguments struct {
	AssetId uint64          `json:"assetId"`
	Payment uint64          `json:"payment"`
	Caller  account.Account `json:"caller"`
}

// BuyReply - result of buy RPC request
type BuyReply struct {
	AssetId uint64 `json:"assetId"`
}

// Buy - purchase a listed asset
func (trade *Trade) Buy(arguments *BuyArguments, reply *BuyReply) error {
	if err := ratelimit.Limit(trade.Limiter); nil != err {
		return err
	}
	if !trade.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStartup
	}

	trade.Log.Infof("Trade.Buy: %+v", arguments)

	err := trade.Market.Buy(arguments.AssetId, arguments.Payment, arguments.Caller)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	return nil
}

// WithdrawArguments - arguments for withdraw RPC request
type WithdrawArguments struct {
	Caller account.Account `json:"caller"`
}

// WithdrawReply - result of withdraw RPC request
type WithdrawReply struct {
	Amount uint64 `json:"amount"`
}

// Withdraw - collect the caller's accumulated proceeds
func (trade *Trade) Withdraw(arguments *WithdrawArguments, reply *WithdrawReply) error {
	if err := ratelimit.Limit(trade.Limiter); nil != err {
		return err
	}
	if !trade.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStartup
	}

	trade.Log.Infof("Trade.Withdraw: %+v", arguments)

	amount, err := trade.Market.Withdraw(arguments.Caller)
	if nil != err {
		return err
	}

	reply.Amount = amount
	return nil
}

// BalanceArguments - arguments for the pending balance query
type BalanceArguments struct {
	Account account.Account `json:"account"`
}

// BalanceReply - result of the pending balance query
type BalanceReply struct {
	Amount uint64 `json:"amount"`
}

// Balance - accumulated proceeds owed to an account
func (trade *Trade) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(trade.Limiter); nil != err {
		return err
	}

	reply.Amount = trade.Market.PendingBalance(arguments.Account)
	return nil
}

// StatusArguments - arguments for the listing query
type StatusArguments struct {
	AssetId uint64 `json:"assetId"`
}

// StatusReply - the queryable state of one listing
type StatusReply struct {
	AssetId uint64          `json:"assetId"`
	Listed  bool            `json:"listed"`
	Seller  account.Account `json:"seller,omitempty"`
	Price   uint64          `json:"price,omitempty"`
}

// Status - current listing for an asset id
func (trade *Trade) Status(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(trade.Limiter); nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId

	listing, ok := trade.Market.Listing(arguments.AssetId)
	if !ok {
		reply.Listed = false
		return nil
	}

	reply.Listed = true
	reply.Seller = listing.Seller
	reply.Price = listing.Price
	return nil
}
