// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/rpc/trade"
)

// ListData - the parameters for a list request
type ListData struct {
	AssetId uint64
	Price   uint64
	Caller  account.Account
}

// List - place an asset for sale
func (client *Client) List(listConfig *ListData) (*trade.ListReply, error) {

	args := trade.ListArguments{
		AssetId: listConfig.AssetId,
		Price:   listConfig.Price,
		Caller:  listConfig.Caller,
	}

	client.printJson("List Request", args)

	reply := &trade.ListReply{}
	err := client.client.Call("Trade.List", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("List Reply", reply)

	return reply, nil
}

// DelistData - the parameters for a delist request
type DelistData struct {
	AssetId uint64
	Caller  account.Account
}

// Delist - take an asset off sale
func (client *Client) Delist(delistConfig *DelistData) (*trade.DelistReply, error) {

	args := trade.DelistArguments{
		AssetId: delistConfig.AssetId,
		Caller:  delistConfig.Caller,
	}

	client.printJson("Delist Request", args)

	reply := &trade.DelistReply{}
	err := client.client.Call("Trade.Delist", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Delist Reply", reply)

	return reply, nil
}

// BuyData - the parameters for a buy request
type BuyData struct {
	AssetId uint64
	Payment uint64
	Caller  account.Account
}

// Buy - purchase a listed asset
func (client *Client) Buy(buyConfig *BuyData) (*trade.BuyReply, error) {

	args := trade.BuyArguments{
		AssetId: buyConfig.AssetId,
		Payment: buyConfig.Payment,
		Caller:  buyConfig.Caller,
	}

	client.printJson("Buy Request", args)

	reply := &trade.BuyReply{}
	err := client.client.Call("Trade.Buy", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Buy Reply", reply)

	return reply, nil
}

// Withdraw - collect accumulated proceeds
func (client *Client) Withdraw(caller account.Account) (*trade.WithdrawReply, error) {

	args := trade.WithdrawArguments{
		Caller: caller,
	}

	client.printJson("Withdraw Request", args)

	reply := &trade.WithdrawReply{}
	err := client.client.Call("Trade.Withdraw", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Withdraw Reply", reply)

	return reply, nil
}

// GetBalance - retrieve the pending balance of an account
func (client *Client) GetBalance(owner account.Account) (*trade.BalanceReply, error) {

	args := trade.BalanceArguments{
		Account: owner,
	}

	client.printJson("Balance Request", args)

	reply := &trade.BalanceReply{}
	err := client.client.Call("Trade.Balance", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Balance Reply", reply)

	return reply, nil
}

// GetStatus - retrieve the listing state of an asset
func (client *Client) GetStatus(assetId uint64) (*trade.StatusReply, error) {

	args := trade.StatusArguments{
		AssetId: assetId,
	}

	client.printJson("Status Request", args)

	reply := &trade.StatusReply{}
	err := client.client.Call("Trade.Status", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Status Reply", reply)

	return reply, nil
}
