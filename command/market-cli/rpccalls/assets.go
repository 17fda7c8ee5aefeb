// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/rpc/assets"
)

// MintData - the parameters for a mint request
type MintData struct {
	Metadata string
	Caller   account.Account
}

// Mint - create a new asset
func (client *Client) Mint(mintConfig *MintData) (*assets.MintReply, error) {

	args := assets.MintArguments{
		Metadata: mintConfig.Metadata,
		Caller:   mintConfig.Caller,
	}

	client.printJson("Mint Request", args)

	reply := &assets.MintReply{}
	err := client.client.Call("Assets.Mint", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Mint Reply", reply)

	return reply, nil
}

// TransferData - the parameters for a transfer request
type TransferData struct {
	From    account.Account
	To      account.Account
	AssetId uint64
	Caller  account.Account
}

// Transfer - reassign ownership of an asset
func (client *Client) Transfer(transferConfig *TransferData) (*assets.TransferReply, error) {

	args := assets.TransferArguments{
		From:    transferConfig.From,
		To:      transferConfig.To,
		AssetId: transferConfig.AssetId,
		Caller:  transferConfig.Caller,
	}

	client.printJson("Transfer Request", args)

	reply := &assets.TransferReply{}
	err := client.client.Call("Assets.Transfer", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Transfer Reply", reply)

	return reply, nil
}

// ApproveData - the parameters for an approve request
type ApproveData struct {
	Operator account.Account
	AssetId  uint64
	Caller   account.Account
}

// Approve - allow an operator to transfer one asset
func (client *Client) Approve(approveConfig *ApproveData) (*assets.ApproveReply, error) {

	args := assets.ApproveArguments{
		Operator: approveConfig.Operator,
		AssetId:  approveConfig.AssetId,
		Caller:   approveConfig.Caller,
	}

	client.printJson("Approve Request", args)

	reply := &assets.ApproveReply{}
	err := client.client.Call("Assets.Approve", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Approve Reply", reply)

	return reply, nil
}

// GetAsset - retrieve ownership, creator and metadata of an asset
func (client *Client) GetAsset(assetId uint64) (*assets.GetReply, error) {

	args := assets.GetArguments{
		AssetId: assetId,
	}

	client.printJson("Asset Request", args)

	reply := &assets.GetReply{}
	err := client.client.Call("Assets.Get", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Asset Reply", reply)

	return reply, nil
}
