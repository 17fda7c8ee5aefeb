// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
	"github.com/bitmark-inc/marketd/fault"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/registry"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
)

// Assets - type for the RPC
type Assets struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	Registry     registry.Registry
}

const (
	rateLimitAssets = 200
	rateBurstAssets = 100
)

// New - create the assets service
func New(log *logger.L, isNormalMode func(mode.Mode) bool, reg registry.Registry) *Assets {
	return &Assets{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitAssets, rateBurstAssets),
		IsNormalMode: isNormalMode,
		Registry:     reg,
	}
}

// MintArguments - arguments for mint RPC request
type MintArguments struct {
	Metadata string          `json:"metadata"`
	Caller   account.Account `json:"caller"` // base58
}

// MintReply - result of mint RPC request
type MintReply struct {
	AssetId uint64 `json:"assetId"`
}

// Mint - create a new asset owned by the caller
func (assets *Assets) Mint(arguments *MintArguments, reply *MintReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if !assets.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStartup
	}

	assets.Log.Infof("Assets.Mint: %+v", arguments)

	assetId, err := assets.Registry.Mint(arguments.Metadata, arguments.Caller)
	if nil != err {
		return err
	}

	reply.AssetId = assetId
	return nil
}

// TransferArguments - arguments for transfer RPC request
type TransferArguments struct {
	From    account.Account `json:"from"`
	To      account.Account `json:"to"`
	AssetId uint64          `json:"assetId"`
	Caller  account.Account `json:"caller"`
}

// TransferReply - result of transfer RPC request
type TransferReply struct {
	AssetId uint64 `json:"assetId"`
}

// Transfer - reassign ownership of an asset
func (assets *Assets) Transfer(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if !assets.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStartup
	}

	assets.Log.Infof("Assets.Transfer: %+v", arguments)

	err := assets.Registry.Transfer(arguments.From, arguments.To, arguments.AssetId, arguments.Caller)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	return nil
}

// ApproveArguments - arguments for approve RPC request
type ApproveArguments struct {
	Operator account.Account `json:"operator"`
	AssetId  uint64          `json:"assetId"`
	Caller   account.Account `json:"caller"`
}

// ApproveReply - result of approve RPC request
type ApproveReply struct {
	AssetId uint64 `json:"assetId"`
}

// Approve - allow an operator to transfer one asset
func (assets *Assets) Approve(arguments *ApproveArguments, reply *ApproveReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if !assets.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStartup
	}

	assets.Log.Infof("Assets.Approve: %+v", arguments)

	err := assets.Registry.Approve(arguments.Operator, arguments.AssetId, arguments.Caller)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	return nil
}

// GetArguments - arguments for the asset query
type GetArguments struct {
	AssetId uint64 `json:"assetId"`
}

// GetReply - the queryable state of one asset
type GetReply struct {
	AssetId  uint64          `json:"assetId"`
	Owner    account.Account `json:"owner"`
	Creator  account.Account `json:"creator"`
	Metadata string          `json:"metadata"`
}

// Get - fetch ownership, creator and metadata for one asset
func (assets *Assets) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}

	owner, err := assets.Registry.OwnerOf(arguments.AssetId)
	if nil != err {
		return err
	}
	metadata, err := assets.Registry.MetadataOf(arguments.AssetId)
	if nil != err {
		return err
	}

	reply.AssetId = arguments.AssetId
	reply.Owner = owner
	reply.Creator = assets.Registry.CreatorOf(arguments.AssetId)
	reply.Metadata = metadata
	return nil
}
