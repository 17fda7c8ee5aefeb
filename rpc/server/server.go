// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/counter"
	"github.com/bitmark-inc/marketd/market"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/registry"
	"github.com/bitmark-inc/marketd/rpc/assets"
	"github.com/bitmark-inc/marketd/rpc/node"
	"github.com/bitmark-inc/marketd/rpc/trade"
)

// Create - create the RPC server with all services registered
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(assets.New(log, mode.Is, registry.Get()))
	_ = server.Register(trade.New(log, mode.Is, market.Get()))
	_ = server.Register(node.New(log, start, version, rpcCount, registry.Get()))

	return server
}
