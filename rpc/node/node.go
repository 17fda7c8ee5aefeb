// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/counter"
	"github.com/bitmark-inc/marketd/mode"
	"github.com/bitmark-inc/marketd/registry"
	"github.com/bitmark-inc/marketd/rpc/ratelimit"
)

// Node - type for the RPC
type Node struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Start    time.Time
	Version  string
	Count    *counter.Counter
	Registry registry.Registry
}

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// New - create the node service
func New(log *logger.L, start time.Time, version string, count *counter.Counter, reg registry.Registry) *Node {
	return &Node{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:    start,
		Version:  version,
		Count:    count,
		Registry: reg,
	}
}

// InfoArguments - empty arguments for the info request
type InfoArguments struct{}

// InfoReply - results from the info request
type InfoReply struct {
	Version     string `json:"version"`
	Mode        string `json:"mode"`
	Uptime      string `json:"uptime"`
	Assets      uint64 `json:"assets"`
	Connections uint64 `json:"connections"`
}

// Info - node status
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Version = node.Version
	reply.Mode = mode.String()
	reply.Uptime = time.Since(node.Start).String()
	reply.Assets = node.Registry.Total()
	reply.Connections = node.Count.Uint64()
	return nil
}
