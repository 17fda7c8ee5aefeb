// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/marketd/rpc/node"
)

// GetInfo - retrieve the daemon status
func (client *Client) GetInfo() (*node.InfoReply, error) {

	args := node.InfoArguments{}

	reply := &node.InfoReply{}
	err := client.client.Call("Node.Info", args, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Info Reply", reply)

	return reply, nil
}
