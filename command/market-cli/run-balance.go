// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/marketd/command/market-cli/rpccalls"
)

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := checkAccount(c, "owner")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.GetBalance(owner)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}
