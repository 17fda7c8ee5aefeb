// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/marketd/command/market-cli/rpccalls"
)

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := checkAssetId(c, "asset")
	if err != nil {
		return err
	}

	to, err := checkAccount(c, "receiver")
	if err != nil {
		return err
	}

	caller, err := checkAccount(c, "caller")
	if err != nil {
		return err
	}

	// owner defaults to the caller for the common self-transfer
	from := caller
	if "" != c.String("owner") {
		from, err = checkAccount(c, "owner")
		if err != nil {
			return err
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "asset: %d\n", assetId)
		fmt.Fprintf(m.e, "receiver: %s\n", to)
		fmt.Fprintf(m.e, "sender: %s\n", from)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Transfer(&rpccalls.TransferData{
		From:    from,
		To:      to,
		AssetId: assetId,
		Caller:  caller,
	})
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}
