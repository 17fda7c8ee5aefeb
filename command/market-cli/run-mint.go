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

func runMint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	metadataRef := c.String("metadata")
	if "" == metadataRef {
		return fmt.Errorf("metadata is required")
	}

	caller, err := checkAccount(c, "caller")
	if err != nil {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "metadata: %s\n", metadataRef)
		fmt.Fprintf(m.e, "caller: %s\n", caller)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Mint(&rpccalls.MintData{
		Metadata: metadataRef,
		Caller:   caller,
	})
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}
