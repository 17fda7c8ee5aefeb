// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/marketd/account"
)

// checkAccount - parse a required base58 account argument
func checkAccount(c *cli.Context, name string) (account.Account, error) {
	s := c.String(name)
	if "" == s {
		return account.Zero, fmt.Errorf("%s is required", name)
	}

	a, err := account.FromBase58(s)
	if nil != err {
		return account.Zero, fmt.Errorf("%s: %q error: %s", name, s, err)
	}
	return a, nil
}

// checkAssetId - a zero asset id is never valid
func checkAssetId(c *cli.Context, name string) (uint64, error) {
	n := c.Uint64(name)
	if 0 == n {
		return 0, fmt.Errorf("%s is required", name)
	}
	return n, nil
}
