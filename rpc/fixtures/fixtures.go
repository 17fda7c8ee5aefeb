// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/marketd/account"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

var (
	Seller account.Account
	Buyer  account.Account
	Other  account.Account
)

func init() {
	Seller = makeAccount("seller")
	Buyer = makeAccount("buyer")
	Other = makeAccount("other")
}

// deterministic test account
func makeAccount(name string) account.Account {
	digest := sha3.Sum256([]byte(name))
	a, _ := account.FromBytes(digest[:])
	return a
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
