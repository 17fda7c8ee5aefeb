// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "market-cli"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:3130",
			Usage: " marketd host/IP and port, `HOST:PORT`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "mint",
			Usage:     "create a new asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: "*metadata reference `STRING`",
				},
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*creator account `ACCOUNT`",
				},
			},
			Action: runMint,
		},
		{
			Name:      "transfer",
			Usage:     "transfer an asset to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Value: 0,
					Usage: "*asset id to transfer `NUMBER`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*account to receive the asset `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " current owner `ACCOUNT` [caller]",
				},
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*calling account `ACCOUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "approve",
			Usage:     "allow an operator to transfer one asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Value: 0,
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "operator, o",
					Value: "",
					Usage: "*operator account `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*owner account `ACCOUNT`",
				},
			},
			Action: runApprove,
		},
		{
			Name:      "list",
			Usage:     "place an asset for sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Value: 0,
					Usage: "*asset id to list `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Value: 0,
					Usage: "*asking price `NUMBER`",
				},
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*seller account `ACCOUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:      "delist",
			Usage:     "take an asset off sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Value: 0,
					Usage: "*asset id to delist `NUMBER`",
				},
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*seller account `ACCOUNT`",
				},
			},
			Action: runDelist,
		},
		{
			Name:      "buy",
			Usage:     "purchase a listed asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Value: 0,
					Usage: "*asset id to buy `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "payment, p",
					Value: 0,
					Usage: "*payment amount `NUMBER`",
				},
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*buyer account `ACCOUNT`",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "withdraw",
			Usage:     "collect accumulated sale proceeds",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "caller, i",
					Value: "",
					Usage: "*collecting account `ACCOUNT`",
				},
			},
			Action: runWithdraw,
		},
		{
			Name:      "balance",
			Usage:     "display the pending balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*account to query `ACCOUNT`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "asset",
			Usage:     "display ownership, creator and metadata of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Value: 0,
					Usage: "*asset id to query `NUMBER`",
				},
			},
			Action: runAsset,
		},
		{
			Name:      "status",
			Usage:     "display the listing state of an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "asset, a",
					Value: 0,
					Usage: "*asset id to query `NUMBER`",
				},
			},
			Action: runStatus,
		},
		{
			Name:   "info",
			Usage:  "display marketd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display market-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
