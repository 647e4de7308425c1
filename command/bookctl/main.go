// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "bookctl"
	app.Usage = "manage ledger books"
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
			Name:   "config, c",
			Value:  "ledgerbook.conf",
			Usage:  " Lua configuration `FILE`",
			EnvVar: "LEDGERBOOK_CONFIG",
		},
	}

	titleFlag := cli.StringFlag{
		Name:  "title, t",
		Value: "",
		Usage: "*book `TITLE`",
	}
	typeFlag := cli.StringFlag{
		Name:  "type, k",
		Value: "",
		Usage: "*record `KIND` [transaction|quote|total]",
	}

	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "create a new book",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
				typeFlag,
				cli.StringFlag{
					Name:  "mode, m",
					Value: "",
					Usage: " entry `MODE` [text|binary] (default from configuration)",
				},
				cli.IntFlag{
					Name:  "entries-per-page, p",
					Value: 0,
					Usage: " page capacity `COUNT` (default from configuration)",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "info",
			Usage:     "show a book's header",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
			},
			Action: runInfo,
		},
		{
			Name:      "add",
			Usage:     "append a record given in its text form",
			ArgsUsage: "RECORD\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
			},
			Action: runAdd,
		},
		{
			Name:      "confirm",
			Usage:     "mark a transaction as confirmed and recompute totals",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
				cli.IntFlag{
					Name:  "id, i",
					Value: -1,
					Usage: "*entry `ID`",
				},
			},
			Action: runConfirm,
		},
		{
			Name:      "recompute",
			Usage:     "rebuild the totals of a transaction book",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
			},
			Action: runRecompute,
		},
		{
			Name:      "list",
			Usage:     "list records, newest first",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
				cli.StringFlag{
					Name:  "coin",
					Value: "",
					Usage: " only records for `COIN`",
				},
				cli.BoolFlag{
					Name:  "forward, f",
					Usage: " oldest first",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " at most `COUNT` records",
				},
			},
			Action: runList,
		},
		{
			Name:      "get",
			Usage:     "show one record as JSON",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
				cli.IntFlag{
					Name:  "id, i",
					Value: -1,
					Usage: "*entry `ID`",
				},
			},
			Action: runGet,
		},
		{
			Name:      "value",
			Usage:     "value a coin amount at the newest quote",
			ArgsUsage: "AMOUNT\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
				cli.StringFlag{
					Name:  "coin",
					Value: "",
					Usage: "*`COIN` to value",
				},
				cli.StringFlag{
					Name:  "market",
					Value: "",
					Usage: "*`MARKET` of the quote e.g. USD",
				},
			},
			Action: runValue,
		},
		{
			Name:      "userdata",
			Usage:     "show or replace a book's user data",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
				cli.StringFlag{
					Name:  "set, s",
					Value: "",
					Usage: " new user data `HEX`",
				},
			},
			Action: runUserData,
		},
		{
			Name:      "archive",
			Usage:     "copy a book to an archive volume",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				titleFlag,
				cli.StringFlag{
					Name:  "volume, l",
					Value: "",
					Usage: "*volume `LABEL`",
				},
			},
			Action: runArchive,
		},
		{
			Name:   "catalog",
			Usage:  "list every known book",
			Action: runCatalog,
		},
		{
			Name:  "version",
			Usage: "display bookctl version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = before
	app.After = after

	return app
}
