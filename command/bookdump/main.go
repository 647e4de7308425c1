// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerbook/book"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour   = "\033[1;36m"
	valColour   = "\033[1;33m"
	pageColour  = "\033[1;35m"
	entryColour = "\033[1;32m"
	endColour   = "\033[0m"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "pages", HasArg: getoptions.NO_ARGUMENT, Short: 'p'},
		{Long: "follow", HasArg: getoptions.NO_ARGUMENT, Short: 'f'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "hex", HasArg: getoptions.NO_ARGUMENT, Short: 'x'},
		{Long: "start", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 1 != len(arguments) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--pages] [--hex] [--colour] [--start=N] [--count=N] [--follow] FILE", program)
	}

	start, err := numberOption(options, "start", 0)
	if nil != err {
		exitwithstatus.Message("%s: convert start error: %s", program, err)
	}
	count, err := numberOption(options, "count", 0)
	if nil != err {
		exitwithstatus.Message("%s: convert count error: %s", program, err)
	}

	d := &dumper{
		colour:  len(options["colour"]) > 0,
		hex:     len(options["hex"]) > 0,
		verbose: len(options["verbose"]) > 0,
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "bookdump.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if d.verbose {
		logging.Levels[logger.DefaultTag] = "info"
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	fileName := arguments[0]
	b, err := book.OpenFile(fileName)
	if nil != err {
		exitwithstatus.Message("%s: open: %q  error: %s", program, fileName, err)
	}
	defer b.Close()

	d.printHeader(b)

	if len(options["pages"]) > 0 {
		if err := d.printPages(b); nil != err {
			exitwithstatus.Message("%s: page error: %s", program, err)
		}
	}

	start, end := entryRange(start, count, b.EntryCount())
	d.printEntries(b, start, end)

	if 0 == len(options["follow"]) {
		return
	}

	log := logger.New("follow")
	f, err := newFollower(b.Path(), log)
	if nil != err {
		exitwithstatus.Message("%s: follow error: %s", program, err)
	}
	if err := f.Start(); nil != err {
		exitwithstatus.Message("%s: follow error: %s", program, err)
	}
	defer f.Stop()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	next := b.EntryCount()
	for {
		select {
		case <-f.change:
			f.throttle()
			changed, err := b.Refresh()
			if nil != err {
				exitwithstatus.Message("%s: refresh error: %s", program, err)
			}
			if changed {
				d.printEntries(b, next, b.EntryCount())
				next = b.EntryCount()
			}
		case <-f.remove:
			exitwithstatus.Message("%s: file: %q removed", program, fileName)
		case sig := <-ch:
			log.Infof("received signal: %v", sig)
			return
		}
	}
}

// ids to print: count entries from start, zero count is all, clipped
// to the book
func entryRange(start uint32, count uint32, total uint32) (uint32, uint32) {
	if start > total {
		return total, total
	}
	end := total
	if 0 != count && count < end-start {
		end = start + count
	}
	return start, end
}

// optional unsigned number argument
func numberOption(options map[string][]string, name string, defaultValue uint32) (uint32, error) {
	if 0 == len(options[name]) {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(options[name][0], 10, 32)
	if nil != err {
		return 0, err
	}
	return uint32(n), nil
}

// print helper
func (d *dumper) printf(colour string, format string, args ...interface{}) {
	if d.colour {
		fmt.Print(colour)
	}
	fmt.Printf(format, args...)
	if d.colour {
		fmt.Print(endColour)
	}
}
