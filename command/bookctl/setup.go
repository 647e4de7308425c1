// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerbook/configuration"
	"github.com/bitmark-inc/ledgerbook/registry"
)

type metadata struct {
	file     string
	config   *configuration.Configuration
	registry *registry.Registry
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// read the configuration, start logging and open the catalog
func before(c *cli.Context) error {

	e := c.App.ErrWriter
	w := c.App.Writer
	verbose := c.GlobalBool("verbose")

	// to suppress reading config file if certain commands
	command := c.Args().Get(0)
	if "version" == command || "help" == command || "" == command {
		return nil
	}

	file := c.GlobalString("config")
	if verbose {
		fmt.Fprintf(e, "reading config file: %s\n", file)
	}

	config, err := configuration.Get(file)
	if nil != err {
		return err
	}

	if err := logger.Initialise(config.Logging); nil != err {
		return err
	}

	r, err := registry.New(config.DataDirectory, config.Catalog, false)
	if nil != err {
		logger.Finalise()
		return err
	}

	c.App.Metadata["config"] = &metadata{
		file:     file,
		config:   config,
		registry: r,
		verbose:  verbose,
		e:        e,
		w:        w,
	}
	return nil
}

// close every book and stop logging
func after(c *cli.Context) error {
	m, ok := c.App.Metadata["config"].(*metadata)
	if !ok {
		return nil
	}
	err := m.registry.Finalise()
	logger.Finalise()
	return err
}

// verbose output to the error stream
func (m *metadata) log(format string, arguments ...interface{}) {
	fmt.Fprintf(m.e, format+"\n", arguments...)
}
