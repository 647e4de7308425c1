// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/fault"
	"github.com/bitmark-inc/ledgerbook/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file
	defaultCatalog       = "catalog.leveldb"
	defaultMode          = "text"

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgerbook.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// a fresh map each time so configuration files cannot alter the defaults
func defaultLogLevels() LoglevelMap {
	return LoglevelMap{
		logger.DefaultTag: "critical",
	}
}

// Configuration - settings shared by the commands
type Configuration struct {
	DataDirectory  string               `gluamapper:"data_directory" json:"data_directory"`
	Catalog        string               `gluamapper:"catalog" json:"catalog"`
	EntriesPerPage uint32               `gluamapper:"entries_per_page" json:"entries_per_page"`
	CacheExpiry    string               `gluamapper:"cache_expiry" json:"cache_expiry"`
	Mode           string               `gluamapper:"mode" json:"mode"`
	Logging        logger.Configuration `gluamapper:"logging" json:"logging"`

	expiry time.Duration
	mode   book.Mode
}

// Get - read, decode and verify a configuration file
func Get(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory:  defaultDataDirectory,
		Catalog:        defaultCatalog,
		EntriesPerPage: book.DefaultEntriesPerPage,
		Mode:           defaultMode,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels(),
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fault.ErrInvalidDataDirectory
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fault.ErrInvalidDataDirectory
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	options.Catalog = util.EnsureAbsolute(options.DataDirectory, options.Catalog)
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)

	if 0 == options.EntriesPerPage {
		return nil, fault.ErrInvalidEntriesCount
	}

	if "" != options.CacheExpiry {
		options.expiry, err = time.ParseDuration(options.CacheExpiry)
		if nil != err || options.expiry < 0 {
			return nil, fault.ErrInvalidExpiry
		}
	}

	options.mode, err = book.ModeFromString(options.Mode)
	if nil != err {
		return nil, err
	}

	return options, nil
}

// Expiry - how long clean records stay cached, zero for always
func (c *Configuration) Expiry() time.Duration {
	return c.expiry
}

// BookMode - mode for newly created books
func (c *Configuration) BookMode() book.Mode {
	return c.mode
}
