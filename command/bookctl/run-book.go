// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/fault"
	"github.com/bitmark-inc/ledgerbook/record"
	"github.com/bitmark-inc/ledgerbook/registry"
)

type bookInfo struct {
	registry.CatalogEntry
	Kind      string            `json:"kind"`
	Volume    string            `json:"volume"`
	Pages     uint32            `json:"pages"`
	Entries   uint32            `json:"entries"`
	UserData  string            `json:"userData"`
	CoinTotal *record.CoinTotal `json:"coinTotal,omitempty"`
}

func describeBook(e registry.CatalogEntry, b *book.Book) bookInfo {
	userData := b.UserData()
	info := bookInfo{
		CatalogEntry: e,
		Kind:         kindName(e.EntryTypeID),
		Volume:       b.Volume(),
		Pages:        b.PageCount(),
		Entries:      b.EntryCount(),
		UserData:     hex.EncodeToString(userData),
	}
	if record.TransactionType == e.EntryTypeID {
		if t, err := record.CoinTotalFromUserData(userData); nil == err {
			info.CoinTotal = t
		}
	}
	return info
}

// open a catalogued book through the registry
func openBook(m *metadata, title string) (registry.CatalogEntry, *book.Book, error) {
	e, err := m.registry.Lookup(title)
	if nil != err {
		return e, nil, err
	}
	b, err := m.registry.Open(title, catalogFormat(e), false)
	if nil != err {
		return e, nil, err
	}
	if _, err := b.Refresh(); nil != err {
		return e, nil, err
	}
	return e, b, nil
}

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	k, err := checkKind(c.String("type"))
	if nil != err {
		return err
	}
	mode, err := checkMode(c.String("mode"), m.config.BookMode())
	if nil != err {
		return err
	}
	entriesPerPage := m.config.EntriesPerPage
	if n := c.Int("entries-per-page"); n > 0 {
		entriesPerPage = uint32(n)
	}

	if _, err := m.registry.Lookup(title); nil == err {
		return fault.ErrBookExists
	}

	format := book.Format{
		EntryTypeID:    k.typeID,
		EntrySize:      k.entrySize,
		EntriesPerPage: entriesPerPage,
		Mode:           mode,
	}

	if m.verbose {
		m.log("create: %q  kind: %s  mode: %s  entries per page: %d", title, k.name, mode, entriesPerPage)
	}

	b, err := m.registry.Open(title, format, true)
	if nil != err {
		return err
	}
	e, err := m.registry.Lookup(title)
	if nil != err {
		return err
	}
	return printJson(m.w, describeBook(e, b))
}

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	e, b, err := openBook(m, title)
	if nil != err {
		return err
	}
	return printJson(m.w, describeBook(e, b))
}

func runUserData(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	data, err := checkUserData(c.String("set"))
	if nil != err {
		return err
	}
	e, b, err := openBook(m, title)
	if nil != err {
		return err
	}
	if nil != data {
		if err := b.SetUserData(data); nil != err {
			return err
		}
	}
	return printJson(m.w, describeBook(e, b))
}

func runArchive(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	volume, err := checkVolume(c.String("volume"))
	if nil != err {
		return err
	}
	_, b, err := openBook(m, title)
	if nil != err {
		return err
	}
	fileName, err := b.Archive(volume)
	if nil != err {
		return err
	}

	result := struct {
		Title  string `json:"title"`
		Volume string `json:"volume"`
		File   string `json:"file"`
	}{
		Title:  title,
		Volume: volume,
		File:   fileName,
	}
	return printJson(m.w, result)
}

func runCatalog(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	entries, err := m.registry.Catalog()
	if nil != err {
		return err
	}
	return printJson(m.w, entries)
}
