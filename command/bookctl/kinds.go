// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/currency"
	"github.com/bitmark-inc/ledgerbook/entry"
	"github.com/bitmark-inc/ledgerbook/record"
	"github.com/bitmark-inc/ledgerbook/registry"
)

// kind - a record type that can be stored in a book
type kind struct {
	name      string
	typeID    uint32
	entrySize uint32
}

var kinds = map[string]kind{
	"transaction": {name: "transaction", typeID: record.TransactionType, entrySize: record.TransactionEntrySize},
	"quote":       {name: "quote", typeID: record.QuoteType, entrySize: record.QuoteEntrySize},
	"total":       {name: "total", typeID: record.CoinTotalType, entrySize: record.CoinTotalEntrySize},
}

func kindName(typeID uint32) string {
	for _, k := range kinds {
		if k.typeID == typeID {
			return k.name
		}
	}
	return "unknown"
}

// ledgerRecord - every record type has both entry forms
type ledgerRecord interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// format of a book already in the catalog
func catalogFormat(e registry.CatalogEntry) book.Format {
	return book.Format{
		EntryTypeID:    e.EntryTypeID,
		EntrySize:      e.EntrySize,
		EntriesPerPage: e.EntriesPerPage,
		Mode:           e.Mode,
	}
}

func codecFor[R ledgerRecord](mode book.Mode, newRecord func() R) entry.Codec[R] {
	if book.BinaryMode == mode {
		return entry.NewBinaryCodec(newRecord)
	}
	return entry.NewTextCodec(newRecord)
}

// attach a typed cache to a catalogued book held by the registry
//
// the registry owns the book so the cache is never closed here; the
// header is reloaded as an adapter may have appended since it opened
func openCache[R ledgerRecord](m *metadata, e registry.CatalogEntry, newRecord func() R) (*entry.Cache[R], error) {
	b, err := m.registry.Open(e.Title, catalogFormat(e), false)
	if nil != err {
		return nil, err
	}
	if _, err := b.Refresh(); nil != err {
		return nil, err
	}
	return entry.New(b, codecFor(b.Mode(), newRecord), m.config.Expiry())
}

// the coin a record refers to
func coinOf(r interface{}) currency.Currency {
	switch v := r.(type) {
	case *record.Transaction:
		return v.Coin
	case *record.Quote:
		return v.Coin
	case *record.CoinTotal:
		return v.Coin
	default:
		return currency.Nothing
	}
}
