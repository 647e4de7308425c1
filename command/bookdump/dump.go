// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/entry"
	"github.com/bitmark-inc/ledgerbook/record"
)

type dumper struct {
	colour  bool
	hex     bool
	verbose bool
}

func (d *dumper) field(name string, format string, args ...interface{}) {
	d.printf(keyColour, "%16s: ", name)
	d.printf(valColour, format, args...)
	fmt.Println()
}

func (d *dumper) printHeader(b *book.Book) {
	d.field("file", "%s", b.Path())
	d.field("title", "%s", b.Title())
	d.field("volume", "%s", b.Volume())
	d.field("mode", "%s", b.Mode())
	d.field("serial", "%s", b.SerialNumber())
	d.field("entry type", "0x%08x %s", b.EntryTypeID(), typeName(b.EntryTypeID()))
	d.field("entry size", "%d", b.EntrySize())
	d.field("entries/page", "%d", b.EntriesPerPage())
	d.field("pages", "%d", b.PageCount())
	d.field("entries", "%d", b.EntryCount())

	userData := b.UserData()
	d.field("user data", "%x", userData)
	if record.CoinTotalType == b.EntryTypeID() || record.TransactionType == b.EntryTypeID() {
		if total, err := record.CoinTotalFromUserData(userData); nil == err && total.Coin.IsValid() {
			text, _ := total.MarshalText()
			d.field("totals", "%s", text)
		}
	}
}

func (d *dumper) printPages(b *book.Book) error {
	for id := uint32(0); id < b.PageCount(); id += 1 {
		p, err := b.Page(id)
		if nil != err {
			return err
		}
		first, last, err := b.GetPageIndices(id)
		if nil != err {
			return err
		}
		d.printf(pageColour, "page: %6d  offset: %10d  footer: %10d  entries: %4d  ids: %d..%d", p.ID, p.Offset, p.FooterOffset, p.EntryCount, first, last)
		fmt.Println()
	}
	return nil
}

func (d *dumper) printEntries(b *book.Book, start uint32, end uint32) {
	buffer := make([]byte, b.EntrySize())
	for id := start; id < end; id += 1 {
		if err := b.ReadEntry(id, buffer); nil != err {
			d.printf(entryColour, "%8d: ", id)
			fmt.Printf("error: %s\n", err)
			continue
		}
		d.printf(entryColour, "%8d: ", id)
		if d.hex {
			fmt.Println()
			fmt.Print(hex.Dump(buffer))
			continue
		}
		fmt.Println(describe(b, buffer))
	}
}

func typeName(entryTypeID uint32) string {
	switch entryTypeID {
	case record.TransactionType:
		return "transaction"
	case record.QuoteType:
		return "quote"
	case record.CoinTotalType:
		return "total"
	default:
		return "unknown"
	}
}

// entry contents as text when the type is known
func describe(b *book.Book, buffer []byte) string {
	if book.TextMode == b.Mode() {
		if n := bytes.IndexByte(buffer, 0); n >= 0 {
			return string(buffer[:n])
		}
		return fmt.Sprintf("unterminated: %q", buffer)
	}

	var text []byte
	var err error
	switch b.EntryTypeID() {
	case record.TransactionType:
		text, err = decodeText[*record.Transaction](entry.NewBinaryCodec(record.NewTransaction), buffer)
	case record.QuoteType:
		text, err = decodeText[*record.Quote](entry.NewBinaryCodec(record.NewQuote), buffer)
	case record.CoinTotalType:
		text, err = decodeText[*record.CoinTotal](entry.NewBinaryCodec(record.NewCoinTotal), buffer)
	default:
		return strings.TrimRight(hex.EncodeToString(buffer), "0")
	}
	if nil != err {
		return fmt.Sprintf("error: %s  data: %x", err, buffer)
	}
	return string(text)
}

type textMarshaler interface {
	MarshalText() ([]byte, error)
}

func decodeText[R textMarshaler](codec entry.Codec[R], buffer []byte) ([]byte, error) {
	r, err := codec.Decode(buffer)
	if nil != err {
		return nil, err
	}
	return r.MarshalText()
}
