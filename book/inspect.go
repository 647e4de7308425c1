// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"io"
	"os"

	"github.com/bitmark-inc/ledgerbook/fault"
)

// ReadFormat - the title and entry format recorded in a book file
func ReadFormat(fileName string) (string, Format, error) {
	f, err := os.Open(fileName)
	if nil != err {
		return "", Format{}, err
	}
	defer f.Close()

	buffer := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, buffer); nil != err {
		if io.EOF == err || io.ErrUnexpectedEOF == err {
			return "", Format{}, fault.ErrInvalidHeader
		}
		return "", Format{}, err
	}

	h := header{}
	if err := h.unpack(buffer); nil != err {
		return "", Format{}, err
	}
	format := Format{
		EntryTypeID:    h.entryTypeID,
		EntrySize:      h.entrySize,
		EntriesPerPage: h.entriesPerPage,
		Mode:           h.mode,
	}
	return h.title, format, nil
}

// OpenFile - open any book or archive volume by file name
func OpenFile(fileName string) (*Book, error) {
	title, format, err := ReadFormat(fileName)
	if nil != err {
		return nil, err
	}
	b := New(format)
	if err := b.open(fileName, title); nil != err {
		return nil, err
	}
	return b, nil
}

// Refresh - reload the header after another process has appended
//
// returns true if the counters changed
func (b *Book) Refresh() (bool, error) {
	if nil == b.file {
		return false, fault.ErrNotOpen
	}

	buffer := make([]byte, HeaderSize)
	if err := b.readAt(buffer, 0); nil != err {
		return false, err
	}
	h := header{}
	if err := h.unpack(buffer); nil != err {
		return false, err
	}
	if h.serialNumber != b.header.serialNumber || h.entrySize != b.header.entrySize || h.entriesPerPage != b.header.entriesPerPage {
		return false, fault.ErrHeaderMismatch
	}

	changed := h.entryCount != b.header.entryCount || h.pageCount != b.header.pageCount
	b.header = h
	if changed {
		b.log.Debugf("refresh: %q  pages: %d  entries: %d", b.path, h.pageCount, h.entryCount)
	}
	return changed, nil
}
