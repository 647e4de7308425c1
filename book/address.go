// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"github.com/bitmark-inc/ledgerbook/fault"
)

// EntryLocation - map an entry id to its page id and slot index
func EntryLocation(id uint32, entriesPerPage uint32) (uint32, uint32) {
	return id / entriesPerPage, id % entriesPerPage
}

// byte offset of a slot inside a located page
func (b *Book) slotOffset(p page, slot uint32) int64 {
	return p.offset + pageHeaderSize + int64(slot)*int64(b.header.entrySize)
}

// bytes occupied by one page including its header and footer
func (b *Book) pageSpan() int64 {
	return pageHeaderSize + b.bodySize() + pageFooterSize
}

func (b *Book) bodySize() int64 {
	return int64(b.header.entriesPerPage) * int64(b.header.entrySize)
}

// GetPageIndices - first and last entry id that a page can hold
func (b *Book) GetPageIndices(pageID uint32) (uint32, uint32, error) {
	if nil == b.file {
		return 0, 0, fault.ErrNotOpen
	}
	if pageID >= b.header.pageCount {
		return 0, 0, fault.ErrPageNotFound
	}
	n := b.header.entriesPerPage
	return pageID * n, pageID*n + n - 1, nil
}

// GetEntryOffset - file position of an existing entry
func (b *Book) GetEntryOffset(id uint32) (int64, error) {
	if nil == b.file {
		return 0, fault.ErrNotOpen
	}

	pageID, slot := EntryLocation(id, b.header.entriesPerPage)
	p, err := b.findPage(pageID)
	if fault.ErrPageNotFound == err {
		return 0, fault.ErrEntryNotFound
	} else if nil != err {
		return 0, err
	}
	if slot >= p.entryCount {
		return 0, fault.ErrEntryNotFound
	}
	return b.slotOffset(p, slot), nil
}
