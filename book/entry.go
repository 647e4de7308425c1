// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"github.com/bitmark-inc/ledgerbook/fault"
)

// allocate the next entry slot
//
// the page header is written before the book entry count
func (b *Book) makeNewEntry() (uint32, int64, error) {
	p, err := b.getLastPage()
	if fault.ErrPageNotFound == err {
		p, err = b.addPage()
	} else if nil == err && p.entryCount >= b.header.entriesPerPage {
		p, err = b.addPage()
	}
	if nil != err {
		return 0, 0, err
	}

	slot := p.entryCount
	p.entryCount += 1
	if err := b.writePageHeader(p); nil != err {
		return 0, 0, err
	}

	b.header.entryCount += 1
	if err := b.writeHeader(); nil != err {
		b.header.entryCount -= 1
		return 0, 0, err
	}

	id := p.id*b.header.entriesPerPage + slot
	return id, b.slotOffset(p, slot), nil
}

// AddEntry - append an entry, returning its id
func (b *Book) AddEntry(data []byte) (uint32, error) {
	if nil == b.file {
		return 0, fault.ErrNotOpen
	}
	if uint64(len(data)) > uint64(b.header.entrySize) {
		return 0, fault.ErrEntryTooLarge
	}

	id, offset, err := b.makeNewEntry()
	if nil != err {
		b.log.Errorf("add entry: new slot error: %s", err)
		return 0, err
	}
	if err := b.writeAt(data, offset); nil != err {
		b.log.Errorf("add entry: %d  write error: %s", id, err)
		return 0, err
	}
	return id, nil
}

// ReadEntry - fill buffer from the start of an existing entry
func (b *Book) ReadEntry(id uint32, buffer []byte) error {
	if nil == b.file {
		return fault.ErrNotOpen
	}
	if uint64(len(buffer)) > uint64(b.header.entrySize) {
		return fault.ErrEntryTooLarge
	}
	offset, err := b.GetEntryOffset(id)
	if nil != err {
		return err
	}
	return b.readAt(buffer, offset)
}

// WriteEntry - overwrite the start of an existing entry
//
// to clear the rest of the slot pass a buffer of EntrySize bytes
func (b *Book) WriteEntry(id uint32, data []byte) error {
	if nil == b.file {
		return fault.ErrNotOpen
	}
	if uint64(len(data)) > uint64(b.header.entrySize) {
		return fault.ErrEntryTooLarge
	}
	offset, err := b.GetEntryOffset(id)
	if nil != err {
		return err
	}
	return b.writeAt(data, offset)
}
