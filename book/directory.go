// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"io"

	"github.com/bitmark-inc/ledgerbook/fault"
)

// Page - header contents of a page, located through the page chain
func (b *Book) Page(pageID uint32) (PageInfo, error) {
	if nil == b.file {
		return PageInfo{}, fault.ErrNotOpen
	}
	p, err := b.findPage(pageID)
	if nil != err {
		return PageInfo{}, err
	}
	return p.info(), nil
}

// append an empty page at end of file
//
// writes body, page header, page footer and finally the book header;
// a failure part way leaves the file as it is
func (b *Book) addPage() (page, error) {
	offset, err := b.file.Seek(0, io.SeekEnd)
	if nil != err {
		return page{}, err
	}

	p := page{
		id:           b.header.pageCount,
		offset:       offset,
		footerOffset: offset + pageHeaderSize + b.bodySize(),
		entryCount:   0,
	}

	body := make([]byte, b.bodySize())
	if err := b.writeAt(body, offset+pageHeaderSize); nil != err {
		return page{}, err
	}
	if err := b.writePageHeader(p); nil != err {
		return page{}, err
	}
	if err := b.writeAt(packPageFooter(p.offset), p.footerOffset); nil != err {
		return page{}, err
	}

	b.header.pageCount += 1
	if err := b.writeHeader(); nil != err {
		b.header.pageCount -= 1
		return page{}, err
	}

	b.locations.Insert(pageKey(p.id), p.offset)
	b.log.Debugf("add page: %d  offset: %d", p.id, p.offset)

	return p, nil
}

func (b *Book) writePageHeader(p page) error {
	return b.writeAt(packPageHeader(p.footerOffset, p.entryCount), p.offset)
}

// read and check the page header at a known offset
func (b *Book) readPage(offset int64, id uint32) (page, error) {
	buffer := make([]byte, pageHeaderSize)
	if err := b.readAt(buffer, offset); nil != err {
		return page{}, err
	}
	footerOffset, entryCount := unpackPageHeader(buffer)

	if footerOffset != offset+pageHeaderSize+b.bodySize() || entryCount > b.header.entriesPerPage {
		b.log.Errorf("page: %d  offset: %d  has invalid header: footer: %d  entries: %d", id, offset, footerOffset, entryCount)
		return page{}, fault.ErrInvalidPageHeader
	}

	p := page{
		id:           id,
		offset:       offset,
		footerOffset: footerOffset,
		entryCount:   entryCount,
	}
	b.locations.Insert(pageKey(id), offset)
	return p, nil
}

// page 0 follows the header record
func (b *Book) getFirstPage() (page, error) {
	if 0 == b.header.pageCount {
		return page{}, fault.ErrPageNotFound
	}
	return b.readPage(HeaderSize, 0)
}

// the last page is one step back from end of file
func (b *Book) getLastPage() (page, error) {
	if 0 == b.header.pageCount {
		return page{}, fault.ErrPageNotFound
	}
	end, err := b.file.Seek(0, io.SeekEnd)
	if nil != err {
		return page{}, err
	}
	return b.pageBefore(end, b.header.pageCount-1)
}

// locate a page from the footer that ends just before position
func (b *Book) pageBefore(position int64, id uint32) (page, error) {
	if position-pageFooterSize < HeaderSize {
		return page{}, fault.ErrInvalidPageFooter
	}
	buffer := make([]byte, pageFooterSize)
	if err := b.readAt(buffer, position-pageFooterSize); nil != err {
		return page{}, err
	}
	headerOffset := unpackPageFooter(buffer)
	if headerOffset < HeaderSize || headerOffset >= position {
		b.log.Errorf("footer before: %d  has invalid header offset: %d", position, headerOffset)
		return page{}, fault.ErrInvalidPageFooter
	}
	return b.readPage(headerOffset, id)
}

// step to the following page, only possible from a full page
func (b *Book) flickPageForward(p page) (page, error) {
	if p.entryCount < b.header.entriesPerPage || p.id+1 >= b.header.pageCount {
		return page{}, fault.ErrPageNotFound
	}
	return b.readPage(p.footerOffset+pageFooterSize, p.id+1)
}

// step to the preceding page using the footer in front of this page
func (b *Book) flickPageBackward(p page) (page, error) {
	if 0 == p.id {
		return page{}, fault.ErrPageNotFound
	}
	return b.pageBefore(p.offset, p.id-1)
}

// locate a page by id
//
// start from whichever is closest of: the nearest page in the
// location index, the first page or the last page; then step
// towards the target one page at a time
func (b *Book) findPage(pageID uint32) (page, error) {
	count := b.header.pageCount
	if pageID >= count {
		return page{}, fault.ErrPageNotFound
	}
	last := count - 1

	// distance from the nearer end of the file
	endDistance := pageID
	if last-pageID < endDistance {
		endDistance = last - pageID
	}

	knownID, knownOffset, known := b.nearestLocation(pageID)

	var p page
	var err error
	switch {
	case known && distance(knownID, pageID) <= endDistance:
		p, err = b.readPage(knownOffset, knownID)
	case pageID < count/2:
		p, err = b.getFirstPage()
	default:
		p, err = b.getLastPage()
	}

	for nil == err && p.id < pageID {
		p, err = b.flickPageForward(p)
	}
	for nil == err && p.id > pageID {
		p, err = b.flickPageBackward(p)
	}
	if nil != err {
		return page{}, err
	}
	return p, nil
}

// the indexed page closest to id
func (b *Book) nearestLocation(id uint32) (uint32, int64, bool) {
	floor := b.locations.Floor(pageKey(id))
	ceiling := b.locations.Ceiling(pageKey(id))

	switch {
	case nil == floor && nil == ceiling:
		return 0, 0, false
	case nil == ceiling:
		return uint32(floor.Key().(pageKey)), floor.Value().(int64), true
	case nil == floor:
		return uint32(ceiling.Key().(pageKey)), ceiling.Value().(int64), true
	}

	floorID := uint32(floor.Key().(pageKey))
	ceilingID := uint32(ceiling.Key().(pageKey))
	if distance(floorID, id) <= distance(ceilingID, id) {
		return floorID, floor.Value().(int64), true
	}
	return ceilingID, ceiling.Value().(int64), true
}

func distance(a uint32, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
