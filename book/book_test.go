// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerbook/fault"
)

func TestCreateValidation(t *testing.T) {
	directory := t.TempDir()

	items := []struct {
		format Format
		title  string
		err    error
	}{
		{Format{EntryTypeID: 0, EntrySize: 64}, "a", fault.ErrInvalidEntryType},
		{Format{EntryTypeID: 1, EntrySize: 0}, "a", fault.ErrInvalidEntrySize},
		{Format{EntryTypeID: 1, EntrySize: 64, Mode: Mode(7)}, "a", fault.ErrInvalidMode},
		{Format{EntryTypeID: 1, EntrySize: 64}, "", fault.ErrInvalidTitle},
		{Format{EntryTypeID: 1, EntrySize: 64}, "../escape", fault.ErrInvalidTitle},
	}
	for i, item := range items {
		b := New(item.format)
		err := b.Create(item.title, directory)
		assert.Equal(t, item.err, err, "%d: wrong create error", i)
		assert.False(t, b.IsOpen(), "%d: book open after failed create", i)
	}
}

func TestCreateTwice(t *testing.T) {
	b, directory := newTestBook(t, 32, 4)
	defer b.Close()

	err := b.Create(testTitle, directory)
	assert.Equal(t, fault.ErrAlreadyOpen, err, "create on open book")

	err = b.Open(testTitle, directory, true)
	assert.Equal(t, fault.ErrAlreadyOpen, err, "open on open book")

	other := New(Format{EntryTypeID: testEntryType, EntrySize: 32})
	err = other.Create(testTitle, directory)
	assert.Equal(t, fault.ErrBookExists, err, "create over existing file")
}

func TestCreateWritesHeader(t *testing.T) {
	b, _ := newTestBook(t, 32, 4)
	defer b.Close()

	info, err := os.Stat(b.Path())
	assert.Nil(t, err, "stat error")
	assert.Equal(t, int64(HeaderSize), info.Size(), "header not persisted")
	assert.Equal(t, uint32(0), b.PageCount(), "pages after create")
	assert.Equal(t, uint32(0), b.EntryCount(), "entries after create")
	assert.NotEqual(t, [16]byte{}, [16]byte(b.SerialNumber()), "serial number not assigned")
	assert.Equal(t, "", b.Volume(), "live book has volume")
}

func TestOpenMissing(t *testing.T) {
	directory := t.TempDir()
	b := New(Format{EntryTypeID: testEntryType, EntrySize: 32})

	err := b.Open("absent", directory, false)
	assert.Equal(t, fault.ErrBookNotFound, err, "open missing without create")

	err = b.Open("absent", directory, true)
	assert.Nil(t, err, "open missing with create")
	assert.True(t, b.IsOpen(), "not open after create")
	assert.Nil(t, b.Close(), "close error")
	assert.Equal(t, fault.ErrNotOpen, b.Close(), "second close")
}

func TestOpenZeroLength(t *testing.T) {
	directory := t.TempDir()
	f, err := os.Create(FileName("empty", directory))
	assert.Nil(t, err, "create file error")
	f.Close()

	b := New(Format{EntryTypeID: testEntryType, EntrySize: 32})
	err = b.Open("empty", directory, false)
	assert.Nil(t, err, "open of empty file")
	defer b.Close()
	assert.Equal(t, "empty", b.Title(), "title")
	assert.Equal(t, uint32(DefaultEntriesPerPage), b.EntriesPerPage(), "default page capacity")
}

func TestOpenHeaderMismatch(t *testing.T) {
	b, directory := newTestBook(t, 64, 4)
	b.Close()

	items := []struct {
		format Format
		title  string
	}{
		{Format{EntryTypeID: testEntryType + 1, EntrySize: 64}, testTitle},
		{Format{EntryTypeID: testEntryType, EntrySize: 65}, testTitle},
	}
	for i, item := range items {
		other := New(item.format)
		err := other.Open(item.title, directory, false)
		assert.Equal(t, fault.ErrHeaderMismatch, err, "%d: expected mismatch", i)
		assert.False(t, other.IsOpen(), "%d: open after mismatch", i)
	}

	// a narrower request is accepted and the file geometry adopted
	narrow := New(Format{EntryTypeID: testEntryType, EntrySize: 16, EntriesPerPage: 99, Mode: BinaryMode})
	err := narrow.Open(testTitle, directory, false)
	assert.Nil(t, err, "open narrower")
	defer narrow.Close()
	assert.Equal(t, uint32(64), narrow.EntrySize(), "entry size not adopted")
	assert.Equal(t, uint32(4), narrow.EntriesPerPage(), "page capacity not adopted")
	assert.Equal(t, TextMode, narrow.Mode(), "mode not adopted")
}

func TestOpenGarbage(t *testing.T) {
	directory := t.TempDir()
	err := os.WriteFile(FileName("junk", directory), bytes.Repeat([]byte{'x'}, 200), 0600)
	assert.Nil(t, err, "write error")

	b := New(Format{EntryTypeID: testEntryType, EntrySize: 32})
	err = b.Open("junk", directory, false)
	assert.Equal(t, fault.ErrInvalidHeader, err, "garbage header accepted")
}

func TestConcreteScenario(t *testing.T) {
	b, _ := newTestBook(t, 64, 4)
	defer b.Close()

	for i := 0; i < 5; i += 1 {
		id, err := b.AddEntry(textEntry(b, fmt.Sprintf("entry %d", i)))
		assert.Nil(t, err, "add error")
		assert.Equal(t, uint32(i), id, "wrong id")
	}

	assert.Equal(t, uint32(2), b.PageCount(), "page count")
	assert.Equal(t, uint32(5), b.EntryCount(), "entry count")

	p0, err := b.Page(0)
	assert.Nil(t, err, "page 0 error")
	assert.Equal(t, uint32(4), p0.EntryCount, "page 0 entries")

	p1, err := b.Page(1)
	assert.Nil(t, err, "page 1 error")
	assert.Equal(t, uint32(1), p1.EntryCount, "page 1 entries")

	offset, err := b.GetEntryOffset(4)
	assert.Nil(t, err, "offset error")
	assert.Equal(t, p1.Offset+pageHeaderSize, offset, "entry 4 not in slot 0 of page 1")

	_, err = b.GetEntryOffset(5)
	assert.Equal(t, fault.ErrEntryNotFound, err, "unpopulated slot resolved")
	_, err = b.GetEntryOffset(9)
	assert.Equal(t, fault.ErrEntryNotFound, err, "id beyond last page resolved")

	info, err := os.Stat(b.Path())
	assert.Nil(t, err, "stat error")
	assert.Equal(t, int64(HeaderSize)+2*b.pageSpan(), info.Size(), "file size")
}

func TestRoundTrip(t *testing.T) {
	b, _ := newTestBook(t, 48, 3)
	defer b.Close()

	records := make([][]byte, 20)
	for i := range records {
		records[i] = textEntry(b, fmt.Sprintf("record-%03d:%x", i, i*i))
		id, err := b.AddEntry(records[i])
		assert.Nil(t, err, "add error")
		assert.Equal(t, uint32(i), id, "ids not monotonic")
	}

	// read back in a scattered order to exercise the location index
	for _, i := range []int{19, 0, 10, 3, 17, 8, 1, 18, 9} {
		buffer := make([]byte, b.EntrySize())
		err := b.ReadEntry(uint32(i), buffer)
		assert.Nil(t, err, "read error")
		assert.Equal(t, records[i], buffer, "record %d changed", i)
	}

	// short reads only return the prefix
	prefix := make([]byte, 6)
	assert.Nil(t, b.ReadEntry(5, prefix), "prefix read error")
	assert.Equal(t, []byte("record"), prefix, "prefix read")
}

func TestPageAccounting(t *testing.T) {
	const perPage = 5
	b, _ := newTestBook(t, 16, perPage)
	defer b.Close()

	assert.Equal(t, uint32(0), b.PageCount(), "pages when empty")

	for n := 1; n <= 23; n += 1 {
		_, err := b.AddEntry([]byte{byte(n)})
		assert.Nil(t, err, "add error")
		expectedPages := uint32((n + perPage - 1) / perPage)
		assert.Equal(t, expectedPages, b.PageCount(), "pages after %d entries", n)
		assert.Equal(t, uint32(n), b.EntryCount(), "entries after %d", n)
	}
}

func TestPageIndices(t *testing.T) {
	b, _ := newTestBook(t, 8, 6)
	defer b.Close()

	for i := 0; i < 20; i += 1 {
		_, err := b.AddEntry([]byte{byte(i)})
		assert.Nil(t, err, "add error")
	}

	for pageID := uint32(0); pageID < b.PageCount(); pageID += 1 {
		first, last, err := b.GetPageIndices(pageID)
		assert.Nil(t, err, "indices error")
		assert.Equal(t, pageID*6, first, "first of page %d", pageID)
		assert.Equal(t, pageID*6+5, last, "last of page %d", pageID)
	}

	_, _, err := b.GetPageIndices(b.PageCount())
	assert.Equal(t, fault.ErrPageNotFound, err, "indices beyond last page")
}

func TestEntryLocation(t *testing.T) {
	pageID, slot := EntryLocation(4, 4)
	assert.Equal(t, uint32(1), pageID, "page")
	assert.Equal(t, uint32(0), slot, "slot")

	pageID, slot = EntryLocation(31, 32)
	assert.Equal(t, uint32(0), pageID, "page")
	assert.Equal(t, uint32(31), slot, "slot")
}

// naive forward scan from page 0
func scanPages(t *testing.T, b *Book) []page {
	pages := make([]page, 0, b.PageCount())
	p, err := b.getFirstPage()
	for nil == err {
		pages = append(pages, p)
		if p.id+1 == b.PageCount() {
			break
		}
		p, err = b.flickPageForward(p)
	}
	assert.Nil(t, err, "scan error")
	return pages
}

func TestTraversalEquivalence(t *testing.T) {
	b, directory := newTestBook(t, 24, 3)

	for i := 0; i < 61; i += 1 {
		_, err := b.AddEntry([]byte(fmt.Sprintf("%d", i)))
		assert.Nil(t, err, "add error")
	}
	b.Close()

	// reopen so the location index starts empty
	b = New(Format{EntryTypeID: testEntryType, EntrySize: 24})
	err := b.Open(testTitle, directory, false)
	assert.Nil(t, err, "reopen error")
	defer b.Close()

	order := []uint32{13, 2, 20, 0, 7, 19, 11, 1, 16, 5, 20, 12}
	found := make(map[uint32]page)
	for _, id := range order {
		p, err := b.findPage(id)
		assert.Nil(t, err, "find page %d", id)
		found[id] = p
	}

	// compare against a plain walk along the page chain
	scanned := scanPages(t, b)
	assert.Equal(t, int(b.PageCount()), len(scanned), "scan length")

	for id, p := range found {
		assert.Equal(t, scanned[id], p, "page %d differs from scan", id)
	}
	for i, p := range scanned {
		assert.Equal(t, int64(HeaderSize)+int64(i)*b.pageSpan(), p.offset, "page %d offset", i)
	}

	_, err = b.findPage(b.PageCount())
	assert.Equal(t, fault.ErrPageNotFound, err, "page beyond end")
}

func TestFlickLimits(t *testing.T) {
	b, _ := newTestBook(t, 8, 2)
	defer b.Close()

	_, err := b.getLastPage()
	assert.Equal(t, fault.ErrPageNotFound, err, "last page of empty book")

	for i := 0; i < 3; i += 1 {
		_, _ = b.AddEntry([]byte{byte(i)})
	}

	first, err := b.getFirstPage()
	assert.Nil(t, err, "first page")
	_, err = b.flickPageBackward(first)
	assert.Equal(t, fault.ErrPageNotFound, err, "backward from page 0")

	last, err := b.getLastPage()
	assert.Nil(t, err, "last page")
	assert.Equal(t, uint32(1), last.id, "last page id")
	_, err = b.flickPageForward(last)
	assert.Equal(t, fault.ErrPageNotFound, err, "forward from partial last page")

	back, err := b.flickPageBackward(last)
	assert.Nil(t, err, "backward from last")
	assert.Equal(t, first, back, "backward did not reach page 0")
}

func TestOversizeRejection(t *testing.T) {
	b, _ := newTestBook(t, 16, 4)
	defer b.Close()

	id, err := b.AddEntry([]byte("fits"))
	assert.Nil(t, err, "add error")

	before, _ := os.Stat(b.Path())
	big := make([]byte, 17)

	_, err = b.AddEntry(big)
	assert.Equal(t, fault.ErrEntryTooLarge, err, "oversize add")
	err = b.WriteEntry(id, big)
	assert.Equal(t, fault.ErrEntryTooLarge, err, "oversize write")
	err = b.ReadEntry(id, big)
	assert.Equal(t, fault.ErrEntryTooLarge, err, "oversize read")

	after, _ := os.Stat(b.Path())
	assert.Equal(t, before.Size(), after.Size(), "file size changed")
	assert.Equal(t, uint32(1), b.EntryCount(), "entry count changed")
	assert.Equal(t, uint32(1), b.PageCount(), "page count changed")
}

func TestWriteEntry(t *testing.T) {
	b, _ := newTestBook(t, 16, 4)
	defer b.Close()

	for i := 0; i < 6; i += 1 {
		_, _ = b.AddEntry(textEntry(b, fmt.Sprintf("v%d", i)))
	}

	err := b.WriteEntry(5, textEntry(b, "replaced"))
	assert.Nil(t, err, "write error")

	buffer := make([]byte, 16)
	assert.Nil(t, b.ReadEntry(5, buffer), "read error")
	assert.Equal(t, textEntry(b, "replaced"), buffer, "entry not replaced")

	assert.Nil(t, b.ReadEntry(4, buffer), "read error")
	assert.Equal(t, textEntry(b, "v4"), buffer, "neighbour changed")

	err = b.WriteEntry(6, []byte("x"))
	assert.Equal(t, fault.ErrEntryNotFound, err, "write to unallocated slot")
	assert.Equal(t, uint32(6), b.EntryCount(), "write appended an entry")
}

func TestReopenStability(t *testing.T) {
	b, directory := newTestBook(t, 32, 4)

	for i := 0; i < 10; i += 1 {
		_, _ = b.AddEntry(textEntry(b, fmt.Sprintf("%d", i)))
	}
	userData := []byte("balance:1234")
	assert.Nil(t, b.SetUserData(userData), "user data error")

	title := b.Title()
	serial := b.SerialNumber()
	entries := b.EntryCount()
	pages := b.PageCount()
	stored := b.UserData()
	assert.Nil(t, b.Close(), "close error")

	r := New(Format{EntryTypeID: testEntryType, EntrySize: 32})
	assert.Nil(t, r.Open(testTitle, directory, false), "reopen error")
	defer r.Close()

	assert.Equal(t, title, r.Title(), "title")
	assert.Equal(t, serial, r.SerialNumber(), "serial number")
	assert.Equal(t, entries, r.EntryCount(), "entry count")
	assert.Equal(t, pages, r.PageCount(), "page count")
	assert.Equal(t, stored, r.UserData(), "user data")

	// appending continues the id sequence
	id, err := r.AddEntry([]byte("after"))
	assert.Nil(t, err, "add after reopen")
	assert.Equal(t, uint32(10), id, "id after reopen")
}

func TestUserData(t *testing.T) {
	b, _ := newTestBook(t, 32, 4)
	defer b.Close()

	assert.Equal(t, make([]byte, UserDataSize), b.UserData(), "initial user data")

	err := b.SetUserData(make([]byte, UserDataSize+1))
	assert.Equal(t, fault.ErrUserDataTooLarge, err, "oversize user data")

	full := bytes.Repeat([]byte{0xa5}, UserDataSize)
	assert.Nil(t, b.SetUserData(full), "full user data")
	assert.Nil(t, b.SetUserData([]byte{1, 2}), "short user data")

	expected := make([]byte, UserDataSize)
	expected[0] = 1
	expected[1] = 2
	assert.Equal(t, expected, b.UserData(), "user data not zero padded")

	// returned slice is a copy
	b.UserData()[0] = 0xff
	assert.Equal(t, byte(1), b.UserData()[0], "user data aliased")
}

func TestClosedBook(t *testing.T) {
	b := New(Format{EntryTypeID: 1, EntrySize: 8})

	_, err := b.AddEntry([]byte{1})
	assert.Equal(t, fault.ErrNotOpen, err, "add on closed book")
	assert.Equal(t, fault.ErrNotOpen, b.ReadEntry(0, []byte{0}), "read on closed book")
	assert.Equal(t, fault.ErrNotOpen, b.WriteEntry(0, []byte{0}), "write on closed book")
	assert.Equal(t, fault.ErrNotOpen, b.SetUserData(nil), "user data on closed book")
	assert.Equal(t, fault.ErrNotOpen, b.Flush(), "flush on closed book")
	_, err = b.Page(0)
	assert.Equal(t, fault.ErrNotOpen, err, "page on closed book")
}

func TestArchive(t *testing.T) {
	b, directory := newTestBook(t, 32, 4)
	defer b.Close()

	for i := 0; i < 6; i += 1 {
		_, _ = b.AddEntry(textEntry(b, fmt.Sprintf("%d", i)))
	}

	_, err := b.Archive("bad/volume")
	assert.Equal(t, fault.ErrInvalidVolume, err, "invalid volume accepted")

	fileName, err := b.Archive("2019-Q4")
	assert.Nil(t, err, "archive error")
	assert.Equal(t, VolumeFileName(testTitle, directory, "2019-Q4"), fileName, "archive name")

	_, err = b.Archive("2019-Q4")
	assert.Equal(t, fault.ErrVolumeExists, err, "archive overwritten")
	assert.Equal(t, "", b.Volume(), "live volume changed")

	v := New(Format{EntryTypeID: testEntryType, EntrySize: 32})
	err = v.OpenVolume(testTitle, directory, "2019-Q4")
	assert.Nil(t, err, "open volume error")
	defer v.Close()

	assert.Equal(t, "2019-Q4", v.Volume(), "volume label")
	assert.Equal(t, b.SerialNumber(), v.SerialNumber(), "serial number")
	assert.Equal(t, b.EntryCount(), v.EntryCount(), "entry count")

	buffer := make([]byte, 32)
	assert.Nil(t, v.ReadEntry(5, buffer), "read from volume")
	assert.Equal(t, textEntry(b, "5"), buffer, "volume entry")

	err = New(Format{EntryTypeID: testEntryType, EntrySize: 32}).OpenVolume(testTitle, directory, "missing")
	assert.Equal(t, fault.ErrBookNotFound, err, "missing volume")
}
