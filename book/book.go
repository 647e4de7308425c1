// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"

	"github.com/bitmark-inc/ledgerbook/avl"
	"github.com/bitmark-inc/ledgerbook/fault"
)

// constants
const (
	DefaultEntriesPerPage = 32
	FileExtension         = ".book"
	logTag                = "book"
)

// Format - the shape of entries a book is expected to hold
type Format struct {
	EntryTypeID    uint32 // identifies the stored record type
	EntrySize      uint32 // fixed width of every entry slot
	EntriesPerPage uint32 // page capacity, zero selects DefaultEntriesPerPage
	Mode           Mode
}

// Book - a single open book file
type Book struct {
	format    Format
	path      string
	file      *os.File
	header    header
	locations *avl.Tree // page id → header offset
	log       *logger.L
}

// New - create an unopened book for a particular entry format
func New(format Format) *Book {
	if 0 == format.EntriesPerPage {
		format.EntriesPerPage = DefaultEntriesPerPage
	}
	return &Book{
		format:    format,
		locations: avl.New(),
		log:       logger.New(logTag),
	}
}

// FileName - the file holding a book
func FileName(title string, directory string) string {
	return filepath.Join(directory, title+FileExtension)
}

// Create - create a new empty book file
func (b *Book) Create(title string, directory string) error {
	if nil != b.file {
		return fault.ErrAlreadyOpen
	}
	if err := b.checkFormat(title); nil != err {
		return err
	}

	fileName := FileName(title, directory)
	if info, err := os.Stat(fileName); nil == err && info.Size() > 0 {
		return fault.ErrBookExists
	}

	f, err := os.OpenFile(fileName, os.O_RDWR|os.O_CREATE, 0600)
	if nil != err {
		return err
	}
	return b.create(f, title, fileName)
}

// Open - open an existing book, optionally creating it
//
// the title, volume, mode, serial number and page geometry are taken
// from the file once the header matches
func (b *Book) Open(title string, directory string, createIfNotExist bool) error {
	if nil != b.file {
		return fault.ErrAlreadyOpen
	}
	if !validLabel(title, false) {
		return fault.ErrInvalidTitle
	}

	fileName := FileName(title, directory)
	_, err := os.Stat(fileName)
	if os.IsNotExist(err) {
		if !createIfNotExist {
			return fault.ErrBookNotFound
		}
		return b.Create(title, directory)
	} else if nil != err {
		return err
	}

	return b.open(fileName, title)
}

// open an existing file and match its header
func (b *Book) open(fileName string, title string) error {
	f, err := os.OpenFile(fileName, os.O_RDWR, 0600)
	if nil != err {
		return err
	}

	info, err := f.Stat()
	if nil != err {
		f.Close()
		return err
	}

	// an empty file is treated as a new book
	if 0 == info.Size() {
		if err := b.checkFormat(title); nil != err {
			f.Close()
			return err
		}
		return b.create(f, title, fileName)
	}

	buffer := make([]byte, HeaderSize)
	n, err := f.ReadAt(buffer, 0)
	if n != HeaderSize {
		f.Close()
		if nil == err || io.EOF == err {
			return fault.ErrInvalidHeader
		}
		return err
	}

	h := header{}
	if err := h.unpack(buffer); nil != err {
		f.Close()
		return err
	}
	if !b.matchBookHeader(&h, title) {
		b.log.Errorf("header mismatch: %q  type: %d  size: %d  file: %q  type: %d  size: %d", title, b.format.EntryTypeID, b.format.EntrySize, h.title, h.entryTypeID, h.entrySize)
		f.Close()
		return fault.ErrHeaderMismatch
	}

	b.file = f
	b.path = fileName
	b.header = h
	b.format.EntrySize = h.entrySize
	b.format.EntriesPerPage = h.entriesPerPage
	b.format.Mode = h.mode
	b.locations = avl.New()

	expected := HeaderSize + int64(h.pageCount)*b.pageSpan()
	if info.Size() != expected {
		b.log.Warnf("book: %q  size: %d  expected: %d  for pages: %d", fileName, info.Size(), expected, h.pageCount)
	}

	b.log.Infof("open: %q  serial: %s  pages: %d  entries: %d", fileName, h.serialNumber, h.pageCount, h.entryCount)
	return nil
}

// the stored header must be for the same title and record type, and
// have slots at least as wide as requested
func (b *Book) matchBookHeader(h *header, title string) bool {
	if len(h.title) < len(title) || h.title[:len(title)] != title {
		return false
	}
	if h.entryTypeID != b.format.EntryTypeID {
		return false
	}
	return h.entrySize >= b.format.EntrySize
}

func (b *Book) checkFormat(title string) error {
	if !validLabel(title, false) {
		return fault.ErrInvalidTitle
	}
	if 0 == b.format.EntryTypeID {
		return fault.ErrInvalidEntryType
	}
	if 0 == b.format.EntrySize {
		return fault.ErrInvalidEntrySize
	}
	if 0 == b.format.EntriesPerPage {
		return fault.ErrInvalidEntriesCount
	}
	if !b.format.Mode.IsValid() {
		return fault.ErrInvalidMode
	}
	return nil
}

// write a fresh header into an empty file
func (b *Book) create(f *os.File, title string, fileName string) error {
	b.file = f
	b.path = fileName
	b.locations = avl.New()
	b.header = header{
		title:          title,
		volume:         "",
		mode:           b.format.Mode,
		serialNumber:   uuid.New(),
		entryTypeID:    b.format.EntryTypeID,
		entrySize:      b.format.EntrySize,
		entriesPerPage: b.format.EntriesPerPage,
	}

	if err := b.writeHeader(); nil != err {
		b.file = nil
		f.Close()
		return err
	}

	b.log.Infof("create: %q  serial: %s  entry size: %d  entries per page: %d", fileName, b.header.serialNumber, b.header.entrySize, b.header.entriesPerPage)
	return nil
}

// Close - release the file
func (b *Book) Close() error {
	if nil == b.file {
		return fault.ErrNotOpen
	}
	err := b.file.Close()
	b.file = nil
	b.locations = avl.New()
	b.log.Infof("close: %q", b.path)
	return err
}

// Flush - commit file contents to stable storage
func (b *Book) Flush() error {
	if nil == b.file {
		return fault.ErrNotOpen
	}
	return b.file.Sync()
}

// IsOpen - true while a file is attached
func (b *Book) IsOpen() bool {
	return nil != b.file
}

// Path - file name of the open book
func (b *Book) Path() string {
	return b.path
}

// Title - book title
func (b *Book) Title() string {
	return b.header.title
}

// Volume - archive label, blank for the live book
func (b *Book) Volume() string {
	return b.header.volume
}

// Mode - entry serialisation mode
func (b *Book) Mode() Mode {
	return b.header.mode
}

// SerialNumber - unique id assigned at creation
func (b *Book) SerialNumber() uuid.UUID {
	return b.header.serialNumber
}

// EntryTypeID - identifier of the stored record type
func (b *Book) EntryTypeID() uint32 {
	return b.header.entryTypeID
}

// EntrySize - width of an entry slot
func (b *Book) EntrySize() uint32 {
	return b.header.entrySize
}

// EntriesPerPage - page capacity
func (b *Book) EntriesPerPage() uint32 {
	return b.header.entriesPerPage
}

// PageCount - number of allocated pages
func (b *Book) PageCount() uint32 {
	return b.header.pageCount
}

// EntryCount - number of appended entries
func (b *Book) EntryCount() uint32 {
	return b.header.entryCount
}

func (b *Book) writeHeader() error {
	return b.writeAt(b.header.pack(), 0)
}

func (b *Book) readAt(buffer []byte, offset int64) error {
	n, err := b.file.ReadAt(buffer, offset)
	if n == len(buffer) {
		return nil
	}
	if nil == err || io.EOF == err {
		return fault.ErrShortRead
	}
	return err
}

func (b *Book) writeAt(buffer []byte, offset int64) error {
	n, err := b.file.WriteAt(buffer, offset)
	if nil != err {
		return err
	}
	if n != len(buffer) {
		return fault.ErrShortWrite
	}
	return nil
}
