// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/fault"
)

const (
	currentCatalogVersion = 1
	bookPrefix            = 'B'
	fixedRecordSize       = 16 + 4*4
)

var versionKey = []byte{0x00, 'v', 'e', 'r', 's', 'i', 'o', 'n'}

// CatalogEntry - what is known about a book without opening it
type CatalogEntry struct {
	Title          string    `json:"title"`
	SerialNumber   uuid.UUID `json:"serialNumber"`
	EntryTypeID    uint32    `json:"entryTypeId"`
	EntrySize      uint32    `json:"entrySize"`
	EntriesPerPage uint32    `json:"entriesPerPage"`
	Mode           book.Mode `json:"mode"`
	Path           string    `json:"path"`
}

// describe an open book
func catalogEntry(b *book.Book) CatalogEntry {
	return CatalogEntry{
		Title:          b.Title(),
		SerialNumber:   b.SerialNumber(),
		EntryTypeID:    b.EntryTypeID(),
		EntrySize:      b.EntrySize(),
		EntriesPerPage: b.EntriesPerPage(),
		Mode:           b.Mode(),
		Path:           b.Path(),
	}
}

func catalogKey(title string) []byte {
	return append([]byte{bookPrefix}, title...)
}

func (e CatalogEntry) pack() []byte {
	buffer := make([]byte, fixedRecordSize, fixedRecordSize+len(e.Path))
	copy(buffer[0:16], e.SerialNumber[:])
	binary.BigEndian.PutUint32(buffer[16:20], e.EntryTypeID)
	binary.BigEndian.PutUint32(buffer[20:24], e.EntrySize)
	binary.BigEndian.PutUint32(buffer[24:28], e.EntriesPerPage)
	binary.BigEndian.PutUint32(buffer[28:32], uint32(e.Mode))
	return append(buffer, e.Path...)
}

func unpackCatalogEntry(key []byte, value []byte) (CatalogEntry, error) {
	if len(key) < 2 || bookPrefix != key[0] || len(value) < fixedRecordSize {
		return CatalogEntry{}, fault.ErrInvalidCatalogRecord
	}
	e := CatalogEntry{
		Title:          string(key[1:]),
		EntryTypeID:    binary.BigEndian.Uint32(value[16:20]),
		EntrySize:      binary.BigEndian.Uint32(value[20:24]),
		EntriesPerPage: binary.BigEndian.Uint32(value[24:28]),
		Mode:           book.Mode(binary.BigEndian.Uint32(value[28:32])),
		Path:           string(value[fixedRecordSize:]),
	}
	copy(e.SerialNumber[:], value[0:16])
	if !e.Mode.IsValid() {
		return CatalogEntry{}, fault.ErrInvalidCatalogRecord
	}
	return e, nil
}

// open the catalog, tagging a new one with the current version
func openCatalog(name string, readOnly bool) (*leveldb.DB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		if readOnly {
			return db, nil
		}
		currentVersion := make([]byte, 4)
		binary.BigEndian.PutUint32(currentVersion, currentCatalogVersion)
		if err := db.Put(versionKey, currentVersion, nil); nil != err {
			db.Close()
			return nil, err
		}
		return db, nil
	} else if nil != err {
		db.Close()
		return nil, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, fmt.Errorf("incompatible catalog version length: expected: %d  actual: %d", 4, len(versionValue))
	}
	if version := binary.BigEndian.Uint32(versionValue); currentCatalogVersion != version {
		db.Close()
		return nil, fmt.Errorf("catalog version: %d  expected: %d", version, currentCatalogVersion)
	}
	return db, nil
}

// every catalog entry in title order
func readCatalog(db *leveldb.DB) ([]CatalogEntry, error) {
	iter := db.NewIterator(ldb_util.BytesPrefix([]byte{bookPrefix}), nil)
	defer iter.Release()

	entries := make([]CatalogEntry, 0)
	for iter.Next() {
		e, err := unpackCatalogEntry(iter.Key(), iter.Value())
		if nil != err {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := iter.Error(); nil != err {
		return nil, err
	}
	return entries, nil
}
