// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/fault"
)

const logTag = "registry"

// DefaultCatalog - catalog name inside the data directory
const DefaultCatalog = "catalog.leveldb"

// Registry - the books of one data directory
type Registry struct {
	sync.Mutex

	directory string
	readOnly  bool
	db        *leveldb.DB
	books     map[string]*book.Book
	log       *logger.L
}

// New - open the catalog for a data directory
//
// a relative catalog name is taken to be inside the directory
func New(directory string, catalog string, readOnly bool) (*Registry, error) {
	log := logger.New(logTag)

	if "" == catalog {
		catalog = DefaultCatalog
	}
	if !filepath.IsAbs(catalog) {
		catalog = filepath.Join(directory, catalog)
	}

	db, err := openCatalog(catalog, readOnly)
	if nil != err {
		log.Errorf("catalog: %q  error: %s", catalog, err)
		return nil, err
	}
	log.Infof("catalog: %q  directory: %q", catalog, directory)

	return &Registry{
		directory: directory,
		readOnly:  readOnly,
		db:        db,
		books:     make(map[string]*book.Book),
		log:       log,
	}, nil
}

// Directory - where the books are kept
func (r *Registry) Directory() string {
	return r.directory
}

// Open - open a book, creating it if allowed, and record it in the
// catalog
//
// a book that is already open is returned if it holds the requested
// entry type in slots at least as wide as requested
func (r *Registry) Open(title string, format book.Format, create bool) (*book.Book, error) {
	r.Lock()
	defer r.Unlock()

	if nil == r.db {
		return nil, fault.ErrNotInitialised
	}
	if b, ok := r.books[title]; ok {
		if format.EntryTypeID != b.EntryTypeID() || format.EntrySize > b.EntrySize() {
			r.log.Warnf("open: %q  type: %08x  size: %d  does not match open book", title, format.EntryTypeID, format.EntrySize)
			return nil, fault.ErrHeaderMismatch
		}
		return b, nil
	}

	b := book.New(format)
	if err := b.Open(title, r.directory, create && !r.readOnly); nil != err {
		r.log.Warnf("open: %q  error: %s", title, err)
		return nil, err
	}

	if !r.readOnly {
		e := catalogEntry(b)
		if err := r.db.Put(catalogKey(title), e.pack(), nil); nil != err {
			r.log.Errorf("open: %q  catalog error: %s", title, err)
			_ = b.Close()
			return nil, err
		}
	}

	r.books[title] = b
	r.log.Debugf("open: %q  serial: %s", title, b.SerialNumber())
	return b, nil
}

// Get - a book that is currently open
func (r *Registry) Get(title string) (*book.Book, error) {
	r.Lock()
	defer r.Unlock()

	b, ok := r.books[title]
	if !ok {
		return nil, fault.ErrBookNotFound
	}
	return b, nil
}

// Titles - open books in title order
func (r *Registry) Titles() []string {
	r.Lock()
	defer r.Unlock()

	titles := make([]string, 0, len(r.books))
	for title := range r.books {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// Close - close one book, its catalog entry is kept
func (r *Registry) Close(title string) error {
	r.Lock()
	defer r.Unlock()

	b, ok := r.books[title]
	if !ok {
		return fault.ErrBookNotFound
	}
	delete(r.books, title)
	return b.Close()
}

// Lookup - the catalog entry for a title
func (r *Registry) Lookup(title string) (CatalogEntry, error) {
	r.Lock()
	defer r.Unlock()

	if nil == r.db {
		return CatalogEntry{}, fault.ErrNotInitialised
	}
	value, err := r.db.Get(catalogKey(title), nil)
	if leveldb.ErrNotFound == err {
		return CatalogEntry{}, fault.ErrCatalogEntryNotFound
	} else if nil != err {
		return CatalogEntry{}, err
	}
	return unpackCatalogEntry(catalogKey(title), value)
}

// Catalog - every book ever opened through this catalog
func (r *Registry) Catalog() ([]CatalogEntry, error) {
	r.Lock()
	defer r.Unlock()

	if nil == r.db {
		return nil, fault.ErrNotInitialised
	}
	return readCatalog(r.db)
}

// Forget - drop a catalog entry, the book file is not touched
func (r *Registry) Forget(title string) error {
	r.Lock()
	defer r.Unlock()

	if nil == r.db {
		return fault.ErrNotInitialised
	}
	if _, ok := r.books[title]; ok {
		return fault.ErrAlreadyOpen
	}
	if _, err := r.db.Get(catalogKey(title), nil); leveldb.ErrNotFound == err {
		return fault.ErrCatalogEntryNotFound
	} else if nil != err {
		return err
	}
	return r.db.Delete(catalogKey(title), nil)
}

// Finalise - close every book and the catalog
func (r *Registry) Finalise() error {
	r.Lock()
	defer r.Unlock()

	if nil == r.db {
		return fault.ErrNotInitialised
	}

	var firstErr error
	for title, b := range r.books {
		if err := b.Close(); nil != err {
			r.log.Errorf("finalise: %q  close error: %s", title, err)
			if nil == firstErr {
				firstErr = err
			}
		}
	}
	r.books = make(map[string]*book.Book)

	if err := r.db.Close(); nil != err && nil == firstErr {
		firstErr = err
	}
	r.db = nil
	r.log.Info("finalised")
	return firstErr
}
