// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entry

import (
	"sort"
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/counter"
	"github.com/bitmark-inc/ledgerbook/fault"
)

const logTag = "entry"

// a decoded record held in memory
type item[R any] struct {
	id     uint32
	record R
	dirty  bool
	hits   counter.Counter
}

// Cache - typed access to the entries of one book
type Cache[R any] struct {
	book   *book.Book
	codec  Codec[R]
	expiry time.Duration
	items  *cache.Cache
	log    *logger.L
}

// New - attach a cache to an open book
//
// clean records are dropped after expiry, zero keeps them until Close
func New[R any](b *book.Book, codec Codec[R], expiry time.Duration) (*Cache[R], error) {
	if !b.IsOpen() {
		return nil, fault.ErrNotOpen
	}
	if codec.Mode() != b.Mode() {
		return nil, fault.ErrModeMismatch
	}

	var items *cache.Cache
	if expiry > 0 {
		items = cache.New(expiry, expiry)
	} else {
		expiry = cache.NoExpiration
		items = cache.New(cache.NoExpiration, 0)
	}

	return &Cache[R]{
		book:   b,
		codec:  codec,
		expiry: expiry,
		items:  items,
		log:    logger.New(logTag),
	}, nil
}

// Book - the underlying book
func (c *Cache[R]) Book() *book.Book {
	return c.book
}

// Count - number of entries in the book
func (c *Cache[R]) Count() uint32 {
	return c.book.EntryCount()
}

// Cached - number of records currently held in memory
func (c *Cache[R]) Cached() int {
	return c.items.ItemCount()
}

// Hits - number of times a cached record was returned by Get
func (c *Cache[R]) Hits(id uint32) uint64 {
	if i, ok := c.lookup(id); ok {
		return i.hits.Uint64()
	}
	return 0
}

// Dirty - number of records with uncommitted changes
func (c *Cache[R]) Dirty() int {
	return len(c.dirtyItems())
}

// Get - a record by id, from memory when possible
//
// the record is shared with the cache, use Copy for one to edit
func (c *Cache[R]) Get(id uint32) (R, error) {
	if i, ok := c.lookup(id); ok {
		i.hits.Increment()
		return i.record, nil
	}

	record, err := c.load(id)
	if nil != err {
		var empty R
		return empty, err
	}
	c.store(&item[R]{id: id, record: record})
	return record, nil
}

// Copy - a private record that can be edited without touching the
// cache
//
// a staged change is copied through the codec, otherwise the entry is
// read from disk
func (c *Cache[R]) Copy(id uint32) (R, error) {
	if i, ok := c.lookup(id); ok && i.dirty {
		buffer, err := c.encode(i.record)
		if nil != err {
			var empty R
			return empty, err
		}
		return c.codec.Decode(buffer)
	}
	return c.load(id)
}

// Update - replace a record, written now if commit is set, otherwise
// held until Commit
func (c *Cache[R]) Update(id uint32, record R, commit bool) error {
	if !c.book.IsOpen() {
		return fault.ErrNotOpen
	}
	if id >= c.book.EntryCount() {
		return fault.ErrEntryNotFound
	}

	i, ok := c.lookup(id)
	if !ok {
		i = &item[R]{id: id}
	}
	i.record = record
	i.dirty = true
	c.store(i)

	if commit {
		return c.write(i)
	}
	return nil
}

// Add - append a record, always written immediately
func (c *Cache[R]) Add(record R) (uint32, error) {
	if !c.book.IsOpen() {
		return 0, fault.ErrNotOpen
	}
	buffer, err := c.encode(record)
	if nil != err {
		return 0, err
	}
	id, err := c.book.AddEntry(buffer)
	if nil != err {
		return 0, err
	}
	c.store(&item[R]{id: id, record: record})
	return id, nil
}

// Commit - write every dirty record and flush the file
func (c *Cache[R]) Commit() error {
	if !c.book.IsOpen() {
		return fault.ErrNotOpen
	}
	dirty := c.dirtyItems()
	for _, i := range dirty {
		if err := c.write(i); nil != err {
			c.log.Errorf("commit: entry: %d  error: %s", i.id, err)
			return err
		}
	}
	c.log.Debugf("commit: %d entries", len(dirty))
	return c.book.Flush()
}

// Rollback - discard every uncommitted change by reloading from disk
func (c *Cache[R]) Rollback() error {
	if !c.book.IsOpen() {
		return fault.ErrNotOpen
	}
	dirty := c.dirtyItems()
	for _, i := range dirty {
		record, err := c.load(i.id)
		if nil != err {
			c.items.Delete(key(i.id))
			c.log.Warnf("rollback: entry: %d  reload error: %s", i.id, err)
			continue
		}
		i.record = record
		i.dirty = false
		c.store(i)
	}
	c.log.Debugf("rollback: %d entries", len(dirty))
	return nil
}

// Close - release the book, uncommitted changes are lost
//
// with a non-zero expiry the go-cache janitor goroutine keeps running
// until the Cache itself is garbage collected
func (c *Cache[R]) Close() error {
	if n := c.Dirty(); n > 0 {
		c.log.Warnf("close: discarding %d uncommitted entries", n)
	}
	c.items.Flush()
	return c.book.Close()
}

// encode a record into a full zero padded slot
func (c *Cache[R]) encode(record R) ([]byte, error) {
	size := c.book.EntrySize()
	data, err := c.codec.Encode(record, size)
	if nil != err {
		return nil, err
	}
	buffer := make([]byte, size)
	copy(buffer, data)
	return buffer, nil
}

// read and decode a record from disk
func (c *Cache[R]) load(id uint32) (R, error) {
	buffer := make([]byte, c.book.EntrySize())
	if err := c.book.ReadEntry(id, buffer); nil != err {
		var empty R
		return empty, err
	}
	return c.codec.Decode(buffer)
}

// write one record and mark it clean
func (c *Cache[R]) write(i *item[R]) error {
	buffer, err := c.encode(i.record)
	if nil != err {
		return err
	}
	if err := c.book.WriteEntry(i.id, buffer); nil != err {
		return err
	}
	i.dirty = false
	c.store(i)
	return nil
}

// dirty records never expire
func (c *Cache[R]) store(i *item[R]) {
	expiry := c.expiry
	if i.dirty {
		expiry = cache.NoExpiration
	}
	c.items.Set(key(i.id), i, expiry)
}

func (c *Cache[R]) lookup(id uint32) (*item[R], bool) {
	x, ok := c.items.Get(key(id))
	if !ok {
		return nil, false
	}
	return x.(*item[R]), true
}

// dirty records in id order
func (c *Cache[R]) dirtyItems() []*item[R] {
	dirty := make([]*item[R], 0)
	for _, x := range c.items.Items() {
		if i := x.Object.(*item[R]); i.dirty {
			dirty = append(dirty, i)
		}
	}
	sort.Slice(dirty, func(a, b int) bool {
		return dirty[a].id < dirty[b].id
	})
	return dirty
}

func key(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
