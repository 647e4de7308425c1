// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entry_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/entry"
	"github.com/bitmark-inc/ledgerbook/fault"
	"github.com/bitmark-inc/ledgerbook/record"
)

func TestNewChecksBook(t *testing.T) {
	directory := testDirectory(t)

	b := book.New(transactionFormat(book.TextMode))
	_, err := entry.New(b, transactionCodec(book.TextMode), 0)
	assert.Equal(t, fault.ErrNotOpen, err, "closed book")

	err = b.Open(testTitle, directory, true)
	assert.Nil(t, err, "open error")
	defer b.Close()

	_, err = entry.New(b, transactionCodec(book.BinaryMode), 0)
	assert.Equal(t, fault.ErrModeMismatch, err, "binary codec on text book")
}

func TestAddAndGet(t *testing.T) {
	for _, mode := range []book.Mode{book.TextMode, book.BinaryMode} {
		directory := testDirectory(t)

		c := openCache(t, directory, mode)
		added := fill(t, c, 11)
		assert.Equal(t, uint32(11), c.Count(), "%s: count", mode)
		assert.Equal(t, uint32(3), c.Book().PageCount(), "%s: pages", mode)

		for id, tx := range added {
			r, err := c.Get(uint32(id))
			assert.Nil(t, err, "%s: get: %d", mode, id)
			assert.Equal(t, tx, r, "%s: get: %d", mode, id)
		}
		assert.Nil(t, c.Close(), "%s: close", mode)

		// decoded from disk by a fresh cache
		c = openCache(t, directory, mode)
		assert.Equal(t, 0, c.Cached(), "%s: nothing cached", mode)
		for id, tx := range added {
			r, err := c.Get(uint32(id))
			assert.Nil(t, err, "%s: reload: %d", mode, id)
			assert.Equal(t, tx, r, "%s: reload: %d", mode, id)
		}
		assert.Equal(t, len(added), c.Cached(), "%s: all cached", mode)

		_, err := c.Get(uint32(len(added)))
		assert.Equal(t, fault.ErrEntryNotFound, err, "%s: past end", mode)
		assert.Nil(t, c.Close(), "%s: close", mode)
	}
}

func TestAddRejectsOversize(t *testing.T) {
	c := openCache(t, testDirectory(t), book.TextMode)
	defer c.Close()

	tx := makeTransaction(1)
	tx.Address = strings.Repeat("x", int(record.TransactionEntrySize))

	_, err := c.Add(tx)
	assert.Equal(t, fault.ErrEntryTooLarge, err, "oversize record")
	assert.Equal(t, uint32(0), c.Count(), "nothing added")
}

func TestHits(t *testing.T) {
	c := openCache(t, testDirectory(t), book.TextMode)
	defer c.Close()

	fill(t, c, 3)
	assert.Equal(t, uint64(0), c.Hits(1), "no hits after add")

	for n := 1; n <= 4; n += 1 {
		_, err := c.Get(1)
		assert.Nil(t, err, "get error")
		assert.Equal(t, uint64(n), c.Hits(1), "hits after %d gets", n)
	}
	assert.Equal(t, uint64(0), c.Hits(0), "other entry")
	assert.Equal(t, uint64(0), c.Hits(99), "unknown entry")
}

func TestUpdateRollback(t *testing.T) {
	c := openCache(t, testDirectory(t), book.TextMode)
	defer c.Close()

	added := fill(t, c, 5)

	changed := makeTransaction(100)
	err := c.Update(2, changed, false)
	assert.Nil(t, err, "update error")
	assert.Equal(t, 1, c.Dirty(), "one dirty")

	r, err := c.Get(2)
	assert.Nil(t, err, "get error")
	assert.Equal(t, changed, r, "edit visible before commit")

	err = c.Rollback()
	assert.Nil(t, err, "rollback error")
	assert.Equal(t, 0, c.Dirty(), "clean after rollback")

	r, err = c.Get(2)
	assert.Nil(t, err, "get error")
	assert.Equal(t, added[2], r, "original restored")

	err = c.Update(5, changed, false)
	assert.Equal(t, fault.ErrEntryNotFound, err, "update past end")
}

func TestUpdateCommit(t *testing.T) {
	directory := testDirectory(t)
	c := openCache(t, directory, book.BinaryMode)

	added := fill(t, c, 9)

	first := makeTransaction(201)
	second := makeTransaction(202)
	assert.Nil(t, c.Update(7, first, false), "update 7")
	assert.Nil(t, c.Update(3, second, false), "update 3")
	assert.Equal(t, 2, c.Dirty(), "two dirty")

	err := c.Commit()
	assert.Nil(t, err, "commit error")
	assert.Equal(t, 0, c.Dirty(), "clean after commit")

	// immediate write
	immediate := makeTransaction(203)
	assert.Nil(t, c.Update(0, immediate, true), "update with commit")
	assert.Equal(t, 0, c.Dirty(), "written entries are clean")

	// uncommitted edits are dropped by close
	assert.Nil(t, c.Update(8, makeTransaction(204), false), "update 8")
	assert.Nil(t, c.Close(), "close")

	c = openCache(t, directory, book.BinaryMode)
	defer c.Close()

	expected := append([]*record.Transaction{}, added...)
	expected[0] = immediate
	expected[3] = second
	expected[7] = first
	for id, tx := range expected {
		r, err := c.Get(uint32(id))
		assert.Nil(t, err, "get: %d", id)
		assert.Equal(t, tx, r, "entry: %d", id)
	}
}

func TestDirtyEntriesDoNotExpire(t *testing.T) {
	directory := testDirectory(t)
	b := book.New(transactionFormat(book.TextMode))
	assert.Nil(t, b.Open(testTitle, directory, true), "open")

	c, err := entry.New(b, transactionCodec(book.TextMode), time.Millisecond)
	assert.Nil(t, err, "cache error")
	defer c.Close()

	fill(t, c, 2)
	_, _ = c.Get(0)
	assert.Equal(t, uint64(1), c.Hits(0), "hit before expiry")

	changed := makeTransaction(300)
	assert.Nil(t, c.Update(1, changed, false), "update")

	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, uint64(0), c.Hits(0), "clean entry expired")
	assert.Equal(t, 1, c.Dirty(), "dirty entry kept")

	r, err := c.Get(1)
	assert.Nil(t, err, "get error")
	assert.Equal(t, changed, r, "edit still held")
}

func TestClosedBook(t *testing.T) {
	c := openCache(t, testDirectory(t), book.TextMode)
	fill(t, c, 1)
	assert.Nil(t, c.Close(), "close")

	_, err := c.Add(makeTransaction(1))
	assert.Equal(t, fault.ErrNotOpen, err, "add")
	assert.Equal(t, fault.ErrNotOpen, c.Update(0, makeTransaction(1), false), "update")
	assert.Equal(t, fault.ErrNotOpen, c.Commit(), "commit")
	assert.Equal(t, fault.ErrNotOpen, c.Rollback(), "rollback")
}

func TestCopy(t *testing.T) {
	for _, mode := range []book.Mode{book.TextMode, book.BinaryMode} {
		c := openCache(t, testDirectory(t), mode)

		fill(t, c, 3)

		r, err := c.Copy(1)
		assert.Nil(t, err, "%s: copy error", mode)
		assert.Equal(t, makeTransaction(1), r, "%s: copy contents", mode)

		r.Amount = 5
		cached, err := c.Get(1)
		assert.Nil(t, err, "%s: get error", mode)
		assert.Equal(t, makeTransaction(1).Amount, cached.Amount, "%s: cache untouched by copy edit", mode)

		// a staged change is what gets copied
		changed := makeTransaction(50)
		assert.Nil(t, c.Update(2, changed, false), "%s: update", mode)
		r, err = c.Copy(2)
		assert.Nil(t, err, "%s: copy staged", mode)
		assert.Equal(t, changed, r, "%s: staged contents", mode)
		assert.NotSame(t, changed, r, "%s: staged copy is distinct", mode)

		_, err = c.Copy(3)
		assert.Equal(t, fault.ErrEntryNotFound, err, "%s: copy past end", mode)

		assert.Nil(t, c.Rollback(), "%s: rollback", mode)
		assert.Nil(t, c.Close(), "%s: close", mode)
	}
}

func TestCloseDropsExpiringRecords(t *testing.T) {
	directory := testDirectory(t)
	b := book.New(transactionFormat(book.TextMode))
	assert.Nil(t, b.Open(testTitle, directory, true), "open")

	c, err := entry.New(b, transactionCodec(book.TextMode), time.Hour)
	assert.Nil(t, err, "cache error")

	fill(t, c, 3)
	_, _ = c.Get(0)
	assert.Less(t, 0, c.Cached(), "records held before close")

	assert.Nil(t, c.Close(), "close")
	assert.Equal(t, 0, c.Cached(), "records dropped by close")
	assert.Equal(t, uint64(0), c.Hits(0), "hits dropped by close")
}
