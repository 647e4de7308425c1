// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datasource

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/entry"
	"github.com/bitmark-inc/ledgerbook/fault"
)

const logTag = "datasource"

// Config - the book an adapter opens
type Config[R any] struct {
	Title     string
	Directory string
	Format    book.Format
	Codec     entry.Codec[R]
	Expiry    time.Duration
	Create    bool
}

// Adapter - Editor over a typed entry cache
type Adapter[R any] struct {
	config    Config[R]
	cache     *entry.Cache[R]
	observers []Observer[R]

	current uint32
	buffer  R
	loaded  bool

	log *logger.L
}

// New - an adapter for a book, not yet opened
func New[R any](config Config[R]) *Adapter[R] {
	return &Adapter[R]{
		config:    config,
		observers: make([]Observer[R], 0),
		log:       logger.New(logTag),
	}
}

// Register - add an observer, called in registration order
func (a *Adapter[R]) Register(o Observer[R]) {
	a.observers = append(a.observers, o)
}

// Open - open the book and attach a cache
func (a *Adapter[R]) Open() error {
	if nil != a.cache {
		return fault.ErrAlreadyOpen
	}

	b := book.New(a.config.Format)
	err := b.Open(a.config.Title, a.config.Directory, a.config.Create)
	if nil != err {
		a.log.Errorf("open: %q  error: %s", a.config.Title, err)
		return err
	}
	c, err := entry.New(b, a.config.Codec, a.config.Expiry)
	if nil != err {
		a.log.Errorf("open: %q  cache error: %s", a.config.Title, err)
		_ = b.Close()
		return err
	}

	a.cache = c
	a.clearBuffer()
	a.log.Infof("open: %q  entries: %d", a.config.Title, c.Count())
	return nil
}

// Close - release the book, pending changes are lost
func (a *Adapter[R]) Close() error {
	if nil == a.cache {
		return fault.ErrNotOpen
	}
	err := a.cache.Close()
	a.cache = nil
	a.clearBuffer()
	return err
}

// Cache - the underlying typed cache, nil when closed
func (a *Adapter[R]) Cache() *entry.Cache[R] {
	return a.cache
}

// HasData - true if open with at least one entry
func (a *Adapter[R]) HasData() bool {
	return nil != a.cache && a.cache.Count() > 0
}

// GetEntry - read any record
func (a *Adapter[R]) GetEntry(id uint32) (R, error) {
	if nil == a.cache {
		var empty R
		return empty, fault.ErrNotOpen
	}
	return a.cache.Get(id)
}

// SetEntry - stage a change to any record until Commit
//
// changing the current record also replaces the edit buffer
func (a *Adapter[R]) SetEntry(id uint32, record R) error {
	if nil == a.cache {
		return fault.ErrNotOpen
	}
	if err := a.cache.Update(id, record, false); nil != err {
		return err
	}
	if a.loaded && id == a.current {
		buffer, err := a.cache.Copy(id)
		if nil != err {
			return err
		}
		a.buffer = buffer
	}
	return nil
}

// Append - add a record and make it current
func (a *Adapter[R]) Append(record R) (uint32, error) {
	if nil == a.cache {
		return 0, fault.ErrNotOpen
	}
	id, err := a.cache.Add(record)
	if nil != err {
		return 0, err
	}
	if err := a.Seek(id); nil != err {
		return 0, err
	}
	return id, nil
}

// Seek - load a private copy of a record into the edit buffer
func (a *Adapter[R]) Seek(id uint32) error {
	if nil == a.cache {
		return fault.ErrNotOpen
	}
	record, err := a.cache.Copy(id)
	if nil != err {
		return err
	}
	a.current = id
	a.buffer = record
	a.loaded = true
	a.notify(SeekEvent)
	return nil
}

// Current - position and contents of the edit buffer
func (a *Adapter[R]) Current() (uint32, R, bool) {
	return a.current, a.buffer, a.loaded
}

// Commit - let observers amend the buffer, then write it together
// with every staged change
func (a *Adapter[R]) Commit() error {
	if nil == a.cache {
		return fault.ErrNotOpen
	}
	if !a.loaded {
		return fault.ErrNoCurrentEntry
	}

	a.notify(CommitEvent)

	if err := a.cache.Update(a.current, a.buffer, false); nil != err {
		return err
	}
	if err := a.cache.Commit(); nil != err {
		a.log.Errorf("commit: entry: %d  error: %s", a.current, err)
		return err
	}
	return nil
}

// Discard - drop staged changes and reload the buffer
func (a *Adapter[R]) Discard() error {
	if nil == a.cache {
		return fault.ErrNotOpen
	}
	if !a.loaded {
		return fault.ErrNoCurrentEntry
	}
	if err := a.cache.Rollback(); nil != err {
		return err
	}
	record, err := a.cache.Copy(a.current)
	if nil != err {
		return err
	}
	a.buffer = record
	a.notify(DiscardEvent)
	return nil
}

func (a *Adapter[R]) notify(event Event) {
	a.log.Debugf("%s: entry: %d  observers: %d", event, a.current, len(a.observers))
	for _, o := range a.observers {
		o.Update(event, a.current, &a.buffer)
	}
}

func (a *Adapter[R]) clearBuffer() {
	var empty R
	a.current = 0
	a.buffer = empty
	a.loaded = false
}
