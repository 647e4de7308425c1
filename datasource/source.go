// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datasource

// Source - basic record access
type Source[R any] interface {
	Open() error
	Close() error
	HasData() bool
	GetEntry(id uint32) (R, error)
	SetEntry(id uint32, record R) error
}

// Editor - a source with a current position and unit commit
type Editor[R any] interface {
	Source[R]
	Seek(id uint32) error
	Commit() error
	Discard() error
}

// Event - what happened to the edit buffer
type Event int

// possible events
const (
	SeekEvent    Event = iota // buffer loaded from a new position
	CommitEvent  Event = iota // buffer about to be written
	DiscardEvent Event = iota // buffer reloaded
)

// String - event name for logging
func (e Event) String() string {
	switch e {
	case SeekEvent:
		return "seek"
	case CommitEvent:
		return "commit"
	case DiscardEvent:
		return "discard"
	default:
		return "unknown"
	}
}

// Observer - receives edit buffer events
//
// on CommitEvent the record may be modified and the modified value is
// what gets written
type Observer[R any] interface {
	Update(event Event, id uint32, record *R)
}

// ObserverFunc - use a plain function as an Observer
type ObserverFunc[R any] func(event Event, id uint32, record *R)

// Update - call the function
func (f ObserverFunc[R]) Update(event Event, id uint32, record *R) {
	f(event, id, record)
}
