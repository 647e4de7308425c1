// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entry

import (
	"bytes"
	"encoding"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/fault"
	"github.com/bitmark-inc/ledgerbook/util"
)

// Codec - converts records to and from entry bytes
type Codec[R any] interface {
	Mode() book.Mode
	Encode(record R, entrySize uint32) ([]byte, error)
	Decode(data []byte) (R, error)
}

// TextRecord - a record with a text form
type TextRecord interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// BinaryRecord - a record with a binary form
type BinaryRecord interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// TextCodec - NUL terminated text entries
type TextCodec[R TextRecord] struct {
	newRecord func() R
}

// NewTextCodec - codec for text mode books, newRecord returns an empty record to decode into
func NewTextCodec[R TextRecord](newRecord func() R) *TextCodec[R] {
	return &TextCodec[R]{newRecord: newRecord}
}

// Mode - text books only
func (c *TextCodec[R]) Mode() book.Mode {
	return book.TextMode
}

// Encode - record text and its terminator must fit the slot
func (c *TextCodec[R]) Encode(record R, entrySize uint32) ([]byte, error) {
	text, err := record.MarshalText()
	if nil != err {
		return nil, err
	}
	if bytes.IndexByte(text, 0) >= 0 {
		return nil, fault.ErrTextContainsNull
	}
	if uint64(len(text))+1 > uint64(entrySize) {
		return nil, fault.ErrEntryTooLarge
	}
	return append(text, 0), nil
}

// Decode - text up to the first NUL
func (c *TextCodec[R]) Decode(data []byte) (R, error) {
	n := bytes.IndexByte(data, 0)
	if n < 0 {
		var empty R
		return empty, fault.ErrTruncatedRecord
	}
	record := c.newRecord()
	if err := record.UnmarshalText(data[:n]); nil != err {
		var empty R
		return empty, err
	}
	return record, nil
}

// BinaryCodec - length prefixed binary entries
type BinaryCodec[R BinaryRecord] struct {
	newRecord func() R
}

// NewBinaryCodec - codec for binary mode books, newRecord returns an empty record to decode into
func NewBinaryCodec[R BinaryRecord](newRecord func() R) *BinaryCodec[R] {
	return &BinaryCodec[R]{newRecord: newRecord}
}

// Mode - binary books only
func (c *BinaryCodec[R]) Mode() book.Mode {
	return book.BinaryMode
}

// Encode - length prefix and data must fit the slot
func (c *BinaryCodec[R]) Encode(record R, entrySize uint32) ([]byte, error) {
	data, err := record.MarshalBinary()
	if nil != err {
		return nil, err
	}
	packed := util.ToVarint64(uint64(len(data)))
	packed = append(packed, data...)
	if uint64(len(packed)) > uint64(entrySize) {
		return nil, fault.ErrEntryTooLarge
	}
	return packed, nil
}

// Decode - read the length prefix then the record
func (c *BinaryCodec[R]) Decode(data []byte) (R, error) {
	var empty R
	length, n := util.FromVarint64(data)
	if 0 == n || uint64(len(data)-n) < length {
		return empty, fault.ErrTruncatedRecord
	}
	record := c.newRecord()
	if err := record.UnmarshalBinary(data[n : n+int(length)]); nil != err {
		return empty, err
	}
	return record, nil
}
