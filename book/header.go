// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"bytes"
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/bitmark-inc/ledgerbook/fault"
)

// sizes of the header record fields
const (
	magicSize        = 4
	labelSize        = 32
	serialNumberSize = 16

	// UserDataSize - bytes of free-form caller data in the header
	UserDataSize = 44

	// HeaderSize - total bytes of the header record
	HeaderSize = magicSize + 2*labelSize + 4 + serialNumberSize + 5*4 + UserDataSize

	// MaximumLabelLength - longest title or volume (one byte is kept for the terminator)
	MaximumLabelLength = labelSize - 1
)

// field offsets inside the header record
const (
	offsetMagic          = 0
	offsetTitle          = offsetMagic + magicSize
	offsetVolume         = offsetTitle + labelSize
	offsetMode           = offsetVolume + labelSize
	offsetSerialNumber   = offsetMode + 4
	offsetEntryTypeID    = offsetSerialNumber + serialNumberSize
	offsetEntrySize      = offsetEntryTypeID + 4
	offsetEntriesPerPage = offsetEntrySize + 4
	offsetPageCount      = offsetEntriesPerPage + 4
	offsetEntryCount     = offsetPageCount + 4
	offsetUserData       = offsetEntryCount + 4
)

var magic = []byte{'B', 'O', 'O', 'K'}

// in-memory copy of the header record
type header struct {
	title          string
	volume         string
	mode           Mode
	serialNumber   uuid.UUID
	entryTypeID    uint32
	entrySize      uint32
	entriesPerPage uint32
	pageCount      uint32
	entryCount     uint32
	userData       [UserDataSize]byte
}

// pack the header into its fixed on-disk form
func (h *header) pack() []byte {
	buffer := make([]byte, HeaderSize)

	copy(buffer[offsetMagic:], magic)
	copy(buffer[offsetTitle:offsetTitle+MaximumLabelLength], h.title)
	copy(buffer[offsetVolume:offsetVolume+MaximumLabelLength], h.volume)
	binary.LittleEndian.PutUint32(buffer[offsetMode:], uint32(h.mode))
	copy(buffer[offsetSerialNumber:], h.serialNumber[:])
	binary.LittleEndian.PutUint32(buffer[offsetEntryTypeID:], h.entryTypeID)
	binary.LittleEndian.PutUint32(buffer[offsetEntrySize:], h.entrySize)
	binary.LittleEndian.PutUint32(buffer[offsetEntriesPerPage:], h.entriesPerPage)
	binary.LittleEndian.PutUint32(buffer[offsetPageCount:], h.pageCount)
	binary.LittleEndian.PutUint32(buffer[offsetEntryCount:], h.entryCount)
	copy(buffer[offsetUserData:], h.userData[:])

	return buffer
}

// unpack a header record read from disk
func (h *header) unpack(buffer []byte) error {
	if len(buffer) < HeaderSize {
		return fault.ErrInvalidHeader
	}
	if !bytes.Equal(magic, buffer[offsetMagic:offsetMagic+magicSize]) {
		return fault.ErrInvalidHeader
	}

	h.title = label(buffer[offsetTitle : offsetTitle+labelSize])
	h.volume = label(buffer[offsetVolume : offsetVolume+labelSize])
	h.mode = Mode(binary.LittleEndian.Uint32(buffer[offsetMode:]))
	copy(h.serialNumber[:], buffer[offsetSerialNumber:offsetSerialNumber+serialNumberSize])
	h.entryTypeID = binary.LittleEndian.Uint32(buffer[offsetEntryTypeID:])
	h.entrySize = binary.LittleEndian.Uint32(buffer[offsetEntrySize:])
	h.entriesPerPage = binary.LittleEndian.Uint32(buffer[offsetEntriesPerPage:])
	h.pageCount = binary.LittleEndian.Uint32(buffer[offsetPageCount:])
	h.entryCount = binary.LittleEndian.Uint32(buffer[offsetEntryCount:])
	copy(h.userData[:], buffer[offsetUserData:offsetUserData+UserDataSize])

	if !h.mode.IsValid() || 0 == h.entrySize || 0 == h.entriesPerPage {
		return fault.ErrInvalidHeader
	}
	return nil
}

// text up to the first NUL
func label(buffer []byte) string {
	if n := bytes.IndexByte(buffer, 0); n >= 0 {
		buffer = buffer[:n]
	}
	return string(buffer)
}

// a label is printable ASCII without path separators
func validLabel(s string, allowEmpty bool) bool {
	if 0 == len(s) {
		return allowEmpty
	}
	if len(s) > MaximumLabelLength {
		return false
	}
	for _, c := range []byte(s) {
		if c < ' ' || c > '~' || '/' == c || '\\' == c {
			return false
		}
	}
	return true
}
