// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"encoding/binary"
)

// sizes of the page structures
const (
	pageHeaderSize = 8 + 4
	pageFooterSize = 8
)

// a located page
type page struct {
	id           uint32
	offset       int64 // file position of the page header
	footerOffset int64 // file position of the page footer
	entryCount   uint32
}

// PageInfo - the header contents of a page
type PageInfo struct {
	ID           uint32
	Offset       int64
	FooterOffset int64
	EntryCount   uint32
}

func (p page) info() PageInfo {
	return PageInfo{
		ID:           p.id,
		Offset:       p.offset,
		FooterOffset: p.footerOffset,
		EntryCount:   p.entryCount,
	}
}

// page header: footer offset ++ entry count
func packPageHeader(footerOffset int64, entryCount uint32) []byte {
	buffer := make([]byte, pageHeaderSize)
	binary.LittleEndian.PutUint64(buffer[0:8], uint64(footerOffset))
	binary.LittleEndian.PutUint32(buffer[8:12], entryCount)
	return buffer
}

func unpackPageHeader(buffer []byte) (int64, uint32) {
	footerOffset := int64(binary.LittleEndian.Uint64(buffer[0:8]))
	entryCount := binary.LittleEndian.Uint32(buffer[8:12])
	return footerOffset, entryCount
}

// page footer: header offset
func packPageFooter(headerOffset int64) []byte {
	buffer := make([]byte, pageFooterSize)
	binary.LittleEndian.PutUint64(buffer, uint64(headerOffset))
	return buffer
}

func unpackPageFooter(buffer []byte) int64 {
	return int64(binary.LittleEndian.Uint64(buffer[0:8]))
}

// pageKey - ordering key of the page location index
type pageKey uint32

func (k pageKey) Compare(x interface{}) int {
	other := x.(pageKey)
	switch {
	case k < other:
		return -1
	case k > other:
		return +1
	default:
		return 0
	}
}
