// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package book - a durable paginated store of fixed width entries
//
// A book is a single file holding a header record followed by a
// chain of pages.  Every page has the same capacity and each entry
// slot has the same width, both fixed when the book is created.
//
// Notes:
// 1. all integers are little endian
// 2. offsets are absolute file positions (int64)
// 3. entry ids are uint32, assigned only by appending
//
// File layout:
//
//   [0                 ] header record (HeaderSize bytes)
//   [HeaderSize        ] page 0
//   [...               ] page N starts right after the footer of page N-1
//
// Header record:
//
//   magic "BOOK"             4
//   title                   32  NUL padded, at most 31 characters
//   volume                  32  NUL padded, blank for the live file
//   mode                     4  0 = text, 1 = binary
//   serial number           16  UUID
//   entry type id            4
//   entry size               4
//   entries per page         4
//   page count               4
//   entry count              4
//   user data               44  opaque, owned by the caller
//
// Page:
//
//   header  footer offset(8) ++ entry count(4)
//   body    entries per page × entry size, zero filled on allocation
//   footer  header offset(8)
//
// The header forward pointer and the footer back pointer allow a page
// to be reached by stepping from either end of the file.  Located
// pages are remembered in an in-memory index so that later lookups
// start from the nearest known page.
//
// A Book is not safe for concurrent use; callers must serialise
// access.
package book
