// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entry - typed records over a book with a write-back cache
//
// Records are converted to and from entry bytes by a Codec chosen to
// match the book mode:
//
//   text    record text ++ 0x00, rest of the slot zero
//   binary  varint64(length) ++ record bytes, rest of the slot zero
//
// Decoded records are kept in a cache keyed by entry id.  An update
// marks the cached record dirty; dirty records are only written by
// Commit (or an update with commit set) and are never evicted.
// Appends are always written immediately.
package entry
