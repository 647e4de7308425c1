// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package datasource - one record at a time editing over a book
//
// an Adapter owns a typed entry cache and an edit buffer holding the
// record at the current position:
//
//   Seek     load a record into the buffer
//   Commit   observers may amend the buffer, then it is written and
//            every other pending change is flushed
//   Discard  drop pending changes and reload the buffer
//
// registered observers are told of each of these events
package datasource
