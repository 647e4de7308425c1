// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - owns the open books of one data directory
//
// every book opened through a registry is recorded in a leveldb
// catalog so that tools can list books without opening each file
//
// catalog layout:
//
//   key:   'B' + title
//   value: serial(16) | entryTypeId(4) | entrySize(4) | entriesPerPage(4) | mode(4) | path
//
// numbers are big endian
package registry
