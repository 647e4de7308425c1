// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the ledger records kept in books
//
// every record has two forms:
//
//   text:   comma separated fields, amounts as decimal coin values
//           e.g. "BTC,<txid>,0.25000000,1577836800,<address>,confirmed"
//
//   binary: Varint64 numbers and Varint64(length) prefixed strings
//           in field order
//
// Amounts are fixed point integers with 8 decimal places.
package record
