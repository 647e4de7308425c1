// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"strings"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/currency/satoshi"
	"github.com/bitmark-inc/ledgerbook/fault"
)

var (
	ErrRequiredAmount  = fault.InvalidError("coin amount is required")
	ErrRequiredID      = fault.InvalidError("entry id is required")
	ErrRequiredRecord  = fault.InvalidError("record text is required")
	ErrRequiredTitle   = fault.InvalidError("book title is required")
	ErrRequiredType    = fault.InvalidError("record type is required")
	ErrRequiredMarket  = fault.InvalidError("market is required")
	ErrRequiredVolume  = fault.InvalidError("volume label is required")
	ErrUnknownType     = fault.InvalidError("unknown record type")
	ErrNotTransactions = fault.InvalidError("book does not hold transactions")
	ErrNotQuotes       = fault.InvalidError("book does not hold quotes")
	ErrNoQuote         = fault.NotFoundError("no quote for coin and market")
)

// title is required
func checkTitle(title string) (string, error) {
	if "" == title {
		return "", ErrRequiredTitle
	}
	return title, nil
}

// record type is required and must be known
func checkKind(name string) (kind, error) {
	if "" == name {
		return kind{}, ErrRequiredType
	}
	k, ok := kinds[name]
	if !ok {
		return kind{}, ErrUnknownType
	}
	return k, nil
}

// optional mode, falls back to the configured one
func checkMode(s string, fallback book.Mode) (book.Mode, error) {
	if "" == s {
		return fallback, nil
	}
	return book.ModeFromString(s)
}

// entry id is required and must fit a uint32
func checkID(id int) (uint32, error) {
	if id < 0 || int64(id) > int64(^uint32(0)) {
		return 0, ErrRequiredID
	}
	return uint32(id), nil
}

// volume is required
func checkVolume(volume string) (string, error) {
	if "" == volume {
		return "", ErrRequiredVolume
	}
	return volume, nil
}

// optional hex user data
func checkUserData(s string) ([]byte, error) {
	if "" == s {
		return nil, nil
	}
	return hex.DecodeString(s)
}

// amount is decimal coins with up to 8 places
func checkAmount(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return 0, ErrRequiredAmount
	}
	return satoshi.FromByteString([]byte(s)), nil
}
