// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"github.com/bitmark-inc/ledgerbook/fault"
)

// Uint64 - numeric form for binary records
func (currency Currency) Uint64() uint64 {
	return uint64(currency)
}

// FromUint64 - numeric form back to a currency, Nothing included
func FromUint64(n uint64) (Currency, error) {
	c := Currency(n)
	if c >= maximumValue {
		return Nothing, fault.ErrInvalidCurrency
	}
	return c, nil
}

// MarshalText - the ticker symbol, empty for Nothing
func (currency Currency) MarshalText() ([]byte, error) {
	return toString(currency)
}

// UnmarshalText - accepts a symbol or full name in any case
func (currency *Currency) UnmarshalText(s []byte) error {
	c, err := fromString(string(s))
	if nil != err {
		return err
	}
	*currency = c
	return nil
}
