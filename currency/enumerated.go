// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package currency - the coins that ledger records are kept in
package currency

import (
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerbook/fault"
)

// Currency - currency enumeration
type Currency uint64

// possible currency values
const (
	Nothing      Currency = iota // this must be the first value
	Bitcoin      Currency = iota
	Litecoin     Currency = iota
	Dogecoin     Currency = iota
	Dash         Currency = iota
	maximumValue Currency = iota // this must be the last value
	First        Currency = Nothing + 1
	Last         Currency = maximumValue - 1
)

// ticker symbol and full name, indexed by currency
var names = [maximumValue]struct {
	symbol string
	name   string
}{
	Nothing:  {"", ""},
	Bitcoin:  {"BTC", "bitcoin"},
	Litecoin: {"LTC", "litecoin"},
	Dogecoin: {"DOGE", "dogecoin"},
	Dash:     {"DASH", "dash"},
}

func toString(c Currency) ([]byte, error) {
	if c >= maximumValue {
		return []byte{}, fault.ErrInvalidCurrency
	}
	return []byte(names[c].symbol), nil
}

// symbol or name in any case, empty is Nothing
func fromString(in string) (Currency, error) {
	for c := Nothing; c < maximumValue; c += 1 {
		if strings.EqualFold(in, names[c].symbol) || strings.EqualFold(in, names[c].name) {
			return c, nil
		}
	}
	return Nothing, fault.ErrInvalidCurrency
}

// FromString - convert a symbol or name to a currency
func FromString(in string) (Currency, error) {
	return fromString(in)
}

// String - the ticker symbol
func (currency Currency) String() string {
	s, err := toString(currency)
	if nil != err {
		logger.Panicf("invalid currency enumeration: %d", currency)
	}
	return string(s)
}

// IsValid - a real coin, Nothing is not valid
func (currency Currency) IsValid() bool {
	return currency >= First && currency <= Last
}
