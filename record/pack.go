// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/bitmark-inc/ledgerbook/currency"
	"github.com/bitmark-inc/ledgerbook/currency/satoshi"
	"github.com/bitmark-inc/ledgerbook/fault"
	"github.com/bitmark-inc/ledgerbook/util"
)

// limit on any single string field
const maximumStringLength = 1024

const fieldSeparator = ","

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer []byte, s string) []byte {
	buffer = util.AppendVarint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// append a Varint64 to buffer
func appendUint64(buffer []byte, value uint64) []byte {
	return util.AppendVarint64(buffer, value)
}

// sequential reader over a packed record
//
// the first failure is kept and all later reads return zero values
type unpacker struct {
	buffer []byte
	n      int
	err    error
}

func (u *unpacker) uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, count := util.FromVarint64(u.buffer[u.n:])
	if 0 == count {
		u.err = fault.ErrTruncatedRecord
		return 0
	}
	u.n += count
	return value
}

func (u *unpacker) string() string {
	if nil != u.err {
		return ""
	}
	length, count := util.ClippedVarint64(u.buffer[u.n:], 0, maximumStringLength)
	if 0 == count {
		u.err = fault.ErrTruncatedRecord
		return ""
	}
	u.n += count
	if u.n+length > len(u.buffer) {
		u.err = fault.ErrTruncatedRecord
		return ""
	}
	s := string(u.buffer[u.n : u.n+length])
	u.n += length
	return s
}

func (u *unpacker) coin() currency.Currency {
	value := u.uint64()
	if nil != u.err {
		return currency.Nothing
	}
	c, err := currency.FromUint64(value)
	if nil != err {
		u.err = err
		return currency.Nothing
	}
	if !c.IsValid() {
		u.err = fault.ErrInvalidCurrency
	}
	return c
}

// check the whole buffer was consumed
func (u *unpacker) finish() error {
	if nil != u.err {
		return u.err
	}
	if u.n != len(u.buffer) {
		return fault.ErrInvalidRecord
	}
	return nil
}

// split text into exactly count fields
func splitFields(text []byte, count int) ([]string, error) {
	fields := strings.Split(string(text), fieldSeparator)
	if len(fields) != count {
		return nil, fault.ErrInvalidRecord
	}
	return fields, nil
}

// string fields must not contain the separator
func checkField(s string) error {
	if strings.Contains(s, fieldSeparator) || len(s) > maximumStringLength {
		return fault.ErrInvalidRecord
	}
	return nil
}

func parseCoin(s string) (currency.Currency, error) {
	c, err := currency.FromString(s)
	if nil != err {
		return currency.Nothing, err
	}
	if !c.IsValid() {
		return currency.Nothing, fault.ErrInvalidCurrency
	}
	return c, nil
}

func formatCoin(c currency.Currency) ([]byte, error) {
	if !c.IsValid() {
		return nil, fault.ErrInvalidCurrency
	}
	return c.MarshalText()
}

// decimal amount: digits with at most one decimal point and at most
// eight decimal places
func parseAmount(s string) (uint64, error) {
	if "" == s || strings.Count(s, ".") > 1 {
		return 0, fault.ErrInvalidRecord
	}
	for _, c := range s {
		if '.' != c && (c < '0' || c > '9') {
			return 0, fault.ErrInvalidRecord
		}
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > satoshi.Decimals {
		return 0, fault.ErrInvalidRecord
	}
	return satoshi.FromByteString([]byte(s)), nil
}

func parseTimestamp(s string) (int64, error) {
	t, err := strconv.ParseInt(s, 10, 64)
	if nil != err {
		return 0, fault.ErrInvalidRecord
	}
	return t, nil
}

// join fields with the separator
func joinFields(fields ...[]byte) []byte {
	return bytes.Join(fields, []byte(fieldSeparator))
}
