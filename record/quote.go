// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/bitmark-inc/ledgerbook/currency"
	"github.com/bitmark-inc/ledgerbook/currency/satoshi"
	"github.com/bitmark-inc/ledgerbook/fault"
)

const satoshiPerCoin = 100000000

// Quote - a cached market price for a coin
//
// Price is in units of Market with 8 decimal places
type Quote struct {
	Coin      currency.Currency `json:"coin"`
	Market    string            `json:"market"`
	Price     uint64            `json:"price"`
	Timestamp int64             `json:"timestamp"`
}

// NewQuote - empty record for decoding
func NewQuote() *Quote {
	return &Quote{}
}

// market symbols are short upper case words e.g. "USD"
func validMarket(s string) bool {
	if 0 == len(s) || len(s) > 8 {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// MarshalText - comma separated fields
func (q *Quote) MarshalText() ([]byte, error) {
	coin, err := formatCoin(q.Coin)
	if nil != err {
		return nil, err
	}
	if !validMarket(q.Market) {
		return nil, fault.ErrInvalidRecord
	}
	return joinFields(
		coin,
		[]byte(q.Market),
		[]byte(satoshi.ToString(q.Price)),
		[]byte(strconv.FormatInt(q.Timestamp, 10)),
	), nil
}

// UnmarshalText - parse comma separated fields
func (q *Quote) UnmarshalText(text []byte) error {
	fields, err := splitFields(text, 4)
	if nil != err {
		return err
	}
	coin, err := parseCoin(fields[0])
	if nil != err {
		return err
	}
	market := strings.ToUpper(fields[1])
	if !validMarket(market) {
		return fault.ErrInvalidRecord
	}
	price, err := parseAmount(fields[2])
	if nil != err {
		return err
	}
	timestamp, err := parseTimestamp(fields[3])
	if nil != err {
		return err
	}
	*q = Quote{
		Coin:      coin,
		Market:    market,
		Price:     price,
		Timestamp: timestamp,
	}
	return nil
}

// MarshalBinary - pack fields in order
func (q *Quote) MarshalBinary() ([]byte, error) {
	if !q.Coin.IsValid() {
		return nil, fault.ErrInvalidCurrency
	}
	if !validMarket(q.Market) {
		return nil, fault.ErrInvalidRecord
	}
	buffer := appendUint64(nil, q.Coin.Uint64())
	buffer = appendString(buffer, q.Market)
	buffer = appendUint64(buffer, q.Price)
	buffer = appendUint64(buffer, uint64(q.Timestamp))
	return buffer, nil
}

// UnmarshalBinary - unpack fields in order
func (q *Quote) UnmarshalBinary(data []byte) error {
	u := &unpacker{buffer: data}
	result := Quote{
		Coin:      u.coin(),
		Market:    u.string(),
		Price:     u.uint64(),
		Timestamp: int64(u.uint64()),
	}
	if err := u.finish(); nil != err {
		return err
	}
	if !validMarket(result.Market) {
		return fault.ErrInvalidRecord
	}
	*q = result
	return nil
}

// Value - coin amount converted to market units, 8 decimal places
//
// the full 128 bit product is divided so only a result beyond 64 bits
// is an error
func (q *Quote) Value(amount uint64) (uint64, error) {
	hi, lo := bits.Mul64(amount, q.Price)
	if hi >= satoshiPerCoin {
		return 0, fault.ErrValueOverflow
	}
	value, _ := bits.Div64(hi, lo, satoshiPerCoin)
	return value, nil
}
