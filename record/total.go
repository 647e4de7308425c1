// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"strconv"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/currency"
	"github.com/bitmark-inc/ledgerbook/currency/satoshi"
	"github.com/bitmark-inc/ledgerbook/fault"
)

// CoinTotal - running totals of the transactions in a coin book
type CoinTotal struct {
	Coin    currency.Currency `json:"coin"`
	Balance uint64            `json:"balance"`
	Pending uint64            `json:"pending"`
	Count   uint64            `json:"count"`
}

// NewCoinTotal - empty record for decoding
func NewCoinTotal() *CoinTotal {
	return &CoinTotal{}
}

// Apply - add a transaction to the totals
func (t *CoinTotal) Apply(tx *Transaction) error {
	if currency.Nothing == t.Coin {
		t.Coin = tx.Coin
	}
	if tx.Coin != t.Coin {
		return fault.ErrInvalidCurrency
	}
	if tx.Confirmed {
		t.Balance += tx.Amount
	} else {
		t.Pending += tx.Amount
	}
	t.Count += 1
	return nil
}

// MarshalText - comma separated fields
func (t *CoinTotal) MarshalText() ([]byte, error) {
	coin, err := formatCoin(t.Coin)
	if nil != err {
		return nil, err
	}
	return joinFields(
		coin,
		[]byte(satoshi.ToString(t.Balance)),
		[]byte(satoshi.ToString(t.Pending)),
		[]byte(strconv.FormatUint(t.Count, 10)),
	), nil
}

// UnmarshalText - parse comma separated fields
func (t *CoinTotal) UnmarshalText(text []byte) error {
	fields, err := splitFields(text, 4)
	if nil != err {
		return err
	}
	coin, err := parseCoin(fields[0])
	if nil != err {
		return err
	}
	balance, err := parseAmount(fields[1])
	if nil != err {
		return err
	}
	pending, err := parseAmount(fields[2])
	if nil != err {
		return err
	}
	count, err := strconv.ParseUint(fields[3], 10, 64)
	if nil != err {
		return fault.ErrInvalidRecord
	}
	*t = CoinTotal{
		Coin:    coin,
		Balance: balance,
		Pending: pending,
		Count:   count,
	}
	return nil
}

// MarshalBinary - four Varint64 values
func (t *CoinTotal) MarshalBinary() ([]byte, error) {
	if !t.Coin.IsValid() {
		return nil, fault.ErrInvalidCurrency
	}
	buffer := appendUint64(nil, t.Coin.Uint64())
	buffer = appendUint64(buffer, t.Balance)
	buffer = appendUint64(buffer, t.Pending)
	buffer = appendUint64(buffer, t.Count)
	return buffer, nil
}

// UnmarshalBinary - exactly four Varint64 values
func (t *CoinTotal) UnmarshalBinary(data []byte) error {
	u := &unpacker{buffer: data}
	result := t.unpack(u)
	if err := u.finish(); nil != err {
		return err
	}
	*t = result
	return nil
}

func (t *CoinTotal) unpack(u *unpacker) CoinTotal {
	return CoinTotal{
		Coin:    u.coin(),
		Balance: u.uint64(),
		Pending: u.uint64(),
		Count:   u.uint64(),
	}
}

// UserData - packed form for a book's user data area
func (t *CoinTotal) UserData() ([]byte, error) {
	data, err := t.MarshalBinary()
	if nil != err {
		return nil, err
	}
	if len(data) > book.UserDataSize {
		return nil, fault.ErrUserDataTooLarge
	}
	return data, nil
}

// CoinTotalFromUserData - unpack totals from a book's user data area
//
// an all zero area gives empty totals
func CoinTotalFromUserData(data []byte) (*CoinTotal, error) {
	empty := true
	for _, b := range data {
		if 0 != b {
			empty = false
			break
		}
	}
	if empty {
		return &CoinTotal{}, nil
	}

	t := &CoinTotal{}
	u := &unpacker{buffer: data}
	result := t.unpack(u)
	if nil != u.err {
		return nil, u.err
	}
	*t = result
	return t, nil
}
