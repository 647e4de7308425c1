// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerbook/book"
	"github.com/bitmark-inc/ledgerbook/currency"
	"github.com/bitmark-inc/ledgerbook/fault"
	"github.com/bitmark-inc/ledgerbook/record"
)

func sampleTransaction() *record.Transaction {
	return &record.Transaction{
		Coin:      currency.Litecoin,
		TxId:      "5fd8c7d2b1ab2e4f6f6b6a2d4c6b0ac1ed54b8c0d3a7a7eaf7e0b1c2d3e4f5a6",
		Amount:    25000000,
		Timestamp: 1577836800,
		Address:   "mjPkDNakVA4w4hJZ6WF7p8yKUV2merhyCM",
		Confirmed: true,
	}
}

func TestTransactionText(t *testing.T) {
	tx := sampleTransaction()

	text, err := tx.MarshalText()
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, "LTC,"+tx.TxId+",0.25000000,1577836800,"+tx.Address+",confirmed", string(text), "wrong text")

	decoded := record.NewTransaction()
	err = decoded.UnmarshalText(text)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, tx, decoded, "text round trip")
}

func TestTransactionTextPending(t *testing.T) {
	decoded := record.NewTransaction()
	err := decoded.UnmarshalText([]byte("btc,abc,1.5,-10,addr,pending"))
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, currency.Bitcoin, decoded.Coin, "wrong coin")
	assert.Equal(t, uint64(150000000), decoded.Amount, "wrong amount")
	assert.Equal(t, int64(-10), decoded.Timestamp, "wrong timestamp")
	assert.False(t, decoded.Confirmed, "should be pending")
}

func TestTransactionTextInvalid(t *testing.T) {
	tests := []struct {
		text string
		err  error
	}{
		{"", fault.ErrInvalidRecord},
		{"BTC,abc,1.0,0,addr", fault.ErrInvalidRecord},
		{"BTC,abc,1.0,0,addr,confirmed,extra", fault.ErrInvalidRecord},
		{"XYZ,abc,1.0,0,addr,confirmed", fault.ErrInvalidCurrency},
		{",abc,1.0,0,addr,confirmed", fault.ErrInvalidCurrency},
		{"BTC,abc,1.0.0,0,addr,confirmed", fault.ErrInvalidRecord},
		{"BTC,abc,1.000000001,0,addr,confirmed", fault.ErrInvalidRecord},
		{"BTC,abc,-1,0,addr,confirmed", fault.ErrInvalidRecord},
		{"BTC,abc,1,now,addr,confirmed", fault.ErrInvalidRecord},
		{"BTC,abc,1,0,addr,maybe", fault.ErrInvalidRecord},
	}

	for i, item := range tests {
		tx := record.NewTransaction()
		err := tx.UnmarshalText([]byte(item.text))
		assert.Equal(t, item.err, err, "%d: %q", i, item.text)
	}
}

func TestTransactionMarshalInvalid(t *testing.T) {
	tx := sampleTransaction()
	tx.Address = "a,b"
	_, err := tx.MarshalText()
	assert.Equal(t, fault.ErrInvalidRecord, err, "separator in field")

	tx = sampleTransaction()
	tx.Coin = currency.Nothing
	_, err = tx.MarshalText()
	assert.Equal(t, fault.ErrInvalidCurrency, err, "text: no coin")
	_, err = tx.MarshalBinary()
	assert.Equal(t, fault.ErrInvalidCurrency, err, "binary: no coin")
}

func TestTransactionBinary(t *testing.T) {
	tx := sampleTransaction()
	tx.Confirmed = false

	data, err := tx.MarshalBinary()
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, byte(currency.Litecoin), data[0], "coin is first")

	decoded := record.NewTransaction()
	err = decoded.UnmarshalBinary(data)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, tx, decoded, "binary round trip")

	err = decoded.UnmarshalBinary(data[:len(data)-2])
	assert.Equal(t, fault.ErrTruncatedRecord, err, "truncated")

	err = decoded.UnmarshalBinary(append(data, 0))
	assert.Equal(t, fault.ErrInvalidRecord, err, "trailing data")

	err = decoded.UnmarshalBinary(nil)
	assert.Equal(t, fault.ErrTruncatedRecord, err, "empty")
}

func TestQuote(t *testing.T) {
	q := &record.Quote{
		Coin:      currency.Bitcoin,
		Market:    "USD",
		Price:     2712345000000,
		Timestamp: 1600000000,
	}

	text, err := q.MarshalText()
	assert.Nil(t, err, "marshal text error")
	assert.Equal(t, "BTC,USD,27123.45000000,1600000000", string(text), "wrong text")

	decoded := record.NewQuote()
	err = decoded.UnmarshalText([]byte("bitcoin,usd,27123.45,1600000000"))
	assert.Nil(t, err, "unmarshal text error")
	assert.Equal(t, q, decoded, "text decode")

	data, err := q.MarshalBinary()
	assert.Nil(t, err, "marshal binary error")
	decoded = record.NewQuote()
	err = decoded.UnmarshalBinary(data)
	assert.Nil(t, err, "unmarshal binary error")
	assert.Equal(t, q, decoded, "binary round trip")

	value, err := q.Value(100000000)
	assert.Nil(t, err, "one coin")
	assert.Equal(t, uint64(2712345000000), value, "one coin")
	value, err = q.Value(25000000)
	assert.Nil(t, err, "quarter coin")
	assert.Equal(t, uint64(678086250000), value, "quarter coin")

	// a million coins at 27123.45 still fits
	value, err = q.Value(100000000000000)
	assert.Nil(t, err, "large amount")
	assert.Equal(t, uint64(2712345000000000000), value, "large amount")

	_, err = q.Value(^uint64(0))
	assert.Equal(t, fault.ErrValueOverflow, err, "overflow")

	q.Market = "us dollar"
	_, err = q.MarshalText()
	assert.Equal(t, fault.ErrInvalidRecord, err, "bad market")
}

func TestCoinTotal(t *testing.T) {
	total := record.NewCoinTotal()

	tx := sampleTransaction()
	assert.Nil(t, total.Apply(tx), "apply confirmed")
	tx.Confirmed = false
	tx.Amount = 1000
	assert.Nil(t, total.Apply(tx), "apply pending")

	expected := &record.CoinTotal{
		Coin:    currency.Litecoin,
		Balance: 25000000,
		Pending: 1000,
		Count:   2,
	}
	assert.Equal(t, expected, total, "totals")

	tx.Coin = currency.Bitcoin
	assert.Equal(t, fault.ErrInvalidCurrency, total.Apply(tx), "coin mismatch")
	assert.Equal(t, uint64(2), total.Count, "count unchanged")

	text, err := total.MarshalText()
	assert.Nil(t, err, "marshal text error")
	assert.Equal(t, "LTC,0.25000000,0.00001000,2", string(text), "wrong text")

	decoded := record.NewCoinTotal()
	assert.Nil(t, decoded.UnmarshalText(text), "unmarshal text error")
	assert.Equal(t, expected, decoded, "text round trip")

	data, err := total.MarshalBinary()
	assert.Nil(t, err, "marshal binary error")
	decoded = record.NewCoinTotal()
	assert.Nil(t, decoded.UnmarshalBinary(data), "unmarshal binary error")
	assert.Equal(t, expected, decoded, "binary round trip")
}

func TestCoinTotalUserData(t *testing.T) {
	empty, err := record.CoinTotalFromUserData(make([]byte, book.UserDataSize))
	assert.Nil(t, err, "empty user data")
	assert.Equal(t, &record.CoinTotal{}, empty, "zero totals")

	largest := &record.CoinTotal{
		Coin:    currency.Last,
		Balance: ^uint64(0),
		Pending: ^uint64(0),
		Count:   ^uint64(0),
	}
	data, err := largest.UserData()
	assert.Nil(t, err, "user data error")
	assert.LessOrEqual(t, len(data), book.UserDataSize, "must fit user data")

	area := make([]byte, book.UserDataSize)
	copy(area, data)
	decoded, err := record.CoinTotalFromUserData(area)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, largest, decoded, "user data round trip")
}
