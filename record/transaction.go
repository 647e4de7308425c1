// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"strconv"

	"github.com/bitmark-inc/ledgerbook/currency"
	"github.com/bitmark-inc/ledgerbook/currency/satoshi"
	"github.com/bitmark-inc/ledgerbook/fault"
)

// entry type identifiers stored in book headers
const (
	TransactionType uint32 = 0x54584e31 // "TXN1"
	QuoteType       uint32 = 0x51544531 // "QTE1"
	CoinTotalType   uint32 = 0x544f5431 // "TOT1"
)

// entry sizes that hold typical records
const (
	TransactionEntrySize uint32 = 192
	QuoteEntrySize       uint32 = 64
	CoinTotalEntrySize   uint32 = 48
)

const (
	confirmedText = "confirmed"
	pendingText   = "pending"
)

// Transaction - a single payment seen on a coin's chain
type Transaction struct {
	Coin      currency.Currency `json:"coin"`
	TxId      string            `json:"txId"`
	Amount    uint64            `json:"amount"`
	Timestamp int64             `json:"timestamp"`
	Address   string            `json:"address"`
	Confirmed bool              `json:"confirmed"`
}

// NewTransaction - empty record for decoding
func NewTransaction() *Transaction {
	return &Transaction{}
}

// MarshalText - comma separated fields
func (tx *Transaction) MarshalText() ([]byte, error) {
	coin, err := formatCoin(tx.Coin)
	if nil != err {
		return nil, err
	}
	if err := checkField(tx.TxId); nil != err {
		return nil, err
	}
	if err := checkField(tx.Address); nil != err {
		return nil, err
	}
	state := pendingText
	if tx.Confirmed {
		state = confirmedText
	}
	return joinFields(
		coin,
		[]byte(tx.TxId),
		[]byte(satoshi.ToString(tx.Amount)),
		[]byte(strconv.FormatInt(tx.Timestamp, 10)),
		[]byte(tx.Address),
		[]byte(state),
	), nil
}

// UnmarshalText - parse comma separated fields
func (tx *Transaction) UnmarshalText(text []byte) error {
	fields, err := splitFields(text, 6)
	if nil != err {
		return err
	}
	coin, err := parseCoin(fields[0])
	if nil != err {
		return err
	}
	amount, err := parseAmount(fields[2])
	if nil != err {
		return err
	}
	timestamp, err := parseTimestamp(fields[3])
	if nil != err {
		return err
	}

	confirmed := false
	switch fields[5] {
	case confirmedText:
		confirmed = true
	case pendingText:
	default:
		return fault.ErrInvalidRecord
	}

	*tx = Transaction{
		Coin:      coin,
		TxId:      fields[1],
		Amount:    amount,
		Timestamp: timestamp,
		Address:   fields[4],
		Confirmed: confirmed,
	}
	return nil
}

// MarshalBinary - pack fields in order
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	if !tx.Coin.IsValid() {
		return nil, fault.ErrInvalidCurrency
	}
	if len(tx.TxId) > maximumStringLength || len(tx.Address) > maximumStringLength {
		return nil, fault.ErrInvalidRecord
	}
	buffer := appendUint64(nil, tx.Coin.Uint64())
	buffer = appendString(buffer, tx.TxId)
	buffer = appendUint64(buffer, tx.Amount)
	buffer = appendUint64(buffer, uint64(tx.Timestamp))
	buffer = appendString(buffer, tx.Address)
	if tx.Confirmed {
		buffer = appendUint64(buffer, 1)
	} else {
		buffer = appendUint64(buffer, 0)
	}
	return buffer, nil
}

// UnmarshalBinary - unpack fields in order
func (tx *Transaction) UnmarshalBinary(data []byte) error {
	u := &unpacker{buffer: data}
	result := Transaction{
		Coin:      u.coin(),
		TxId:      u.string(),
		Amount:    u.uint64(),
		Timestamp: int64(u.uint64()),
		Address:   u.string(),
	}
	switch u.uint64() {
	case 0:
	case 1:
		result.Confirmed = true
	default:
		if nil == u.err {
			u.err = fault.ErrInvalidRecord
		}
	}
	if err := u.finish(); nil != err {
		return err
	}
	*tx = result
	return nil
}
