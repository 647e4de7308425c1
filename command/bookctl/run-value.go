// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerbook/currency"
	"github.com/bitmark-inc/ledgerbook/currency/satoshi"
	"github.com/bitmark-inc/ledgerbook/fault"
	"github.com/bitmark-inc/ledgerbook/record"
)

func runValue(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	coin, err := currency.FromString(c.String("coin"))
	if nil != err {
		return err
	}
	if currency.Nothing == coin {
		return fault.ErrInvalidCurrency
	}
	market := strings.ToUpper(strings.TrimSpace(c.String("market")))
	if "" == market {
		return ErrRequiredMarket
	}
	amount, err := checkAmount(strings.Join(c.Args(), ""))
	if nil != err {
		return err
	}

	e, err := m.registry.Lookup(title)
	if nil != err {
		return err
	}
	if record.QuoteType != e.EntryTypeID {
		return ErrNotQuotes
	}
	cache, err := openCache(m, e, record.NewQuote)
	if nil != err {
		return err
	}

	quote, id, ok := cache.Find(func(id uint32, q *record.Quote) bool {
		return coin == q.Coin && market == q.Market
	}, true)
	if !ok {
		return ErrNoQuote
	}
	value, err := quote.Value(amount)
	if nil != err {
		return err
	}

	if m.verbose {
		m.log("value: %q  quote: %d  amount: %d", title, id, amount)
	}
	result := struct {
		ID        uint32            `json:"id"`
		Coin      currency.Currency `json:"coin"`
		Market    string            `json:"market"`
		Amount    string            `json:"amount"`
		Price     string            `json:"price"`
		Value     string            `json:"value"`
		Timestamp int64             `json:"timestamp"`
	}{
		ID:        id,
		Coin:      coin,
		Market:    market,
		Amount:    satoshi.ToString(amount),
		Price:     satoshi.ToString(quote.Price),
		Value:     satoshi.ToString(value),
		Timestamp: quote.Timestamp,
	}
	return printJson(m.w, result)
}
