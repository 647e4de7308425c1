// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerbook/currency"
	"github.com/bitmark-inc/ledgerbook/datasource"
	"github.com/bitmark-inc/ledgerbook/entry"
	"github.com/bitmark-inc/ledgerbook/record"
	"github.com/bitmark-inc/ledgerbook/registry"
)

// an adapter editing a catalogued book outside the registry
func openAdapter[R ledgerRecord](m *metadata, e registry.CatalogEntry, newRecord func() R) *datasource.Adapter[R] {
	return datasource.New(datasource.Config[R]{
		Title:     e.Title,
		Directory: m.registry.Directory(),
		Format:    catalogFormat(e),
		Codec:     codecFor(e.Mode, newRecord),
		Expiry:    m.config.Expiry(),
	})
}

// parse, append and commit one record
func appendRecord[R ledgerRecord](a *datasource.Adapter[R], text string, newRecord func() R) (uint32, error) {
	r := newRecord()
	if err := r.UnmarshalText([]byte(text)); nil != err {
		return 0, err
	}

	if err := a.Open(); nil != err {
		return 0, err
	}
	defer a.Close()

	id, err := a.Append(r)
	if nil != err {
		return 0, err
	}
	if err := a.Commit(); nil != err {
		_ = a.Discard()
		return 0, err
	}
	return id, nil
}

// stamp transactions added without a time
func stampTransaction(event datasource.Event, id uint32, tx **record.Transaction) {
	if datasource.CommitEvent == event && 0 == (*tx).Timestamp {
		(*tx).Timestamp = time.Now().Unix()
	}
}

// rebuild the running totals held in a transaction book's user data
func recomputeTotals(c *entry.Cache[*record.Transaction]) (*record.CoinTotal, error) {
	totals := record.NewCoinTotal()
	var err error
	c.Each(func(id uint32, tx *record.Transaction) bool {
		err = totals.Apply(tx)
		return nil == err
	}, false)
	if nil != err {
		return nil, err
	}
	data, err := totals.UserData()
	if nil != err {
		return nil, err
	}
	if err := c.Book().SetUserData(data); nil != err {
		return nil, err
	}
	return totals, nil
}

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	text := strings.TrimSpace(strings.Join(c.Args(), " "))
	if "" == text {
		return ErrRequiredRecord
	}
	e, err := m.registry.Lookup(title)
	if nil != err {
		return err
	}

	var id uint32
	switch e.EntryTypeID {
	case record.TransactionType:
		a := openAdapter(m, e, record.NewTransaction)
		a.Register(datasource.ObserverFunc[*record.Transaction](stampTransaction))

		// totals follow the committed buffer
		totals := record.NewCoinTotal()
		var applyErr error
		a.Register(datasource.ObserverFunc[*record.Transaction](func(event datasource.Event, id uint32, tx **record.Transaction) {
			switch event {
			case datasource.SeekEvent:
				t, err := record.CoinTotalFromUserData(a.Cache().Book().UserData())
				if nil != err {
					applyErr = err
					return
				}
				totals = t
			case datasource.CommitEvent:
				if nil == applyErr {
					applyErr = totals.Apply(*tx)
				}
			}
		}))
		a.Register(datasource.ObserverFunc[*record.Transaction](func(event datasource.Event, id uint32, tx **record.Transaction) {
			if datasource.CommitEvent != event || nil != applyErr {
				return
			}
			data, err := totals.UserData()
			if nil == err {
				err = a.Cache().Book().SetUserData(data)
			}
			applyErr = err
		}))

		id, err = appendRecord(a, text, record.NewTransaction)
		if nil == err && nil != applyErr {
			err = applyErr
		}
	case record.QuoteType:
		id, err = appendRecord(openAdapter(m, e, record.NewQuote), text, record.NewQuote)
	case record.CoinTotalType:
		id, err = appendRecord(openAdapter(m, e, record.NewCoinTotal), text, record.NewCoinTotal)
	default:
		err = ErrUnknownType
	}
	if nil != err {
		return err
	}

	if m.verbose {
		m.log("add: %q  entry: %d", title, id)
	}
	result := struct {
		Title string `json:"title"`
		ID    uint32 `json:"id"`
	}{
		Title: title,
		ID:    id,
	}
	return printJson(m.w, result)
}

func runConfirm(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	id, err := checkID(c.Int("id"))
	if nil != err {
		return err
	}
	e, err := m.registry.Lookup(title)
	if nil != err {
		return err
	}
	if record.TransactionType != e.EntryTypeID {
		return ErrNotTransactions
	}

	a := openAdapter(m, e, record.NewTransaction)
	a.Register(datasource.ObserverFunc[*record.Transaction](func(event datasource.Event, id uint32, tx **record.Transaction) {
		if datasource.CommitEvent == event {
			confirmed := **tx
			confirmed.Confirmed = true
			*tx = &confirmed
		}
	}))

	if err := a.Open(); nil != err {
		return err
	}
	defer a.Close()

	if err := a.Seek(id); nil != err {
		return err
	}
	if err := a.Commit(); nil != err {
		_ = a.Discard()
		return err
	}
	totals, err := recomputeTotals(a.Cache())
	if nil != err {
		return err
	}
	_, tx, _ := a.Current()

	result := struct {
		Title       string              `json:"title"`
		ID          uint32              `json:"id"`
		Transaction *record.Transaction `json:"transaction"`
		CoinTotal   *record.CoinTotal   `json:"coinTotal"`
	}{
		Title:       title,
		ID:          id,
		Transaction: tx,
		CoinTotal:   totals,
	}
	return printJson(m.w, result)
}

func runRecompute(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	e, err := m.registry.Lookup(title)
	if nil != err {
		return err
	}
	if record.TransactionType != e.EntryTypeID {
		return ErrNotTransactions
	}
	cache, err := openCache(m, e, record.NewTransaction)
	if nil != err {
		return err
	}
	totals, err := recomputeTotals(cache)
	if nil != err {
		return err
	}
	return printJson(m.w, totals)
}

// print the text form of matching records
func listRecords[R ledgerRecord](m *metadata, e registry.CatalogEntry, newRecord func() R, coin currency.Currency, forward bool, count int) error {
	cache, err := openCache(m, e, newRecord)
	if nil != err {
		return err
	}

	n := 0
	cache.Each(func(id uint32, r R) bool {
		if currency.Nothing != coin && coin != coinOf(r) {
			return true
		}
		text, err := r.MarshalText()
		if nil != err {
			fmt.Fprintf(m.e, "%d: error: %s\n", id, err)
			return true
		}
		fmt.Fprintf(m.w, "%d: %s\n", id, text)
		n += 1
		return 0 == count || n < count
	}, !forward)
	return nil
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	coin := currency.Nothing
	if s := c.String("coin"); "" != s {
		coin, err = currency.FromString(s)
		if nil != err {
			return err
		}
	}
	forward := c.Bool("forward")
	count := c.Int("count")

	e, err := m.registry.Lookup(title)
	if nil != err {
		return err
	}
	switch e.EntryTypeID {
	case record.TransactionType:
		return listRecords(m, e, record.NewTransaction, coin, forward, count)
	case record.QuoteType:
		return listRecords(m, e, record.NewQuote, coin, forward, count)
	case record.CoinTotalType:
		return listRecords(m, e, record.NewCoinTotal, coin, forward, count)
	default:
		return ErrUnknownType
	}
}

// print one record as JSON
func getRecord[R ledgerRecord](m *metadata, e registry.CatalogEntry, newRecord func() R, id uint32) error {
	cache, err := openCache(m, e, newRecord)
	if nil != err {
		return err
	}
	r, err := cache.Get(id)
	if nil != err {
		return err
	}
	return printJson(m.w, r)
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	title, err := checkTitle(c.String("title"))
	if nil != err {
		return err
	}
	id, err := checkID(c.Int("id"))
	if nil != err {
		return err
	}
	e, err := m.registry.Lookup(title)
	if nil != err {
		return err
	}
	switch e.EntryTypeID {
	case record.TransactionType:
		return getRecord(m, e, record.NewTransaction, id)
	case record.QuoteType:
		return getRecord(m, e, record.NewQuote, id)
	case record.CoinTotalType:
		return getRecord(m, e, record.NewCoinTotal, id)
	default:
		return ErrUnknownType
	}
}
