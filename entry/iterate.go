// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entry

// Filter - test applied to each record during iteration
type Filter[R any] func(id uint32, record R) bool

// Each - visit records newest first (or oldest first when backward is
// false) until the filter returns false
//
// entries that cannot be loaded are skipped
func (c *Cache[R]) Each(filter Filter[R], backward bool) {
	count := c.book.EntryCount()
	for n := uint32(0); n < count; n += 1 {
		id := n
		if backward {
			id = count - 1 - n
		}
		record, err := c.Get(id)
		if nil != err {
			c.log.Debugf("each: skip entry: %d  error: %s", id, err)
			continue
		}
		if !filter(id, record) {
			return
		}
	}
}

// Find - the first record accepted by the filter
func (c *Cache[R]) Find(filter Filter[R], backward bool) (R, uint32, bool) {
	var result R
	resultID := uint32(0)
	found := false
	c.Each(func(id uint32, record R) bool {
		if filter(id, record) {
			result = record
			resultID = id
			found = true
			return false
		}
		return true
	}, backward)
	return result, resultID, found
}

// List - every record accepted by the filter, in visiting order
func (c *Cache[R]) List(filter Filter[R], backward bool) []R {
	results := make([]R, 0)
	c.Each(func(id uint32, record R) bool {
		if filter(id, record) {
			results = append(results, record)
		}
		return true
	}, backward)
	return results
}
