// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - a 64 bit counter that is safe to share between
// go routines, used for cache hit statistics
package counter

import (
	"sync/atomic"
)

// Counter - the zero value is ready to use
type Counter struct {
	n uint64
}

// Increment - count one more, returns the new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64(&c.n, 1)
}

// Uint64 - current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64(&c.n)
}

