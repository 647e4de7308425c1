// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/ledgerbook/fault"
)

// Mode - how entries are serialised into their slots
type Mode uint32

// possible modes
const (
	TextMode   Mode = iota // NUL terminated text
	BinaryMode Mode = iota // length prefixed binary
	maximumMode
)

// IsValid - true for a known mode
func (m Mode) IsValid() bool {
	return m < maximumMode
}

// String - the mode name
func (m Mode) String() string {
	switch m {
	case TextMode:
		return "text"
	case BinaryMode:
		return "binary"
	default:
		return fmt.Sprintf("mode#%d", uint32(m))
	}
}

// ModeFromString - convert a mode name
func ModeFromString(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return TextMode, nil
	case "binary":
		return BinaryMode, nil
	default:
		return TextMode, fault.ErrInvalidMode
	}
}
