// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"github.com/bitmark-inc/ledgerbook/fault"
)

// UserData - copy of the free-form header payload
func (b *Book) UserData() []byte {
	data := make([]byte, UserDataSize)
	copy(data, b.header.userData[:])
	return data
}

// SetUserData - replace the free-form header payload and persist it
//
// shorter data is zero padded
func (b *Book) SetUserData(data []byte) error {
	if nil == b.file {
		return fault.ErrNotOpen
	}
	if len(data) > UserDataSize {
		return fault.ErrUserDataTooLarge
	}

	previous := b.header.userData
	b.header.userData = [UserDataSize]byte{}
	copy(b.header.userData[:], data)

	if err := b.writeHeader(); nil != err {
		b.header.userData = previous
		return err
	}
	return nil
}
