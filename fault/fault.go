// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrAlreadyOpen          = ExistsError("book is already open")
	ErrBookExists           = ExistsError("book file already exists")
	ErrBookNotFound         = NotFoundError("book file not found")
	ErrCatalogEntryNotFound = NotFoundError("catalog entry not found")
	ErrCorruptPage          = ProcessError("page links are inconsistent")
	ErrEntryNotFound        = NotFoundError("entry not found")
	ErrEntryTooLarge        = LengthError("entry exceeds entry size")
	ErrHeaderMismatch       = InvalidError("book header does not match")
	ErrInvalidCatalogRecord = RecordError("invalid catalog record")
	ErrInvalidConfiguration = InvalidError("configuration did not return a table")
	ErrInvalidCurrency      = InvalidError("invalid currency")
	ErrInvalidDataDirectory = InvalidError("invalid data directory")
	ErrInvalidEntriesCount  = InvalidError("invalid entries per page")
	ErrInvalidEntrySize     = InvalidError("invalid entry size")
	ErrInvalidEntryType     = InvalidError("invalid entry type")
	ErrInvalidExpiry        = InvalidError("invalid cache expiry")
	ErrInvalidHeader        = RecordError("invalid book header")
	ErrInvalidMode          = InvalidError("invalid book mode")
	ErrInvalidPageFooter    = RecordError("invalid page footer")
	ErrInvalidPageHeader    = RecordError("invalid page header")
	ErrInvalidRecord        = RecordError("invalid record")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrInvalidTitle         = InvalidError("invalid book title")
	ErrInvalidVolume        = InvalidError("invalid volume label")
	ErrModeMismatch         = InvalidError("codec mode does not match book mode")
	ErrNoCurrentEntry       = NotFoundError("no current entry")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrNotOpen              = NotFoundError("book is not open")
	ErrPageNotFound         = NotFoundError("page not found")
	ErrShortRead            = ProcessError("short read")
	ErrShortWrite           = ProcessError("short write")
	ErrTextContainsNull     = InvalidError("text record contains null byte")
	ErrTruncatedRecord      = RecordError("truncated record")
	ErrUserDataTooLarge     = LengthError("user data exceeds header space")
	ErrValueOverflow        = LengthError("value exceeds 64 bits")
	ErrVolumeExists         = ExistsError("archive volume already exists")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
