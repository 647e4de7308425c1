// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package book

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/ledgerbook/fault"
)

// VolumeFileName - the file holding an archived volume of a book
func VolumeFileName(title string, directory string, volume string) string {
	return filepath.Join(directory, title+"."+volume+FileExtension)
}

// Archive - copy the live book to a labelled volume file
//
// the copy carries the volume label, the live book is unchanged;
// returns the name of the archive file
func (b *Book) Archive(volume string) (string, error) {
	if nil == b.file {
		return "", fault.ErrNotOpen
	}
	if !validLabel(volume, false) {
		return "", fault.ErrInvalidVolume
	}

	fileName := VolumeFileName(b.header.title, filepath.Dir(b.path), volume)
	out, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return "", fault.ErrVolumeExists
	} else if nil != err {
		return "", err
	}

	ok := false
	defer func() {
		if !ok {
			out.Close()
			os.Remove(fileName)
		}
	}()

	info, err := b.file.Stat()
	if nil != err {
		return "", err
	}
	if _, err := io.Copy(out, io.NewSectionReader(b.file, 0, info.Size())); nil != err {
		return "", err
	}

	h := b.header
	h.volume = volume
	if _, err := out.WriteAt(h.pack(), 0); nil != err {
		return "", err
	}
	if err := out.Sync(); nil != err {
		return "", err
	}
	if err := out.Close(); nil != err {
		return "", err
	}
	ok = true

	b.log.Infof("archive: %q  volume: %q  file: %q", b.header.title, volume, fileName)
	return fileName, nil
}

// OpenVolume - open an archived volume of a book
func (b *Book) OpenVolume(title string, directory string, volume string) error {
	if nil != b.file {
		return fault.ErrAlreadyOpen
	}
	if !validLabel(title, false) {
		return fault.ErrInvalidTitle
	}
	if !validLabel(volume, false) {
		return fault.ErrInvalidVolume
	}

	fileName := VolumeFileName(title, directory, volume)
	info, err := os.Stat(fileName)
	if os.IsNotExist(err) || (nil == err && 0 == info.Size()) {
		return fault.ErrBookNotFound
	} else if nil != err {
		return err
	}
	return b.open(fileName, title)
}
