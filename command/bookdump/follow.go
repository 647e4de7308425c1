// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// refreshes per second while following
const refreshRate = 4

// watches a book file for appends
type follower struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
	remove   chan struct{}
	done     chan struct{}
	limiter  *rate.Limiter
}

func newFollower(targetFile string, log *logger.L) (*follower, error) {
	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file %s error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	return &follower{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		change:   make(chan struct{}, 1),
		remove:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		limiter:  rate.NewLimiter(refreshRate, 1),
	}, nil
}

// Start - begin forwarding file events
func (f *follower) Start() error {
	err := f.watcher.Add(f.filePath)
	if nil != err {
		f.log.Errorf("watcher add error: %s, abort", err)
		return err
	}

	go func() {
		for {
			select {
			case <-f.done:
				return
			case err, ok := <-f.watcher.Errors:
				if !ok {
					return
				}
				f.log.Warnf("watcher error: %s", err)
			case event, ok := <-f.watcher.Events:
				if !ok {
					return
				}
				f.log.Debugf("file event: %v", event)

				if fileRemoved(event) {
					f.log.Errorf("file %s removed, stop", f.filePath)
					f.sendEvent(f.remove, "remove")
					return
				}
				if fileChanged(event) {
					f.sendEvent(f.change, "change")
				}
			}
		}
	}()

	return nil
}

// Stop - end the watch
func (f *follower) Stop() {
	close(f.done)
	_ = f.watcher.Close()
}

// wait for the next refresh slot, writes arriving meanwhile collapse
// into the single pending change event
func (f *follower) throttle() {
	r := f.limiter.Reserve()
	if !r.OK() {
		return
	}
	time.Sleep(r.Delay())
}

// a pending event already covers any number of writes
func (f *follower) sendEvent(ch chan<- struct{}, name string) {
	select {
	case ch <- struct{}{}:
	default:
		f.log.Debugf("event channel %s full, discard event", name)
	}
}

func fileRemoved(event fsnotify.Event) bool {
	return "" == event.Name ||
		event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func fileChanged(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write
}
