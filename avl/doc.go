// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - an AVL balanced tree keeping parent pointers so a
// node can report its depth
//
// Note: an individual tree is not thread safe, so either access only
//       in a single go routine or use mutex/rwmutex to restrict
//       access.
//
// Rebalancing follows the rotations described by Niklaus Wirth in
// Algorithms + Data Structures = Programs.
//
// Inserting an existing key overwrites its value.  Nodes are never
// removed; the tree is used as an ordered location index where the
// nearest known key on either side of a target (Floor/Ceiling) is
// the main query.
package avl
