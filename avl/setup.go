// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Item - a key item must implement the Compare function
type Item interface {
	Compare(interface{}) int // -1, 0, +1 for less, equal, greater
}

// Node - a node in the tree
type Node struct {
	left    *Node
	right   *Node
	up      *Node
	key     Item
	value   interface{}
	balance int // right height minus left height: -1, 0, +1
}

// Tree - an ordered index, the zero value is not usable; call New
type Tree struct {
	root  *Node
	count int
}

// New - an empty tree
func New() *Tree {
	return &Tree{}
}

// IsEmpty - true if tree contains no data
func (tree *Tree) IsEmpty() bool {
	return nil == tree.root
}

// Count - number of distinct keys
func (tree *Tree) Count() int {
	return tree.count
}

// Key - the ordering part of a node
func (p *Node) Key() Item {
	return p.key
}

// Value - the data part of a node
func (p *Node) Value() interface{} {
	return p.value
}

// Depth - steps from the root, zero for the root itself
func (p *Node) Depth() uint {
	depth := uint(0)
	for q := p.up; nil != q; q = q.up {
		depth += 1
	}
	return depth
}
