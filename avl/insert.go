// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Insert - insert a new node into the tree, or overwrite the value
// of an existing key
//
// returns true if a new node was added
func (tree *Tree) Insert(key Item, value interface{}) bool {
	root, added, _ := insert(tree.root, key, value)
	root.up = nil
	tree.root = root
	if added {
		tree.count += 1
	}
	return added
}

// insert below p, giving the new sub-tree root, whether a node was
// added and whether the sub-tree grew taller
func insert(p *Node, key Item, value interface{}) (*Node, bool, bool) {
	if nil == p {
		return &Node{key: key, value: value}, true, true
	}

	added := false
	grown := false
	switch p.key.Compare(key) {
	case +1: // p.key > key
		p.left, added, grown = insert(p.left, key, value)
		p.left.up = p
		if grown {
			p, grown = leftGrown(p)
		}
	case -1: // p.key < key
		p.right, added, grown = insert(p.right, key, value)
		p.right.up = p
		if grown {
			p, grown = rightGrown(p)
		}
	default:
		p.value = value
	}
	return p, added, grown
}

// the left sub-tree of p is one level taller
func leftGrown(p *Node) (*Node, bool) {
	switch p.balance {
	case +1:
		p.balance = 0
		return p, false
	case 0:
		p.balance = -1
		return p, true
	}

	l := p.left
	if -1 == l.balance {
		// single LL rotation
		p.balance = 0
		l.balance = 0
		return rotateRight(p), false
	}

	// double LR rotation
	lr := l.right
	switch lr.balance {
	case -1:
		l.balance, p.balance = 0, +1
	case +1:
		l.balance, p.balance = -1, 0
	default:
		l.balance, p.balance = 0, 0
	}
	lr.balance = 0
	p.left = rotateLeft(l)
	return rotateRight(p), false
}

// the right sub-tree of p is one level taller
func rightGrown(p *Node) (*Node, bool) {
	switch p.balance {
	case -1:
		p.balance = 0
		return p, false
	case 0:
		p.balance = +1
		return p, true
	}

	r := p.right
	if +1 == r.balance {
		// single RR rotation
		p.balance = 0
		r.balance = 0
		return rotateLeft(p), false
	}

	// double RL rotation
	rl := r.left
	switch rl.balance {
	case +1:
		r.balance, p.balance = 0, -1
	case -1:
		r.balance, p.balance = +1, 0
	default:
		r.balance, p.balance = 0, 0
	}
	rl.balance = 0
	p.right = rotateRight(r)
	return rotateLeft(p), false
}

// lift the left child of p into its place
func rotateRight(p *Node) *Node {
	l := p.left
	p.left = l.right
	if nil != p.left {
		p.left.up = p
	}
	l.right = p
	l.up = p.up
	p.up = l
	return l
}

// lift the right child of p into its place
func rotateLeft(p *Node) *Node {
	r := p.right
	p.right = r.left
	if nil != p.right {
		p.right.up = p
	}
	r.left = p
	r.up = p.up
	p.up = r
	return r
}
