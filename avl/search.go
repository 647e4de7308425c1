// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Search - find a specific item, nil if not present
func (tree *Tree) Search(key Item) *Node {
	p := tree.root
	for nil != p {
		switch p.key.Compare(key) {
		case +1: // p.key > key
			p = p.left
		case -1: // p.key < key
			p = p.right
		default:
			return p
		}
	}
	return nil
}

// Floor - the node with the highest key that is <= key
func (tree *Tree) Floor(key Item) *Node {
	var best *Node
	p := tree.root
	for nil != p {
		switch p.key.Compare(key) {
		case +1:
			p = p.left
		case -1:
			best = p
			p = p.right
		default:
			return p
		}
	}
	return best
}

// Ceiling - the node with the lowest key that is >= key
func (tree *Tree) Ceiling(key Item) *Node {
	var best *Node
	p := tree.root
	for nil != p {
		switch p.key.Compare(key) {
		case +1:
			best = p
			p = p.left
		case -1:
			p = p.right
		default:
			return p
		}
	}
	return best
}
