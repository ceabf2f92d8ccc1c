// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package dict implements the trie arena shared by the lz78 and lzw
// codecs: a flat, append-only table of entries where the children of
// any node form a binary search tree keyed by byte value. IDs are
// 1-based; 0 means "none" throughout, the same convention the huffman
// package uses for its node arena indices.
package dict

import (
	"math/bits"

	"github.com/dsnet/zc/internal/zlog"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "dict: " + string(e) }

// bytesPerEntry approximates the original C++ Element's in-memory
// footprint (four uint32 links plus a byte, rounded up) for the purpose
// of converting a bit-size budget into an entry-count capacity. It need
// not match any real struct layout exactly, only be used identically by
// encoder and decoder — the wire format carries no header recording it.
const bytesPerEntry = 20

type entry struct {
	b     byte
	prev  uint32
	next  uint32
	left  uint32
	right uint32
}

// Arena is the trie arena. The zero value is not usable; construct one
// with NewArena or NewSeededArena.
type Arena struct {
	entries   []entry
	sizeLimit int
	current   uint32
	seeded    int // number of seed entries preserved across Clear; 0 for LZ78
	log       zlog.Logger
}

// NewArena returns an empty arena capped at sizeLimit bytes, the LZ78
// configuration: the trie starts with no entries at all. log may be nil.
func NewArena(sizeLimit int, log zlog.Logger) *Arena {
	return &Arena{sizeLimit: sizeLimit, log: zlog.OrNop(log)}
}

// NewSeededArena returns an arena pre-populated with 256 single-byte
// root entries, one per byte value, the LZW configuration. The seeds
// are inserted in recursive-bisection order (see bitonicSeedOrder) so
// the resulting root-level BST comes out balanced, the same goal as
// PrepopulatedDictionary's bitonic constructor in the original
// implementation, though not its exact sequence. log may be nil.
func NewSeededArena(sizeLimit int, log zlog.Logger) *Arena {
	a := &Arena{sizeLimit: sizeLimit, log: zlog.OrNop(log)}
	a.seedRoots()
	a.seeded = len(a.entries)
	return a
}

// bitonicSeedOrder returns a permutation of 0..255 in preorder
// recursive bisection: the midpoint of the range first (127 for 0..255),
// then the same order for the lower half, then for the upper half.
// Inserting in this order keeps the root BST as shallow as a balanced
// tree over 256 keys.
func bitonicSeedOrder() []int {
	const values = 256
	seen := make([]bool, values)
	var order []int
	var bisect func(lo, hi int)
	bisect = func(lo, hi int) {
		if lo > hi {
			return
		}
		mid := lo + (hi-lo)/2
		if !seen[mid] {
			seen[mid] = true
			order = append(order, mid)
		}
		bisect(lo, mid-1)
		bisect(mid+1, hi)
	}
	bisect(0, values-1)
	return order
}

func (a *Arena) seedRoots() {
	a.entries = a.entries[:0]
	for _, v := range bitonicSeedOrder() {
		a.insertRoot(byte(v))
	}
}

// insertRoot BST-inserts a fresh top-level root entry keyed by b. Used
// only during seeding.
func (a *Arena) insertRoot(b byte) {
	id := uint32(len(a.entries) + 1)
	a.entries = append(a.entries, entry{b: b})
	if id == 1 {
		return
	}
	cur := uint32(1)
	for {
		e := a.entries[cur-1]
		if b < e.b {
			if e.left == 0 {
				a.entries[cur-1].left = id
				return
			}
			cur = e.left
		} else if b > e.b {
			if e.right == 0 {
				a.entries[cur-1].right = id
				return
			}
			cur = e.right
		} else {
			return // already present
		}
	}
}

// Size reports the arena's live entry count.
func (a *Arena) Size() int { return len(a.entries) }

// Empty reports whether the arena holds nothing beyond its seed prefix
// (all 256 seeds for LZW, nothing at all for LZ78).
func (a *Arena) Empty() bool { return len(a.entries) == a.seeded }

// Current returns the current match position (0 if none).
func (a *Arena) Current() uint32 { return a.current }

// Width returns the number of bits needed to encode an id given the
// arena's current entry count: ⌈log2(size+1)⌉, which is also exactly
// the smallest w such that size < 2^w. Both lz78 and lzw use this same
// function — lz78's "width before add_suffix" rule and lzw's "smallest
// power with dict_size < 2^w" rule are, worked out arithmetically, the
// identical formula, so a single implementation serves both codecs and
// guarantees they can never drift apart.
func (a *Arena) Width() uint {
	return uint(bits.Len32(uint32(len(a.entries))))
}

// SetCurrent forcibly repositions current; used by callers that track
// their own "previous id" bookkeeping (the LZW KwKwK path).
func (a *Arena) SetCurrent(id uint32) { a.current = id }

// childRoot returns the id of the first candidate to compare against
// when descending from parent (0 means "top-level trie roots").
func (a *Arena) childRoot(parent uint32) uint32 {
	if parent == 0 {
		if len(a.entries) == 0 {
			return 0
		}
		return 1
	}
	return a.entries[parent-1].next
}

// Step attempts to extend the current match by byte b, searching the
// children-BST of current (or the top-level roots if current == 0). On
// success it repositions current and returns true.
func (a *Arena) Step(b byte) bool {
	id := a.childRoot(a.current)
	for id != 0 {
		e := a.entries[id-1]
		switch {
		case b < e.b:
			id = e.left
		case b > e.b:
			id = e.right
		default:
			a.current = id
			return true
		}
	}
	return false
}

// AddSuffix appends a new entry whose parent is current, BST-inserting
// it into current's children (or the top-level roots). If capacity
// would be exceeded, Clear is invoked first and the insert is skipped
// entirely for this call (matching the original's "recover locally,
// this byte gets no new trie node" behavior — the next Step simply
// starts the match over). Afterward current is reset to 0.
func (a *Arena) AddSuffix(b byte) {
	defer func() { a.current = 0 }()

	if (len(a.entries)+1)*bytesPerEntry > a.sizeLimit {
		a.log.Debugf("dict: capacity reached at %d entries, clearing", len(a.entries))
		a.Clear()
		return
	}

	parent := a.current
	if parent != 0 && a.entries[parent-1].next == 0 {
		id := uint32(len(a.entries) + 1)
		a.entries = append(a.entries, entry{b: b, prev: parent})
		a.entries[parent-1].next = id
		return
	}

	root := a.childRoot(parent)
	if root == 0 {
		id := uint32(len(a.entries) + 1)
		a.entries = append(a.entries, entry{b: b, prev: parent})
		if parent != 0 {
			a.entries[parent-1].next = id
		}
		return
	}

	cur := root
	for {
		e := a.entries[cur-1]
		switch {
		case b < e.b:
			if e.left == 0 {
				id := uint32(len(a.entries) + 1)
				a.entries = append(a.entries, entry{b: b, prev: parent})
				a.entries[cur-1].left = id
				return
			}
			cur = e.left
		case b > e.b:
			if e.right == 0 {
				id := uint32(len(a.entries) + 1)
				a.entries = append(a.entries, entry{b: b, prev: parent})
				a.entries[cur-1].right = id
				return
			}
			cur = e.right
		default:
			return // already present
		}
	}
}

// StepBack is used by lz78 on flush: it reports the byte and parent id
// of the current match's last node, then walks current up to that
// parent.
func (a *Arena) StepBack() (b byte, parent uint32) {
	e := a.entries[a.current-1]
	b = e.b
	a.current = e.prev
	return b, a.current
}

// Jump collects the byte path from id to its trie root (root first,
// leaf last) and repositions current to id. It returns nil if id == 0.
func (a *Arena) Jump(id uint32) []byte {
	if id == 0 {
		return nil
	}
	var rev []byte
	for cur := id; cur != 0; {
		e := a.entries[cur-1]
		rev = append(rev, e.b)
		cur = e.prev
	}
	a.current = id
	out := make([]byte, len(rev))
	for i, b := range rev {
		out[len(rev)-1-i] = b
	}
	return out
}

// Clear resets the arena to its initial state: empty for LZ78, or
// exactly the 256 seeds (links zeroed) for LZW.
func (a *Arena) Clear() {
	if a.seeded == 0 {
		a.entries = a.entries[:0]
		a.current = 0
		return
	}
	a.seedRoots()
	a.seeded = len(a.entries)
	a.current = 0
}
