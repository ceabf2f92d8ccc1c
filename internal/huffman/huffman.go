// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import "github.com/dsnet/zc/internal/zlog"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "huffman: " + string(e) }

// bitWriter is the subset of bitio.Writer an Encoder drives.
type bitWriter interface {
	WriteBits(buf []byte, nbits uint) (int, error)
	Good() bool
}

// bitReader is the subset of bitio.Reader a Decoder drives.
type bitReader interface {
	ReadBits(buf []byte, nbits uint) (int, error)
	Good() bool
}

// Encoder maps each input byte onto the current code for that byte in an
// adaptive Huffman tree, then grows the tree to account for it. The
// first occurrence of any byte costs its NYT path plus a raw 8-bit
// escape; every later occurrence costs only its (generally much
// shorter) tree path.
type Encoder struct {
	w    bitWriter
	tree *tree
	log  zlog.Logger
}

// NewEncoder returns an Encoder that writes codes to w. Every Encoder
// starts from the same empty tree, and must be paired with a Decoder
// that does too — the tree carries no header, it is entirely
// reconstructed from the bits already seen. log may be nil.
func NewEncoder(w bitWriter, log zlog.Logger) *Encoder {
	return &Encoder{w: w, tree: newTree(), log: zlog.OrNop(log)}
}

// Good reports whether the underlying writer can still accept codes.
func (e *Encoder) Good() bool { return e.w.Good() }

// Encode writes the code for b and updates the tree to reflect it.
func (e *Encoder) Encode(b byte) error {
	t := e.tree
	n := t.byte2node[b]
	if n == 0 {
		path, nbits := t.codePath(t.null)
		if _, err := e.w.WriteBits(path, nbits); err != nil {
			return err
		}
		if _, err := e.w.WriteBits([]byte{b}, 8); err != nil {
			return err
		}
		t.insert(b)
		e.log.Debugf("huffman: encoded NYT byte=%q", b)
		return nil
	}
	path, nbits := t.codePath(n)
	if _, err := e.w.WriteBits(path, nbits); err != nil {
		return err
	}
	t.update(n)
	e.log.Debugf("huffman: encoded byte=%q path_bits=%d", b, nbits)
	return nil
}

// Decoder is the read-side counterpart to Encoder.
type Decoder struct {
	r    bitReader
	tree *tree
	log  zlog.Logger
}

// NewDecoder returns a Decoder reading codes from r. log may be nil.
func NewDecoder(r bitReader, log zlog.Logger) *Decoder {
	return &Decoder{r: r, tree: newTree(), log: zlog.OrNop(log)}
}

// Good reports whether the underlying reader can still supply codes.
func (d *Decoder) Good() bool { return d.r.Good() }

// Decode reads and returns the next byte, updating the tree to reflect
// it exactly as Encode did on the write side.
func (d *Decoder) Decode() (byte, error) {
	t := d.tree
	cur := t.root
	for !t.isLeaf(cur) {
		var buf [1]byte
		if _, err := d.r.ReadBits(buf[:], 1); err != nil {
			return 0, err
		}
		if buf[0]&1 != 0 {
			cur = t.nodes[cur].right
		} else {
			cur = t.nodes[cur].left
		}
	}
	if cur == t.null {
		var buf [1]byte
		if _, err := d.r.ReadBits(buf[:], 8); err != nil {
			return 0, err
		}
		b := buf[0]
		t.insert(b)
		d.log.Debugf("huffman: decoded NYT byte=%q", b)
		return b, nil
	}
	b := t.nodes[cur].b
	t.update(cur)
	d.log.Debugf("huffman: decoded byte=%q", b)
	return b, nil
}

// ByteSink adapts an Encoder to io.Writer, Huffman-encoding each byte
// written to it. This is how an Encoder plugs in as the underlying sink
// of an inner bitio.Writer, completing the dictionary-codec → BitStream
// → AdaptiveHuffman → BitStream → underlying-sink nesting the pipeline
// glue calls for: the dictionary codec's bit-packed output becomes whole
// bytes at the inner BitStream, and each of those bytes is what gets
// entropy-coded here.
type ByteSink struct{ Enc *Encoder }

func (s ByteSink) Write(buf []byte) (int, error) {
	for i, b := range buf {
		if err := s.Enc.Encode(b); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

// Good reports the wrapped Encoder's health, letting a bitio.Writer
// built on top of a ByteSink report accurate Good() results.
func (s ByteSink) Good() bool { return s.Enc.Good() }

// ByteSource is the read-side counterpart to ByteSink, adapting a
// Decoder to io.Reader by decoding one byte per Read call slot.
type ByteSource struct{ Dec *Decoder }

func (s ByteSource) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		b, err := s.Dec.Decode()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		buf[n] = b
		n++
	}
	return n, nil
}

// Good reports the wrapped Decoder's health.
func (s ByteSource) Good() bool { return s.Dec.Good() }
