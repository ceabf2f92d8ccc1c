// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements the LZW dictionary codec: pure id codes over a
// trie arena (internal/dict) pre-populated with all 256 single-byte
// roots, so every code — including the very first — carries an id. Code
// width tracks dictionary population and is recomputed identically on
// both sides before each code is processed.
package lzw

import (
	"io"

	"github.com/dsnet/zc/internal/bitio"
	"github.com/dsnet/zc/internal/dict"
	"github.com/dsnet/zc/internal/zlog"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

// ErrCorrupt indicates the underlying stream ended in the middle of a
// code, or an id referenced an entry that cannot exist.
var ErrCorrupt error = Error("corrupt input")

type bitWriter interface {
	WriteBits(buf []byte, nbits uint) (int, error)
	Good() bool
}

type bitReader interface {
	ReadBits(buf []byte, nbits uint) (int, error)
	Good() bool
}

// Writer compresses bytes written to it via LZW dictionary coding.
type Writer struct {
	bw    bitWriter
	arena *dict.Arena
	log   zlog.Logger
	err   error
}

// NewWriter returns a Writer that emits codes to bw, backed by a trie
// arena pre-seeded with all 256 byte values and capped at sizeLimit
// bytes.
func NewWriter(bw bitWriter, sizeLimit int, log zlog.Logger) *Writer {
	log = zlog.OrNop(log)
	return &Writer{bw: bw, arena: dict.NewSeededArena(sizeLimit, log), log: log}
}

// Good reports whether the underlying writer can still accept codes.
func (w *Writer) Good() bool { return w.err == nil && w.bw.Good() }

// Write compresses buf.
func (w *Writer) Write(buf []byte) (int, error) {
	for i, b := range buf {
		if err := w.compressByte(b); err != nil {
			w.err = err
			return i, err
		}
	}
	return len(buf), nil
}

func (w *Writer) compressByte(b byte) error {
	if w.arena.Step(b) {
		return nil
	}
	// Emit the match that just failed to extend, at the width the
	// dictionary had before this byte grows it.
	if err := w.emitID(w.arena.Current()); err != nil {
		return err
	}
	w.arena.AddSuffix(b)
	// The seeded trie (freshly re-seeded too, if AddSuffix just reset it
	// on capacity) always contains every single-byte root, so this
	// always succeeds.
	w.arena.Step(b)
	return nil
}

// emitID writes id packed into w.arena.Width() bits, the width
// evaluated against the dictionary's current size before this code's
// corresponding add_suffix mutates it.
func (w *Writer) emitID(id uint32) error {
	width := w.arena.Width()
	buf := make([]byte, (width+7)/8)
	bitio.PackBits(buf, 0, uint64(id), width)
	if _, err := w.bw.WriteBits(buf, width); err != nil {
		return err
	}
	w.log.Debugf("lzw: emitted id=%d width=%d", id, width)
	return nil
}

// Close flushes the final pending match, if any.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.arena.Current() == 0 {
		return nil
	}
	if err := w.emitID(w.arena.Current()); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Reader decompresses an LZW code stream.
type Reader struct {
	br         bitReader
	arena      *dict.Arena
	log        zlog.Logger
	previousID uint32
	pending    []byte
	eof        bool
	failed     bool
	err        error
}

// NewReader returns a Reader that reads codes from br, rebuilding a trie
// arena pre-seeded with all 256 byte values — sizeLimit must match the
// Writer's sizeLimit exactly. The Reader adds each entry one code after
// the Writer does, so its arena is capped one entry (internal/dict's
// 20-byte per-entry budget) below sizeLimit: it then clears while
// handling the same code as the Writer, the code at which previousID
// restarts from 0.
func NewReader(br bitReader, sizeLimit int, log zlog.Logger) *Reader {
	log = zlog.OrNop(log)
	return &Reader{br: br, arena: dict.NewSeededArena(sizeLimit-20, log), log: log}
}

// Good reports whether a genuine failure has occurred. An ordinary,
// expected end of stream never flips this false — see lz78.Reader.Good
// for the same distinction against the original's own error flag.
func (r *Reader) Good() bool { return !r.failed }

// Read decompresses into buf, decoding additional codes as needed.
func (r *Reader) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		if len(r.pending) == 0 {
			if r.eof {
				if n > 0 {
					return n, nil
				}
				return 0, io.EOF
			}
			if r.failed {
				if n > 0 {
					return n, nil
				}
				return 0, r.err
			}
			out, err := r.decodeOne()
			if err != nil {
				if err == io.EOF {
					r.eof = true
				} else {
					r.failed = true
					r.err = err
				}
				if n > 0 {
					return n, nil
				}
				return 0, err
			}
			r.pending = out
		}
		c := copy(buf[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}
	return n, nil
}

// decodeOne reads and applies exactly one code, handling the classic
// KwKwK edge case (code.id == dict_size+1, the entry the encoder is
// defining right now but has not yet transmitted).
func (r *Reader) decodeOne() ([]byte, error) {
	dictSize := r.arena.Size()
	// Each entry is added here one code later than on the write side, so
	// while no capacity reset intervenes the writer's dictionary holds
	// dictSize+1 entries when it picks this code's width (for the first
	// code both hold the 256 seeds, and 256 and 257 give the same width).
	width := r.arena.Width()
	if (dictSize+1)&dictSize == 0 {
		width++
	}

	buf := make([]byte, (width+7)/8)
	n, err := r.br.ReadBits(buf, width)
	if err != nil {
		// Fewer than eight zero bits at the end are the padding of the
		// writer's last byte, not a truncated code.
		padding := err == io.EOF && n <= 1
		for _, v := range buf {
			padding = padding && v == 0
		}
		if padding {
			return nil, io.EOF
		}
		return nil, ErrCorrupt
	}
	id := uint32(bitio.UnpackBits(buf, 0, width))

	var out []byte
	reset := false
	switch {
	case int(id) <= dictSize && id != 0:
		out = r.arena.Jump(id)
		if r.previousID != 0 {
			// The new entry is a child of the *previous* code's node, not
			// of the node we just jumped to — reposition current before
			// adding it.
			r.arena.Jump(r.previousID)
			before := r.arena.Size()
			r.arena.AddSuffix(out[0])
			reset = r.arena.Size() < before
		}
	case int(id) == dictSize+1:
		prev := r.arena.Jump(r.previousID)
		out = append(append([]byte{}, prev...), prev[0])
		before := r.arena.Size()
		r.arena.AddSuffix(prev[0])
		reset = r.arena.Size() < before
	default:
		return nil, ErrCorrupt
	}

	if reset {
		r.previousID = 0
	} else {
		r.previousID = id
	}
	r.log.Debugf("lzw: decoded id=%d width=%d -> %d bytes", id, width, len(out))
	return out, nil
}
