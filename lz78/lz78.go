// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lz78 implements the LZ78 dictionary codec: each output code is
// either a literal byte on its own (the dictionary had no match to
// extend) or a literal byte plus the id of the longest prior match it
// extends, against a trie built in a fixed-capacity arena
// (internal/dict). The codec emits no header; decoding rebuilds the
// identical trie from the codes themselves.
package lz78

import (
	"io"

	"github.com/dsnet/zc/internal/bitio"
	"github.com/dsnet/zc/internal/dict"
	"github.com/dsnet/zc/internal/zlog"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "lz78: " + string(e) }

// ErrCorrupt indicates the underlying stream ended in the middle of a
// code, or otherwise violated the wire format.
var ErrCorrupt error = Error("corrupt input")

// bitWriter is the subset of bitio.Writer (or huffman.Encoder, when
// stacked directly beneath one) a Writer drives.
type bitWriter interface {
	WriteBits(buf []byte, nbits uint) (int, error)
	Good() bool
}

// bitReader is the read-side counterpart.
type bitReader interface {
	ReadBits(buf []byte, nbits uint) (int, error)
	Good() bool
}

// Writer compresses bytes written to it via LZ78 dictionary coding.
type Writer struct {
	bw    bitWriter
	arena *dict.Arena
	log   zlog.Logger
	err   error
}

// NewWriter returns a Writer that emits codes to bw, backed by a trie
// arena capped at sizeLimit bytes. log may be nil.
func NewWriter(bw bitWriter, sizeLimit int, log zlog.Logger) *Writer {
	log = zlog.OrNop(log)
	return &Writer{bw: bw, arena: dict.NewArena(sizeLimit, log), log: log}
}

// Good reports whether the underlying writer can still accept codes.
func (w *Writer) Good() bool { return w.err == nil && w.bw.Good() }

// Write compresses buf, extending the dictionary as it goes.
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
	if err := w.emitCode(b, w.arena.Current()); err != nil {
		return err
	}
	w.arena.AddSuffix(b)
	return nil
}

// emitCode writes one wire code: kind bit, literal byte, and (if id != 0)
// the id packed into w.arena.Width() bits, evaluated against the
// dictionary's current size — before whatever mutation the caller makes
// next, exactly matching the decoder's own pre-mutation width read.
func (w *Writer) emitCode(b byte, id uint32) error {
	width := w.arena.Width()
	kind := byte(0)
	if id != 0 {
		kind = 1
	}
	if _, err := w.bw.WriteBits([]byte{kind}, 1); err != nil {
		return err
	}
	if _, err := w.bw.WriteBits([]byte{b}, 8); err != nil {
		return err
	}
	if kind == 1 {
		buf := make([]byte, (width+7)/8)
		bitio.PackBits(buf, 0, uint64(id), width)
		if _, err := w.bw.WriteBits(buf, width); err != nil {
			return err
		}
	}
	w.log.Debugf("lz78: emitted code kind=%d id=%d byte=%q width=%d", kind, id, b, width)
	return nil
}

// Close flushes any unrepresented trailing match: if a partial match is
// still pending when the input ends, one step_back produces the final
// code that covers it. jump(parent) in the decoder recursively walks the
// entire prev-chain, so this single code — not a loop — reconstructs the
// complete remaining suffix regardless of how long the match was.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.arena.Current() == 0 {
		return nil
	}
	b, parent := w.arena.StepBack()
	if err := w.emitCode(b, parent); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Reader decompresses an LZ78 code stream.
type Reader struct {
	br      bitReader
	arena   *dict.Arena
	log     zlog.Logger
	pending []byte
	eof     bool
	failed  bool
	err     error
}

// NewReader returns a Reader that reads codes from br, rebuilding a trie
// arena capped at sizeLimit bytes — it must match the Writer's sizeLimit
// exactly, since the wire format carries no record of it.
func NewReader(br bitReader, sizeLimit int, log zlog.Logger) *Reader {
	log = zlog.OrNop(log)
	return &Reader{br: br, arena: dict.NewArena(sizeLimit, log), log: log}
}

// Good reports whether a genuine failure has occurred. Unlike the raw
// bitReader beneath it, Good stays true through an ordinary, expected
// end of stream — exactly as the original's own error flag, distinct
// from its underlying stream's eof-sensitive good(), never flips merely
// because the input ran out where it was supposed to.
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

// decodeOne reads and applies exactly one code, returning the bytes it
// produces. io.EOF signals a clean end of stream: either no bits remain,
// or only the all-zero padding (fewer than eight bits) that completes the
// writer's last byte. Any other error, including an EOF mid-code, is
// ErrCorrupt.
func (r *Reader) decodeOne() ([]byte, error) {
	var kindBuf [1]byte
	if _, err := r.br.ReadBits(kindBuf[:], 1); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, ErrCorrupt
	}
	kind := kindBuf[0] & 1

	var byteBuf [1]byte
	if _, err := r.br.ReadBits(byteBuf[:], 8); err != nil {
		// A zero kind bit followed by fewer than eight zero bits is the
		// padding of the writer's last byte, not a truncated code.
		if err == io.EOF && kind == 0 && byteBuf[0] == 0 {
			return nil, io.EOF
		}
		return nil, ErrCorrupt
	}
	b := byteBuf[0]

	var id uint32
	if kind == 1 {
		width := r.arena.Width()
		wbuf := make([]byte, (width+7)/8)
		if _, err := r.br.ReadBits(wbuf, width); err != nil {
			return nil, ErrCorrupt
		}
		id = uint32(bitio.UnpackBits(wbuf, 0, width))
	}

	var out []byte
	if id != 0 {
		out = append(out, r.arena.Jump(id)...)
	}
	out = append(out, b)
	r.arena.AddSuffix(b)
	r.log.Debugf("lz78: decoded code kind=%d id=%d byte=%q -> %d bytes", kind, id, b, len(out))
	return out, nil
}
