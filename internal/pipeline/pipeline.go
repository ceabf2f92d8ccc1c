// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package pipeline assembles the full compression stack described by
// the component design: a dictionary codec (lz78 or lzw) writes its bit
// stream into an inner BitStream, whose underlying sink is an adaptive
// Huffman encoder that entropy-codes each resulting byte into an outer
// BitStream around the real destination. Decompression mirrors this
// nesting in reverse. cmd/lz78c and cmd/lzwc are thin front-ends over
// this package; it exists on its own so the composed pipeline can be
// tested without going through a binary.
package pipeline

import (
	"io"

	"github.com/dsnet/zc/internal/bitio"
	"github.com/dsnet/zc/internal/huffman"
	"github.com/dsnet/zc/internal/zlog"
	"github.com/dsnet/zc/lz78"
	"github.com/dsnet/zc/lzw"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "pipeline: " + string(e) }

// Codec selects which dictionary variant backs the pipeline.
type Codec int

const (
	LZ78 Codec = iota
	LZW
)

func (c Codec) String() string {
	if c == LZW {
		return "lzw"
	}
	return "lz78"
}

// Suffix returns the compressed-file suffix for c, matching the
// original's file naming (".lz78" / ".lzw").
func (c Codec) Suffix() string { return "." + c.String() }

type dictWriter interface {
	io.Writer
	Close() error
	Good() bool
}

type dictReader interface {
	io.Reader
	Good() bool
}

func newDictWriter(c Codec, bw interface {
	WriteBits(buf []byte, nbits uint) (int, error)
	Good() bool
}, sizeLimit int, log zlog.Logger) dictWriter {
	if c == LZW {
		return lzw.NewWriter(bw, sizeLimit, log)
	}
	return lz78.NewWriter(bw, sizeLimit, log)
}

func newDictReader(c Codec, br interface {
	ReadBits(buf []byte, nbits uint) (int, error)
	Good() bool
}, sizeLimit int, log zlog.Logger) dictReader {
	if c == LZW {
		return lzw.NewReader(br, sizeLimit, log)
	}
	return lz78.NewReader(br, sizeLimit, log)
}

// Compress reads raw bytes from src, dictionary-codes them with c,
// Huffman-codes the result, and writes the final bit stream to dst. It
// reports the pipeline's good() at every stage on return: a non-nil
// error, or a false Good, means the output is not trustworthy past the
// last fully flushed code.
func Compress(c Codec, dst io.Writer, src io.Reader, sizeLimit int, log zlog.Logger) error {
	log = zlog.OrNop(log)
	outer := bitio.NewWriter(dst)
	enc := huffman.NewEncoder(outer, log)
	inner := bitio.NewWriter(huffman.ByteSink{Enc: enc})
	dw := newDictWriter(c, inner, sizeLimit, log)

	if _, err := io.Copy(dw, src); err != nil {
		return err
	}
	if err := dw.Close(); err != nil {
		return err
	}
	if _, err := inner.Flush(); err != nil {
		return err
	}
	if _, err := outer.Flush(); err != nil {
		return err
	}
	if !dw.Good() || !enc.Good() || !outer.Good() {
		return Error("short write: output stream is not good at end of compression")
	}
	return nil
}

// Decompress reads a compressed stream of codec c from src and writes
// the recovered raw bytes to dst.
func Decompress(c Codec, dst io.Writer, src io.Reader, sizeLimit int, log zlog.Logger) error {
	log = zlog.OrNop(log)
	outer := bitio.NewReader(src)
	dec := huffman.NewDecoder(outer, log)
	inner := bitio.NewReader(huffman.ByteSource{Dec: dec})
	dr := newDictReader(c, inner, sizeLimit, log)

	if _, err := io.Copy(dst, dr); err != nil {
		return err
	}
	if !dr.Good() {
		return Error("corrupt input: dictionary codec reported a failure")
	}
	return nil
}
