// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitio adapts a byte-oriented stream to arbitrary bit-width
// reads and writes, using a 64-bit accumulator the way the upstream
// flate.bitReader does, but generalized to drive any downstream
// io.Reader/io.Writer rather than just DEFLATE's own symbol tables.
//
// Bit order is little-endian at every granularity: within a byte, bit 0
// is written or read first; across bytes, the lowest-address byte comes
// first. This must agree between a Writer and the Reader that eventually
// consumes its output; it is a contract, not an accident of host
// endianness.
package bitio

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "bitio: " + string(e) }

// Gooder is implemented by wrapped streams that can report their own
// health beyond what a plain io.Reader/io.Writer error communicates
// (mirrors the C++ stream.good() used throughout the original codec).
type Gooder interface {
	Good() bool
}

func good(v interface{}) bool {
	if g, ok := v.(Gooder); ok {
		return g.Good()
	}
	return true
}
