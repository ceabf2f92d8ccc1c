// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"testing"

	"github.com/dsnet/zc/internal/bitio"
)

func roundTrip(t *testing.T, input []byte) {
	t.Helper()
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	enc := NewEncoder(bw, nil)
	for _, b := range input {
		if err := enc.Encode(b); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	if _, err := bw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	br := bitio.NewReader(bytes.NewReader(buf.Bytes()))
	dec := NewDecoder(br, nil)
	got := make([]byte, 0, len(input))
	for range input {
		b, err := dec.Decode()
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		got = append(got, b)
	}
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch:\n got  %q\n want %q", got, input)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil)
}

func TestRoundTripSingleByte(t *testing.T) {
	roundTrip(t, []byte{0x42})
}

func TestRoundTripAllByteValues(t *testing.T) {
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i)
	}
	roundTrip(t, buf)
}

func TestRoundTripRepetitive(t *testing.T) {
	roundTrip(t, bytes.Repeat([]byte{0x00}, 4096))
}

func TestRoundTripText(t *testing.T) {
	roundTrip(t, []byte("the quick brown fox jumps over the lazy dog, again and again and again"))
}

func TestRoundTripPseudoRandom(t *testing.T) {
	buf := make([]byte, 1<<16)
	var x uint32 = 0x2545F491
	for i := range buf {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		buf[i] = byte(x)
	}
	roundTrip(t, buf)
}

func TestEncoderGoodReflectsWriter(t *testing.T) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	enc := NewEncoder(bw, nil)
	if !enc.Good() {
		t.Fatalf("fresh encoder should be good")
	}
	if err := enc.Encode('a'); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !enc.Good() {
		t.Fatalf("encoder backed by a healthy buffer should stay good")
	}
}
