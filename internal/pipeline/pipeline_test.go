// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package pipeline

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, c Codec, input []byte, sizeLimit int) {
	t.Helper()
	var compressed bytes.Buffer
	if err := Compress(c, &compressed, bytes.NewReader(input), sizeLimit, nil); err != nil {
		t.Fatalf("Compress(%v): %v", c, err)
	}

	var out bytes.Buffer
	if err := Decompress(c, &out, bytes.NewReader(compressed.Bytes()), sizeLimit, nil); err != nil {
		t.Fatalf("Decompress(%v): %v", c, err)
	}
	if !bytes.Equal(out.Bytes(), input) {
		t.Fatalf("%v round trip mismatch (len got=%d want=%d)", c, out.Len(), len(input))
	}
}

func TestPipelineRoundTripEmpty(t *testing.T) {
	roundTrip(t, LZ78, nil, 1<<20)
	roundTrip(t, LZW, nil, 1<<20)
}

func TestPipelineRoundTripOneByte(t *testing.T) {
	roundTrip(t, LZ78, []byte{0x5A}, 1<<20)
	roundTrip(t, LZW, []byte{0x5A}, 1<<20)
}

func TestPipelineRoundTripAllByteValues(t *testing.T) {
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i)
	}
	roundTrip(t, LZ78, buf, 1<<20)
	roundTrip(t, LZW, buf, 1<<20)
}

func TestPipelineRoundTripRepetitive(t *testing.T) {
	buf := bytes.Repeat([]byte{0x00}, 4096)
	roundTrip(t, LZ78, buf, 1<<20)
	roundTrip(t, LZW, buf, 1<<20)
}

func TestPipelineRoundTripClassicLZWExample(t *testing.T) {
	roundTrip(t, LZW, []byte("TOBEORNOTTOBEORTOBEORNOT"), 1<<15)
}

func TestPipelineRoundTripText(t *testing.T) {
	text := []byte("the quick brown fox jumps over the lazy dog, and the dog said nothing at all")
	roundTrip(t, LZ78, text, 1<<20)
	roundTrip(t, LZW, text, 1<<20)
}

func TestPipelineRoundTripPseudoRandomAcrossBitWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	buf := make([]byte, 1<<16)
	rng.Read(buf)
	for _, bits := range []uint{15, 20, 24} {
		roundTrip(t, LZ78, buf, 1<<bits)
		roundTrip(t, LZW, buf, 1<<bits)
	}
}

func TestPipelineCompressThenDecompressReportsGood(t *testing.T) {
	var compressed bytes.Buffer
	if err := Compress(LZ78, &compressed, bytes.NewReader([]byte("abcabcabc")), 1<<20, nil); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	var out bytes.Buffer
	if err := Decompress(LZ78, &out, bytes.NewReader(compressed.Bytes()), 1<<20, nil); err != nil {
		t.Fatalf("Decompress: %v", err)
	}
}

func TestCodecSuffix(t *testing.T) {
	if LZ78.Suffix() != ".lz78" {
		t.Fatalf("LZ78.Suffix() = %q, want %q", LZ78.Suffix(), ".lz78")
	}
	if LZW.Suffix() != ".lzw" {
		t.Fatalf("LZW.Suffix() = %q, want %q", LZW.Suffix(), ".lzw")
	}
}
