// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package clirun

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/zc/internal/pipeline"
)

func TestRunCompressDecompressRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.txt")
	payload := []byte("the quick brown fox jumps over the lazy dog")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stderr bytes.Buffer
	if code := Run("lz78c", pipeline.LZ78, []string{"-f", src}, nil, &stderr, &stderr); code != 0 {
		t.Fatalf("compress exit code = %d, stderr=%s", code, stderr.String())
	}

	compressed := src + pipeline.LZ78.Suffix()
	if _, err := os.Stat(compressed); err != nil {
		t.Fatalf("expected compressed file to exist: %v", err)
	}

	if err := os.Remove(src); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	stderr.Reset()
	if code := Run("lz78c", pipeline.LZ78, []string{"-d", "-f", compressed}, nil, &stderr, &stderr); code != 0 {
		t.Fatalf("decompress exit code = %d, stderr=%s", code, stderr.String())
	}

	got, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %q want %q", got, payload)
	}
}

func TestRunStdoutFlag(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.txt")
	payload := []byte("stdout path")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := Run("lzwc", pipeline.LZW, []string{"-c", src}, nil, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr=%s", code, stderr.String())
	}
	if stdout.Len() == 0 {
		t.Fatalf("expected compressed bytes on stdout")
	}
	if _, err := os.Stat(src + pipeline.LZW.Suffix()); err == nil {
		t.Fatalf("-c should not create a file alongside stdout")
	}
}

func TestRunRejectsOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	dst := src + pipeline.LZ78.Suffix()
	if err := os.WriteFile(dst, []byte("preexisting"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stderr bytes.Buffer
	code := Run("lz78c", pipeline.LZ78, []string{src}, nil, &stderr, &stderr)
	if code == 0 {
		t.Fatalf("expected nonzero exit when output exists without -f")
	}
}

func TestRunRejectsInvalidBitSize(t *testing.T) {
	var stderr bytes.Buffer
	code := Run("lz78c", pipeline.LZ78, []string{"-b", "8", "-c"}, bytes.NewReader(nil), &stderr, &stderr)
	if code == 0 {
		t.Fatalf("expected nonzero exit for an out-of-range bitsize")
	}
}

func TestRunTestModeDiscardsOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stderr bytes.Buffer
	code := Run("lz78c", pipeline.LZ78, []string{"-t", src}, nil, &stderr, &stderr)
	if code != 0 {
		t.Fatalf("test-mode exit code = %d, stderr=%s", code, stderr.String())
	}
	if _, err := os.Stat(src + pipeline.LZ78.Suffix()); err == nil {
		t.Fatalf("-t should not create an output file")
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run("lz78c", pipeline.LZ78, []string{"-h"}, nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected usage text on stderr")
	}
}
