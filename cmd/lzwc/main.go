// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command lzwc compresses or decompresses a file with the LZW
// dictionary codec layered under adaptive Huffman coding. With no FILE,
// or when FILE is "-", it reads standard input.
package main

import (
	"os"

	"github.com/dsnet/zc/internal/clirun"
	"github.com/dsnet/zc/internal/pipeline"
)

func main() {
	os.Exit(clirun.Run("lzwc", pipeline.LZW, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
