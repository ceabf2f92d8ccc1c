// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package clirun implements the shared front-end logic for cmd/lz78c and
// cmd/lzwc: flag parsing, file handling, and dispatch into
// internal/pipeline. The two commands differ only in which
// pipeline.Codec they bind and their program name, so this package takes
// both as parameters and leaves each cmd/ main.go a few lines long,
// matching the minimal cmd/ front-ends the JoshVarga/blast example in
// this pack uses.
package clirun

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/dsnet/zc/internal/pipeline"
	"github.com/dsnet/zc/internal/zlog"
)

// Version is the front-ends' reported version number.
const Version = "0.1.0"

// Run parses args as prog's flags and runs the compress/decompress
// pipeline for codec, returning the process exit code.
func Run(prog string, codec pipeline.Codec, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printHelp(fs, stderr) }

	optStdout := fs.BoolP("stdout", "c", false, "write on standard output")
	bitSize := fs.Uint32P("bitsize", "b", 20, "dictionary bits (15-31)")
	decompress := fs.BoolP("decompress", "d", false, "decompress")
	force := fs.BoolP("force", "f", false, "force overwrite of output file")
	help := fs.BoolP("help", "h", false, "give this help")
	quiet := fs.BoolP("quiet", "q", false, "suppress all warnings")
	test := fs.BoolP("test", "t", false, "test compressed file integrity")
	verbose := fs.BoolP("verbose", "v", false, "verbose mode")
	showVersion := fs.BoolP("version", "V", false, "display version number")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *help {
		printHelp(fs, stderr)
		return 0
	}
	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", prog, Version)
		return 0
	}

	log := logrus.New()
	log.Out = stderr
	switch {
	case *quiet:
		log.SetLevel(logrus.FatalLevel)
	case *verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	logger := zlog.NewLogrus(log)

	file := ""
	if fs.NArg() > 0 && fs.Arg(0) != "-" {
		file = fs.Arg(0)
	}

	logger.Debugf("running with options: stdout=%v bitsize=%d decompress=%v force=%v quiet=%v test=%v verbose=%v file=%s",
		*optStdout, *bitSize, *decompress, *force, *quiet, *test, *verbose, orStdin(file))

	if *bitSize < 15 || *bitSize > 31 {
		fmt.Fprintf(stderr, "%s: invalid bit_size for dictionary\n", prog)
		return 1
	}

	var input io.Reader = stdin
	if file != "" {
		if !fileExists(file) {
			fmt.Fprintf(stderr, "%s: input file doesn't exist\n", prog)
			return 1
		}
		f, err := os.Open(file)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", prog, err)
			return 1
		}
		defer f.Close()
		input = f
	}

	var output io.Writer = stdout
	fileOutput := !*optStdout && file != "" && !*test
	if fileOutput {
		var outPath string
		if !*decompress {
			outPath = file + codec.Suffix()
		} else {
			if !hasSuffix(file, codec.Suffix()) {
				fmt.Fprintf(stderr, "%s: invalid file extension\n", prog)
				return 1
			}
			outPath = file[:len(file)-len(codec.Suffix())]
		}
		if !*force && fileExists(outPath) {
			fmt.Fprintf(stderr, "%s: output file already exists\n", prog)
			return 1
		}
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", prog, err)
			return 1
		}
		defer f.Close()
		output = f
	}
	if *test {
		// Run the full pipeline — the dictionary and Huffman coders see
		// every byte exactly as in a real run — but discard the sink,
		// mirroring the original's simulation flag.
		output = io.Discard
	}

	sizeLimit := 1 << *bitSize

	var err error
	if *decompress {
		logger.Infof("starting decompression...")
		err = pipeline.Decompress(codec, output, input, sizeLimit, logger)
	} else {
		logger.Infof("starting compression...")
		err = pipeline.Compress(codec, output, input, sizeLimit, logger)
	}
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	return 0
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [OPTION]... [FILE]\n", fs.Name())
	fmt.Fprintf(w, "Compress or uncompress FILE.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nWith no FILE, or when FILE is -, read standard input.\n")
}

func orStdin(file string) string {
	if file == "" {
		return "STDIN"
	}
	return file
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func hasSuffix(s, suffix string) bool {
	return strings.HasSuffix(s, suffix)
}
