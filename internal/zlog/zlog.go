// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package zlog defines the leveled-logging collaborator threaded
// through internal/dict, internal/huffman, lz78, and lzw, mirroring how
// the original implementation threads a Log & template parameter
// through its codecs (see src/log.h's Log::LOG_LEVEL enum: DEBUG, INFO,
// WARNING, ERROR).
package zlog

// Logger is the leveled-logging interface every codec package accepts.
// A nil Logger is valid everywhere in this module; use OrNop to adapt it
// into a safe default before storing it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// nop discards every call. It is the default collaborator wherever a
// caller passes a nil Logger, equivalent to Log::disable() on the
// original's logger.
type nop struct{}

func (nop) Debugf(string, ...interface{}) {}
func (nop) Infof(string, ...interface{})  {}
func (nop) Warnf(string, ...interface{})  {}
func (nop) Errorf(string, ...interface{}) {}

// Nop is the shared no-op Logger.
var Nop Logger = nop{}

// OrNop returns l, or Nop if l is nil. Every package in this module that
// accepts a Logger parameter routes it through OrNop before storing it,
// so call sites never need a nil check of their own.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop
	}
	return l
}
