// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package zlog

import "github.com/sirupsen/logrus"

// logrusLogger adapts *logrus.Logger to Logger. The four levels line up
// one-to-one with the original's Log::LOG_LEVEL enum.
type logrusLogger struct {
	l *logrus.Logger
}

// NewLogrus wraps l as a Logger.
func NewLogrus(l *logrus.Logger) Logger {
	return logrusLogger{l: l}
}

func (g logrusLogger) Debugf(format string, args ...interface{}) { g.l.Debugf(format, args...) }
func (g logrusLogger) Infof(format string, args ...interface{})  { g.l.Infof(format, args...) }
func (g logrusLogger) Warnf(format string, args ...interface{})  { g.l.Warnf(format, args...) }
func (g logrusLogger) Errorf(format string, args ...interface{}) { g.l.Errorf(format, args...) }
