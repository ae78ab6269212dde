// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package log provides the leveled, optionally-colorized logging used by
// modules/charset to record the non-obvious decisions it makes on the
// caller's behalf (which encoding was sniffed, when the read encoding
// was switched, when a fallback kicked in). It is a single-writer trim of gitea's
// modules/log: no event router, no writer fan-out, just a level filter
// and a console sink.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Logger writes leveled messages to an underlying io.Writer.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	level    Level
	colorize bool
}

// NewLogger returns a Logger writing to out at the given minimum level.
func NewLogger(out io.Writer, level Level) *Logger {
	return &Logger{out: out, level: level}
}

// SetColorize enables or disables ANSI colorization of level prefixes.
func (l *Logger) SetColorize(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colorize = enabled
}

// SetLevel changes the minimum level that will be written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) log(level Level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level || l.level == NONE {
		return
	}
	prefix := colorSprint(l.colorize, levelColor[level], fmt.Sprintf("[%s]", level.String()))
	fmt.Fprintf(l.out, "%s %s\n", prefix, fmt.Sprintf(format, v...))
}

func (l *Logger) Trace(format string, v ...any) { l.log(TRACE, format, v...) }
func (l *Logger) Debug(format string, v ...any) { l.log(DEBUG, format, v...) }
func (l *Logger) Info(format string, v ...any)  { l.log(INFO, format, v...) }
func (l *Logger) Warn(format string, v ...any)  { l.log(WARN, format, v...) }
func (l *Logger) Error(format string, v ...any) { l.log(ERROR, format, v...) }

// Default is the package-level logger used by modules/charset unless the
// caller installs its own via SetDefault.
var Default = NewLogger(os.Stderr, INFO)

func init() {
	Default.SetColorize(isatty.IsTerminal(os.Stderr.Fd()))
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) { Default = l }

func Trace(format string, v ...any) { Default.Trace(format, v...) }
func Debug(format string, v ...any) { Default.Debug(format, v...) }
func Info(format string, v ...any)  { Default.Info(format, v...) }
func Warn(format string, v ...any)  { Default.Warn(format, v...) }
func Error(format string, v ...any) { Default.Error(format, v...) }
