// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, DEBUG, LevelFromString("Debug"))
	assert.Equal(t, WARN, LevelFromString("warning"))
	assert.Equal(t, INFO, LevelFromString("not-a-real-level"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "trace", TRACE.String())
	assert.Equal(t, "info", Level(99).String())
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, WARN)

	l.Debug("should not appear")
	l.Warn("should appear: %d", 42)

	out := buf.String()
	assert.False(t, strings.Contains(out, "should not appear"))
	assert.True(t, strings.Contains(out, "should appear: 42"))
}

func TestLoggerNoneSuppressesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, NONE)
	l.Error("nope")
	assert.Empty(t, buf.String())
}

func TestColorSprintDisabledReturnsPlainString(t *testing.T) {
	assert.Equal(t, "hi", colorSprint(false, FgRed, "hi"))
	assert.NotEqual(t, "hi", colorSprint(true, FgRed, "hi"))
}
