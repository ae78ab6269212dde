// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.gitea.io/parserutils/modules/setting"
)

func TestChardetDetectorFastPathUTF8(t *testing.T) {
	detect := DefaultDetector(setting.CharsetDefault)
	mib, source := detect([]byte("hello, 世界"))
	assert.EqualValues(t, 106, mib) // UTF-8
	assert.EqualValues(t, 0, source)
}

func TestChardetDetectorFastPathTruncatedMultibyte(t *testing.T) {
	detect := DefaultDetector(setting.CharsetDefault)
	full := []byte("caf\xc3\xa9")
	truncated := full[:len(full)-1] // drop the trailing continuation byte
	mib, _ := detect(truncated)
	assert.EqualValues(t, 106, mib)
}

func TestNewInputStreamWithChardetDetector(t *testing.T) {
	detect := DefaultDetector(setting.CharsetDefault)
	s, err := NewInputStream("", 0, detect)
	require.NoError(t, err)

	s.Append([]byte(strings.Repeat("plain ascii text ", 5)))
	s.Append(nil)

	ptr, code := s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("p"), ptr)

	name, _ := s.ReadCharset()
	assert.Equal(t, "UTF-8", name)
}
