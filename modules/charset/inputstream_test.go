// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputStreamDefaultsToUTF8AndStripsBOM(t *testing.T) {
	s, err := NewInputStream("", 0, nil)
	require.NoError(t, err)

	s.Append([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'})
	s.Append(nil) // EOF

	ptr, code := s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("h"), ptr)
	s.Advance(1)

	ptr, code = s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("i"), ptr)
	s.Advance(1)

	_, code = s.Peek(0)
	assert.Equal(t, PeekEOF, code)
}

func TestInputStreamOODBeforeEOF(t *testing.T) {
	s, err := NewInputStream("", 0, nil)
	require.NoError(t, err)

	s.Append([]byte("a"))
	ptr, code := s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("a"), ptr)
	s.Advance(1)

	_, code = s.Peek(0)
	assert.Equal(t, PeekOOD, code)

	s.Append([]byte("b"))
	ptr, code = s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("b"), ptr)
}

func TestInputStreamLatin1Fallback(t *testing.T) {
	s, err := NewInputStream("ISO-8859-1", 1, nil)
	require.NoError(t, err)

	s.Append([]byte{0xE9, ' ', 'a'})
	s.Append(nil)

	ptr, code := s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte{0xC3, 0xA9}, ptr) // é as UTF-8
}

func TestInputStreamReadCharset(t *testing.T) {
	s, err := NewInputStream("ISO-8859-1", 7, nil)
	require.NoError(t, err)
	name, source := s.ReadCharset()
	assert.Equal(t, "ISO-8859-1", name)
	assert.EqualValues(t, 7, source)
}

func TestInputStreamReadCharsetDefaultsToUTF8(t *testing.T) {
	s, err := NewInputStream("", 0, nil)
	require.NoError(t, err)
	name, source := s.ReadCharset()
	assert.Equal(t, "UTF-8", name)
	assert.EqualValues(t, 0, source)
}

func TestInputStreamInsertAtCursor(t *testing.T) {
	s, err := NewInputStream("", 0, nil)
	require.NoError(t, err)

	s.Append([]byte("bd"))
	s.Append(nil)

	ptr, code := s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("b"), ptr)
	s.Advance(1)

	require.NoError(t, s.Insert([]byte("c")))

	ptr, code = s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("c"), ptr)
	s.Advance(1)

	ptr, code = s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("d"), ptr)
}

func TestInputStreamAppendInChunks(t *testing.T) {
	s, err := NewInputStream("", 0, nil)
	require.NoError(t, err)

	s.Append([]byte("ab"))
	ptr, code := s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("a"), ptr)
	s.Advance(1)

	ptr, code = s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("b"), ptr)
	s.Advance(1)

	s.Append([]byte("cd"))
	s.Append(nil)

	ptr, code = s.Peek(0)
	require.Equal(t, PeekOK, code)
	assert.Equal(t, []byte("c"), ptr)
}

func TestInputStreamReadFromDrainsReaderAndMarksEOF(t *testing.T) {
	s, err := NewInputStream("", 0, nil)
	require.NoError(t, err)

	require.NoError(t, s.ReadFrom(strings.NewReader("hello"), 2))

	var got []byte
	for {
		ptr, code := s.Peek(0)
		if code == PeekEOF {
			break
		}
		require.Equal(t, PeekOK, code)
		got = append(got, ptr...)
		s.Advance(len(ptr))
	}
	assert.Equal(t, "hello", string(got))
}

func TestInputStreamReadCharsetReportsFallbackEncodingNotJustUTF8(t *testing.T) {
	// A detector can legitimately report a non-UTF-8 encoding at encsrc
	// 0 (the "fallback/default" priority class per spec §3): ReadCharset
	// must report that encoding, not silently default to UTF-8 just
	// because the source priority class happens to be 0.
	detect := func(data []byte) (uint16, uint32) {
		return aliasTable.MIBFromName("ISO-8859-1"), 0
	}
	s, err := NewInputStream("", 0, detect)
	require.NoError(t, err)

	s.Append([]byte{0xE9})
	s.Append(nil)
	_, code := s.Peek(0) // trigger sniffing/refill
	require.Equal(t, PeekOK, code)

	name, source := s.ReadCharset()
	assert.Equal(t, "ISO-8859-1", name)
	assert.EqualValues(t, 0, source)
}

func TestInsertEmptyDataIsBadParm(t *testing.T) {
	s, err := NewInputStream("", 0, nil)
	require.NoError(t, err)
	require.ErrorIs(t, s.Insert(nil), ErrBadParm)
}
