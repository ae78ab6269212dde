// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package util

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortReader returns at most n bytes per Read call regardless of how
// much room the caller's buffer has, to exercise ReadAtMost's loop.
type shortReader struct {
	data []byte
	n    int
}

func (r *shortReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	chunk := r.n
	if chunk > len(p) {
		chunk = len(p)
	}
	if chunk > len(r.data) {
		chunk = len(r.data)
	}
	n := copy(p[:chunk], r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestReadAtMostFillsBufferAcrossShortReads(t *testing.T) {
	r := &shortReader{data: []byte("hello world"), n: 3}
	buf := make([]byte, 11)

	n, err := ReadAtMost(r, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(buf[:n]))
}

func TestReadAtMostReturnsEOFOnlyWhenNothingRead(t *testing.T) {
	buf := make([]byte, 16)

	n, err := ReadAtMost(bytes.NewReader(nil), buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestReadAtMostSuppressesEOFWhenSomeDataRead(t *testing.T) {
	r := &shortReader{data: []byte("ab"), n: 2}
	buf := make([]byte, 4)

	n, err := ReadAtMost(r, buf)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(buf[:n]))

	n, err = ReadAtMost(r, buf)
	assert.Equal(t, 0, n)
	assert.True(t, errors.Is(err, io.EOF))
}
