// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.gitea.io/parserutils/modules/charset/codec"
)

func TestFilterUTF8Passthrough(t *testing.T) {
	f, err := NewFilter("UTF-8", codec.Strict)
	require.NoError(t, err)

	dst := make([]byte, 32)
	consumed, written, err := f.ProcessChunk([]byte("hello"), dst)
	require.NoError(t, err)
	assert.Equal(t, 5, consumed)
	assert.Equal(t, "hello", string(dst[:written]))
}

func TestFilterSetEncodingLatin1(t *testing.T) {
	f, err := NewFilter("UTF-8", codec.Strict)
	require.NoError(t, err)
	require.NoError(t, f.SetEncoding("ISO-8859-1"))

	dst := make([]byte, 32)
	// 0xE9 in Latin-1 is U+00E9 (é), which is 0xC3 0xA9 in UTF-8.
	consumed, written, err := f.ProcessChunk([]byte{0xE9, ' ', 'a'}, dst)
	require.NoError(t, err)
	assert.Equal(t, 3, consumed)
	assert.Equal(t, []byte{0xC3, 0xA9, ' ', 'a'}, dst[:written])
}

func TestFilterSetEncodingIsNoOpOnSameEncoding(t *testing.T) {
	f, err := NewFilter("UTF-8", codec.Strict)
	require.NoError(t, err)
	before := f.readCodec
	require.NoError(t, f.SetEncoding("UTF-8"))
	assert.Same(t, before, f.readCodec)
}

func TestFilterSetEncodingUnknownName(t *testing.T) {
	f, err := NewFilter("UTF-8", codec.Strict)
	require.NoError(t, err)
	require.ErrorIs(t, f.SetEncoding("not-a-real-encoding"), ErrBadEncoding)
}

func TestFilterShortDstReturnsLeftoverForNextCall(t *testing.T) {
	f, err := NewFilter("UTF-8", codec.Strict)
	require.NoError(t, err)

	dst := make([]byte, 2)
	consumed, written, err := f.ProcessChunk([]byte("hello"), dst)
	require.ErrorIs(t, err, codec.ErrShortDst)
	assert.Equal(t, 2, written)
	assert.True(t, consumed <= 5)

	dst2 := make([]byte, 32)
	_, written2, err := f.ProcessChunk(nil, dst2)
	require.NoError(t, err)
	assert.True(t, written2 > 0)
}

func TestFilterReset(t *testing.T) {
	f, err := NewFilter("UTF-8", codec.Strict)
	require.NoError(t, err)
	require.NoError(t, f.SetEncoding("ISO-8859-1"))
	f.Reset()

	dst := make([]byte, 32)
	consumed, written, err := f.ProcessChunk([]byte{'a'}, dst)
	require.NoError(t, err)
	assert.Equal(t, 1, consumed)
	assert.Equal(t, "a", string(dst[:written]))
}
