// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceBufferAppendGrows(t *testing.T) {
	b := NewSliceBuffer()
	for i := 0; i < 1000; i++ {
		b.Append([]byte{byte(i)})
	}
	assert.Equal(t, 1000, b.Len())
	assert.GreaterOrEqual(t, b.Cap(), 1000)
}

func TestSliceBufferInsertMiddle(t *testing.T) {
	b := NewSliceBuffer()
	b.Append([]byte("ace"))
	b.Insert(1, []byte("b"))
	assert.Equal(t, "abce", string(b.Data()))
}

func TestSliceBufferInsertAtEnds(t *testing.T) {
	b := NewSliceBuffer()
	b.Append([]byte("bc"))
	b.Insert(0, []byte("a"))
	b.Insert(b.Len(), []byte("d"))
	assert.Equal(t, "abcd", string(b.Data()))
}

func TestSliceBufferDiscard(t *testing.T) {
	b := NewSliceBuffer()
	b.Append([]byte("hello world"))
	b.Discard(0, 6)
	assert.Equal(t, "world", string(b.Data()))
}

func TestSliceBufferTruncateRetainsAllocation(t *testing.T) {
	b := NewSliceBuffer()
	b.Append([]byte("hello"))
	capBefore := b.Cap()
	b.Truncate()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, capBefore, b.Cap())
}
