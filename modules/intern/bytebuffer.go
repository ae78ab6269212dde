// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package intern provides the string-intern plumbing shared by the
// markup parsers built on top of modules/charset: a growable byte
// buffer, and the dictionary / hash+chunkarray containers parsers use
// to deduplicate atoms such as tag names and attribute values.
//
// These are conventional data-structure plumbing, not the hard part of
// this module; modules/charset consumes only the ByteBuffer interface,
// never a concrete type, so a caller may swap in an arena-backed
// implementation without touching the input-stream code.
package intern

// ByteBuffer is a growable byte array. Implementations need not be safe
// for concurrent use.
type ByteBuffer interface {
	// Data returns the buffer's live bytes. The returned slice is only
	// valid until the next mutating call (Append, Insert, Discard, Grow).
	Data() []byte
	// Len returns the number of live bytes.
	Len() int
	// Cap returns the buffer's current allocation.
	Cap() int

	// Append adds data to the end of the buffer, growing it if necessary.
	Append(data []byte)
	// Insert splices data into the buffer at byte offset off, shifting
	// any existing bytes at or after off to the right.
	Insert(off int, data []byte)
	// Discard removes length bytes starting at offset off, shifting the
	// remainder down to close the gap.
	Discard(off, length int)
	// Grow ensures capacity for at least one more byte than currently
	// allocated, at least doubling the allocation. It never shrinks.
	Grow()
}

// SliceBuffer is the reference ByteBuffer backed by a plain Go slice
// with an explicit doubling growth policy, matching the allocation
// discipline the refill algorithm in modules/charset relies on (grow
// only when the live data exceeds half of capacity).
type SliceBuffer struct {
	data []byte
}

// NewSliceBuffer returns an empty SliceBuffer with no pre-allocation.
func NewSliceBuffer() *SliceBuffer { return &SliceBuffer{} }

func (b *SliceBuffer) Data() []byte { return b.data }
func (b *SliceBuffer) Len() int     { return len(b.data) }
func (b *SliceBuffer) Cap() int     { return cap(b.data) }

func (b *SliceBuffer) Append(data []byte) {
	for len(b.data)+len(data) > cap(b.data) {
		b.Grow()
	}
	b.data = append(b.data, data...)
}

func (b *SliceBuffer) Insert(off int, data []byte) {
	if off < 0 || off > len(b.data) {
		panic("intern: Insert offset out of range")
	}
	for len(b.data)+len(data) > cap(b.data) {
		b.Grow()
	}
	b.data = append(b.data, data...) // grow len first, memory may move
	copy(b.data[off+len(data):], b.data[off:len(b.data)-len(data)])
	copy(b.data[off:off+len(data)], data)
}

func (b *SliceBuffer) Discard(off, length int) {
	if off < 0 || length < 0 || off+length > len(b.data) {
		panic("intern: Discard range out of bounds")
	}
	copy(b.data[off:], b.data[off+length:])
	b.data = b.data[:len(b.data)-length]
}

func (b *SliceBuffer) Grow() {
	newCap := cap(b.data) * 2
	if newCap == 0 {
		newCap = 256
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Truncate resets the buffer to zero length, retaining its allocation
// for reuse — the "whole buffer is free, reuse it" case of the
// input-stream refill algorithm.
func (b *SliceBuffer) Truncate() { b.data = b.data[:0] }
