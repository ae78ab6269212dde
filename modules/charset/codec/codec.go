// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package codec implements the decode/encode half of modules/charset:
// converters between a document's native bytes and the UCS-4 pivot the
// Filter moves between a read codec and a write codec.
//
// The original design expresses a codec as native-bytes-cursor in,
// UCS-4-cursor out, with the caller's cursors advanced in place and a
// NoMem result when the destination is exhausted. Go has no pointer
// aliasing to lean on for that, so Codec instead takes bounded source
// and destination slices and reports how much of each it touched: the
// caller (Filter) retries with a fresh destination exactly as the
// original retries after NoMem.
package codec

import "errors"

// ErrorMode controls how a Codec handles characters it cannot decode or
// encode.
type ErrorMode int

const (
	// Strict returns ErrInvalid for any ill-formed or unrepresentable
	// character.
	Strict ErrorMode = iota
	// Loose substitutes U+FFFD on decode, and U+003F ('?') on encode
	// unless the target is itself Unicode, in which case U+FFFD is used.
	Loose
	// Translit is reserved for transliteration, a non-goal here; it
	// behaves exactly like Loose.
	Translit
)

var (
	// ErrShortDst is returned when dst is exhausted before src is fully
	// consumed. The caller should retry the remainder of src with a
	// fresh destination.
	ErrShortDst = errors.New("charset/codec: destination buffer exhausted")
	// ErrNeedData is returned when src ends in the middle of a
	// multi-byte sequence. The codec retains the partial bytes and will
	// resume from them on the next call with more input appended.
	ErrNeedData = errors.New("charset/codec: input ends mid-sequence")
	// ErrInvalid is returned in Strict mode when the next input
	// character is ill-formed (decode) or unrepresentable in the target
	// encoding (encode).
	ErrInvalid = errors.New("charset/codec: ill-formed or unrepresentable character")
	// ErrUnsupportedName is returned by NewFallback when the canonical
	// name isn't one golang.org/x/net/html/charset recognises.
	ErrUnsupportedName = errors.New("charset/codec: no codec claims this encoding")
)

// Codec converts between a document encoding's native bytes and UCS-4
// code points (Go runes). A Codec is owned exclusively by whoever
// constructs it; its MIB never changes after construction — to switch
// encodings, discard the Codec and construct a new one.
type Codec interface {
	// MIB returns the MIB enum this codec was constructed for.
	MIB() uint16

	// DecodeInto decodes native bytes from src into UCS-4 code points
	// written to dst. It returns the number of bytes of src consumed and
	// the number of runes written to dst.
	//
	// err is nil when all of src was consumed (dst may still have had
	// room to spare). ErrShortDst means dst filled up before src was
	// exhausted; consumed/written already reflect what fit. ErrNeedData
	// means src ended mid-sequence; the partial bytes are retained
	// internally and counted in consumed, so the next call passes only
	// the input that follows them. ErrInvalid means the byte at src[consumed] begins an
	// ill-formed sequence (Strict mode only — Loose substitutes U+FFFD
	// and keeps going).
	//
	// Calling DecodeInto with an empty src flushes any retained partial
	// input: in Strict mode that yields ErrInvalid, in Loose mode it
	// yields one U+FFFD.
	DecodeInto(src []byte, dst []rune) (consumed, written int, err error)

	// EncodeInto encodes UCS-4 code points from src into the codec's
	// native bytes written to dst, with the same consumed/written/err
	// contract as DecodeInto.
	EncodeInto(src []rune, dst []byte) (consumed, written int, err error)

	// Reset drops any retained partial input or output. After Reset, the
	// codec behaves as if freshly constructed.
	Reset()
}
