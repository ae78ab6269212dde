// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package codec

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// maxRetained bounds how many undecoded native bytes a fallbackCodec will
// carry across calls while waiting for the rest of a split multi-byte
// sequence — the equivalent of the original design's EINVAL retention
// buffer.
const maxRetained = 32

// fallbackCodec wraps one of the legacy/CJK/8-bit encodings that
// golang.org/x/net/html/charset knows about (itself backed by
// golang.org/x/text/encoding) for everything the native UTF-8 and UTF-16
// codecs don't claim. It is gitea's own ToUTF8/ToUTF8WithFallback
// strategy (golang.org/x/net/html/charset.Lookup + transform.Transformer)
// reshaped into the Codec protocol.
type fallbackCodec struct {
	mib  uint16
	mode ErrorMode
	enc  encoding.Encoding

	decoder         transform.Transformer
	encoder         transform.Transformer
	retained        []byte
	isUnicodeTarget bool
}

// NewFallback looks canonicalName up in the WHATWG encoding table and
// returns a Codec wrapping it, or an error if the name isn't one
// golang.org/x/net/html/charset recognises.
func NewFallback(mib uint16, canonicalName string, mode ErrorMode) (Codec, error) {
	enc, name := charset.Lookup(canonicalName)
	if enc == nil {
		return nil, ErrUnsupportedName
	}
	return &fallbackCodec{
		mib:             mib,
		mode:            mode,
		enc:             enc,
		decoder:         enc.NewDecoder(),
		encoder:         enc.NewEncoder(),
		isUnicodeTarget: isUnicodeLabel(name),
	}, nil
}

func isUnicodeLabel(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf-16", "utf-16be", "utf-16le", "utf-32", "utf-32be", "utf-32le":
		return true
	}
	return false
}

func (c *fallbackCodec) MIB() uint16 { return c.mib }

func (c *fallbackCodec) Reset() {
	c.retained = c.retained[:0]
	c.decoder.Reset()
	c.encoder.Reset()
}

func (c *fallbackCodec) DecodeInto(src []byte, dst []rune) (consumed, written int, err error) {
	if len(src) == 0 {
		if len(c.retained) == 0 {
			return 0, 0, nil
		}
		c.retained = c.retained[:0]
		if c.mode == Strict {
			return 0, 0, ErrInvalid
		}
		if written < len(dst) {
			dst[0] = 0xFFFD
			return 0, 1, nil
		}
		return 0, 0, ErrShortDst
	}

	retainedLen := len(c.retained)
	buf := src
	if retainedLen > 0 {
		buf = append(append([]byte(nil), c.retained...), src...)
	}

	tmp := make([]byte, len(dst))
	pos := 0
	for pos < len(buf) {
		nDst, nSrc, terr := c.decoder.Transform(tmp, buf[pos:], false)

		for i := 0; i < nDst; {
			r, size := utf8.DecodeRune(tmp[i:nDst])
			if written >= len(dst) {
				// Shouldn't happen: tmp holds at most len(dst) bytes, so at
				// most len(dst) runes, but stay honest about the contract if
				// it ever does.
				return clampConsumed(pos+i, retainedLen), written, ErrShortDst
			}
			dst[written] = r
			written++
			i += size
		}
		pos += nSrc
		// Keep retained equal to the retained bytes not yet decoded, so an
		// early return leaves exactly those for the next call.
		if pos < retainedLen {
			c.retained = append(c.retained[:0], buf[pos:retainedLen]...)
		} else {
			c.retained = c.retained[:0]
		}

		switch terr {
		case nil:
			continue
		case transform.ErrShortDst:
			return clampConsumed(pos, retainedLen), written, ErrShortDst
		case transform.ErrShortSrc:
			tail := buf[pos:]
			if len(tail) > maxRetained {
				if c.mode == Strict {
					return clampConsumed(pos, retainedLen), written, ErrInvalid
				}
				// Genuinely unsupported, not just split: resync.
				return c.resync(buf, pos, retainedLen, dst, written)
			}
			c.retained = append(c.retained[:0], tail...)
			return len(src), written, ErrNeedData
		default:
			if c.mode == Strict {
				return clampConsumed(pos, retainedLen), written, ErrInvalid
			}
			return c.resync(buf, pos, retainedLen, dst, written)
		}
	}

	c.retained = c.retained[:0]
	return clampConsumed(pos, retainedLen), written, nil
}

// resync is the Loose-mode EILSEQ handler: skip forward byte by byte
// until the decoder can make progress again, then emit a single U+FFFD
// for the entire skipped region, per the fallback codec's contract.
func (c *fallbackCodec) resync(buf []byte, pos, retainedLen int, dst []rune, written int) (consumed, newWritten int, err error) {
	start := pos
	tmp := make([]byte, 4)
	for pos < len(buf) {
		pos++
		if pos >= len(buf) {
			break
		}
		c.decoder.Reset()
		_, nSrc, terr := c.decoder.Transform(tmp, buf[pos:], false)
		if terr == nil && nSrc > 0 {
			break
		}
	}
	if written >= len(dst) {
		return clampConsumed(start, retainedLen), written, ErrShortDst
	}
	dst[written] = 0xFFFD
	written++
	if pos < retainedLen {
		c.retained = append(c.retained[:0], buf[pos:retainedLen]...)
	} else {
		c.retained = c.retained[:0]
	}
	return clampConsumed(pos, retainedLen), written, nil
}

func (c *fallbackCodec) EncodeInto(src []rune, dst []byte) (consumed, written int, err error) {
	for consumed < len(src) {
		cp := src[consumed]

		var buf [4]byte
		rn := utf8RuneLen(cp)
		encodeUTF8(buf[:rn], cp, rn)

		var out [8]byte
		nDst, nSrc, terr := c.encoder.Transform(out[:], buf[:rn], true)
		if terr != nil || nSrc == 0 {
			if c.mode == Strict {
				return consumed, written, ErrInvalid
			}
			substitute := rune('?')
			if c.isUnicodeTarget {
				substitute = 0xFFFD
			}
			encodeUTF8(buf[:utf8RuneLen(substitute)], substitute, utf8RuneLen(substitute))
			c.encoder.Reset()
			nDst, nSrc, terr = c.encoder.Transform(out[:], buf[:utf8RuneLen(substitute)], true)
			if terr != nil {
				return consumed, written, ErrInvalid
			}
			_ = nSrc
		}

		if written+nDst > len(dst) {
			return consumed, written, ErrShortDst
		}
		copy(dst[written:], out[:nDst])
		written += nDst
		consumed++
	}
	return consumed, written, nil
}
