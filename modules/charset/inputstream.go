// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"io"

	"code.gitea.io/parserutils/modules/charset/codec"
	"code.gitea.io/parserutils/modules/intern"
	"code.gitea.io/parserutils/modules/log"
	"code.gitea.io/parserutils/modules/util"
)

// DetectFunc inspects the first chunk of raw document bytes and
// reports the encoding it believes the document uses. A detector that
// cannot decide should return mib 0, in which case InputStream falls
// back to UTF-8.
type DetectFunc func(data []byte) (mib uint16, source uint32)

// PeekCode distinguishes Peek's three possible outcomes without the
// cost of an error allocation on every character lookahead — the
// hottest path in any tokenizer built on InputStream.
type PeekCode int

const (
	// PeekOK means ptr holds the requested character's UTF-8 bytes.
	PeekOK PeekCode = iota
	// PeekEOF means the stream has no more data at the requested
	// offset and never will: Append(nil) has already been called.
	PeekEOF
	// PeekOOD means there is currently no data at the requested offset,
	// but EOF hasn't been reached — Append more and retry.
	PeekOOD
)

var aliasTable = NewDefaultAliasTable()

// InputStream buffers raw document bytes, converts them to UTF-8 on
// demand through a Filter, and exposes a cursor-based peek/advance
// interface over the result.
//
// The original C API returns the UTF-8 character pointer directly,
// with the sentinel values 0xFFFFFFFF/0xFFFFFFFE standing in for EOF
// and "out of data". Go has no equivalent pointer sentinel that
// doesn't alias a real allocation, so Peek returns an explicit
// PeekCode alongside the byte slice — callers that want an error
// instead can use PeekRune.
type InputStream struct {
	raw  intern.ByteBuffer
	utf8 intern.ByteBuffer

	cursor int

	hadEOF         bool
	doneFirstChunk bool

	mibenum uint16
	encsrc  uint32

	filter *Filter
	detect DetectFunc
}

// NewInputStream creates an InputStream. enc is the document's
// encoding if already known, or "" to defer to detect (or UTF-8, if
// detect is nil) once the first chunk of data arrives. encsrc is an
// opaque, caller-defined priority tag for where enc came from (e.g. an
// HTTP header vs. a document-internal declaration); it has no meaning
// to InputStream beyond being echoed back from ReadCharset.
func NewInputStream(enc string, encsrc uint32, detect DetectFunc) (*InputStream, error) {
	filter, err := NewFilter("UTF-8", codec.Loose)
	if err != nil {
		return nil, err
	}

	s := &InputStream{
		raw:    intern.NewSliceBuffer(),
		utf8:   intern.NewSliceBuffer(),
		filter: filter,
		detect: detect,
	}

	if enc != "" {
		mib := aliasTable.MIBFromName(enc)
		if mib != 0 {
			if err := filter.SetEncoding(enc); err != nil && err != ErrBadEncoding {
				return nil, err
			}
			s.mibenum = mib
			s.encsrc = encsrc
		}
	}

	return s, nil
}

// Append adds data, in the stream's document encoding, to the input
// stream. Passing nil or an empty slice marks the stream as having
// reached EOF: subsequent Peek calls beyond the buffered data return
// PeekEOF instead of PeekOOD.
func (s *InputStream) Append(data []byte) {
	if len(data) == 0 {
		s.hadEOF = true
		return
	}
	s.raw.Append(data)
}

// Insert splices UTF-8 encoded data into the stream at the current
// cursor position, ahead of anything not yet read. It's used by
// parsers that need to push synthesized characters back into the
// stream (e.g. HTML's "insertion point" for document.write).
func (s *InputStream) Insert(data []byte) error {
	if len(data) == 0 {
		return util.NewSilentWrapErrorf(ErrBadParm, "charset: Insert requires non-empty data")
	}
	s.utf8.Insert(s.cursor, data)
	return nil
}

// ReadFrom drains r in chunkSize-sized reads, Appending each chunk to the
// stream and marking EOF once r is exhausted. It's the common case of
// feeding a whole io.Reader (a file, an HTTP body) into an InputStream
// without the caller hand-rolling the read loop, built on
// util.ReadAtMost so a short read from a slow reader doesn't look like EOF.
func (s *InputStream) ReadFrom(r io.Reader, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	buf := make([]byte, chunkSize)
	for {
		n, err := util.ReadAtMost(r, buf)
		if n > 0 {
			s.Append(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				s.Append(nil)
				return nil
			}
			return err
		}
		if n == 0 {
			s.Append(nil)
			return nil
		}
	}
}

// Peek looks at the character starting offset bytes after the cursor,
// refilling the UTF-8 buffer from raw data (detecting the charset and
// stripping any BOM on the very first refill) as needed.
//
// Once Advance has moved the cursor past the bytes ptr points to, ptr
// must not be used again — a later refill may move or discard it.
func (s *InputStream) Peek(offset int) (ptr []byte, code PeekCode) {
	pos := s.cursor + offset

	if pos >= s.utf8.Len() {
		// A refill that fails still commits whatever it converted before
		// the error, so the checks below decide the result either way.
		_ = s.refillBuffer()
		pos = s.cursor + offset
	}

	data := s.utf8.Data()
	if pos >= len(data) {
		if s.hadEOF {
			return nil, PeekEOF
		}
		return nil, PeekOOD
	}

	n := utf8CharLen(data[pos])
	if pos+n > len(data) {
		// The character is split across what we have and what hasn't
		// arrived yet.
		if s.hadEOF {
			return nil, PeekEOF
		}
		return nil, PeekOOD
	}

	return data[pos : pos+n], PeekOK
}

// PeekRune is a convenience wrapper over Peek for callers that prefer
// Go's usual (value, error) idiom over PeekCode.
func (s *InputStream) PeekRune(offset int) (data []byte, err error) {
	data, code := s.Peek(offset)
	switch code {
	case PeekOK:
		return data, nil
	case PeekEOF:
		return nil, ErrEOF
	default:
		return nil, ErrOOD
	}
}

// Advance moves the cursor forward by bytes, which must not exceed the
// amount of buffered-but-unread UTF-8 data.
func (s *InputStream) Advance(bytes int) {
	if bytes == 0 {
		return
	}
	if s.cursor == s.utf8.Len() {
		return
	}
	if bytes > s.utf8.Len()-s.cursor {
		panic("charset: Advance past end of buffered data")
	}
	s.cursor += bytes
}

// ReadCharset reports the document charset InputStream has settled on
// (after the first chunk has been processed) and the encsrc tag
// supplied to NewInputStream or inferred by detection.
func (s *InputStream) ReadCharset() (name string, encsrc uint32) {
	if s.mibenum == 0 {
		return "UTF-8", 0
	}
	name, ok := aliasTable.NameFromMIB(s.mibenum)
	if !ok {
		return "UTF-8", s.encsrc
	}
	return name, s.encsrc
}

// Destroy releases the stream's Filter. InputStream is not usable
// after Destroy.
func (s *InputStream) Destroy() {
	if s.filter != nil {
		s.filter.Destroy()
	}
}

// refillBuffer converts as much raw data as will fit into the UTF-8
// buffer, detecting the charset and stripping a BOM on the first call.
func (s *InputStream) refillBuffer() error {
	if !s.doneFirstChunk {
		if err := s.detectAndConfigure(); err != nil {
			return err
		}
		s.stripBOM()
		s.doneFirstChunk = true
	}

	if s.cursor == s.utf8.Len() {
		s.utf8.Discard(0, s.utf8.Len())
	} else {
		s.utf8.Discard(0, s.cursor)
		if s.utf8.Len() > s.utf8.Cap()/2 {
			s.utf8.Grow()
		}
	}
	s.cursor = 0

	raw := s.raw.Data()
	if len(raw) == 0 {
		return nil
	}

	scratch := make([]byte, 4096)
	consumed, written, err := s.filter.ProcessChunk(raw, scratch)
	if err != nil && err != codec.ErrShortDst {
		// Still commit whatever we managed to convert before the error.
		if written > 0 {
			s.utf8.Append(scratch[:written])
		}
		s.raw.Discard(0, consumed)
		return err
	}

	if written > 0 {
		s.utf8.Append(scratch[:written])
	}
	s.raw.Discard(0, consumed)

	return nil
}

func (s *InputStream) detectAndConfigure() error {
	raw := s.raw.Data()

	if s.mibenum != 0 {
		return nil
	}

	if s.detect != nil {
		mib, source := s.detect(raw)
		if mib != 0 {
			s.mibenum = mib
			s.encsrc = source
			if name, ok := aliasTable.NameFromMIB(mib); ok {
				log.Debug("charset: detected document encoding %q", name)
				return s.filter.SetEncoding(name)
			}
		}
	}

	log.Warn("charset: no encoding detected, falling back to UTF-8")
	s.mibenum = aliasTable.MIBFromName("UTF-8")
	s.encsrc = 0
	return nil
}

// stripBOM discards a byte-order mark matching the stream's detected
// encoding. Unmarked UTF-16/UTF-32 (no BOM, endianness assumed
// big-endian) isn't handled here — the original implementation leaves
// that as a documented TODO, and this port carries the same gap.
func (s *InputStream) stripBOM() {
	data := s.raw.Data()
	name, _ := aliasTable.NameFromMIB(s.mibenum)

	switch name {
	case "UTF-8":
		if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
			s.raw.Discard(0, 3)
		}
	case "UTF-16BE":
		if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
			s.raw.Discard(0, 2)
		}
	case "UTF-16LE":
		if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
			s.raw.Discard(0, 2)
		}
	case "UTF-32BE":
		if len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF {
			s.raw.Discard(0, 4)
		}
	case "UTF-32LE":
		// Must be checked before a naive UTF-16LE prefix match would
		// claim these same leading bytes (0xFF 0xFE) — the original
		// implementation notes exactly this collision.
		if len(data) >= 4 && data[0] == 0xFF && data[1] == 0xFE && data[2] == 0x00 && data[3] == 0x00 {
			s.raw.Discard(0, 4)
		}
	}
}

// utf8CharLen returns the byte length of the UTF-8 sequence starting
// with lead, defaulting to 1 for a continuation/invalid lead byte so a
// malformed stream can't stall Peek forever.
func utf8CharLen(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}
