// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"code.gitea.io/parserutils/modules/charset/codec"
	"code.gitea.io/parserutils/modules/log"
)

// pivotSize is the number of runes the Filter decodes into before
// re-encoding to the internal encoding, mirroring the original
// implementation's fixed 64-entry pivot_buf.
const pivotSize = 64

// Filter pipes bytes in a source document encoding through a read
// Codec into a rune pivot, then through a write Codec into Filter's
// internal encoding — almost always UTF-8, for InputStream's purposes.
// It exists so InputStream's refill can hand the Filter raw chunks
// without ever holding a whole document's pivot in memory at once.
type Filter struct {
	registry *codec.Registry

	internalName string
	internalMIB  uint16
	writeCodec   codec.Codec

	readCodec codec.Codec
	readName  string
	readMIB   uint16

	pivot     [pivotSize]rune
	leftover  bool
	pivotLeft []rune
	mode      codec.ErrorMode
}

// NewFilter creates a Filter that writes internalEncoding (typically
// "UTF-8") and initially reads the same encoding, until SetEncoding is
// called. It uses codec.NewDefaultRegistry to construct codecs.
func NewFilter(internalEncoding string, mode codec.ErrorMode) (*Filter, error) {
	return NewFilterWithRegistry(internalEncoding, mode, codec.NewDefaultRegistry())
}

// NewFilterWithRegistry is NewFilter with an explicit codec.Registry,
// for callers that want to plug in additional codecs.
func NewFilterWithRegistry(internalEncoding string, mode codec.ErrorMode, registry *codec.Registry) (*Filter, error) {
	aliases := NewDefaultAliasTable()

	internal, ok := aliases.Canonicalise(internalEncoding)
	if !ok {
		return nil, ErrBadEncoding
	}
	internalMIB := internal.MIB

	writeCodec, err := registry.New(internalMIB, internal.Name, mode)
	if err != nil {
		return nil, ErrBadEncoding
	}

	f := &Filter{
		registry:     registry,
		internalName: internal.Name,
		internalMIB:  internalMIB,
		writeCodec:   writeCodec,
		mode:         mode,
	}

	if err := f.SetEncoding(internalEncoding); err != nil {
		return nil, err
	}

	return f, nil
}

// SetEncoding changes the encoding Filter reads from. Setting the
// encoding it already has is a no-op. Only the read codec is
// destroyed and recreated — the write (internal) codec is fixed at
// construction.
func (f *Filter) SetEncoding(name string) error {
	aliases := NewDefaultAliasTable()

	canon, ok := aliases.Canonicalise(name)
	if !ok {
		return ErrBadEncoding
	}
	mib := canon.MIB

	if f.readMIB == mib {
		return nil
	}

	c, err := f.registry.New(mib, canon.Name, f.mode)
	if err != nil {
		return ErrBadEncoding
	}

	log.Debug("charset: filter switching read encoding from %q to %q", f.readName, canon.Name)

	f.readCodec = c
	f.readName = canon.Name
	f.readMIB = mib
	return nil
}

// ProcessChunk decodes src (in the filter's current read encoding)
// through the rune pivot and encodes the result into dst, in the
// filter's internal encoding. It returns how many bytes of src were
// consumed and how many bytes of dst were written.
//
// Call with an empty src to flush: any pivot left over from a
// previous ErrShortDst is written out first, as the original filter's
// process_chunk does on entry whenever data remains from a prior call.
func (f *Filter) ProcessChunk(src []byte, dst []byte) (consumed, written int, err error) {
	if f.leftover {
		n, w, werr := f.writeCodec.EncodeInto(f.pivotLeft, dst)
		written += w
		if werr != nil {
			f.pivotLeft = f.pivotLeft[n:]
			return 0, written, werr
		}
		f.pivotLeft = nil
		f.leftover = false
	}

	for consumed < len(src) {
		pivot := f.pivot[:]
		dconsumed, dwritten, derr := f.readCodec.DecodeInto(src[consumed:], pivot)
		consumed += dconsumed

		if dwritten > 0 {
			econsumed, ewritten, eerr := f.writeCodec.EncodeInto(pivot[:dwritten], dst[written:])
			written += ewritten
			if eerr != nil {
				f.leftover = true
				f.pivotLeft = append([]rune(nil), pivot[econsumed:dwritten]...)
				return consumed, written, eerr
			}
		}

		if derr != nil && derr != codec.ErrShortDst {
			return consumed, written, derr
		}
		if derr == nil {
			continue
		}
		// ErrShortDst on the pivot just means the 64-rune pivot filled;
		// loop around for another decode/encode pass.
	}

	return consumed, written, nil
}

// Reset drops any leftover pivot data and resets both codecs to a
// freshly-constructed state.
func (f *Filter) Reset() {
	f.leftover = false
	f.pivotLeft = nil
	if f.readCodec != nil {
		f.readCodec.Reset()
	}
	if f.writeCodec != nil {
		f.writeCodec.Reset()
	}
}

// Destroy releases the Filter's codecs. Filter is not usable after
// Destroy; it exists for parity with the original API's explicit
// lifetime management and to give callers an obvious place to drop
// references in a large parser loop.
func (f *Filter) Destroy() {
	f.readCodec = nil
	f.writeCodec = nil
}
