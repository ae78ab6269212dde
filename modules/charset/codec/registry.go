// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package codec

import "strings"

// Registration binds a predicate that recognises canonical encoding
// names to a constructor for the Codec that handles them.
type Registration struct {
	// Handles reports whether this registration's codec can handle the
	// given canonical (already-normalised) encoding name.
	Handles func(canonicalName string) bool
	// New constructs a codec for canonicalName/mib.
	New func(mib uint16, canonicalName string, mode ErrorMode) (Codec, error)
}

// Registry selects the first registered Codec constructor, in
// registration order, that claims a canonical name. The library ships a
// Registry pre-loaded with the native UTF-8 and UTF-16 codecs and the
// golang.org/x/text-backed fallback via NewDefaultRegistry.
type Registry struct {
	regs []Registration
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// Register appends reg to the end of the priority order: earlier
// registrations are tried first.
func (r *Registry) Register(reg Registration) {
	r.regs = append(r.regs, reg)
}

// New constructs a Codec for canonicalName using the first registration
// that claims it. It returns ErrUnsupportedName if none do.
func (r *Registry) New(mib uint16, canonicalName string, mode ErrorMode) (Codec, error) {
	for _, reg := range r.regs {
		if reg.Handles(canonicalName) {
			return reg.New(mib, canonicalName, mode)
		}
	}
	return nil, ErrUnsupportedName
}

// NewDefaultRegistry returns a Registry with the native UTF-8 and UTF-16
// codecs registered ahead of the golang.org/x/net/html/charset-backed
// fallback, which claims everything else.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(Registration{
		Handles: func(name string) bool { return strings.EqualFold(name, "UTF-8") },
		New: func(mib uint16, name string, mode ErrorMode) (Codec, error) {
			return NewUTF8(mib, mode), nil
		},
	})

	r.Register(Registration{
		Handles: func(name string) bool { return strings.HasPrefix(strings.ToUpper(name), "UTF-16") },
		New: func(mib uint16, name string, mode ErrorMode) (Codec, error) {
			order := BigEndian
			if strings.EqualFold(name, "UTF-16LE") {
				order = LittleEndian
			}
			return NewUTF16(mib, mode, order), nil
		},
	})

	r.Register(Registration{
		Handles: func(name string) bool { return true },
		New: func(mib uint16, name string, mode ErrorMode) (Codec, error) {
			return NewFallback(mib, name, mode)
		},
	})

	return r
}
