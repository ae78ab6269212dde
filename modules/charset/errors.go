// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"errors"

	"code.gitea.io/parserutils/modules/charset/codec"
	"code.gitea.io/parserutils/modules/util"
)

var (
	// ErrBadParm is returned when a required argument is missing or
	// malformed (e.g. a nil Insert payload). It wraps util.ErrInvalidArgument
	// so callers can test for either with errors.Is.
	ErrBadParm = util.NewSilentWrapErrorf(util.ErrInvalidArgument, "charset: bad parameter")
	// ErrFileNotFound is returned by LoadAliases when the alias file
	// does not exist. It wraps util.ErrNotExist.
	ErrFileNotFound = util.NewSilentWrapErrorf(util.ErrNotExist, "charset: alias file not found")
	// ErrNoMem, ErrInvalid and ErrNeedData are the charset-level names
	// for the codec package's destination-exhausted, ill-formed-input
	// and needs-more-input conditions — re-exported so callers of
	// Filter and InputStream don't need to import modules/charset/codec
	// themselves to use errors.Is.
	ErrNoMem   = codec.ErrShortDst
	ErrInvalid = codec.ErrInvalid
	ErrNeedData = codec.ErrNeedData
	// ErrBadEncoding is returned when an encoding name is unknown to the
	// AliasTable, or is known but no codec in the registry can be
	// constructed for it. The two failures are surfaced identically —
	// callers only ever need to know "this name didn't work".
	ErrBadEncoding = errors.New("charset: unrecognised or unsupported encoding")
	// ErrEOF is returned by InputStream.PeekRune when the stream has been
	// marked EOF (via Append(nil)) and no more data remains at the
	// requested offset.
	ErrEOF = errors.New("charset: end of input stream")
	// ErrOOD is returned by InputStream.PeekRune when there is currently
	// insufficient buffered data to satisfy the request, but EOF has not
	// been reached — the caller should Append more data and retry.
	ErrOOD = errors.New("charset: out of data")
)
