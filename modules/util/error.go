// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package util

import (
	"errors"
	"fmt"
)

// Common errors forming the base of the error system shared across
// modules/*. Errors returned by this module can be tested against
// these using errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotExist        = errors.New("resource does not exist")
)

// SilentWrap wraps an error with a replacement message, without letting
// the wrapped error's own message leak into Error(). Useful for attaching
// caller-facing context to a sentinel created with errors.New while still
// allowing errors.Is/errors.As to see through to it via Unwrap.
type SilentWrap struct {
	Message string
	Err      error
}

func (w SilentWrap) Error() string { return w.Message }

func (w SilentWrap) Unwrap() error { return w.Err }

// NewSilentWrapErrorf returns an error that formats as the given text but
// unwraps as the provided error.
func NewSilentWrapErrorf(unwrap error, message string, args ...any) error {
	return SilentWrap{Message: fmt.Sprintf(message, args...), Err: unwrap}
}
