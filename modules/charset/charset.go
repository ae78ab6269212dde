// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"code.gitea.io/parserutils/modules/log"
)

// UTF8BOM is the UTF-8 byte-order mark.
var UTF8BOM = []byte{0xEF, 0xBB, 0xBF}

// MaybeRemoveBOM strips a leading UTF-8 BOM from content, unless
// keepBOM is set.
func MaybeRemoveBOM(content []byte, keepBOM bool) []byte {
	if keepBOM {
		return content
	}
	if len(content) >= 3 && content[0] == UTF8BOM[0] && content[1] == UTF8BOM[1] && content[2] == UTF8BOM[2] {
		return content[3:]
	}
	return content
}

// ToUTF8 converts content to UTF-8 using detector to identify its
// encoding, a one-shot convenience wrapper around golang.org/x/text
// for callers that have a whole document in memory and don't need
// InputStream's incremental pipeline.
func ToUTF8(content []byte, detector DetectFunc, keepBOM bool) (string, error) {
	mib, _ := detector(content)
	name, ok := aliasTable.NameFromMIB(mib)
	if !ok || name == "UTF-8" {
		return string(MaybeRemoveBOM(content, keepBOM)), nil
	}

	enc, _ := charset.Lookup(name)
	if enc == nil {
		return string(content), ErrBadEncoding
	}

	result, n, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		log.Warn("charset: ToUTF8 could not fully decode %q, keeping %d raw trailing bytes", name, len(content)-n)
		result = append(result, content[n:]...)
	}

	return string(MaybeRemoveBOM(result, keepBOM)), err
}

// ToUTF8WithFallback behaves like ToUTF8 but never fails: any
// undecodable trailing content is appended raw, exactly as gitea's own
// ToUTF8 does, so callers that only want "best effort" don't need to
// handle an error at all.
func ToUTF8WithFallback(content []byte, detector DetectFunc, keepBOM bool) []byte {
	s, err := ToUTF8(content, detector, keepBOM)
	if err != nil {
		log.Debug("charset: ToUTF8WithFallback ignoring decode error: %v", err)
	}
	return []byte(s)
}

// ToUTF8DropErrors converts content to UTF-8, dropping any
// non-decodable byte runs rather than keeping them verbatim.
func ToUTF8DropErrors(content []byte, detector DetectFunc, keepBOM bool) []byte {
	mib, _ := detector(content)
	name, ok := aliasTable.NameFromMIB(mib)
	if !ok || name == "UTF-8" {
		return MaybeRemoveBOM(content, keepBOM)
	}

	enc, _ := charset.Lookup(name)
	if enc == nil {
		return content
	}

	var decoded strings.Builder
	decoder := enc.NewDecoder()
	idx := 0
	for idx < len(content) {
		result, n, err := transform.Bytes(decoder, content[idx:])
		decoded.Write(result)
		if err == nil {
			break
		}
		idx += n + 1
	}

	return MaybeRemoveBOM([]byte(decoded.String()), keepBOM)
}
