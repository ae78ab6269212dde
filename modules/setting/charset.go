// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package setting holds the INI-backed configuration consumed by
// modules/charset, following the same ConfigProvider-free, direct
// gopkg.in/ini.v1 usage gitea's own modules/setting is built on.
package setting

import (
	"strings"

	"gopkg.in/ini.v1"
)

// Charset holds the configuration that shapes how modules/charset
// detects and falls back on encodings. The zero value (CharsetDefault)
// is usable without loading any INI file.
type Charset struct {
	// AliasFile names an Aliases file in the format charset.LoadAliases
	// reads. Nothing in this module reads the field: modules/charset
	// always uses its built-in alias table.
	AliasFile string
	// FallbackEncoding is what charset.DefaultDetector reports when
	// chardet fails or returns nothing, and in place of any non-UTF-8
	// chardet result. Empty means UTF-8 is reported in the first case and
	// chardet's own result in the second.
	FallbackEncoding string
	// DetectedCharsetScore breaks ties between chardet results of equal
	// confidence: lower score wins. Keys are lowercased chardet labels.
	DetectedCharsetScore map[string]int
}

// CharsetDefault is the configuration used when no INI section is present.
var CharsetDefault = Charset{
	FallbackEncoding: "ISO-8859-1",
	DetectedCharsetScore: map[string]int{
		"utf-8":      1,
		"iso-8859-1": 2,
		"windows-1252": 2,
	},
}

// LoadCharsetFrom populates c from the "charset" section of cfg, falling
// back to CharsetDefault for any field the section doesn't set.
func LoadCharsetFrom(cfg *ini.File) (Charset, error) {
	c := CharsetDefault
	sec := cfg.Section("charset")
	if sec == nil {
		return c, nil
	}

	if key := sec.Key("ALIAS_FILE"); key.String() != "" {
		c.AliasFile = key.String()
	}
	if key := sec.Key("FALLBACK_ENCODING"); key.String() != "" {
		c.FallbackEncoding = key.String()
	}
	if key := sec.Key("DETECTED_CHARSET_ORDER"); key.String() != "" {
		c.DetectedCharsetScore = make(map[string]int)
		for i, name := range strings.Split(key.String(), ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			c.DetectedCharsetScore[name] = i
		}
	}

	return c, nil
}
