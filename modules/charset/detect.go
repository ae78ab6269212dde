// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"

	"code.gitea.io/parserutils/modules/log"
	"code.gitea.io/parserutils/modules/setting"
)

// DefaultDetector returns a DetectFunc backed by
// github.com/gogs/chardet, tie-broken against cfg's
// DetectedCharsetScore. Data that is valid UTF-8 is reported as UTF-8
// without consulting chardet. cfg's FallbackEncoding (UTF-8 when empty)
// is reported when chardet fails or returns nothing, and, when
// FallbackEncoding is set, in place of any non-UTF-8 chardet result,
// whatever its confidence. It is InputStream's analogue of gitea's
// charset.DetectEncoding, reshaped to the csdetect-callback signature
// the original inputstream_create takes.
func DefaultDetector(cfg setting.Charset) DetectFunc {
	return func(data []byte) (mib uint16, source uint32) {
		if name, ok := detectFastUTF8(data); ok {
			log.Debug("charset: detected encoding %q (fast path)", name)
			return aliasTable.MIBFromName(name), 0
		}

		detector := chardet.NewTextDetector()

		sample := data
		if len(sample) > 0 && len(sample) < 1024 {
			if _, err := detector.DetectBest(sample); err != nil {
				return fallbackMIB(cfg)
			}
			times := 1024 / len(sample)
			grown := make([]byte, 0, times*len(sample))
			for i := 0; i < times; i++ {
				grown = append(grown, sample...)
			}
			sample = grown
		}

		results, err := detector.DetectAll(sample)
		if err != nil || len(results) == 0 {
			return fallbackMIB(cfg)
		}

		top := pickBestResult(results, cfg)

		if top.Charset != "UTF-8" && cfg.FallbackEncoding != "" {
			log.Debug("charset: using fallback encoding %q in place of detected %q", cfg.FallbackEncoding, top.Charset)
			return fallbackMIB(cfg)
		}

		log.Debug("charset: detected encoding %q", top.Charset)
		return aliasTable.MIBFromName(top.Charset), 0
	}
}

// pickBestResult breaks ties among chardet's equal-top-confidence
// results using cfg.DetectedCharsetScore, exactly as gitea's
// DetectEncoding does: results are confidence-sorted, so the loop can
// stop as soon as confidence drops.
func pickBestResult(results []chardet.Result, cfg setting.Charset) chardet.Result {
	top := results[0]
	topConfidence := top.Confidence
	priority, has := cfg.DetectedCharsetScore[strings.ToLower(strings.TrimSpace(top.Charset))]

	for _, result := range results {
		if result.Confidence != topConfidence {
			break
		}
		p, ok := cfg.DetectedCharsetScore[strings.ToLower(strings.TrimSpace(result.Charset))]
		if ok && (!has || p < priority) {
			top = result
			priority = p
			has = true
		}
	}

	return top
}

func fallbackMIB(cfg setting.Charset) (uint16, uint32) {
	name := cfg.FallbackEncoding
	if name == "" {
		name = "UTF-8"
	}
	return aliasTable.MIBFromName(name), 0
}

// detectFastUTF8 reports whether data is valid UTF-8, tolerating a
// multi-byte sequence at the very end of the sample that lacks only its
// final byte (which would otherwise make a perfectly good UTF-8 prefix
// look invalid). A sequence cut shorter than that is not tolerated.
func detectFastUTF8(data []byte) (string, bool) {
	toValidate := data
	end := len(toValidate) - 1

	switch {
	case end < 0:
	case toValidate[end]>>5 == 0b110:
		toValidate = toValidate[:end]
	case end > 0 && toValidate[end]>>6 == 0b10 && toValidate[end-1]>>4 == 0b1110:
		toValidate = toValidate[:end-1]
	case end > 1 && toValidate[end]>>6 == 0b10 && toValidate[end-1]>>6 == 0b10 && toValidate[end-2]>>3 == 0b11110:
		toValidate = toValidate[:end-2]
	}

	if utf8.Valid(toValidate) {
		return "UTF-8", true
	}
	return "", false
}
