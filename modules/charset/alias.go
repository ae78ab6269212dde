// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charset

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"code.gitea.io/parserutils/modules/util"
)

// hashSize mirrors the original implementation's fixed bucket count for
// its alias/canonical-name hash tables.
const hashSize = 43

// CanonicalName is the canonical (IANA-preferred) form of an encoding
// name, paired with its MIB enum value.
type CanonicalName struct {
	Name string
	MIB  uint16
}

// Alias is an alternative spelling of an encoding name that resolves to
// a CanonicalName.
type Alias struct {
	Name      string
	Canonical *CanonicalName
}

// AliasTable resolves encoding names to their canonical form and MIB
// enum, using the punctuation- and case-insensitive comparison the
// WHATWG encoding spec and the original implementation both use for
// "character encoding" label matching.
type AliasTable struct {
	canonBuckets [hashSize][]*CanonicalName
	aliasBuckets [hashSize][]*Alias
	byMIB        map[uint16]*CanonicalName
}

// NewAliasTable returns an empty AliasTable with no entries registered.
func NewAliasTable() *AliasTable {
	return &AliasTable{byMIB: make(map[uint16]*CanonicalName)}
}

// isPunctOrSpace reports whether b is one of the ASCII punctuation or
// whitespace ranges that alias comparison skips over.
func isPunctOrSpace(b byte) bool {
	return (0x09 <= b && b <= 0x0D) ||
		(0x20 <= b && b <= 0x2F) ||
		(0x3A <= b && b <= 0x40) ||
		(0x5B <= b && b <= 0x60) ||
		(0x7B <= b && b <= 0x7E)
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// aliasHash reproduces the original djb2-variant hash: punctuation and
// space are skipped entirely rather than folded in, and case is folded
// by clearing bit 0x20 of each remaining byte.
func aliasHash(s string) int {
	h := uint32(5381)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isPunctOrSpace(c) {
			continue
		}
		h = (h*33) ^ uint32(c&^0x20)
	}
	return int(h % hashSize)
}

// aliasEqual compares two names the way the spec's alias matching does:
// case-insensitively, treating runs of ASCII punctuation/space in
// either string as if they weren't there.
func aliasEqual(a, b string) bool {
	i, j := 0, 0
	for {
		for i < len(a) && isPunctOrSpace(a[i]) {
			i++
		}
		for j < len(b) && isPunctOrSpace(b[j]) {
			j++
		}
		if i == len(a) && j == len(b) {
			return true
		}
		if i == len(a) || j == len(b) {
			return false
		}
		if asciiLower(a[i]) != asciiLower(b[j]) {
			return false
		}
		i++
		j++
	}
}

func (t *AliasTable) addCanon(name string, mib uint16) *CanonicalName {
	c := &CanonicalName{Name: name, MIB: mib}
	h := aliasHash(name)
	t.canonBuckets[h] = append(t.canonBuckets[h], c)
	if t.byMIB == nil {
		t.byMIB = make(map[uint16]*CanonicalName)
	}
	t.byMIB[mib] = c
	return c
}

func (t *AliasTable) addAlias(name string, c *CanonicalName) {
	h := aliasHash(name)
	t.aliasBuckets[h] = append(t.aliasBuckets[h], &Alias{Name: name, Canonical: c})
}

// Canonicalise resolves name to its CanonicalName, trying canonical
// names before aliases as the original does — a name that happens to
// collide with both is resolved in favour of being canonical.
func (t *AliasTable) Canonicalise(name string) (*CanonicalName, bool) {
	h := aliasHash(name)
	for _, c := range t.canonBuckets[h] {
		if aliasEqual(c.Name, name) {
			return c, true
		}
	}
	for _, a := range t.aliasBuckets[h] {
		if aliasEqual(a.Name, name) {
			return a.Canonical, true
		}
	}
	return nil, false
}

// MIBFromName returns the MIB enum for name, or 0 if it is unknown.
func (t *AliasTable) MIBFromName(name string) uint16 {
	c, ok := t.Canonicalise(name)
	if !ok {
		return 0
	}
	return c.MIB
}

// NameFromMIB returns the canonical name registered for mib.
func (t *AliasTable) NameFromMIB(mib uint16) (string, bool) {
	c, ok := t.byMIB[mib]
	if !ok {
		return "", false
	}
	return c.Name, true
}

// IsUnicode reports whether mib names one of the UTF-8/UTF-16/UTF-32
// family of encodings.
func (t *AliasTable) IsUnicode(mib uint16) bool {
	name, ok := t.NameFromMIB(mib)
	if !ok {
		return false
	}
	switch strings.ToUpper(name) {
	case "UTF-8", "UTF-16", "UTF-16BE", "UTF-16LE",
		"UTF-32", "UTF-32BE", "UTF-32LE":
		return true
	}
	return false
}

// LoadAliases reads canonical-name/MIB/alias triples from an Aliases
// file, one canonical form per line: the canonical name, whitespace,
// the decimal MIB enum, whitespace, then zero or more space-separated
// aliases. Blank lines and lines starting with '#' are ignored. A
// canonical name that has no aliases on its line is tolerated.
func LoadAliases(path string) (*AliasTable, error) {
	if path == "" {
		return nil, util.NewSilentWrapErrorf(util.ErrInvalidArgument, "charset: LoadAliases requires a non-empty path")
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	defer f.Close()

	t := NewAliasTable()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		mib, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		canon := t.addCanon(fields[0], uint16(mib))
		for _, alias := range fields[2:] {
			t.addAlias(alias, canon)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// defaultAliasEntry is one canonical-name/MIB/aliases group baked into
// NewDefaultAliasTable.
type defaultAliasEntry struct {
	canon   string
	mib     uint16
	aliases []string
}

// defaultAliases carries IANA-registered MIB enum values for the
// encodings the library's codecs natively understand, plus the common
// WHATWG/IANA label spellings browsers and this package's callers are
// likely to pass in. It stands in for an on-disk Aliases file: the
// package-level table InputStream, Filter and the ToUTF8 helpers use is
// always built from it, whatever setting.Charset.AliasFile says.
var defaultAliases = []defaultAliasEntry{
	{"UTF-8", 106, []string{"utf8", "unicode-1-1-utf-8"}},
	{"UTF-16", 1015, []string{"utf16"}},
	{"UTF-16BE", 1013, nil},
	{"UTF-16LE", 1014, nil},
	{"UTF-32", 1017, []string{"utf32"}},
	{"UTF-32BE", 1018, nil},
	{"UTF-32LE", 1019, nil},
	{"US-ASCII", 3, []string{
		"ascii", "us", "ansi_x3.4-1968", "iso-ir-6", "ansi_x3.4-1986",
	}},
	{"ISO-8859-1", 4, []string{
		"latin1", "l1", "iso8859-1", "iso_8859-1", "iso_8859-1:1987",
		"cp819", "ibm819", "iso-ir-100",
	}},
	{"ISO-8859-15", 111, []string{"latin9", "iso8859-15", "csisolatin9"}},
	{"windows-1252", 2252, []string{"cp1252", "ms-ansi", "x-ansi"}},
	{"windows-1251", 2251, []string{"cp1251", "ms-cyrl"}},
	{"KOI8-R", 2084, []string{"koi8"}},
	{"Shift_JIS", 17, []string{"shift-jis", "sjis", "ms_kanji", "x-sjis"}},
	{"EUC-JP", 18, []string{"eucjp", "x-euc-jp"}},
	{"GB2312", 2025, []string{"csgb2312", "gb_2312-80", "gb_2312", "euc-cn"}},
	{"GBK", 113, []string{"cp936", "ms936", "windows-936"}},
	{"Big5", 2026, []string{"big-5", "cn-big5", "csbig5"}},
}

// NewDefaultAliasTable returns an AliasTable pre-populated with
// defaultAliases, without requiring an on-disk Aliases file. It lists
// only those encodings; the default codec.Registry can construct
// codecs for further WHATWG encodings that this table does not resolve.
func NewDefaultAliasTable() *AliasTable {
	t := NewAliasTable()
	for _, e := range defaultAliases {
		canon := t.addCanon(e.canon, e.mib)
		for _, alias := range e.aliases {
			t.addAlias(alias, canon)
		}
	}
	return t
}
