// Copyright 2026 The Parserutils Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package intern

import "sort"

// Dictionary interns byte strings, keyed by (len, bytes), returning the
// same backing array for every equal key so callers can compare interned
// atoms by identity. The reference implementation buckets keys by length
// into ordered slices (standing in for the "bucket array of ordered
// trees" the original design calls for) so that ordered iteration within
// a bucket is possible without a full tree implementation.
type Dictionary interface {
	// Intern returns the canonical, pointer-stable representation of key,
	// inserting it if this is the first time it has been seen.
	Intern(key []byte) []byte
	// Len returns the number of distinct keys interned so far.
	Len() int
}

type bucketDict struct {
	buckets map[int][][]byte
}

// NewDictionary returns an empty Dictionary.
func NewDictionary() Dictionary {
	return &bucketDict{buckets: make(map[int][][]byte)}
}

func (d *bucketDict) Intern(key []byte) []byte {
	bucket := d.buckets[len(key)]
	i := sort.Search(len(bucket), func(i int) bool {
		return compareBytes(bucket[i], key) >= 0
	})
	if i < len(bucket) && compareBytes(bucket[i], key) == 0 {
		return bucket[i]
	}

	stored := append([]byte(nil), key...)
	bucket = append(bucket, nil)
	copy(bucket[i+1:], bucket[i:])
	bucket[i] = stored
	d.buckets[len(key)] = bucket
	return stored
}

func (d *bucketDict) Len() int {
	n := 0
	for _, b := range d.buckets {
		n += len(b)
	}
	return n
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}
