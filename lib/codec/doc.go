// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec converts between native Go values and canonical
// bencode bytes. It is the host-binding layer over lib/bencode: the
// core codec only knows its own closed Value model, and this package
// does the one-time walk between that model and ordinary Go data.
//
// Marshal accepts the Go value graph directly:
//
//	data, err := codec.Marshal(map[string]any{
//		"announce": "http://tracker.example/announce",
//		"info": map[string]any{
//			"name":         "artifact.bin",
//			"length":       int64(4096),
//			"piece length": int64(262144),
//		},
//	})
//
// Supported inputs are booleans (encoded as integers 0 and 1, the
// bencode convention), all integer kinds, big.Int, strings, byte
// slices, bencode.Value trees, slices and arrays of any supported
// element, and maps with string-kinded keys. Anything else (floats,
// nil, structs, channels) has no bencode mapping and is an
// *bencode.EncodeError, never a silent approximation.
//
// Two distinct map keys that serialize to the same bytes (possible in
// a map[any]any holding a string and a named string type with equal
// contents) are a key collision error rather than an arbitrary
// overwrite. Cycles in the input graph are detected by identity once
// nesting passes a depth threshold, so adversarial or buggy graphs
// terminate with an error instead of recursing forever.
//
// Unmarshal is the reverse walk, producing int64 (or *big.Int past
// 64-bit range), []byte, []any, and map[string]any.
package codec
