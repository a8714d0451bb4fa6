// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

// Package bencode implements a strict codec for the bencode
// serialization format used by BitTorrent metainfo files and the
// peer-wire protocol.
//
// The codec works on a closed value model ([Value]) with exactly four
// variants: arbitrary-precision integers, byte strings, lists, and
// dictionaries with unique keys in ascending byte order. [Decode]
// parses a byte buffer into a Value tree and [Encode] serializes a
// Value tree back to bytes.
//
// Both directions enforce canonical form. The decoder rejects input
// that any other bencode producer could not have emitted canonically:
// integers with leading zeros or a "-0" sign, byte string lengths with
// leading zeros, dictionaries whose keys are duplicated or out of
// order, and trailing bytes after the top-level value. The encoder
// emits the unique canonical serialization of a value, so the same
// logical data always produces identical bytes. This matters for
// hash-based content addressing: a torrent infohash is only stable
// because the info dictionary has exactly one valid serialization.
//
// Decode errors carry the byte offset at which validation failed:
//
//	v, err := bencode.Decode(data)
//	var decodeErr *bencode.DecodeError
//	if errors.As(err, &decodeErr) {
//		log.Printf("bad input at offset %d", decodeErr.Offset)
//	}
//
// Integers are not bounded: values outside the int64 range decode and
// re-encode losslessly through math/big. The int64 fast path keeps the
// common case free of big-integer allocation.
//
// This package has no opinion about host types. Converting between
// Value trees and native Go values (maps, slices, ints) is the job of
// the companion lib/codec package.
package bencode
