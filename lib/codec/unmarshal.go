// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "github.com/canonform/bencode/lib/bencode"

// Unmarshal decodes canonical bencode into native Go values:
//
//   - integers become int64, or *big.Int past 64-bit range
//   - byte strings become []byte
//   - lists become []any
//   - dictionaries become map[string]any, keyed by the raw key bytes
//
// Dictionary keys are arbitrary bytes; Go strings carry arbitrary
// bytes, so no key is ever lost or transcoded. Decode failures are
// *bencode.DecodeError with the offending byte offset.
func Unmarshal(data []byte) (any, error) {
	value, err := bencode.Decode(data)
	if err != nil {
		return nil, err
	}
	return fromValue(value), nil
}

func fromValue(v bencode.Value) any {
	switch v.Kind() {
	case bencode.KindInteger:
		if n, ok := v.Int64(); ok {
			return n
		}
		return v.Int()
	case bencode.KindBytes:
		return v.Bytes()
	case bencode.KindList:
		items := v.Items()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = fromValue(item)
		}
		return out
	default:
		members := v.Members()
		out := make(map[string]any, len(members))
		for _, member := range members {
			out[string(member.Key)] = fromValue(member.Value)
		}
		return out
	}
}
