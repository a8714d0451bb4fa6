// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"math/big"
	"slices"
)

// Kind identifies which of the four bencode variants a Value holds.
type Kind uint8

const (
	// KindInvalid is the kind of the zero Value. It never appears in
	// a decoded tree and cannot be encoded.
	KindInvalid Kind = iota
	KindInteger
	KindBytes
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBytes:
		return "byte string"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	default:
		return "invalid"
	}
}

// Value is one bencode value: an integer, a byte string, a list, or a
// dictionary. The representation is unexported; values are built with
// the constructor functions ([Integer], [Bytes], [List], [Dict], ...)
// or by [Decode], both of which only produce well-formed trees.
//
// Integers use a two-tier representation: an int64 for the common
// case and a big.Int only when the magnitude exceeds 64-bit range.
// The split is invisible to callers but keeps ordinary torrent data
// (file lengths, piece sizes, timestamps) allocation-free.
type Value struct {
	kind Kind
	i64  int64
	big  *big.Int // set only when the value does not fit in i64
	raw  []byte
	list []Value
	dict []Member
}

// Member is one key/value pair of a dictionary. Keys are raw bytes;
// bencode imposes no character set on them.
type Member struct {
	Key   []byte
	Value Value
}

// Integer returns an integer Value.
func Integer(n int64) Value {
	return Value{kind: KindInteger, i64: n}
}

// BigInteger returns an integer Value of arbitrary magnitude. The
// big.Int is copied, so the caller may keep mutating n. Values within
// int64 range are normalized onto the fast path so that the same
// logical number always has one representation.
func BigInteger(n *big.Int) Value {
	if n.IsInt64() {
		return Integer(n.Int64())
	}
	return Value{kind: KindInteger, big: new(big.Int).Set(n)}
}

// Bytes returns a byte string Value. The slice is not copied; the
// caller must not mutate it while the Value is in use.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, raw: b}
}

// Text returns a byte string Value holding the UTF-8 bytes of s.
func Text(s string) Value {
	return Value{kind: KindBytes, raw: []byte(s)}
}

// List returns a list Value of the given elements in order.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Dict returns a dictionary Value. Members are sorted into canonical
// ascending byte order; the caller may supply them in any order. Two
// members with equal keys are an *EncodeError, never a silent
// overwrite.
func Dict(members ...Member) (Value, error) {
	sorted := slices.Clone(members)
	slices.SortFunc(sorted, func(a, b Member) int {
		return bytes.Compare(a.Key, b.Key)
	})
	for i := 1; i < len(sorted); i++ {
		if bytes.Equal(sorted[i-1].Key, sorted[i].Key) {
			return Value{}, encodeErrorf("duplicate dictionary key %q", sorted[i].Key)
		}
	}
	return Value{kind: KindDict, dict: sorted}, nil
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Int64 returns the integer as an int64. ok is false when v is not an
// integer or its magnitude exceeds int64 range (use [Value.Int] then).
func (v Value) Int64() (n int64, ok bool) {
	if v.kind != KindInteger || v.big != nil {
		return 0, false
	}
	return v.i64, true
}

// Int returns the integer as a big.Int regardless of magnitude, or
// nil when v is not an integer. The result is a copy; mutating it
// does not affect v.
func (v Value) Int() *big.Int {
	if v.kind != KindInteger {
		return nil
	}
	if v.big != nil {
		return new(big.Int).Set(v.big)
	}
	return big.NewInt(v.i64)
}

// Bytes returns the byte string payload, or nil when v is not a byte
// string. The slice must not be mutated.
func (v Value) Bytes() []byte {
	if v.kind != KindBytes {
		return nil
	}
	return v.raw
}

// Items returns the list elements, or nil when v is not a list.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Members returns the dictionary members in ascending key order, or
// nil when v is not a dictionary.
func (v Value) Members() []Member {
	if v.kind != KindDict {
		return nil
	}
	return v.dict
}

// Lookup returns the value stored under key in a dictionary. The
// members are sorted, so lookup is a binary search.
func (v Value) Lookup(key []byte) (Value, bool) {
	if v.kind != KindDict {
		return Value{}, false
	}
	index, found := slices.BinarySearchFunc(v.dict, key, func(m Member, k []byte) int {
		return bytes.Compare(m.Key, k)
	})
	if !found {
		return Value{}, false
	}
	return v.dict[index].Value, true
}

// Equal reports structural equality: same variant, same content, with
// list order significant and dictionary members compared in canonical
// order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		// Normalization guarantees big is only set outside int64
		// range, so a fast-path and a slow-path integer are never
		// equal.
		if (v.big == nil) != (o.big == nil) {
			return false
		}
		if v.big != nil {
			return v.big.Cmp(o.big) == 0
		}
		return v.i64 == o.i64
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	case KindList:
		return slices.EqualFunc(v.list, o.list, Value.Equal)
	case KindDict:
		return slices.EqualFunc(v.dict, o.dict, func(a, b Member) bool {
			return bytes.Equal(a.Key, b.Key) && a.Value.Equal(b.Value)
		})
	default:
		return true
	}
}
