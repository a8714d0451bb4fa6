// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"math"
	"math/big"
)

// Decode parses data as exactly one canonical bencode value. Any
// deviation from canonical form is a *DecodeError carrying the byte
// offset of the violation: malformed integers ("-0", leading zeros),
// leading-zero string lengths, length prefixes that overrun the
// input, unterminated containers, dictionary keys that are duplicated
// or out of ascending byte order, and trailing bytes after the
// top-level value. Empty input is an error before any parsing begins.
//
// The returned Value owns its memory: byte string payloads are copied
// out of data, so the caller may reuse or discard the input buffer.
func Decode(data []byte) (Value, error) {
	if len(data) == 0 {
		return Value{}, &DecodeError{Offset: 0, Reason: "empty input"}
	}
	d := decoder{data: data}
	v, err := d.value()
	if err != nil {
		return Value{}, err
	}
	if d.pos != len(d.data) {
		return Value{}, decodeErrorf(d.pos, "trailing data after top-level value")
	}
	return v, nil
}

// decoder tracks a cursor into the single input buffer. No
// intermediate copies are made during traversal; only byte string
// payloads are copied out into the result.
type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) value() (Value, error) {
	if d.pos >= len(d.data) {
		return Value{}, decodeErrorf(d.pos, "unexpected end of input")
	}
	switch c := d.data[d.pos]; {
	case c == 'i':
		return d.integer()
	case c >= '0' && c <= '9':
		return d.byteString()
	case c == 'l':
		return d.list()
	case c == 'd':
		return d.dict()
	default:
		return Value{}, decodeErrorf(d.pos, "invalid leading byte 0x%02x", c)
	}
}

// integer parses i<digits>e with an optional leading '-'. Canonical
// form forbids "-0", empty digit runs, and leading zeros on non-zero
// values. The digits accumulate into an int64 when they fit;
// otherwise parsing falls back to math/big so no magnitude is ever
// truncated.
func (d *decoder) integer() (Value, error) {
	start := d.pos
	d.pos++ // consume 'i'

	negative := false
	if d.pos < len(d.data) && d.data[d.pos] == '-' {
		negative = true
		d.pos++
	}

	digitsStart := d.pos
	for d.pos < len(d.data) && d.data[d.pos] >= '0' && d.data[d.pos] <= '9' {
		d.pos++
	}
	digits := d.data[digitsStart:d.pos]

	if d.pos >= len(d.data) {
		return Value{}, decodeErrorf(start, "unterminated integer")
	}
	if d.data[d.pos] != 'e' {
		return Value{}, decodeErrorf(d.pos, "invalid byte 0x%02x in integer", d.data[d.pos])
	}
	if len(digits) == 0 {
		return Value{}, decodeErrorf(digitsStart, "integer has no digits")
	}
	if digits[0] == '0' {
		if negative {
			return Value{}, decodeErrorf(digitsStart-1, "negative zero integer")
		}
		if len(digits) > 1 {
			return Value{}, decodeErrorf(digitsStart, "integer has leading zero")
		}
	}
	d.pos++ // consume 'e'

	if n, ok := parseInt64(digits, negative); ok {
		return Integer(n), nil
	}

	// Overflowed int64: reparse through math/big. The digit run is
	// already validated, so SetString cannot fail.
	n := new(big.Int)
	n.SetString(string(digits), 10)
	if negative {
		n.Neg(n)
	}
	return Value{kind: KindInteger, big: n}, nil
}

// parseInt64 accumulates a validated decimal digit run into an int64.
// ok is false on overflow; the caller then takes the big.Int path.
func parseInt64(digits []byte, negative bool) (int64, bool) {
	// One extra unit of headroom on the negative side: |MinInt64| is
	// MaxInt64 + 1.
	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}
	var n uint64
	for _, c := range digits {
		digit := uint64(c - '0')
		if n > (limit-digit)/10 {
			return 0, false
		}
		n = n*10 + digit
	}
	if negative {
		if n == limit {
			return math.MinInt64, true
		}
		return -int64(n), true
	}
	return int64(n), true
}

// byteString parses <length>:<bytes>. The length prefix is decimal
// with no leading zero unless it is exactly "0", and must not exceed
// the remaining input. The payload is copied verbatim with no
// character-set interpretation.
func (d *decoder) byteString() (Value, error) {
	start := d.pos
	for d.pos < len(d.data) && d.data[d.pos] >= '0' && d.data[d.pos] <= '9' {
		d.pos++
	}
	digits := d.data[start:d.pos]

	if d.pos >= len(d.data) {
		return Value{}, decodeErrorf(start, "unterminated byte string length")
	}
	if d.data[d.pos] != ':' {
		return Value{}, decodeErrorf(d.pos, "invalid byte 0x%02x in byte string length", d.data[d.pos])
	}
	if digits[0] == '0' && len(digits) > 1 {
		return Value{}, decodeErrorf(start, "byte string length has leading zero")
	}
	d.pos++ // consume ':'

	length, ok := parseInt64(digits, false)
	if !ok || length > int64(len(d.data)-d.pos) {
		return Value{}, decodeErrorf(start, "byte string length %s exceeds remaining input", digits)
	}

	payload := bytes.Clone(d.data[d.pos : d.pos+int(length)])
	if payload == nil {
		payload = []byte{}
	}
	d.pos += int(length)
	return Value{kind: KindBytes, raw: payload}, nil
}

func (d *decoder) list() (Value, error) {
	d.pos++ // consume 'l'
	items := []Value{}
	for {
		if d.pos >= len(d.data) {
			return Value{}, decodeErrorf(d.pos, "unterminated list")
		}
		if d.data[d.pos] == 'e' {
			d.pos++
			return Value{kind: KindList, list: items}, nil
		}
		item, err := d.value()
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
}

// dict parses d(<key><value>)*e. Keys must be byte strings in
// strictly ascending byte order with no duplicates; anything else is
// rejected rather than silently reordered, so a decoded dictionary is
// always in canonical form.
func (d *decoder) dict() (Value, error) {
	d.pos++ // consume 'd'
	members := []Member{}
	for {
		if d.pos >= len(d.data) {
			return Value{}, decodeErrorf(d.pos, "unterminated dictionary")
		}
		if d.data[d.pos] == 'e' {
			d.pos++
			return Value{kind: KindDict, dict: members}, nil
		}

		keyPos := d.pos
		if c := d.data[d.pos]; c < '0' || c > '9' {
			return Value{}, decodeErrorf(keyPos, "dictionary key must be a byte string, got leading byte 0x%02x", c)
		}
		key, err := d.byteString()
		if err != nil {
			return Value{}, err
		}
		if len(members) > 0 {
			previous := members[len(members)-1].Key
			switch cmp := bytes.Compare(previous, key.raw); {
			case cmp == 0:
				return Value{}, decodeErrorf(keyPos, "duplicate dictionary key %q", key.raw)
			case cmp > 0:
				return Value{}, decodeErrorf(keyPos, "dictionary key %q not in ascending order after %q", key.raw, previous)
			}
		}

		value, err := d.value()
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Key: key.raw, Value: value})
	}
}
