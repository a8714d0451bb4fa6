// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/canonform/bencode/lib/bencode"
)

type announceKey string

func TestMarshalBasicValues(t *testing.T) {
	bigNum, _ := new(big.Int).SetString("18446744073709551616", 10) // MaxUint64 + 1

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"empty string in list", []any{"", 1}, "l0:i1ee"},
		{"empty key", map[string]any{"": 2}, "d0:i2ee"},
		{"empty string", "", "0:"},
		{"true", true, "i1e"},
		{"false", false, "i0e"},
		{"negative", -3, "i-3e"},
		{"zero", 0, "i0e"},
		{"int64", int64(4927586304), "i4927586304e"},
		{"uint64 past int64", uint64(9223372036854775808), "i9223372036854775808e"},
		{"big.Int", bigNum, "i18446744073709551616e"},
		{"byte slice", []byte{1, 2, 3}, "3:\x01\x02\x03"},
		{"unicode string", "你好", "6:你好"},
		{"emoji", "\U0001f600", "4:\xf0\x9f\x98\x80"},
		{"string list", []string{"spam", "eggs"}, "l4:spam4:eggse"},
		{"any list", []any{[]byte("spam"), []byte("eggs")}, "l4:spam4:eggse"},
		{"map", map[string][]byte{"cow": []byte("moo"), "spam": []byte("eggs")}, "d3:cow3:moo4:spam4:eggse"},
		{"nested", map[string]any{"spam": []any{"a", "b"}}, "d4:spaml1:a1:bee"},
		{"empty map", map[string]any{}, "de"},
		{"unicode key", map[string]any{"你好": 0}, "d6:你好i0ee"},
		{"array", [2]int{1, 2}, "li1ei2ee"},
		{"named string key", map[announceKey]int{"url": 1}, "d3:urli1ee"},
		{"value passthrough", bencode.Text("spam"), "4:spam"},
		{"uint8 scalar", uint8(7), "i7e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalSortsMapKeys(t *testing.T) {
	// Go map iteration order is random; canonical output is not.
	input := map[string]any{
		"zebra": 1, "apple": 2, "mango": 3, "berry": 4,
	}
	want := "d5:applei2e5:berryi4e5:mangoi3e5:zebrai1ee"

	for i := 0; i < 8; i++ {
		got, err := Marshal(input)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if string(got) != want {
			t.Fatalf("Marshal = %q, want %q", got, want)
		}
	}
}

func TestMarshalDocument(t *testing.T) {
	// The original fixture document: a realistic mixed-type tree
	// whose canonical encoding is known byte for byte.
	input := map[string]any{
		"_id":           "5973782bdb9a930533b05cb2",
		"isActive":      true,
		"balance":       "$1,446.35",
		"age":           32,
		"eyeColor":      "green",
		"name":          "Logan Keller",
		"gender":        "male",
		"company":       "ARTIQ",
		"email":         "logankeller@artiq.com",
		"phone":         "+1 (952) 533-2258",
		"favoriteFruit": "banana",
		"friends": []any{
			map[string]any{"id": 0, "name": "Colon Salazar"},
			map[string]any{"id": 1, "name": "French Mcneil"},
			map[string]any{"id": 2, "name": "Carol Martin"},
		},
	}

	want := "d3:_id24:5973782bdb9a930533b05cb23:agei32e7:balance9" +
		":$1,446.357:company5:ARTIQ5:email21:logankeller@artiq.c" +
		"om8:eyeColor5:green13:favoriteFruit6:banana7:friendsld2" +
		":idi0e4:name13:Colon Salazared2:idi1e4:name13:French Mc" +
		"neiled2:idi2e4:name12:Carol Martinee6:gender4:male8:isA" +
		"ctivei1e4:name12:Logan Keller5:phone17:+1 (952) 533-2258e"

	got, err := Marshal(input)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != want {
		t.Errorf("Marshal mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestMarshalUnsupportedTypes(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"float", 0.5},
		{"float zero", 0.0},
		{"struct", struct{ X int }{1}},
		{"channel", make(chan int)},
		{"nil pointer", (*int)(nil)},
		{"map with int keys", map[int]int{1: 2}},
		{"nil in list", []any{nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.input)
			var encodeErr *bencode.EncodeError
			if !errors.As(err, &encodeErr) {
				t.Fatalf("Marshal(%v) error = %v, want *bencode.EncodeError", tt.input, err)
			}
		})
	}
}

func TestMarshalKeyCollision(t *testing.T) {
	// Two distinct host keys with identical byte serializations: a
	// plain string and a named string type. A map cannot hold a
	// duplicate string key, but it can hold these two.
	input := map[any]any{
		"announce":              1,
		announceKey("announce"): 2,
	}

	_, err := Marshal(input)
	var encodeErr *bencode.EncodeError
	if !errors.As(err, &encodeErr) {
		t.Fatalf("Marshal error = %v, want *bencode.EncodeError", err)
	}
	if !strings.Contains(encodeErr.Reason, "duplicate") {
		t.Errorf("reason = %q, want duplicate key report", encodeErr.Reason)
	}
}

func TestMarshalSharedValuesAreNotCycles(t *testing.T) {
	// The same container reachable through multiple paths is
	// aliasing, not a cycle, and must encode fine.
	shared := []any{1, 2, 3}
	got, err := Marshal([]any{shared, shared, shared})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "lli1ei2ei3eeli1ei2ei3eeli1ei2ei3eee"
	if string(got) != want {
		t.Errorf("Marshal = %q, want %q", got, want)
	}
}

func TestMarshalDetectsMapCycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	_, err := Marshal(m)
	var encodeErr *bencode.EncodeError
	if !errors.As(err, &encodeErr) {
		t.Fatalf("Marshal(self-referential map) error = %v, want *bencode.EncodeError", err)
	}
	if !strings.Contains(encodeErr.Reason, "circular") {
		t.Errorf("reason = %q, want circular reference report", encodeErr.Reason)
	}
}

func TestMarshalDetectsSliceCycle(t *testing.T) {
	s := make([]any, 1)
	s[0] = s

	_, err := Marshal(s)
	var encodeErr *bencode.EncodeError
	if !errors.As(err, &encodeErr) {
		t.Fatalf("Marshal(self-referential slice) error = %v, want *bencode.EncodeError", err)
	}
}

func TestMarshalDeepAcyclicGraph(t *testing.T) {
	// Deeper than the identity-check threshold but acyclic.
	value := any(int64(1))
	for i := 0; i < 300; i++ {
		value = []any{value}
	}
	encoded, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := strings.Repeat("l", 300) + "i1e" + strings.Repeat("e", 300)
	if string(encoded) != want {
		t.Errorf("Marshal produced %d bytes, want %d", len(encoded), len(want))
	}
}

func BenchmarkMarshal(b *testing.B) {
	input := map[string]any{
		"announce": "http://tracker.example/announce",
		"info": map[string]any{
			"name":         "artifact.bin",
			"length":       int64(4096),
			"piece length": int64(262144),
		},
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Marshal(input)
	}
}
