// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/canonform/bencode/lib/bencode"
)

// jsonValue converts a decoded bencode Value into types that
// encoding/json renders faithfully:
//
//   - integers stay int64, or *big.Int past 64-bit range (big.Int
//     marshals as a plain JSON number, so a 40-digit integer never
//     turns into a float)
//   - byte strings become string when valid UTF-8, []byte otherwise
//     (JSON renders []byte as base64)
//   - lists become []any, dictionaries map[string]any
func jsonValue(v bencode.Value) any {
	switch v.Kind() {
	case bencode.KindInteger:
		if n, ok := v.Int64(); ok {
			return n
		}
		return v.Int()
	case bencode.KindBytes:
		raw := v.Bytes()
		if utf8.Valid(raw) {
			return string(raw)
		}
		return raw
	case bencode.KindList:
		items := v.Items()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = jsonValue(item)
		}
		return out
	default:
		members := v.Members()
		out := make(map[string]any, len(members))
		for _, member := range members {
			out[string(member.Key)] = jsonValue(member.Value)
		}
		return out
	}
}

// convertNumbers recursively walks a JSON-decoded value and converts
// json.Number to int64, or *big.Int past 64-bit range. Without this,
// json.Decoder with UseNumber() leaves numbers as strings that would
// encode as bencode byte strings instead of integers.
//
// Bencode has no real numbers, so a fractional or exponent form is an
// error rather than a lossy truncation.
func convertNumbers(v any) (any, error) {
	switch value := v.(type) {
	case json.Number:
		text := value.String()
		if strings.ContainsAny(text, ".eE") {
			return nil, fmt.Errorf("bencode has no real numbers, got %s", text)
		}
		if integer, err := strconv.ParseInt(text, 10, 64); err == nil {
			return integer, nil
		}
		n, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", text)
		}
		return n, nil

	case map[string]any:
		for key, element := range value {
			converted, err := convertNumbers(element)
			if err != nil {
				return nil, err
			}
			value[key] = converted
		}
		return value, nil

	case []any:
		for index, element := range value {
			converted, err := convertNumbers(element)
			if err != nil {
				return nil, err
			}
			value[index] = converted
		}
		return value, nil

	default:
		return v, nil
	}
}

// writeJSON encodes value as JSON and writes it to w with a trailing
// newline. When compact is false, output is pretty-printed with
// 2-space indentation.
func writeJSON(w io.Writer, value any, compact bool) error {
	var output []byte
	var err error
	if compact {
		output, err = json.Marshal(value)
	} else {
		output, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(output))
	return err
}
