// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import "fmt"

// DecodeError reports malformed or non-canonical input. Offset is the
// byte position in the input buffer at which validation failed, so
// callers can point at the exact spot in a hex dump.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Reason, e.Offset)
}

// EncodeError reports input that has no canonical serialization: an
// unsupported host type, colliding dictionary keys, or a cycle in the
// input graph.
type EncodeError struct {
	Reason string
}

func (e *EncodeError) Error() string {
	return "bencode: " + e.Reason
}

func decodeErrorf(offset int, format string, args ...any) *DecodeError {
	return &DecodeError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func encodeErrorf(format string, args ...any) *EncodeError {
	return &EncodeError{Reason: fmt.Sprintf(format, args...)}
}
