// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package bencode

import (
	"bytes"
	"reflect"
	"strconv"
	"sync"
)

const (
	// identityCheckDepth is the nesting depth at which the encoder
	// starts tracking container identity. Trees shallower than this
	// cannot realistically cycle, so the common case pays nothing
	// for the guard. Matches the depth threshold used on the host
	// binding side (lib/codec).
	identityCheckDepth = 100

	// maxPooledBuffer caps the scratch buffers retained by the
	// encode pool. A buffer grown past this (one huge document) is
	// dropped rather than pinned in memory for the process lifetime.
	maxPooledBuffer = 1 << 20
)

// Encode serializes v to its canonical bencode bytes: minimal integer
// digits, exact length prefixes, dictionary members in ascending key
// order. Encoding is a pure function of content, so the same logical
// value always produces identical bytes.
//
// Encoding fails with an *EncodeError for the zero Value, for
// dictionary members that are duplicated or out of order, and for
// container graphs that re-enter themselves. The cycle guard
// activates past a nesting depth of 100 and guarantees termination on
// any input.
func Encode(v Value) ([]byte, error) {
	state := statePool.Get().(*encodeState)
	err := state.value(v)

	var out []byte
	if err == nil {
		out = bytes.Clone(state.buf)
		if out == nil {
			out = []byte{}
		}
	}
	state.release()
	return out, err
}

// statePool recycles encode scratch state across calls to keep
// steady-state encoding allocation-free apart from the returned
// slice. Pooling is purely a performance layer: a buffer is owned by
// exactly one in-flight encode between Get and Put, and correctness
// never depends on reuse.
var statePool = sync.Pool{
	New: func() any {
		return &encodeState{buf: make([]byte, 0, 4096)}
	},
}

type encodeState struct {
	buf   []byte
	depth int
	seen  map[uintptr]struct{}
}

func (s *encodeState) release() {
	if cap(s.buf) > maxPooledBuffer {
		return
	}
	s.buf = s.buf[:0]
	s.depth = 0
	clear(s.seen)
	statePool.Put(s)
}

func (s *encodeState) value(v Value) error {
	switch v.kind {
	case KindInteger:
		s.buf = append(s.buf, 'i')
		if v.big != nil {
			s.buf = v.big.Append(s.buf, 10)
		} else {
			s.buf = strconv.AppendInt(s.buf, v.i64, 10)
		}
		s.buf = append(s.buf, 'e')
		return nil
	case KindBytes:
		s.byteString(v.raw)
		return nil
	case KindList:
		return s.list(v.list)
	case KindDict:
		return s.dict(v.dict)
	default:
		return encodeErrorf("cannot encode %s Value", v.kind)
	}
}

func (s *encodeState) byteString(b []byte) {
	s.buf = strconv.AppendInt(s.buf, int64(len(b)), 10)
	s.buf = append(s.buf, ':')
	s.buf = append(s.buf, b...)
}

func (s *encodeState) list(items []Value) error {
	checked, err := s.enter(sliceIdentity(items), "list")
	if err != nil {
		return err
	}
	s.buf = append(s.buf, 'l')
	for _, item := range items {
		if err := s.value(item); err != nil {
			return err
		}
	}
	s.buf = append(s.buf, 'e')
	s.leave(checked, sliceIdentity(items))
	return nil
}

// dict emits members in order, re-validating strict ascending unique
// keys during emission. Decoded and constructor-built dictionaries
// are already canonical; the check catches hand-assembled member
// slices and costs one comparison per member.
func (s *encodeState) dict(members []Member) error {
	checked, err := s.enter(sliceIdentity(members), "dictionary")
	if err != nil {
		return err
	}
	s.buf = append(s.buf, 'd')
	for i, member := range members {
		if i > 0 {
			switch cmp := bytes.Compare(members[i-1].Key, member.Key); {
			case cmp == 0:
				return encodeErrorf("duplicate dictionary key %q", member.Key)
			case cmp > 0:
				return encodeErrorf("dictionary key %q out of order after %q", member.Key, members[i-1].Key)
			}
		}
		s.byteString(member.Key)
		if err := s.value(member.Value); err != nil {
			return err
		}
	}
	s.buf = append(s.buf, 'e')
	s.leave(checked, sliceIdentity(members))
	return nil
}

// enter records entry into a container. Past identityCheckDepth it
// also tracks the container's identity; re-entering an identity
// already on the encode stack is a cycle. The error path leaves depth
// and seen dirty; release resets both before pooling.
func (s *encodeState) enter(id uintptr, what string) (checked bool, err error) {
	s.depth++
	if s.depth < identityCheckDepth || id == 0 {
		return false, nil
	}
	if _, ok := s.seen[id]; ok {
		return false, encodeErrorf("circular reference through %s", what)
	}
	if s.seen == nil {
		s.seen = make(map[uintptr]struct{})
	}
	s.seen[id] = struct{}{}
	return true, nil
}

func (s *encodeState) leave(checked bool, id uintptr) {
	s.depth--
	if checked {
		delete(s.seen, id)
	}
}

// sliceIdentity returns the backing array pointer of a container
// slice for cycle tracking. Empty containers have no children and
// cannot participate in a cycle, so they get the zero identity.
func sliceIdentity[E Value | Member](s []E) uintptr {
	if len(s) == 0 {
		return 0
	}
	return reflect.ValueOf(s).Pointer()
}
