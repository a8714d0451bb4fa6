// Copyright 2026 The Canonform Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"math"
	"math/big"
	"reflect"

	"github.com/canonform/bencode/lib/bencode"
)

// identityCheckDepth is the nesting depth at which the walk starts
// tracking container identity for cycle detection. Below it the guard
// costs nothing; past it any re-entered map or slice is reported as a
// circular reference.
const identityCheckDepth = 100

// Marshal encodes a native Go value graph as canonical bencode.
// See the package documentation for the supported input types.
func Marshal(v any) ([]byte, error) {
	var w walker
	value, err := w.toValue(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return bencode.Encode(value)
}

// walker converts a native value graph into a bencode.Value tree. The
// seen set holds the identities of containers currently being entered
// on this walk; it is scoped to a single Marshal call, never shared.
type walker struct {
	depth int
	seen  map[uintptr]struct{}
}

var (
	bigIntType = reflect.TypeOf(big.Int{})
	valueType  = reflect.TypeOf(bencode.Value{})
)

func (w *walker) toValue(rv reflect.Value) (bencode.Value, error) {
	if !rv.IsValid() {
		return bencode.Value{}, &bencode.EncodeError{Reason: "cannot encode nil"}
	}

	switch rv.Type() {
	case bigIntType:
		n := rv.Interface().(big.Int)
		return bencode.BigInteger(&n), nil
	case valueType:
		return rv.Interface().(bencode.Value), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		// Booleans follow the integer convention: true is i1e,
		// false is i0e. Bencode has no boolean type.
		if rv.Bool() {
			return bencode.Integer(1), nil
		}
		return bencode.Integer(0), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return bencode.Integer(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > math.MaxInt64 {
			return bencode.BigInteger(new(big.Int).SetUint64(n)), nil
		}
		return bencode.Integer(int64(n)), nil

	case reflect.String:
		return bencode.Text(rv.String()), nil

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return bencode.Bytes(rv.Bytes()), nil
		}
		return w.listValue(rv)

	case reflect.Array:
		// Arrays are values: copying them severs any aliasing, so a
		// cycle through an array is not constructible and no
		// identity is tracked.
		return w.listValue(rv)

	case reflect.Map:
		return w.dictValue(rv)

	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return bencode.Value{}, &bencode.EncodeError{Reason: "cannot encode nil"}
		}
		return w.toValue(rv.Elem())

	default:
		return bencode.Value{}, &bencode.EncodeError{
			Reason: "unsupported type " + rv.Type().String(),
		}
	}
}

func (w *walker) listValue(rv reflect.Value) (bencode.Value, error) {
	checked, id, err := w.enter(rv)
	if err != nil {
		return bencode.Value{}, err
	}

	items := make([]bencode.Value, rv.Len())
	for i := range items {
		item, err := w.toValue(rv.Index(i))
		if err != nil {
			return bencode.Value{}, err
		}
		items[i] = item
	}

	w.leave(checked, id)
	return bencode.List(items...), nil
}

func (w *walker) dictValue(rv reflect.Value) (bencode.Value, error) {
	checked, id, err := w.enter(rv)
	if err != nil {
		return bencode.Value{}, err
	}

	members := make([]bencode.Member, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key()
		if key.Kind() == reflect.Interface {
			key = key.Elem()
		}
		if !key.IsValid() || key.Kind() != reflect.String {
			return bencode.Value{}, &bencode.EncodeError{
				Reason: "unsupported dictionary key type " + keyTypeName(key),
			}
		}

		element, err := w.toValue(iter.Value())
		if err != nil {
			return bencode.Value{}, err
		}
		members = append(members, bencode.Member{
			Key:   []byte(key.String()),
			Value: element,
		})
	}

	// Dict sorts the members into canonical order and reports a
	// collision when two distinct host keys serialize to the same
	// bytes (e.g., a string and a named string type in a
	// map[any]any).
	value, err := bencode.Dict(members...)
	if err != nil {
		return bencode.Value{}, err
	}

	w.leave(checked, id)
	return value, nil
}

// enter records entry into a map or slice. Past identityCheckDepth
// the container's pointer identity joins the currently-entering set;
// finding it already there means the graph re-entered a container on
// the walk stack, which is a cycle.
func (w *walker) enter(rv reflect.Value) (checked bool, id uintptr, err error) {
	w.depth++
	if w.depth < identityCheckDepth || rv.Len() == 0 {
		return false, 0, nil
	}
	if kind := rv.Kind(); kind != reflect.Map && kind != reflect.Slice {
		// Arrays have value semantics and no stable pointer.
		return false, 0, nil
	}
	id = rv.Pointer()
	if _, ok := w.seen[id]; ok {
		return false, 0, &bencode.EncodeError{
			Reason: "circular reference through " + rv.Type().String(),
		}
	}
	if w.seen == nil {
		w.seen = make(map[uintptr]struct{})
	}
	w.seen[id] = struct{}{}
	return true, id, nil
}

func (w *walker) leave(checked bool, id uintptr) {
	w.depth--
	if checked {
		delete(w.seen, id)
	}
}

func keyTypeName(key reflect.Value) string {
	if !key.IsValid() {
		return "<nil>"
	}
	return key.Type().String()
}
