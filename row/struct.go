// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package row

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/fory-project/fory-go/buffer"
)

// structCodec is this package's runtime substitute for a derive macro: it
// walks a struct type's exported fields once via reflection and caches the
// result, the same role fory-derive's fory_row.rs macro plays at compile
// time in the reference implementation. Fields are ordered alphabetically
// by name, matching that macro's sorted_fields helper, so two peers that
// agree on a struct's field names agree on its row layout without
// exchanging any schema.
type structCodec struct {
	structType reflect.Type
	fields     []reflect.StructField // sorted by Name
	indexOf    map[string]int
}

var (
	codecMu    sync.Mutex
	codecCache = map[reflect.Type]*structCodec{}
)

func codecForStruct(t reflect.Type) (*structCodec, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("row: %s is not a struct", t)
	}

	codecMu.Lock()
	defer codecMu.Unlock()
	if c, ok := codecCache[t]; ok {
		return c, nil
	}

	var fields []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" { // unexported
			continue
		}
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	c := &structCodec{structType: t, fields: fields, indexOf: make(map[string]int, len(fields))}
	for i, f := range fields {
		c.indexOf[f.Name] = i
	}
	codecCache[t] = c
	return c, nil
}

// writeValue writes rv, a reflect.Value of the codec's struct type, as a
// struct row into w.
func (c *structCodec) writeValue(rv reflect.Value, w *buffer.Writer) error {
	sw := NewStructWriter(len(c.fields), w)
	for i, f := range c.fields {
		cb := sw.WriteStart(i)
		if err := writeFieldValue(rv.FieldByIndex(f.Index), sw.Writer()); err != nil {
			return fmt.Errorf("row: writing field %q: %w", f.Name, err)
		}
		sw.WriteEnd(cb)
	}
	return nil
}

// writeFieldValue dispatches a single field's value to the row primitive or
// nested writer matching its kind.
func writeFieldValue(v reflect.Value, w *buffer.Writer) error {
	switch v.Kind() {
	case reflect.Bool:
		WriteBool(w, v.Bool())
	case reflect.Int8:
		WriteInt8(w, int8(v.Int()))
	case reflect.Int16:
		WriteInt16(w, int16(v.Int()))
	case reflect.Int32, reflect.Int:
		WriteInt32(w, int32(v.Int()))
	case reflect.Int64:
		WriteInt64(w, v.Int())
	case reflect.Float32:
		WriteFloat32(w, float32(v.Float()))
	case reflect.Float64:
		WriteFloat64(w, v.Float())
	case reflect.String:
		WriteString(w, v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			WriteBytes(w, v.Bytes())
			return nil
		}
		n := v.Len()
		aw := NewArrayWriter(n, w)
		for i := 0; i < n; i++ {
			cb := aw.WriteStart(i)
			if err := writeFieldValue(v.Index(i), aw.Writer()); err != nil {
				return err
			}
			aw.WriteEnd(cb)
		}
	case reflect.Map:
		return writeMapValue(v, w)
	case reflect.Struct:
		c, err := codecForStruct(v.Type())
		if err != nil {
			return err
		}
		return c.writeValue(v, w)
	default:
		return fmt.Errorf("row: unsupported field kind %s", v.Kind())
	}
	return nil
}

// writeMapValue writes a reflect.Value map field, sorting its keys by their
// formatted representation for the same reproducibility reason
// mapSerializer sorts map keys in the tree-walking codec.
func writeMapValue(v reflect.Value, w *buffer.Writer) error {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprintf("%v", keys[i].Interface()) < fmt.Sprintf("%v", keys[j].Interface())
	})

	mw := NewMapWriter(w)
	dataStart := mw.WriteStart()
	keyArray := NewArrayWriter(len(keys), mw.Writer())
	for i, k := range keys {
		cb := keyArray.WriteStart(i)
		if err := writeFieldValue(k, keyArray.Writer()); err != nil {
			return err
		}
		keyArray.WriteEnd(cb)
	}
	mw.WriteEnd(dataStart)

	valueArray := NewArrayWriter(len(keys), mw.Writer())
	for i, k := range keys {
		cb := valueArray.WriteStart(i)
		if err := writeFieldValue(v.MapIndex(k), valueArray.Writer()); err != nil {
			return err
		}
		valueArray.WriteEnd(cb)
	}
	return nil
}

// ToRow writes v, a struct or pointer to one, as a row and returns the
// resulting bytes. It is the entry point matching the reference
// implementation's free function of the same name.
func ToRow(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("row: cannot write a nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	c, err := codecForStruct(rv.Type())
	if err != nil {
		return nil, err
	}
	w := buffer.NewWriter(64)
	if err := c.writeValue(rv, w); err != nil {
		return nil, err
	}
	return w.Dump(), nil
}

// StructView is a zero-copy, random-access read of a row produced by ToRow:
// it is the runtime equivalent of the `<Name>ForyRowGetter` struct the
// reference derive macro generates, looked up by field name instead of a
// generated method per field.
type StructView struct {
	codec  *structCodec
	viewer *StructViewer
}

// FromRow wraps row (a slice previously returned by ToRow for a value of
// type t) in a StructView. t may be a struct type or a pointer to one.
func FromRow(t reflect.Type, row []byte) (*StructView, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	c, err := codecForStruct(t)
	if err != nil {
		return nil, err
	}
	return &StructView{codec: c, viewer: NewStructViewer(row, len(c.fields))}, nil
}

// FieldBytes returns the named field's raw bytes as a subslice of the
// original row, with no copy.
func (s *StructView) FieldBytes(name string) ([]byte, error) {
	idx, ok := s.codec.indexOf[name]
	if !ok {
		return nil, fmt.Errorf("row: %s has no field %q", s.codec.structType, name)
	}
	return s.viewer.FieldBytes(idx), nil
}

// Get decodes the named field by its kind into the matching built-in Go
// type (an int field comes back as int32, the width it is written with; a
// named type comes back as its underlying kind). Struct-typed fields decode
// to a nested *StructView; []byte fields to the raw bytes; other slice
// fields to an *ArrayGetter of rawElement and map fields to a *MapGetter
// with *rawElement keys and rawElement values, since a
// reflection-based Get cannot name a static element type — callers that
// need typed element access should use FieldBytes with the generic
// ArrayGetter/MapGetter constructors directly.
func (s *StructView) Get(name string) (interface{}, error) {
	idx, ok := s.codec.indexOf[name]
	if !ok {
		return nil, fmt.Errorf("row: %s has no field %q", s.codec.structType, name)
	}
	field := s.codec.fields[idx]
	return readFieldValue(field.Type, s.viewer.FieldBytes(idx))
}

func readFieldValue(t reflect.Type, b []byte) (interface{}, error) {
	switch t.Kind() {
	case reflect.Bool:
		return CastBool(b), nil
	case reflect.Int8:
		return CastInt8(b), nil
	case reflect.Int16:
		return CastInt16(b), nil
	case reflect.Int32, reflect.Int:
		return CastInt32(b), nil
	case reflect.Int64:
		return CastInt64(b), nil
	case reflect.Float32:
		return CastFloat32(b), nil
	case reflect.Float64:
		return CastFloat64(b), nil
	case reflect.String:
		return CastString(b), nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return CastBytes(b), nil
		}
		return NewArrayGetter(b, func(eb []byte) rawElement { return rawElement{typ: t.Elem(), bytes: eb} }), nil
	case reflect.Map:
		return NewMapGetter(b,
			func(eb []byte) *rawElement { return &rawElement{typ: t.Key(), bytes: eb} },
			func(eb []byte) rawElement { return rawElement{typ: t.Elem(), bytes: eb} },
		), nil
	case reflect.Struct:
		view, err := FromRow(t, b)
		if err != nil {
			return nil, err
		}
		return view, nil
	default:
		return nil, fmt.Errorf("row: unsupported field kind %s", t.Kind())
	}
}

// rawElement defers decoding a slice or map element until the caller asks
// for it, since Get's return type is necessarily dynamic.
type rawElement struct {
	typ   reflect.Type
	bytes []byte
}

// Value decodes the element the same way StructView.Get decodes a field.
func (r rawElement) Value() (interface{}, error) { return readFieldValue(r.typ, r.bytes) }
