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

// Package fory implements a cross-language binary serialization codec: a
// buffer layer, a Serializer contract covering the built-in scalar and
// container types, a runtime type registry for polymorphic (interface{})
// values and user structs, and a TypeMeta-driven schema-metadata pipeline
// for Compatible-mode deserialization.
package fory

import (
	"encoding/binary"
	"reflect"

	"github.com/fory-project/fory-go/buffer"
)

// Fory is the entry point for serialization: it owns the class registry
// mapping Go types to wire class ids and the Mode governing how struct
// schema is reconciled between peers.
//
// Grounded on original_source/rust/fury-core/src/fory.rs's Fory struct.
// That source also carries a referenceTracking flag enabling shared and
// circular object graphs; this repository does not port it (see
// DESIGN.md) — every Ref flag on read is a hard error.
type Fory struct {
	mode     Mode
	language Language
	registry *ClassRegistry
}

// New returns a Fory configured for the given schema-reconciliation mode,
// identifying itself as the Go cross-language peer.
func New(mode Mode) *Fory {
	f := &Fory{mode: mode, language: LanguageGo}
	f.registry = newClassRegistry(f)
	return f
}

// RegisterStruct registers sample's type (a struct or pointer to one) so
// it can be serialized both directly and as the dynamic payload of an
// interface{}-typed field or container element.
func (f *Fory) RegisterStruct(sample interface{}) error {
	return f.registry.RegisterStruct(sample)
}

// RegisterEnum registers a named type's complete, ordered set of variants,
// serializing each as the var-int of its zero-based position in variants.
// Go has no enum keyword; this is the idiomatic substitute for the
// original's derive-like enum registration (see SPEC_FULL.md).
func (f *Fory) RegisterEnum(variants ...interface{}) error {
	return f.registry.RegisterEnum(variants...)
}

// Marshal serializes v into a self-describing Fory payload: a 10-byte
// header (flags, language, meta offset, reserved), the value's body, then
// — in Compatible mode only — a trailing meta block whose start offset is
// patched into the header.
//
// v's concrete type must already be registered, either as a built-in or
// via RegisterStruct/RegisterEnum — Marshal does not implicitly register
// unknown struct types.
func (f *Fory) Marshal(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, ErrEncodedDataEmpty
	}
	info, err := f.registry.lookupByType(rv.Type())
	if err != nil {
		return nil, err
	}

	// Serialize the body to a scratch buffer first: this populates the
	// write context's meta resolver with every TypeMeta the traversal
	// touches, which must be known in full before the trailing meta block
	// can be produced.
	scratch := buffer.NewWriter(info.Serializer.ReservedSpace())
	ctx := newWriteContext(f, scratch)
	if err := dispatchSerialize(rv, info.Serializer, ctx); err != nil {
		return nil, err
	}

	var metaBytes []byte
	if f.mode == Compatible {
		metaBytes, err = ctx.MetaWriter.ToBytes()
		if err != nil {
			return nil, err
		}
	}

	out := buffer.NewWriter(headerSize + scratch.Len() + len(metaBytes))
	flags := flagIsLittleEndian | flagIsCrossLanguage
	out.WriteUint8(flags)
	out.WriteUint8(uint8(f.language))
	metaOffsetPos := out.Len()
	out.Skip(4)
	out.Skip(4) // reserved
	out.WriteBytes(scratch.Dump())

	// write_meta(offset): overwrite the placeholder with the buffer length
	// at the point the meta block starts, then append it. SchemaConsistent
	// mode carries no meta block, so its placeholder stays zero.
	var metaOffset uint32
	if f.mode == Compatible {
		metaOffset = uint32(out.Len())
		out.WriteBytes(metaBytes)
	}
	var offsetBytes [4]byte
	binary.LittleEndian.PutUint32(offsetBytes[:], metaOffset)
	out.SetBytes(metaOffsetPos, offsetBytes[:])
	return out.Dump(), nil
}

// Unmarshal decodes a payload previously produced by Marshal into out,
// which must be a non-nil pointer to a registered type.
func (f *Fory) Unmarshal(data []byte, out interface{}) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &UnregisteredTypeError{TypeName: reflect.TypeOf(out).String()}
	}
	target := rv.Elem().Type()

	r := buffer.NewReader(data)
	r.Skip(1) // flags
	language := Language(r.ReadUint8())
	if language > LanguageDart {
		return &UnsupportedLanguageCodeError{Code: uint8(language)}
	}
	metaOffset := r.ReadUint32()
	r.Skip(4) // reserved

	ctx := newReadContext(f, r)
	if f.mode == Compatible && metaOffset != 0 {
		// The meta block trails the body, so it must be visited out of
		// stream order: jump to it, load it in full, then rewind to the
		// body's start (the cursor position right after the header) before
		// dispatching the root value's deserialize.
		bodyStart := r.Cursor()
		r.SetCursor(int(metaOffset))
		if err := ctx.MetaReader.Load(r); err != nil {
			return err
		}
		r.SetCursor(bodyStart)
	}

	info, err := f.registry.lookupByType(target)
	if err != nil {
		return err
	}
	val, err := dispatchDeserialize(info.Serializer, ctx)
	if err != nil {
		return err
	}
	rv.Elem().Set(val)
	return nil
}

// defaultFory is the package-level convenience instance used by Marshal
// and Unmarshal, configured for SchemaConsistent mode.
var defaultFory = New(SchemaConsistent)

// RegisterStruct registers sample's type with the package-level default
// Fory instance.
func RegisterStruct(sample interface{}) error { return defaultFory.RegisterStruct(sample) }

// RegisterEnum registers variants with the package-level default Fory
// instance.
func RegisterEnum(variants ...interface{}) error { return defaultFory.RegisterEnum(variants...) }

// Marshal serializes v using the package-level default Fory instance.
func Marshal(v interface{}) ([]byte, error) { return defaultFory.Marshal(v) }

// Unmarshal decodes data into out using the package-level default Fory
// instance.
func Unmarshal(data []byte, out interface{}) error { return defaultFory.Unmarshal(data, out) }
