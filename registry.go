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

package fory

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/fory-project/fory-go/meta"
)

// ClassInfo binds a registered Go type to the numeric class id written on
// the wire for polymorphic (interface{}-typed) values, its serializer, and
// — for structs — the TypeMeta descriptor used in Compatible mode.
//
// Grounded on original_source/rust/fury-core/src/resolver/class_resolver.rs
// (Harness/ClassInfo/ClassResolver), re-expressed with a reflect.Value-based
// Serializer instead of Rust's monomorphized fn-pointer trampolines — the
// Go analogue the teacher's own type.go reaches for
// (typeToSerializers map[reflect.Type]Serializer).
type ClassInfo struct {
	ClassID    int32
	Type       reflect.Type
	Serializer Serializer
	Hash       uint64
	TypeMeta   *meta.TypeMeta // nil for built-in (non-struct) types
}

// ClassRegistry owns every Fory instance's type<->id mappings.
type ClassRegistry struct {
	fory          *Fory
	typeToInfo    map[reflect.Type]*ClassInfo
	classIDToInfo map[int32]*ClassInfo
	nextClassID   int32
}

// firstUserClassID is where user-registered struct/enum class ids begin;
// built-in types occupy the FieldType numeric space below it.
const firstUserClassID = 1000

func newClassRegistry(f *Fory) *ClassRegistry {
	r := &ClassRegistry{
		fory:          f,
		typeToInfo:    make(map[reflect.Type]*ClassInfo),
		classIDToInfo: make(map[int32]*ClassInfo),
		nextClassID:   firstUserClassID,
	}
	r.registerBuiltins()
	return r
}

func (r *ClassRegistry) register(t reflect.Type, classID int32, s Serializer) {
	info := &ClassInfo{ClassID: classID, Type: t, Serializer: s}
	r.typeToInfo[t] = info
	r.classIDToInfo[classID] = info
}

func (r *ClassRegistry) registerBuiltins() {
	r.register(reflect.TypeOf(false), int32(TypeBool), boolSerializer{})
	r.register(reflect.TypeOf(uint8(0)), int32(TypeUint8), byteSerializer{})
	r.register(reflect.TypeOf(int8(0)), int32(TypeInt8), int8Serializer{})
	r.register(reflect.TypeOf(int16(0)), int32(TypeInt16), int16Serializer{})
	r.register(reflect.TypeOf(int32(0)), int32(TypeInt32), int32Serializer{})
	r.register(reflect.TypeOf(int64(0)), int32(TypeInt64), int64Serializer{})
	r.register(reflect.TypeOf(int(0)), int32(TypeInt64), intSerializer{})
	r.register(reflect.TypeOf(float32(0)), int32(TypeFloat), float32Serializer{})
	r.register(reflect.TypeOf(float64(0)), int32(TypeDouble), float64Serializer{})
	r.register(reflect.TypeOf(""), int32(TypeString), stringSerializer{})
	r.register(reflect.TypeOf([]byte(nil)), int32(TypeBinary), binarySerializer{})
	r.register(reflect.TypeOf(Date{}), int32(TypeDate), dateSerializer{})
	r.register(reflect.TypeOf(time.Time{}), int32(TypeTimestamp), timeSerializer{})
	r.register(reflect.TypeOf(GenericSet{}), int32(TypeSet), setSerializer{})
	r.register(reflect.TypeOf([]bool(nil)), int32(TypeBoolArray), boolSliceSerializer{})
	r.register(reflect.TypeOf([]int16(nil)), int32(TypeInt16Array), int16SliceSerializer{})
	r.register(reflect.TypeOf([]int32(nil)), int32(TypeInt32Array), int32SliceSerializer{})
	r.register(reflect.TypeOf([]int64(nil)), int32(TypeInt64Array), int64SliceSerializer{})
	r.register(reflect.TypeOf([]float32(nil)), int32(TypeFloat32Array), float32SliceSerializer{})
	r.register(reflect.TypeOf([]float64(nil)), int32(TypeFloat64Array), float64SliceSerializer{})
	r.register(reflect.TypeOf([]string(nil)), int32(TypeStringArray), stringSliceSerializer{})
	r.register(reflect.TypeOf([]interface{}(nil)), int32(TypeArray), sliceSerializer{})
}

// lookupByType resolves the ClassInfo for t, synthesizing (and caching) a
// serializer for slice/array/map/pointer shapes this registry has not seen
// before. Struct types must have been registered explicitly via
// RegisterStruct — this method never auto-registers a struct, matching
// spec.md's requirement that struct schema be explicit.
func (r *ClassRegistry) lookupByType(t reflect.Type) (*ClassInfo, error) {
	if info, ok := r.typeToInfo[t]; ok {
		return info, nil
	}
	s, err := r.serializerForType(t)
	if err != nil {
		return nil, err
	}
	classID := r.nextClassID
	r.nextClassID++
	info := &ClassInfo{ClassID: classID, Type: t, Serializer: s}
	r.typeToInfo[t] = info
	r.classIDToInfo[classID] = info
	return info, nil
}

func (r *ClassRegistry) lookupByClassID(id int32) (*ClassInfo, error) {
	if info, ok := r.classIDToInfo[id]; ok {
		return info, nil
	}
	return nil, &ClassIDError{ID: id}
}

// serializerForType synthesizes a Serializer for a composite type,
// recursing through lookupByType for its element/key/value types. Grounded
// on type.go's createSerializer switch over reflect.Kind.
func (r *ClassRegistry) serializerForType(t reflect.Type) (Serializer, error) {
	switch t.Kind() {
	case reflect.Ptr:
		elemKind := t.Elem().Kind()
		if elemKind == reflect.Ptr || elemKind == reflect.Interface {
			return nil, fmt.Errorf("fory: pointer to pointer/interface not supported: %s", t)
		}
		elemInfo, err := r.lookupByType(t.Elem())
		if err != nil {
			return nil, err
		}
		return &ptrToValueSerializer{inner: elemInfo.Serializer}, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return binarySerializer{}, nil
		}
		if isDynamicType(t.Elem()) {
			return sliceSerializer{}, nil
		}
		elemInfo, err := r.lookupByType(t.Elem())
		if err != nil {
			return nil, err
		}
		return &sliceConcreteValueSerializer{elemType: t.Elem(), elemSerializer: elemInfo.Serializer}, nil
	case reflect.Array:
		if isDynamicType(t.Elem()) {
			return &arraySerializer{arrayType: t}, nil
		}
		elemInfo, err := r.lookupByType(t.Elem())
		if err != nil {
			return nil, err
		}
		return &arrayConcreteValueSerializer{arrayType: t, elemSerializer: elemInfo.Serializer}, nil
	case reflect.Map:
		m := &mapSerializer{mapType: t}
		if !isDynamicType(t.Key()) {
			keyInfo, err := r.lookupByType(t.Key())
			if err != nil {
				return nil, err
			}
			m.keySerializer = keyInfo.Serializer
		}
		if !isDynamicType(t.Elem()) {
			valInfo, err := r.lookupByType(t.Elem())
			if err != nil {
				return nil, err
			}
			m.valueSerializer = valInfo.Serializer
		}
		return m, nil
	case reflect.Struct:
		return nil, &UnregisteredTypeError{TypeName: t.String()}
	case reflect.Interface:
		return anySerializer{}, nil
	default:
		return nil, fmt.Errorf("fory: type %s not supported", t)
	}
}

func isDynamicType(t reflect.Type) bool {
	return t.Kind() == reflect.Interface ||
		(t.Kind() == reflect.Ptr && (t.Elem().Kind() == reflect.Ptr || t.Elem().Kind() == reflect.Interface))
}

// ptrToValueSerializer dereferences a non-nilable-by-contract pointer on
// write and allocates one on read — used for *T fields/values that this
// registry resolves outside of the Option wrapper (e.g. a top-level
// pointer to a registered struct passed directly to Marshal).
type ptrToValueSerializer struct{ inner Serializer }

func (p *ptrToValueSerializer) ReservedSpace() int   { return p.inner.ReservedSpace() }
func (p *ptrToValueSerializer) TypeID(f *Fory) int16 { return p.inner.TypeID(f) }
func (p *ptrToValueSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	return p.inner.Write(v.Elem(), ctx)
}
func (p *ptrToValueSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	iv, err := p.inner.Read(ctx)
	if err != nil {
		return reflect.Value{}, err
	}
	pv := reflect.New(iv.Type())
	pv.Elem().Set(iv)
	return pv, nil
}

// structField is one resolved, by-name-sorted field of a registered
// struct's serializer.
type structField struct {
	name       string
	index      []int
	serializer Serializer
	fieldType  int16
}

// structSerializer is the runtime-reflection substitute for what other
// Fory ports produce via code generation: it is built once at
// RegisterStruct time (not per call) and reused for every Write/Read. This
// satisfies spec.md's struct-serialization contract without a codegen
// step, the mechanism the spec deliberately leaves unspecified.
type structSerializer struct {
	structType reflect.Type
	classID    int32
	fields     []structField
	typeMeta   *meta.TypeMeta
}

func (s *structSerializer) ReservedSpace() int {
	total := 0
	for _, f := range s.fields {
		total += f.serializer.ReservedSpace()
	}
	return total
}

func (s *structSerializer) TypeID(*Fory) int16 { return int16(s.classID) }

func (s *structSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	if ctx.Fory.mode == Compatible {
		idx := ctx.MetaWriter.Push(uint32(s.classID), s.typeMeta)
		ctx.Writer.WriteVarInt32(int32(idx))
	}
	for _, f := range s.fields {
		fv := v.FieldByIndex(f.index)
		if err := dispatchSerialize(fv, f.serializer, ctx); err != nil {
			return fmt.Errorf("fory: writing field %q: %w", f.name, err)
		}
	}
	return nil
}

func (s *structSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	if ctx.Fory.mode == Compatible {
		idx := int(ctx.Reader.ReadVarInt32())
		if descriptor := ctx.MetaReader.Get(idx); descriptor != nil {
			if err := s.validateDescriptor(descriptor); err != nil {
				return reflect.Value{}, err
			}
		}
	}
	out := reflect.New(s.structType).Elem()
	for _, f := range s.fields {
		val, err := dispatchDeserialize(f.serializer, ctx)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("fory: reading field %q: %w", f.name, err)
		}
		out.FieldByIndex(f.index).Set(val)
	}
	return out, nil
}

// validateDescriptor hard-fails when the peer's schema names a field this
// struct does not have, per spec.md's resolution of the original's
// "not implement yet" unknown-field placeholder (see DESIGN.md).
func (s *structSerializer) validateDescriptor(d *meta.TypeMeta) error {
	if len(d.Layers) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(s.fields))
	for _, f := range s.fields {
		known[f.name] = struct{}{}
	}
	for _, fi := range d.Layers[0].Fields {
		if _, ok := known[fi.FieldName]; !ok {
			return ErrUnknownField
		}
	}
	return nil
}

// RegisterStruct builds and registers a structSerializer for sample's
// type (sample may be a struct value or a pointer to one). Field order is
// sorted by name, matching spec.md's determinism requirement for
// SchemaConsistent and Compatible wire output alike.
func (r *ClassRegistry) RegisterStruct(sample interface{}) error {
	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("fory: RegisterStruct requires a struct or pointer-to-struct, got %s", t)
	}
	if _, ok := r.typeToInfo[t]; ok {
		return fmt.Errorf("fory: type %s already registered", t)
	}

	type rawField struct {
		name  string
		index []int
		typ   reflect.Type
	}
	var raw []rawField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" { // unexported
			continue
		}
		raw = append(raw, rawField{name: sf.Name, index: sf.Index, typ: sf.Type})
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i].name < raw[j].name })

	classID := r.nextClassID
	r.nextClassID++

	fields := make([]structField, 0, len(raw))
	fieldInfos := make([]meta.FieldInfo, 0, len(raw))
	for _, rf := range raw {
		fs, err := r.resolveFieldSerializer(rf.typ)
		if err != nil {
			return fmt.Errorf("fory: field %q of %s: %w", rf.name, t, err)
		}
		ft := fs.TypeID(r.fory)
		fields = append(fields, structField{name: rf.name, index: rf.index, serializer: fs, fieldType: ft})
		fieldInfos = append(fieldInfos, meta.FieldInfo{FieldName: rf.name, FieldType: ft})
	}

	hash := structHash(t.String(), fieldInfos)
	tm := meta.NewTypeMeta(uint32(classID), hash, fieldInfos)

	s := &structSerializer{structType: t, classID: classID, fields: fields, typeMeta: tm}
	ptrType := reflect.PtrTo(t)
	info := &ClassInfo{ClassID: classID, Type: t, Serializer: s, Hash: hash, TypeMeta: tm}
	r.typeToInfo[t] = info
	r.classIDToInfo[classID] = info
	r.typeToInfo[ptrType] = &ClassInfo{ClassID: classID, Type: ptrType, Serializer: &ptrToValueSerializer{inner: s}, Hash: hash, TypeMeta: tm}
	return nil
}

// resolveFieldSerializer wraps pointer-typed fields in an optionSerializer
// (the Go analogue of Option<T>: nil means None) and otherwise defers to
// serializerForType / lookupByType.
func (r *ClassRegistry) resolveFieldSerializer(t reflect.Type) (Serializer, error) {
	if t.Kind() == reflect.Ptr {
		inner, err := r.resolveFieldSerializer(t.Elem())
		if err != nil {
			return nil, err
		}
		return newOptionSerializer(inner, t), nil
	}
	if info, ok := r.typeToInfo[t]; ok {
		return info.Serializer, nil
	}
	return r.serializerForType(t)
}

// RegisterEnum registers a named type's complete, ordered set of variants
// (Go's idiomatic substitute for an enum, which has no variant-enumeration
// language feature). variants must all share the same named type; their
// position in the argument list is their zero-based ordinal, matching
// fory-derive's declaration-order discriminant assignment
// (derive_enum.rs's gen_write/gen_read, which emit/match
// `(0..variants.len()).map(|v| v as i32)`).
func (r *ClassRegistry) RegisterEnum(variants ...interface{}) error {
	if len(variants) == 0 {
		return fmt.Errorf("fory: RegisterEnum requires at least one variant")
	}
	t := reflect.TypeOf(variants[0])
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if _, ok := r.typeToInfo[t]; ok {
		return fmt.Errorf("fory: type %s already registered", t)
	}

	ordinalOf := make(map[interface{}]int32, len(variants))
	valueOf := make([]reflect.Value, len(variants))
	for i, variant := range variants {
		rv := reflect.ValueOf(variant)
		if rv.Kind() == reflect.Ptr {
			rv = rv.Elem()
		}
		if rv.Type() != t {
			return fmt.Errorf("fory: RegisterEnum variant %d has type %s, want %s", i, rv.Type(), t)
		}
		ordinalOf[rv.Interface()] = int32(i)
		valueOf[i] = rv
	}

	classID := r.nextClassID
	r.nextClassID++
	s := &namedTypeSerializer{namedType: t, classID: classID, ordinalOf: ordinalOf, valueOf: valueOf}
	info := &ClassInfo{ClassID: classID, Type: t, Serializer: s}
	r.typeToInfo[t] = info
	r.classIDToInfo[classID] = info
	return nil
}

// namedTypeSerializer is this repository's enum serializer: it writes a
// variant as the var-int of its zero-based declaration ordinal and rejects
// any ordinal it was not registered with on read, per
// original_source/rust/fory-derive/src/object/derive_enum.rs's gen_write/
// gen_read (reserved_space 4, var_int32 discriminant, unknown-value
// rejection — the student's own typed EnumOrdinalError in place of the
// reference macro's panic). TypeID reports the registered class id, the
// same dispatch identity structSerializer uses for its own registered type.
type namedTypeSerializer struct {
	namedType reflect.Type
	classID   int32
	ordinalOf map[interface{}]int32
	valueOf   []reflect.Value // ordinal -> registered variant value
}

func (s *namedTypeSerializer) ReservedSpace() int   { return 4 }
func (s *namedTypeSerializer) TypeID(*Fory) int16 { return int16(s.classID) }

func (s *namedTypeSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	ordinal, ok := s.ordinalOf[v.Interface()]
	if !ok {
		return fmt.Errorf("fory: %s has no registered variant %v", s.namedType, v.Interface())
	}
	ctx.Writer.WriteVarInt32(ordinal)
	return nil
}

func (s *namedTypeSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	ordinal := ctx.Reader.ReadVarInt32()
	if ordinal < 0 || int(ordinal) >= len(s.valueOf) {
		return reflect.Value{}, &EnumOrdinalError{TypeName: s.namedType.String(), Ordinal: ordinal}
	}
	return s.valueOf[ordinal], nil
}

// structHash computes a stable 64-bit schema hash from the struct's name
// and its sorted field name/type pairs, using murmur3 the way the teacher
// depends on it for fast, stable hashing elsewhere in its own go.mod.
func structHash(typeName string, fields []meta.FieldInfo) uint64 {
	h := murmur3.New64()
	h.Write([]byte(typeName))
	for _, f := range fields {
		h.Write([]byte(f.FieldName))
		h.Write([]byte{byte(f.FieldType), byte(f.FieldType >> 8)})
	}
	return h.Sum64()
}
