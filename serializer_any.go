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

import "reflect"

// anySerializer handles interface{}-typed fields and container elements by
// resolving the dynamic type's registered class id at write time and its
// class registry entry at read time. Grounded on
// original_source/rust/fury-core/src/serializer/any.rs and
// original_source/rust/fury-core/src/serializer/polymorph.rs, re-expressed
// without that source's reset_cursor_to_here rewind (see DESIGN.md): the
// ref flag and class id are read exactly once here and handed to the
// resolved serializer's Read, rather than re-read by it.
type anySerializer struct{}

func (anySerializer) ReservedSpace() int { return 0 }
func (anySerializer) TypeID(*Fory) int16 { return int16(TypeTag) }

func (anySerializer) Write(reflect.Value, *WriteContext) error {
	panic("fory: anySerializer.Write is unreachable; use Serialize")
}

func (anySerializer) Read(*ReadContext) (reflect.Value, error) {
	panic("fory: anySerializer.Read is unreachable; use Deserialize")
}

func (anySerializer) Serialize(v reflect.Value, ctx *WriteContext) error {
	return serializeAny(v, ctx)
}

func (anySerializer) Deserialize(ctx *ReadContext) (reflect.Value, error) {
	return deserializeAny(ctx)
}

// serializeAny writes the dynamic value held in an interface{}-typed slot:
// ref flag, resolved class id, then the concrete serializer's body.
func serializeAny(v reflect.Value, ctx *WriteContext) error {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		ctx.Writer.WriteInt8(int8(RefFlagNull))
		return nil
	}
	concreteType := v.Type()
	info, err := ctx.Fory.registry.lookupByType(concreteType)
	if err != nil {
		return err
	}
	ctx.Writer.WriteInt8(int8(RefFlagNotNullValue))
	ctx.Writer.WriteInt32(int32(info.ClassID))
	return info.Serializer.Write(v, ctx)
}

// deserializeAny reads one dynamically-typed value: ref flag, class id,
// then dispatches to the registered serializer for that class id.
func deserializeAny(ctx *ReadContext) (reflect.Value, error) {
	flag := RefFlag(ctx.Reader.ReadInt8())
	switch flag {
	case RefFlagNull:
		return reflect.Value{}, nil
	case RefFlagRef:
		return reflect.Value{}, ErrRef
	case RefFlagNotNullValue, RefFlagRefValue:
		classID := ctx.Reader.ReadInt32()
		info, err := ctx.Fory.registry.lookupByClassID(classID)
		if err != nil {
			return reflect.Value{}, err
		}
		return info.Serializer.Read(ctx)
	default:
		return reflect.Value{}, &BadRefFlagError{Flag: int8(flag)}
	}
}
