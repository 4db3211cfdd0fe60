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
)

// mapSerializer writes a var_int32 entry count followed by key/value pairs
// in a deterministic order (Go map iteration order is randomized, so keys
// are sorted by their formatted representation before writing to make
// output byte-for-byte reproducible across runs with identical content).
// Dynamic-typed keys/values go through the Any dispatch; a concrete
// key/value serializer pair skips that overhead when the map's static type
// pins both.
type mapSerializer struct {
	mapType        reflect.Type
	keySerializer  Serializer
	valueSerializer Serializer
}

func (m *mapSerializer) ReservedSpace() int { return 32 }
func (m *mapSerializer) TypeID(*Fory) int16 { return int16(TypeMap) }

func (m *mapSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return formatMapKey(keys[i]) < formatMapKey(keys[j])
	})
	ctx.Writer.WriteVarInt32(int32(len(keys)))
	for _, k := range keys {
		if err := m.writeEntry(k, ctx, m.keySerializer); err != nil {
			return err
		}
		if err := m.writeEntry(v.MapIndex(k), ctx, m.valueSerializer); err != nil {
			return err
		}
	}
	return nil
}

func (m *mapSerializer) writeEntry(v reflect.Value, ctx *WriteContext, s Serializer) error {
	if s != nil {
		return dispatchSerialize(v, s, ctx)
	}
	return serializeAny(v, ctx)
}

func (m *mapSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	n := int(ctx.Reader.ReadVarInt32())
	mapType := m.mapType
	if mapType == nil {
		mapType = reflect.TypeOf(map[interface{}]interface{}(nil))
	}
	out := reflect.MakeMapWithSize(mapType, n)
	for i := 0; i < n; i++ {
		k, err := m.readEntry(ctx, m.keySerializer, mapType.Key())
		if err != nil {
			return reflect.Value{}, err
		}
		val, err := m.readEntry(ctx, m.valueSerializer, mapType.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(k, val)
	}
	return out, nil
}

func (m *mapSerializer) readEntry(ctx *ReadContext, s Serializer, fallbackType reflect.Type) (reflect.Value, error) {
	if s != nil {
		return dispatchDeserialize(s, ctx)
	}
	v, err := deserializeAny(ctx)
	if err != nil {
		return reflect.Value{}, err
	}
	if !v.IsValid() {
		return reflect.Zero(fallbackType), nil
	}
	return v, nil
}

// formatMapKey renders v to a string that is stable across runs for equal
// values, used purely to impose a deterministic write order on a Go map
// (whose native iteration order is randomized) — not to sort keys
// numerically or lexicographically in any externally meaningful sense.
func formatMapKey(v reflect.Value) string {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return fmt.Sprintf("%v", v.Interface())
}
