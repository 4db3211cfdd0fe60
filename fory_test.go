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

package fory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fory "github.com/fory-project/fory-go"
)

func roundTrip(t *testing.T, f *fory.Fory, v interface{}, out interface{}) {
	t.Helper()
	data, err := f.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, f.Unmarshal(data, out))
}

func TestPrimitiveRoundTrip(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)

	var i32 int32
	roundTrip(t, f, int32(1234567890), &i32)
	require.Equal(t, int32(1234567890), i32)

	var s string
	roundTrip(t, f, "hello, fory", &s)
	require.Equal(t, "hello, fory", s)

	var b bool
	roundTrip(t, f, true, &b)
	require.True(t, b)

	var fl float64
	roundTrip(t, f, 3.14159, &fl)
	require.Equal(t, 3.14159, fl)

	var blob []byte
	roundTrip(t, f, []byte{0x01, 0x02, 0x03}, &blob)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, blob)
}

func TestEmptyStringAndEmptySliceRoundTrip(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)

	var s string
	roundTrip(t, f, "", &s)
	require.Equal(t, "", s)

	var ints []int32
	roundTrip(t, f, []int32{}, &ints)
	require.Empty(t, ints)
}

func TestDateAndTimeRoundTrip(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)

	var d fory.Date
	roundTrip(t, f, fory.NewDate(2024, time.March, 15), &d)
	require.Equal(t, fory.NewDate(2024, time.March, 15), d)

	var ts time.Time
	in := time.Date(2024, time.March, 15, 12, 30, 0, 0, time.UTC)
	roundTrip(t, f, in, &ts)
	require.True(t, in.Equal(ts))
}

func TestMapRoundTrip(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)

	in := map[string]int8{"hello1": 1, "hello2": 2}
	var out map[string]int8
	roundTrip(t, f, in, &out)
	require.Equal(t, in, out)
}

func TestConcreteSliceAndArrayRoundTrip(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)

	var ints []int32
	roundTrip(t, f, []int32{1, 2, 3}, &ints)
	require.Equal(t, []int32{1, 2, 3}, ints)

	var arr [3]int32
	roundTrip(t, f, [3]int32{4, 5, 6}, &arr)
	require.Equal(t, [3]int32{4, 5, 6}, arr)
}

func TestDynamicSliceRoundTrip(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)

	in := []interface{}{int32(1), "two", true}
	var out []interface{}
	roundTrip(t, f, in, &out)
	require.Equal(t, in, out)
}

func TestGenericSetRoundTrip(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)

	in := fory.GenericSet{int32(1): {}, int32(2): {}, int32(3): {}}
	var out fory.GenericSet
	roundTrip(t, f, in, &out)
	require.Equal(t, in, out)
}

type Address struct {
	City string
	Zip  int32
}

type Person struct {
	Name    string
	Age     int32
	Address Address
}

func TestRegisterStructNestedRoundTrip(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)
	require.NoError(t, f.RegisterStruct(Address{}))
	require.NoError(t, f.RegisterStruct(Person{}))

	in := Person{Name: "Ada", Age: 36, Address: Address{City: "London", Zip: 10101}}
	var out Person
	roundTrip(t, f, in, &out)
	require.Equal(t, in, out)
}

type OptionalPerson struct {
	Name     string
	Nickname *string
}

func TestOptionSomeAndNone(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)
	require.NoError(t, f.RegisterStruct(OptionalPerson{}))

	nick := "Ace"
	in := OptionalPerson{Name: "Ada", Nickname: &nick}
	var out OptionalPerson
	roundTrip(t, f, in, &out)
	require.NotNil(t, out.Nickname)
	require.Equal(t, "Ace", *out.Nickname)

	in2 := OptionalPerson{Name: "Ada", Nickname: nil}
	var out2 OptionalPerson
	roundTrip(t, f, in2, &out2)
	require.Nil(t, out2.Nickname)
}

type Shape struct {
	Kind string
}

type Container struct {
	Item interface{}
}

func TestPolymorphicAnyDispatchPreservesRuntimeType(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)
	require.NoError(t, f.RegisterStruct(Shape{}))
	require.NoError(t, f.RegisterStruct(Container{}))

	in := Container{Item: Shape{Kind: "circle"}}
	var out Container
	roundTrip(t, f, in, &out)

	shape, ok := out.Item.(Shape)
	require.True(t, ok, "expected Item to decode back as Shape, got %T", out.Item)
	require.Equal(t, "circle", shape.Kind)
}

type Color int32

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
)

func TestRegisterEnumRoundTrip(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)
	require.NoError(t, f.RegisterEnum(ColorRed, ColorGreen, ColorBlue))

	var out Color
	roundTrip(t, f, ColorGreen, &out)
	require.Equal(t, ColorGreen, out)
}

func TestRegisterEnumUnknownOrdinalHardFails(t *testing.T) {
	sender := fory.New(fory.SchemaConsistent)
	receiver := fory.New(fory.SchemaConsistent)
	require.NoError(t, sender.RegisterEnum(ColorRed, ColorGreen, ColorBlue))
	require.NoError(t, receiver.RegisterEnum(ColorRed, ColorGreen))

	data, err := sender.Marshal(ColorBlue)
	require.NoError(t, err)

	var out Color
	err = receiver.Unmarshal(data, &out)
	var ordErr *fory.EnumOrdinalError
	require.ErrorAs(t, err, &ordErr)
}

type Wide struct {
	A int32
	B string
	C int32
}

type Narrow struct {
	A int32
	B string
}

func TestCompatibleModeRoundTrip(t *testing.T) {
	sender := fory.New(fory.Compatible)
	receiver := fory.New(fory.Compatible)
	require.NoError(t, sender.RegisterStruct(Narrow{}))
	require.NoError(t, receiver.RegisterStruct(Narrow{}))

	in := Narrow{A: 7, B: "seven"}
	data, err := sender.Marshal(in)
	require.NoError(t, err)

	var out Narrow
	require.NoError(t, receiver.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestCompatibleModeUnknownFieldHardFails(t *testing.T) {
	sender := fory.New(fory.Compatible)
	receiver := fory.New(fory.Compatible)
	// Both structs are each the first type registered on their Fory, so
	// they are assigned the same class id and the receiver's descriptor
	// validation sees the sender's extra field "C".
	require.NoError(t, sender.RegisterStruct(Wide{}))
	require.NoError(t, receiver.RegisterStruct(Narrow{}))

	data, err := sender.Marshal(Wide{A: 1, B: "x", C: 2})
	require.NoError(t, err)

	var out Narrow
	err = receiver.Unmarshal(data, &out)
	require.ErrorIs(t, err, fory.ErrUnknownField)
}

func TestUnregisteredTypeErrors(t *testing.T) {
	f := fory.New(fory.SchemaConsistent)

	type Unregistered struct{ X int32 }
	_, err := f.Marshal(Unregistered{X: 1})
	require.Error(t, err)
	var unregErr *fory.UnregisteredTypeError
	require.ErrorAs(t, err, &unregErr)
}
