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
	"errors"
	"fmt"
)

// Sentinel errors for the fixed-message cases in the error taxonomy.
var (
	// ErrNull is returned when a non-optional field's wire value is Null.
	ErrNull = errors.New("fory: unexpected null value for non-optional field")
	// ErrRef is returned whenever a Ref flag is encountered on read: this
	// implementation rejects shared-reference/circular graphs outright.
	ErrRef = errors.New("fory: shared/circular references are not supported")
	// ErrRefValueUnsupported is not returned by any serializer in this
	// package: a RefValue flag is read as a plain non-null marker.
	ErrRefValueUnsupported = errors.New("fory: reference-tracked values are not supported")
	ErrEncodedDataEmpty    = errors.New("fory: encoded data is empty")
	ErrLengthExceed        = errors.New("fory: encoded length exceeds the maximum representable size")
	ErrOnlyASCII           = errors.New("fory: value must be representable in ASCII/Latin1")
	ErrUnknownField        = errors.New("fory: unknown field encountered in compatible-mode struct")
)

// BadRefFlagError reports an out-of-range reference flag byte.
type BadRefFlagError struct{ Flag int8 }

func (e *BadRefFlagError) Error() string {
	return fmt.Sprintf("fory: unknown reference flag %d", e.Flag)
}

// FieldTypeError reports a type-id mismatch between what a serializer
// expected and what was actually present on the wire.
type FieldTypeError struct {
	Expected FieldType
	Actual   int16
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("fory: field type mismatch, expected %d, actual %d", e.Expected, e.Actual)
}

// StructHashError reports a struct schema hash mismatch in SchemaConsistent
// mode, where the two peers must agree on layout without a meta block.
type StructHashError struct {
	Expected uint32
	Actual   uint32
}

func (e *StructHashError) Error() string {
	return fmt.Sprintf("fory: struct hash mismatch, expected %d, actual %d", e.Expected, e.Actual)
}

// TagTypeError reports an unrecognized type tag byte on the wire.
type TagTypeError struct{ Code uint8 }

func (e *TagTypeError) Error() string {
	return fmt.Sprintf("fory: unsupported tag type code %d", e.Code)
}

// UnsupportedLanguageError reports a Language value this build does not
// recognize.
type UnsupportedLanguageError struct{ Language Language }

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("fory: unsupported language %d", e.Language)
}

// UnsupportedLanguageCodeError reports a raw language byte with no matching
// Language constant.
type UnsupportedLanguageCodeError struct{ Code uint8 }

func (e *UnsupportedLanguageCodeError) Error() string {
	return fmt.Sprintf("fory: unsupported language code %d", e.Code)
}

// UnsupportedFieldNameEncodingError reports an unrecognized field-name
// encoding tag in a TypeMeta field descriptor.
type UnsupportedFieldNameEncodingError struct{ Code uint8 }

func (e *UnsupportedFieldNameEncodingError) Error() string {
	return fmt.Sprintf("fory: unsupported type-meta field name encoding %d", e.Code)
}

// UnregisteredTypeError reports a value whose Go type has not been
// registered with the Fory instance performing the call.
type UnregisteredTypeError struct{ TypeName string }

func (e *UnregisteredTypeError) Error() string {
	return fmt.Sprintf("fory: type %q not registered", e.TypeName)
}

// ClassIDError reports a class id seen on the wire that has no registered
// counterpart in the receiving Fory's class registry.
type ClassIDError struct{ ID int32 }

func (e *ClassIDError) Error() string {
	return fmt.Sprintf("fory: no type registered for class id %d", e.ID)
}

// NaiveDateError reports a Date whose day-count-since-epoch falls outside
// the range this implementation can represent as a calendar date.
type NaiveDateError struct{ Days int64 }

func (e *NaiveDateError) Error() string {
	return fmt.Sprintf("fory: date out of range, %d days since epoch", e.Days)
}

// NaiveDateTimeError reports a timestamp whose millisecond offset from the
// epoch falls outside the representable range.
type NaiveDateTimeError struct{ Millis int64 }

func (e *NaiveDateTimeError) Error() string {
	return fmt.Sprintf("fory: timestamp out of range, %d ms since epoch", e.Millis)
}

// EnumOrdinalError reports an enum ordinal on the wire with no matching
// registered variant.
type EnumOrdinalError struct {
	TypeName string
	Ordinal  int32
}

func (e *EnumOrdinalError) Error() string {
	return fmt.Sprintf("fory: unknown ordinal %d for enum %s", e.Ordinal, e.TypeName)
}
