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

// FieldType is the wire-level type tag written alongside every value's
// reference flag.
type FieldType int16

const (
	TypeBool      FieldType = 1
	TypeUint8     FieldType = 2
	TypeInt8      FieldType = 3
	TypeUint16    FieldType = 4
	TypeInt16     FieldType = 5
	TypeUint32    FieldType = 6
	TypeInt32     FieldType = 7
	TypeUint64    FieldType = 8
	TypeInt64     FieldType = 9
	TypeFloat     FieldType = 11
	TypeDouble    FieldType = 12
	TypeString    FieldType = 13
	TypeBinary    FieldType = 14
	TypeDate      FieldType = 16
	TypeTimestamp FieldType = 18
	TypeArray     FieldType = 25
	TypeMap       FieldType = 30

	TypeTag               FieldType = 256
	TypeSet                FieldType = 257
	TypeBoolArray          FieldType = 258
	TypeInt16Array         FieldType = 259
	TypeInt32Array         FieldType = 260
	TypeInt64Array         FieldType = 261
	TypeFloat32Array       FieldType = 262
	TypeFloat64Array       FieldType = 263
	TypeStringArray        FieldType = 264
)

// RefFlag is the single signed byte preceding every serialized value,
// signalling nullability and (rejected) sharing.
type RefFlag int8

const (
	RefFlagNull         RefFlag = -3
	RefFlagRef          RefFlag = -2
	RefFlagNotNullValue RefFlag = -1
	RefFlagRefValue     RefFlag = 0
)

// Mode selects how struct schema is reconciled between peers.
type Mode int

const (
	// SchemaConsistent requires both peers to share an identical struct
	// layout; only the type id is written, no per-call schema metadata.
	SchemaConsistent Mode = iota
	// Compatible tolerates independent field addition/removal between
	// peers by writing a schema descriptor block alongside the payload.
	Compatible
)

// Language identifies the cross-language peer that produced or will
// consume a payload, written as the second byte of the 10-byte header.
type Language uint8

const (
	LanguageXlang Language = iota
	LanguageJava
	LanguagePython
	LanguageCpp
	LanguageGo
	LanguageJavascript
	LanguageRust
	LanguageDart
)

const (
	flagIsNull          uint8 = 1 << 0
	flagIsLittleEndian  uint8 = 1 << 1
	flagIsCrossLanguage uint8 = 1 << 2
	flagIsOutOfBand     uint8 = 1 << 3
)

// headerSize is the fixed prelude: flags(1) + language(1) +
// meta-offset placeholder(4) + reserved(4).
const headerSize = 10
