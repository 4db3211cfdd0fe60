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

package meta

import (
	"fmt"
	"strings"

	"github.com/fory-project/fory-go/buffer"
)

// FieldNameEncoding is the restricted 2-bit encoding tag carried in a field
// descriptor's header byte, distinct from the 5-value MetaString Encoding.
type FieldNameEncoding uint8

const (
	FieldNameUTF8 FieldNameEncoding = iota
	FieldNameAllToLowerSpecial
	FieldNameLowerUpperDigitSpecial
)

func fieldNameEncodingFor(enc Encoding) FieldNameEncoding {
	switch enc {
	case AllToLowerSpecial, FirstToLowerSpecial:
		return FieldNameAllToLowerSpecial
	case LowerUpperDigitSpecial:
		return FieldNameLowerUpperDigitSpecial
	default:
		return FieldNameUTF8
	}
}

// FieldInfo describes one struct field: its numeric id, the Fory FieldType
// tag it was serialized with, and its name (carried as a metastring so
// short, conventionally-cased field names compress well).
type FieldInfo struct {
	TagID     uint32
	FieldName string
	FieldType int16
}

// fieldHeader packs, MSB to LSB: reserved(2) | encoding(2) | inline_len(3) |
// tag_bit(1). inline_len stores the encoded length directly when it fits in
// 3 bits (0-6); a value of 0b111 signals an escape to a trailing
// var_int32(length-7). This is a normalization of the upstream bit layout
// chosen to be self-consistent; see DESIGN.md.
func (f *FieldInfo) toBytes() ([]byte, error) {
	w := buffer.NewWriter(0)
	ms, err := NewMetaStringEncoder().Encode(f.FieldName)
	if err != nil {
		return nil, err
	}
	// The 2-bit tag has no slot for LowerSpecial or FirstToLowerSpecial:
	// such names are re-encoded as AllToLowerSpecial, whose decoder restores
	// every uppercase letter (or as UTF-8 when the name itself contains '|').
	if ms.Encoding == LowerSpecial || ms.Encoding == FirstToLowerSpecial {
		if strings.IndexByte(f.FieldName, '|') >= 0 {
			ms = &MetaString{Original: f.FieldName, Encoding: Utf8, Bytes: []byte(f.FieldName)}
		} else {
			b, _, err := encodeGeneric(expandUppercase(f.FieldName), 5, charToLowerSpecial)
			if err != nil {
				return nil, err
			}
			ms = &MetaString{Original: f.FieldName, Encoding: AllToLowerSpecial, Bytes: b}
		}
	}
	encTag := fieldNameEncodingFor(ms.Encoding)
	size := len(ms.Bytes)
	header := byte(encTag) << 4
	if size < 7 {
		header |= byte(size) << 1
		w.WriteUint8(header)
	} else {
		header |= 0b1110
		w.WriteUint8(header)
		w.WriteVarInt32(int32(size - 7))
	}
	w.WriteInt16(f.FieldType)
	w.WriteBytes(ms.Bytes)
	return w.Dump(), nil
}

func fieldInfoFromReader(r *buffer.Reader) (*FieldInfo, error) {
	header := r.ReadUint8()
	tagBit := header & 0x1
	encTag := FieldNameEncoding((header >> 4) & 0x3)
	inlineLen := int((header >> 1) & 0x7)
	var size int
	if inlineLen == 0b111 {
		size = int(r.ReadVarInt32()) + 7
	} else {
		size = inlineLen
	}
	_ = tagBit
	fieldType := r.ReadInt16()
	data := r.Bytes(size)
	enc := metaEncodingFor(encTag)
	name, err := NewMetaStringDecoder().Decode(data, enc)
	if err != nil {
		return nil, err
	}
	return &FieldInfo{FieldName: name, FieldType: fieldType}, nil
}

func metaEncodingFor(tag FieldNameEncoding) Encoding {
	switch tag {
	case FieldNameAllToLowerSpecial:
		return AllToLowerSpecial
	case FieldNameLowerUpperDigitSpecial:
		return LowerUpperDigitSpecial
	default:
		return Utf8
	}
}

// TypeMetaLayer is one inheritance level's worth of field descriptors,
// tagged with the numeric type id that level corresponds to.
type TypeMetaLayer struct {
	TypeID uint32
	Fields []FieldInfo
}

func (l *TypeMetaLayer) toBytes() ([]byte, error) {
	w := buffer.NewWriter(0)
	w.WriteVarInt32(int32(len(l.Fields)))
	w.WriteVarInt32(int32(l.TypeID))
	for i := range l.Fields {
		b, err := l.Fields[i].toBytes()
		if err != nil {
			return nil, err
		}
		w.WriteBytes(b)
	}
	return w.Dump(), nil
}

func typeMetaLayerFromReader(r *buffer.Reader) (*TypeMetaLayer, error) {
	fieldCount := int(r.ReadVarInt32())
	typeID := uint32(r.ReadVarInt32())
	fields := make([]FieldInfo, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		fi, err := fieldInfoFromReader(r)
		if err != nil {
			return nil, err
		}
		fields = append(fields, *fi)
	}
	return &TypeMetaLayer{TypeID: typeID, Fields: fields}, nil
}

// TypeMeta is the Compatible-mode schema descriptor written once per
// distinct struct shape and referenced by index from the meta block.
type TypeMeta struct {
	Hash   uint64
	Layers []TypeMetaLayer
}

// NewTypeMeta builds a single-layer descriptor for a flat struct (this
// repository does not model multi-level inheritance layers).
func NewTypeMeta(typeID uint32, hash uint64, fields []FieldInfo) *TypeMeta {
	return &TypeMeta{Hash: hash, Layers: []TypeMetaLayer{{TypeID: typeID, Fields: fields}}}
}

// ToBytes packs the header as hash<<8 | layerCount&0x0F, per the wire
// format's explicit normalization of this header (see DESIGN.md: the
// upstream Rust source instead used hash<<4).
func (m *TypeMeta) ToBytes() ([]byte, error) {
	if len(m.Layers) > 0x0F {
		return nil, fmt.Errorf("meta: too many TypeMeta layers: %d", len(m.Layers))
	}
	w := buffer.NewWriter(0)
	w.WriteUint64((m.Hash << 8) | (uint64(len(m.Layers)) & 0x0F))
	for i := range m.Layers {
		b, err := m.Layers[i].toBytes()
		if err != nil {
			return nil, err
		}
		w.WriteBytes(b)
	}
	return w.Dump(), nil
}

// TypeMetaFromBytes decodes a descriptor previously produced by ToBytes.
func TypeMetaFromBytes(b []byte) (*TypeMeta, error) {
	return TypeMetaFromReader(buffer.NewReader(b))
}

// TypeMetaFromReader decodes one descriptor from r, advancing its cursor
// past the descriptor's bytes. Used to decode descriptors packed back to
// back in a shared meta block.
func TypeMetaFromReader(r *buffer.Reader) (*TypeMeta, error) {
	header := r.ReadUint64()
	hash := header >> 8
	layerCount := int(header & 0x0F)
	layers := make([]TypeMetaLayer, 0, layerCount)
	for i := 0; i < layerCount; i++ {
		l, err := typeMetaLayerFromReader(r)
		if err != nil {
			return nil, err
		}
		layers = append(layers, *l)
	}
	return &TypeMeta{Hash: hash, Layers: layers}, nil
}

// ReadHashFromBytes peeks the hash without decoding the rest of the
// descriptor, leaving r's cursor where it was.
func ReadHashFromBytes(r *buffer.Reader) uint64 {
	rewind := r.ResetCursorToHere()
	h := r.ReadUint64()
	rewind()
	return h >> 8
}
