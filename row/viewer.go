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

import "encoding/binary"

// fieldAccessorHelper is the read-side counterpart of fieldWriterHelper: it
// locates a field's (offset, size) cell and slices the field's bytes out of
// the borrowed row, with no copy.
type fieldAccessorHelper struct {
	row            []byte
	getFieldOffset func(idx int) int
}

func (h fieldAccessorHelper) offsetSize(idx int) (uint32, uint32) {
	fieldOffset := h.getFieldOffset(idx)
	offset := binary.LittleEndian.Uint32(h.row[fieldOffset : fieldOffset+4])
	size := binary.LittleEndian.Uint32(h.row[fieldOffset+4 : fieldOffset+8])
	return offset, size
}

func (h fieldAccessorHelper) fieldBytes(idx int) []byte {
	offset, size := h.offsetSize(idx)
	return h.row[offset : offset+size]
}

// StructViewer reads a struct row's fixed cells without copying the
// underlying byte slice.
type StructViewer struct {
	accessor fieldAccessorHelper
}

// NewStructViewer wraps row, a slice previously produced by a StructWriter
// for a struct of numFields fields.
func NewStructViewer(row []byte, numFields int) *StructViewer {
	bitmapWidth := bitmapWidthInBytes(numFields)
	return &StructViewer{
		accessor: fieldAccessorHelper{
			row:            row,
			getFieldOffset: func(idx int) int { return bitmapWidth + idx*8 },
		},
	}
}

// FieldBytes returns field idx's bytes as a subslice of the original row.
func (s *StructViewer) FieldBytes(idx int) []byte { return s.accessor.fieldBytes(idx) }

// ArrayViewer reads an array row's element count and cells.
type ArrayViewer struct {
	numElements int
	accessor    fieldAccessorHelper
}

// NewArrayViewer wraps row, a slice previously produced by an ArrayWriter.
func NewArrayViewer(row []byte) *ArrayViewer {
	numElements := int(binary.LittleEndian.Uint64(row[0:8]))
	bitmapWidth := bitmapWidthInBytes(numElements)
	return &ArrayViewer{
		numElements: numElements,
		accessor: fieldAccessorHelper{
			row:            row,
			getFieldOffset: func(idx int) int { return 8 + bitmapWidth + idx*8 },
		},
	}
}

func (a *ArrayViewer) NumElements() int { return a.numElements }

// FieldBytes returns element idx's bytes, panicking on an out-of-range
// index — row views are a random-access, zero-copy layer and treat a bad
// index as a programming error rather than a recoverable condition.
func (a *ArrayViewer) FieldBytes(idx int) []byte {
	if idx < 0 || idx >= a.numElements {
		panic("row: index out of bound")
	}
	return a.accessor.fieldBytes(idx)
}

// MapViewer splits a map row into its key-array row and value-array row.
type MapViewer struct {
	keyRow   []byte
	valueRow []byte
}

// NewMapViewer wraps row, a slice previously produced by a MapWriter.
func NewMapViewer(row []byte) *MapViewer {
	keyByteSize := int(binary.LittleEndian.Uint64(row[0:8]))
	return &MapViewer{
		keyRow:   row[8 : 8+keyByteSize],
		valueRow: row[8+keyByteSize:],
	}
}

func (m *MapViewer) KeyRow() []byte   { return m.keyRow }
func (m *MapViewer) ValueRow() []byte { return m.valueRow }
