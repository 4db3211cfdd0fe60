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
	"encoding/binary"

	"github.com/fory-project/fory-go/buffer"
)

// writeCallback is the token returned by writeStart and consumed by
// writeEnd: it remembers which cell to patch and where the child's bytes
// began, so writeEnd can compute the child's size without re-deriving it.
type writeCallback struct {
	fieldOffset int
	dataStart   int
}

// fieldWriterHelper is the shared machinery behind StructWriter and
// ArrayWriter: both reserve a run of 8-byte (offset, size) cells ahead of
// the variable payload and differ only in how a field index maps to a
// cell's byte offset.
type fieldWriterHelper struct {
	writer        *buffer.Writer
	baseOffset    int
	getFieldOffset func(idx int) int
}

func (h *fieldWriterHelper) writeStart(idx int) writeCallback {
	fieldOffset := h.getFieldOffset(idx)
	offset := h.writer.Len() - h.baseOffset
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(offset))
	h.writer.SetBytes(fieldOffset, b[:])
	return writeCallback{fieldOffset: fieldOffset, dataStart: h.writer.Len()}
}

func (h *fieldWriterHelper) writeEnd(cb writeCallback) {
	size := h.writer.Len() - cb.dataStart
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(size))
	h.writer.SetBytes(cb.fieldOffset+4, b[:])
}

// StructWriter lays out a fixed-width region of numFields 8-byte cells
// behind a null bitmap, then lets callers patch each cell as its field's
// bytes are appended to the writer.
type StructWriter struct {
	helper fieldWriterHelper
}

// NewStructWriter reserves the struct's fixed region (bitmap plus one cell
// per field) in w and returns a writer for patching those cells.
func NewStructWriter(numFields int, w *buffer.Writer) *StructWriter {
	baseOffset := w.Len()
	bitmapWidth := bitmapWidthInBytes(numFields)
	sw := &StructWriter{
		helper: fieldWriterHelper{
			writer:     w,
			baseOffset: baseOffset,
			getFieldOffset: func(idx int) int {
				return baseOffset + bitmapWidth + idx*8
			},
		},
	}
	fixedSize := bitmapWidth + numFields*8
	w.Reserve(fixedSize)
	w.Skip(fixedSize)
	return sw
}

// Writer returns the underlying writer, to which a field's own bytes (or a
// nested StructWriter/ArrayWriter/MapWriter's fixed region) are appended
// between WriteStart and WriteEnd.
func (s *StructWriter) Writer() *buffer.Writer { return s.helper.writer }

// WriteStart patches field idx's cell with its offset (relative to this
// struct's base) and records where the field's bytes begin.
func (s *StructWriter) WriteStart(idx int) writeCallback { return s.helper.writeStart(idx) }

// WriteEnd patches field idx's cell with the size of the bytes written
// since the matching WriteStart.
func (s *StructWriter) WriteEnd(cb writeCallback) { s.helper.writeEnd(cb) }

// ArrayWriter is a StructWriter that additionally prepends an 8-byte
// little-endian element count, so a viewer can recover the length without
// being told it out of band.
type ArrayWriter struct {
	helper fieldWriterHelper
}

// NewArrayWriter reserves the array's fixed region (element count, bitmap,
// one cell per element) in w.
func NewArrayWriter(numElements int, w *buffer.Writer) *ArrayWriter {
	baseOffset := w.Len()
	bitmapWidth := bitmapWidthInBytes(numElements)
	aw := &ArrayWriter{
		helper: fieldWriterHelper{
			writer:     w,
			baseOffset: baseOffset,
			getFieldOffset: func(idx int) int {
				return 8 + baseOffset + bitmapWidth + idx*8
			},
		},
	}
	fixedSize := 8 + bitmapWidth + numElements*8
	w.Reserve(fixedSize)
	w.WriteUint64(uint64(numElements))
	w.Skip(fixedSize - 8)
	return aw
}

func (a *ArrayWriter) Writer() *buffer.Writer              { return a.helper.writer }
func (a *ArrayWriter) WriteStart(idx int) writeCallback     { return a.helper.writeStart(idx) }
func (a *ArrayWriter) WriteEnd(cb writeCallback)            { a.helper.writeEnd(cb) }

// MapWriter lays out a row as an 8-byte key-area byte count followed by a
// key array row and a value array row, mirroring how BTreeMap is encoded
// in the reference row format: keys and values are independent array rows,
// joined only by sharing the same index order.
type MapWriter struct {
	writer     *buffer.Writer
	baseOffset int
}

// NewMapWriter reserves the 8-byte key-area size prefix in w.
func NewMapWriter(w *buffer.Writer) *MapWriter {
	baseOffset := w.Len()
	w.Reserve(8)
	w.Skip(8)
	return &MapWriter{writer: w, baseOffset: baseOffset}
}

func (m *MapWriter) Writer() *buffer.Writer { return m.writer }

// WriteStart records where the key array is about to begin.
func (m *MapWriter) WriteStart() int { return m.writer.Len() }

// WriteEnd patches the key-area size prefix once the key array has been
// written in full.
func (m *MapWriter) WriteEnd(dataStart int) {
	size := m.writer.Len() - dataStart
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(size))
	m.writer.SetBytes(m.baseOffset, b[:])
}
