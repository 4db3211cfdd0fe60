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
	"github.com/fory-project/fory-go/buffer"
)

// WriteContext threads the Fory instance, its output writer, the
// per-call meta-descriptor resolver, and a tag-string dedup table through
// every Write call in a single Serialize invocation.
type WriteContext struct {
	Writer      *buffer.Writer
	Fory        *Fory
	MetaWriter  *MetaWriterResolver
	tagTable    map[string]int16
	nextTagID   int16
}

func newWriteContext(f *Fory, w *buffer.Writer) *WriteContext {
	return &WriteContext{
		Writer:     w,
		Fory:       f,
		MetaWriter: newMetaWriterResolver(),
		tagTable:   make(map[string]int16),
	}
}

// WriteTag writes s with dedup: the first occurrence writes a length
// marker followed by the raw bytes; subsequent occurrences write only the
// assigned id. Grounded on the teacher's writeMetaString incremental-id
// cache (type.go dynamicStringToId/dynamicIdToString).
func (c *WriteContext) WriteTag(s string) {
	if id, ok := c.tagTable[s]; ok {
		c.Writer.WriteVarInt32(int32((int32(id)+1)<<1 | 1))
		return
	}
	id := c.nextTagID
	c.nextTagID++
	c.tagTable[s] = id
	c.Writer.WriteVarInt32(int32(len(s)) << 1)
	c.Writer.WriteBytes([]byte(s))
}

// ReadContext is the read-side mirror of WriteContext.
type ReadContext struct {
	Reader     *buffer.Reader
	Fory       *Fory
	MetaReader *MetaReaderResolver
	tagTable   map[int16]string
	nextTagID  int16
}

func newReadContext(f *Fory, r *buffer.Reader) *ReadContext {
	return &ReadContext{
		Reader:     r,
		Fory:       f,
		MetaReader: newMetaReaderResolver(),
		tagTable:   make(map[int16]string),
	}
}

// ReadTag is the inverse of WriteTag.
func (c *ReadContext) ReadTag() string {
	header := c.Reader.ReadVarInt32()
	if header&0b1 == 0 {
		length := int(header >> 1)
		s := string(c.Reader.Bytes(length))
		id := c.nextTagID
		c.nextTagID++
		c.tagTable[id] = s
		return s
	}
	id := int16((header>>1)-1)
	return c.tagTable[id]
}
