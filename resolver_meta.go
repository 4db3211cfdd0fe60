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
	"github.com/fory-project/fory-go/meta"
)

// MetaWriterResolver collects the TypeMeta descriptors referenced by one
// Serialize call, deduplicated by class id, and serializes them into the
// meta block once serialization of the payload completes. Grounded on
// original_source/rust/fory-core/src/resolver/meta_resolver.rs's
// MetaWriterResolver.
type MetaWriterResolver struct {
	descriptors []*meta.TypeMeta
	indexOf     map[uint32]int
}

func newMetaWriterResolver() *MetaWriterResolver {
	return &MetaWriterResolver{indexOf: make(map[uint32]int)}
}

// Push registers m under classID, returning its index in the meta block
// (an existing registration for the same classID is reused).
func (r *MetaWriterResolver) Push(classID uint32, m *meta.TypeMeta) int {
	if idx, ok := r.indexOf[classID]; ok {
		return idx
	}
	idx := len(r.descriptors)
	r.indexOf[classID] = idx
	r.descriptors = append(r.descriptors, m)
	return idx
}

// ToBytes writes var_int32(count) followed by each descriptor's bytes.
func (r *MetaWriterResolver) ToBytes() ([]byte, error) {
	w := buffer.NewWriter(0)
	w.WriteVarInt32(int32(len(r.descriptors)))
	for _, d := range r.descriptors {
		b, err := d.ToBytes()
		if err != nil {
			return nil, err
		}
		w.WriteBytes(b)
	}
	return w.Dump(), nil
}

// MetaReaderResolver is the read-side mirror: it loads every descriptor in
// the meta block once, up front, and serves them by index thereafter.
type MetaReaderResolver struct {
	descriptors []*meta.TypeMeta
}

func newMetaReaderResolver() *MetaReaderResolver {
	return &MetaReaderResolver{}
}

// Load decodes var_int32(count) descriptors from r into the resolver.
func (r *MetaReaderResolver) Load(rd *buffer.Reader) error {
	count := int(rd.ReadVarInt32())
	r.descriptors = make([]*meta.TypeMeta, 0, count)
	for i := 0; i < count; i++ {
		d, err := meta.TypeMetaFromReader(rd)
		if err != nil {
			return err
		}
		r.descriptors = append(r.descriptors, d)
	}
	return nil
}

// Get returns the descriptor previously loaded at index.
func (r *MetaReaderResolver) Get(index int) *meta.TypeMeta {
	if index < 0 || index >= len(r.descriptors) {
		return nil
	}
	return r.descriptors[index]
}
