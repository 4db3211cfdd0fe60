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

// Package row implements the row-format view codec: a random-access,
// zero-copy binary layout for struct/array/map values, as opposed to the
// tree-walking Serializer contract in the parent package. A row writer
// reserves fixed-width (offset, size) cells up front and patches them once
// each child's extent is known; a viewer reads those cells directly out of
// the borrowed byte slice without any intermediate allocation.
package row

// bitmapWidthInBytes returns the number of bytes reserved for the
// null-tracking bitmap ahead of a struct or array row's field cells: one
// bit per field, rounded up to a whole 64-bit word.
//
// Nothing in this codec currently sets a bit in that region — every field
// present at write time is written as a concrete value — but the space is
// reserved so the layout matches what a future Option-aware writer would
// populate, and so row offsets agree with peers that do set bits.
func bitmapWidthInBytes(numFields int) int {
	return ((numFields + 63) / 64) * 8
}
