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
	"reflect"
	"time"
)

// dateSerializer writes Date as an unsigned 64-bit day offset from the Unix
// epoch, matching original_source/rust/fory-core/src/serializer/datetime.rs's
// NaiveDate wire layout (u64 day count, not the row codec's unrelated i32
// NaiveDate layout in fury-core/src/row/row.rs).
type dateSerializer struct{}

func (dateSerializer) ReservedSpace() int { return 8 }
func (dateSerializer) TypeID(*Fory) int16 { return int16(TypeDate) }
func (dateSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	d := v.Interface().(Date)
	ctx.Writer.WriteUint64(uint64(d.toDaysSinceEpoch()))
	return nil
}
func (dateSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	days := int64(ctx.Reader.ReadUint64())
	d, err := dateFromDaysSinceEpoch(days)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(d), nil
}

// maxMillisFromEpoch bounds the millisecond offsets timeSerializer accepts
// on read, mirroring dateSerializer's chrono-derived day-count bound.
const maxMillisFromEpoch = maxDaysFromEpoch * 86400000

// timeSerializer writes time.Time as an unsigned 64-bit millisecond offset
// from the Unix epoch, matching NaiveDateTime's wire layout.
type timeSerializer struct{}

func (timeSerializer) ReservedSpace() int { return 8 }
func (timeSerializer) TypeID(*Fory) int16 { return int16(TypeTimestamp) }
func (timeSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	t := v.Interface().(time.Time)
	ctx.Writer.WriteUint64(uint64(t.UnixMilli()))
	return nil
}
func (timeSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	ms := int64(ctx.Reader.ReadUint64())
	if ms < -maxMillisFromEpoch || ms > maxMillisFromEpoch {
		return reflect.Value{}, &NaiveDateTimeError{Millis: ms}
	}
	return reflect.ValueOf(time.UnixMilli(ms).UTC()), nil
}
