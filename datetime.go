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

import "time"

var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Date is a timezone-naive calendar date, wire-encoded as the unsigned
// 64-bit day offset from the Unix epoch. Grounded on
// original_source/rust/fory-core/src/serializer/datetime.rs's NaiveDate
// impl and on spec.md's Date FieldType.
type Date struct {
	Year  int
	Month int
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: int(month), Day: day}
}

// maxDaysFromEpoch bounds the day offsets this implementation accepts on
// read, mirroring chrono::NaiveDate's own proleptic-Gregorian range (roughly
// years 262143 BCE to 262142 CE) rather than the full span a 64-bit day
// count could otherwise express.
const maxDaysFromEpoch = 95_026_000

func (d Date) toDaysSinceEpoch() int64 {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return int64(t.Sub(epoch).Hours() / 24)
}

func dateFromDaysSinceEpoch(days int64) (Date, error) {
	if days < -maxDaysFromEpoch || days > maxDaysFromEpoch {
		return Date{}, &NaiveDateError{Days: days}
	}
	t := epoch.AddDate(0, 0, int(days))
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}
