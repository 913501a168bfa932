/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package binlog

// NumValues is the number of measurement values in every record frame
const NumValues = 13

// Record is one decoded measurement sample. It is only ever constructed
// with a range-valid timestamp and exactly NumValues float values; a frame
// that fails to decode produces no Record at all.
type Record struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
	// DateStr and TimeStr are derived from the numeric fields,
	// "YYYY/MM/DD" and "hh:mm:ss" with zero-padded components
	DateStr string
	TimeStr string

	FloatValues []float32
}

// Before reports whether r is strictly earlier than other by the
// (year, month, day, hour, minute, second) tuple.
func (r *Record) Before(other *Record) bool {
	if r.Year != other.Year {
		return r.Year < other.Year
	}
	if r.Month != other.Month {
		return r.Month < other.Month
	}
	if r.Day != other.Day {
		return r.Day < other.Day
	}
	if r.Hour != other.Hour {
		return r.Hour < other.Hour
	}
	if r.Minute != other.Minute {
		return r.Minute < other.Minute
	}
	return r.Second < other.Second
}

// SameTime reports whether two records carry an identical timestamp tuple.
func (r *Record) SameTime(other *Record) bool {
	return r.Year == other.Year && r.Month == other.Month && r.Day == other.Day &&
		r.Hour == other.Hour && r.Minute == other.Minute && r.Second == other.Second
}
