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

package report

import (
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/vflab/go-vflog/pkg/binlog"
	"github.com/vflab/go-vflog/pkg/log"
)

// Header is the fixed column header of every report. The measurement
// column order is the one the header declares; it differs from the frame
// order by one swapped pair, see renderRow.
const Header = "日期,时间," +
	"压力设定/mbar,实际压力/mbar," +
	"设定温度/℃,实际温度/℃," +
	"设定功率/KW,实际功率/KW," +
	"加热电阻/mΩ,加热电压/V," +
	"加热电流/A,毫托计/Pa," +
	"氩气流量/SLM,温升/℃/min," +
	"氟利昂流量/SLM"

// Prepare sorts a copy of records by timestamp and drops every record
// whose timestamp equals the previously kept one, so the first record
// per distinct timestamp survives. The input slice is left untouched.
func Prepare(records []*binlog.Record) []*binlog.Record {
	sorted := make([]*binlog.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	unique := make([]*binlog.Record, 0, len(sorted))
	var last *binlog.Record
	for _, r := range sorted {
		if last == nil || !r.SameTime(last) {
			unique = append(unique, r)
			last = r
		}
	}
	return unique
}

// renderRow renders one CSV row. For a full set of measurement values
// the values at positions 11 and 12 are swapped on a copy, which moves
// the two trailing flow columns into the order the header declares.
func renderRow(r *binlog.Record) string {
	values := make([]float32, len(r.FloatValues))
	copy(values, r.FloatValues)
	if len(values) == binlog.NumValues {
		values[11], values[12] = values[12], values[11]
	}

	fields := make([]string, 0, len(values)+2)
	fields = append(fields, r.DateStr, r.TimeStr)
	for _, v := range values {
		fields = append(fields, strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	return strings.Join(fields, ",")
}

// Serialize writes the header and the sorted, deduplicated records to w.
// It is a pure function of the record slice; records are never mutated.
func Serialize(records []*binlog.Record, w io.Writer) error {
	if _, err := io.WriteString(w, Header+"\n"); err != nil {
		return err
	}
	for _, r := range Prepare(records) {
		if _, err := io.WriteString(w, renderRow(r)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile serializes records to path through the given encoder.
func WriteFile(records []*binlog.Record, path string, encoder TextEncoder) error {
	file, err := os.Create(path)
	if err != nil {
		log.Error("Error while creating file: %s", path)
		return err
	}
	defer file.Close()

	w := encoder.Wrap(file)
	if err := Serialize(records, w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
