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
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vflab/go-vflog/pkg/binlog"
)

func makeRecord(t *testing.T, hex1, hex2 string, values ...float32) *binlog.Record {
	t.Helper()
	record, err := binlog.ParseTimestamp(hex1, hex2)
	require.NoError(t, err)
	record.FloatValues = values
	return record
}

func seq13(v float32) []float32 {
	values := make([]float32, binlog.NumValues)
	for i := range values {
		values[i] = v + float32(i)
	}
	return values
}

func serialize(t *testing.T, records []*binlog.Record) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Serialize(records, &buf))
	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestSerializeEmpty(t *testing.T) {
	lines := serialize(t, nil)
	require.Len(t, lines, 1)
	require.Equal(t, Header, lines[0])
}

func TestSerializeRow(t *testing.T) {
	record := makeRecord(t, "25011013", "30450000",
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)
	lines := serialize(t, []*binlog.Record{record})
	require.Len(t, lines, 2)
	// positions 11 and 12 swap on output
	require.Equal(t, "2025/01/10,13:30:45,1,2,3,4,5,6,7,8,9,10,11,13,12", lines[1])
	// the record itself is not mutated
	require.Equal(t, float32(12), record.FloatValues[11])
	require.Equal(t, float32(13), record.FloatValues[12])
}

func TestSerializeSorts(t *testing.T) {
	records := []*binlog.Record{
		makeRecord(t, "25011013", "30470000", seq13(3)...),
		makeRecord(t, "24123123", "59590000", seq13(1)...),
		makeRecord(t, "25011013", "30460000", seq13(2)...),
	}
	lines := serialize(t, records)
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[1], "2024/12/31,23:59:59,"))
	require.True(t, strings.HasPrefix(lines[2], "2025/01/10,13:30:46,"))
	require.True(t, strings.HasPrefix(lines[3], "2025/01/10,13:30:47,"))
}

func TestSerializeDedups(t *testing.T) {
	// two records with the same timestamp: the one sorting first wins
	records := []*binlog.Record{
		makeRecord(t, "25011013", "30450000", seq13(100)...),
		makeRecord(t, "25011013", "30450000", seq13(200)...),
		makeRecord(t, "25011013", "30460000", seq13(300)...),
	}
	lines := serialize(t, records)
	require.Len(t, lines, 3)
	require.Equal(t, "2025/01/10,13:30:45,100,101,102,103,104,105,106,107,108,109,110,112,111", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "2025/01/10,13:30:46,"))
}

func TestSerializeFloatRendering(t *testing.T) {
	record := makeRecord(t, "25011013", "30450000",
		1.5, -12.25, 0, 0.13, 1013.25, 0.01, -0.5, 2.5, 3, 4, 5, 6, 7)
	lines := serialize(t, []*binlog.Record{record})
	require.Equal(t, "2025/01/10,13:30:45,1.5,-12.25,0,0.13,1013.25,0.01,-0.5,2.5,3,4,5,7,6", lines[1])
}

func TestWriteFile(t *testing.T) {
	path := t.TempDir() + "/out.csv"
	records := []*binlog.Record{makeRecord(t, "25011013", "30450000", seq13(1)...)}
	require.NoError(t, WriteFile(records, path, UTF8Encoder{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), Header+"\n"))
	require.Contains(t, string(data), "2025/01/10,13:30:45,")
}
