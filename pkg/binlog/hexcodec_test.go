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

import (
	"fmt"
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	record, err := ParseTimestamp("25011013", "30450000")
	require.NoError(t, err)
	require.Equal(t, 2025, record.Year)
	require.Equal(t, 1, record.Month)
	require.Equal(t, 10, record.Day)
	require.Equal(t, 13, record.Hour)
	require.Equal(t, 30, record.Minute)
	require.Equal(t, 45, record.Second)
	require.Equal(t, "2025/01/10", record.DateStr)
	require.Equal(t, "13:30:45", record.TimeStr)
}

func TestParseTimestampRoundTrip(t *testing.T) {
	fixtures := []struct {
		hex1, hex2 string
	}{
		{"00010100", "00000000"},
		{"25011013", "30450000"},
		{"99123123", "5959FFFF"},
		{"24022918", "0107ABCD"},
	}
	for _, tc := range fixtures {
		t.Run(tc.hex1+"_"+tc.hex2, func(t *testing.T) {
			record, err := ParseTimestamp(tc.hex1, tc.hex2)
			require.NoError(t, err)
			// formatting the derived strings back into the wire layout
			// must recover the decoded fields
			reHex1 := fmt.Sprintf("%02d%02d%02d%02d", record.Year-2000, record.Month, record.Day, record.Hour)
			reHex2 := fmt.Sprintf("%02d%02d0000", record.Minute, record.Second)
			require.Equal(t, tc.hex1[:8], reHex1)
			require.Equal(t, tc.hex2[:4], reHex2[:4])
			again, err := ParseTimestamp(reHex1, reHex2)
			require.NoError(t, err)
			require.True(t, record.SameTime(again))
		})
	}
}

func TestParseTimestampErrors(t *testing.T) {
	fixtures := []struct {
		name       string
		hex1, hex2 string
	}{
		{"hex letter in year", "A5011013", "30450000"},
		{"hex letter in second", "25011013", "30A50000"},
		{"month zero", "25001013", "30450000"},
		{"month too large", "25131013", "30450000"},
		{"day zero", "25010013", "30450000"},
		{"day too large", "25013213", "30450000"},
		{"hour too large", "25011024", "30450000"},
		{"minute too large", "25011013", "60450000"},
		{"second too large", "25011013", "30600000"},
		{"hex1 too short", "250110", "30450000"},
		{"hex2 too short", "25011013", "3045"},
	}
	for _, tc := range fixtures {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTimestamp(tc.hex1, tc.hex2)
			require.Error(t, err)
			require.IsType(t, ErrBadTimestamp{}, err)
		})
	}
}

// floatHex renders a float the way the logger stores it: the bit
// pattern byte-swapped and printed as big-endian hex text.
func floatHex(f float32) string {
	return fmt.Sprintf("%08X", bits.ReverseBytes32(math.Float32bits(f)))
}

func TestParseFloat(t *testing.T) {
	fixtures := []struct {
		hex      string
		expected float32
	}{
		{floatHex(1.5), 1.5},
		{floatHex(-12.25), -12.25},
		{floatHex(0), 0},
		{floatHex(3.14159), 3.14},
		{floatHex(0.125), 0.13},
		{floatHex(-0.125), -0.13},
		{floatHex(1013.25), 1013.25},
	}
	for _, tc := range fixtures {
		t.Run(tc.hex, func(t *testing.T) {
			value, err := ParseFloat(tc.hex)
			require.NoError(t, err)
			require.InDelta(t, tc.expected, value, 1e-6)
		})
	}
}

func TestParseFloatByteSwap(t *testing.T) {
	// for values the rounding leaves untouched, re-encoding the decoded
	// value must recover the original hex text
	for _, f := range []float32{1.5, -12.25, 0, 0.75, 128, -2.5} {
		hex8 := floatHex(f)
		value, err := ParseFloat(hex8)
		require.NoError(t, err)
		require.Equal(t, hex8, floatHex(value))
	}
}

func TestParseFloatRounding(t *testing.T) {
	for _, f := range []float32{2.71828, -99.999, 0.005, 1234.5678} {
		value, err := ParseFloat(floatHex(f))
		require.NoError(t, err)
		expected := math.Round(float64(f)*100.0) / 100.0
		require.InDelta(t, expected, value, 1e-6)
	}
}

func TestParseFloatErrors(t *testing.T) {
	fixtures := []struct {
		name string
		hex  string
	}{
		{"too short", "C03F"},
		{"empty", ""},
		{"non-hex character", "0000G03F"},
	}
	for _, tc := range fixtures {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFloat(tc.hex)
			require.Error(t, err)
			require.IsType(t, ErrBadFloat{}, err)
		})
	}
}
