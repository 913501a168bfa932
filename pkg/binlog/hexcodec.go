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
	"strconv"
)

// decimalPair reads two decimal digits of s starting at pos. The words
// carrying the timestamp are rendered as hex text but only the digits
// 0-9 are valid in them; a hex letter is a decode error.
func decimalPair(s string, pos int) (int, error) {
	c1 := s[pos]
	c2 := s[pos+1]
	if c1 < '0' || c1 > '9' || c2 < '0' || c2 > '9' {
		return 0, ErrBadTimestamp{Reason: fmt.Sprintf("non-decimal digit in %q", s[pos:pos+2])}
	}
	return int(c1-'0')*10 + int(c2-'0'), nil
}

// ParseTimestamp decodes the two leading words of a frame into a Record
// with no measurement values yet. hex1 is laid out as "YYMMDDhh" and
// hex2 as "mmssxxxx"; the trailing four characters of hex2 are unused.
// Years are relative to 2000.
func ParseTimestamp(hex1, hex2 string) (*Record, error) {
	if len(hex1) < 8 || len(hex2) < 8 {
		return nil, ErrBadTimestamp{Reason: "timestamp words too short"}
	}

	yy, err := decimalPair(hex1, 0)
	if err != nil {
		return nil, err
	}
	month, err := decimalPair(hex1, 2)
	if err != nil {
		return nil, err
	}
	day, err := decimalPair(hex1, 4)
	if err != nil {
		return nil, err
	}
	hour, err := decimalPair(hex1, 6)
	if err != nil {
		return nil, err
	}
	minute, err := decimalPair(hex2, 0)
	if err != nil {
		return nil, err
	}
	second, err := decimalPair(hex2, 2)
	if err != nil {
		return nil, err
	}

	year := 2000 + yy
	switch {
	case year < 2000 || year > 2100:
		return nil, ErrBadTimestamp{Reason: fmt.Sprintf("year out of range: %d", year)}
	case month < 1 || month > 12:
		return nil, ErrBadTimestamp{Reason: fmt.Sprintf("month out of range: %d", month)}
	case day < 1 || day > 31:
		return nil, ErrBadTimestamp{Reason: fmt.Sprintf("day out of range: %d", day)}
	case hour > 23:
		return nil, ErrBadTimestamp{Reason: fmt.Sprintf("hour out of range: %d", hour)}
	case minute > 59:
		return nil, ErrBadTimestamp{Reason: fmt.Sprintf("minute out of range: %d", minute)}
	case second > 59:
		return nil, ErrBadTimestamp{Reason: fmt.Sprintf("second out of range: %d", second)}
	}

	return &Record{
		Year:    year,
		Month:   month,
		Day:     day,
		Hour:    hour,
		Minute:  minute,
		Second:  second,
		DateStr: fmt.Sprintf("%d/%02d/%02d", year, month, day),
		TimeStr: fmt.Sprintf("%02d:%02d:%02d", hour, minute, second),
	}, nil
}

// ParseFloat decodes one measurement word. The 8 hex characters carry the
// 32-bit value with its bytes listed big-endian, while the float bit
// pattern is little-endian, so the word is byte-swapped before being
// reinterpreted as an IEEE-754 single. The result is rounded to two
// decimal places, half away from zero.
func ParseFloat(hex8 string) (float32, error) {
	if len(hex8) < 8 {
		return 0, ErrBadFloat{Hex: hex8, Reason: "hex string shorter than 8 characters"}
	}
	val, err := strconv.ParseUint(hex8, 16, 32)
	if err != nil {
		return 0, ErrBadFloat{Hex: hex8, Reason: "invalid hex character"}
	}
	f := math.Float32frombits(bits.ReverseBytes32(uint32(val)))
	return float32(math.Round(float64(f)*100.0) / 100.0), nil
}
