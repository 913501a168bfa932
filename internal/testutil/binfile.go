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

// Package testutil builds synthetic logger .bin files for tests.
package testutil

import (
	"encoding/binary"
	"math"
	"math/bits"
	"os"
	"strconv"
	"testing"
)

const (
	preambleSize = 0xC0
	frameWords   = 16
	markerWord   = 0xAAAA5555
	syncWord     = 0xFFFF0000
)

// Word parses 8 hex characters into the 32-bit word that renders back
// to them.
func Word(t testing.TB, hex8 string) uint32 {
	t.Helper()
	v, err := strconv.ParseUint(hex8, 16, 32)
	if err != nil {
		t.Fatalf("bad hex word %q: %v", hex8, err)
	}
	return uint32(v)
}

// FloatWord returns the stored word for a measurement value: the float
// bit pattern byte-swapped, so the decoder's swap recovers it.
func FloatWord(f float32) uint32 {
	return bits.ReverseBytes32(math.Float32bits(f))
}

// Frame builds the 16 words of one record frame: marker, two timestamp
// words and exactly 13 measurement values.
func Frame(t testing.TB, hex1, hex2 string, values ...float32) []uint32 {
	t.Helper()
	if len(values) != frameWords-3 {
		t.Fatalf("frame needs %d values, got %d", frameWords-3, len(values))
	}
	words := make([]uint32, 0, frameWords)
	words = append(words, markerWord, Word(t, hex1), Word(t, hex2))
	for _, f := range values {
		words = append(words, FloatWord(f))
	}
	return words
}

// LogBytes renders a preamble, the sync word and the frames into the
// on-disk layout. Extra raw bytes may be appended by the caller to
// simulate a truncated trailing block.
func LogBytes(frames ...[]uint32) []byte {
	buf := make([]byte, preambleSize, preambleSize+4+len(frames)*frameWords*4)
	for i := range buf {
		buf[i] = 0x11
	}
	buf = appendWord(buf, syncWord)
	for _, frame := range frames {
		for _, word := range frame {
			buf = appendWord(buf, word)
		}
	}
	return buf
}

// WriteLog writes a synthetic log file to path.
func WriteLog(t testing.TB, path string, frames ...[]uint32) {
	t.Helper()
	if err := os.WriteFile(path, LogBytes(frames...), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func appendWord(buf []byte, word uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], word)
	return append(buf, b[:]...)
}
