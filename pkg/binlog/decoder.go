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
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/vflab/go-vflog/pkg/log"
)

const (
	// PreambleSize bytes at the head of every log file carry no samples
	PreambleSize = 0xC0
	// FirstBlockSize is the size of the first data block, which carries
	// one extra sync word in front
	FirstBlockSize = 132
	// BlockSize is the size of every data block after the first
	BlockSize = 128
	// FrameSize is the number of words forming one record frame,
	// including the leading marker word
	FrameSize = 16
)

// Decode reads a logger .bin file and returns every record frame that
// decodes cleanly. Frames with a malformed timestamp are skipped; a
// malformed measurement word aborts the whole file with ErrBadFloat.
func Decode(path string) ([]*Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrIO{Path: path, Op: "opening", Err: err}
	}
	defer file.Close()

	// The preamble is consumed rather than seeked over so that a file
	// shorter than the preamble fails here instead of at the first block.
	preamble := make([]byte, PreambleSize)
	if _, err := io.ReadFull(file, preamble); err != nil {
		return nil, ErrIO{Path: path, Op: "skipping preamble of", Err: err}
	}

	hexWords, err := readHexWords(file, path)
	if err != nil {
		return nil, err
	}
	log.Debug("Decode: %s: %d words read", path, len(hexWords))

	return decodeFrames(hexWords)
}

// readHexWords reads fixed-size blocks until a short read, decodes each
// block into big-endian 32-bit words and renders every kept word as
// 8-character uppercase hex. Words accumulate across block boundaries;
// frames are cut from the file-wide sequence, not per block.
func readHexWords(file *os.File, path string) ([]string, error) {
	var hexWords []string
	first := true
	for {
		blockSize := BlockSize
		if first {
			blockSize = FirstBlockSize
		}
		block := make([]byte, blockSize)
		n, err := io.ReadFull(file, block)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// short read means end of data
			log.Debug("readHexWords: %s: short read of %d bytes, done", path, n)
			break
		}
		if err != nil {
			return nil, ErrIO{Path: path, Op: "reading", Err: err}
		}

		wordIndex := 0
		if first {
			// word 0 of the first block is a sync word
			wordIndex = 1
			first = false
		}
		for ; wordIndex < blockSize/4; wordIndex++ {
			word := binary.BigEndian.Uint32(block[wordIndex*4 : wordIndex*4+4])
			hexWords = append(hexWords, fmt.Sprintf("%08X", word))
		}
	}
	return hexWords, nil
}

// decodeFrames cuts the hex word sequence into frames of FrameSize words
// and decodes each one. A trailing partial frame is dropped.
func decodeFrames(hexWords []string) ([]*Record, error) {
	var records []*Record
	for i := 0; i+FrameSize <= len(hexWords); i += FrameSize {
		// the frame's word 0 is a marker
		frame := hexWords[i+1 : i+FrameSize]
		if len(frame) < 2 {
			continue
		}

		record, err := ParseTimestamp(frame[0], frame[1])
		if err != nil {
			// a bad timestamp invalidates only this frame
			log.Debug("decodeFrames: skipping frame at word %d: %s", i, err)
			continue
		}

		if len(frame) < 2+NumValues {
			continue
		}
		values := make([]float32, 0, NumValues)
		for _, hex8 := range frame[2 : 2+NumValues] {
			value, err := ParseFloat(hex8)
			if err != nil {
				// measurement decode errors are not recovered per frame,
				// they fail the file
				return nil, err
			}
			values = append(values, value)
		}

		record.FloatValues = values
		records = append(records, record)
	}
	return records, nil
}
