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
)

// ErrIO returned when the input file can not be opened or read.
// It aborts decoding of the file it occurred in.
type ErrIO struct {
	Path string
	Op   string
	Err  error
}

func (e ErrIO) Error() string {
	return fmt.Sprintf("Error while %s file %s: %s", e.Op, e.Path, e.Err)
}

func (e ErrIO) Unwrap() error {
	return e.Err
}

// ErrBadTimestamp returned when a frame's timestamp words contain a
// non-decimal digit or an out-of-range date/time component. It is
// recovered locally: only the enclosing frame is skipped.
type ErrBadTimestamp struct {
	Reason string
}

func (e ErrBadTimestamp) Error() string {
	return fmt.Sprintf("Error while decoding frame timestamp: %s", e.Reason)
}

// ErrBadFloat returned when a measurement word is not valid hex text.
// Unlike ErrBadTimestamp it is not recovered and aborts the whole file.
type ErrBadFloat struct {
	Hex    string
	Reason string
}

func (e ErrBadFloat) Error() string {
	return fmt.Sprintf("Error while decoding measurement value %q: %s", e.Hex, e.Reason)
}
