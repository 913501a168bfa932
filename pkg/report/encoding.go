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
	"fmt"
	"io"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

const (
	EncodingUTF8  = "utf8"
	EncodingGBK   = "gbk"
	HelpEncodings = "Must be one of: utf8, gbk."
)

// TextEncoder wraps an output stream with a character encoding. The
// serializer always produces UTF-8; the encoder decides what reaches
// the file. Closing the returned writer flushes the encoder, not the
// underlying stream.
type TextEncoder interface {
	Wrap(w io.Writer) io.WriteCloser
	Name() string
}

// NewTextEncoder returns the encoder for a config/flag encoding name.
func NewTextEncoder(name string) (TextEncoder, error) {
	switch name {
	case "", EncodingUTF8:
		return UTF8Encoder{}, nil
	case EncodingGBK:
		return GBKEncoder{}, nil
	default:
		return nil, fmt.Errorf("Unknown encoding %q. %s", name, HelpEncodings)
	}
}

// UTF8Encoder passes the serializer output through unchanged.
type UTF8Encoder struct{}

func (UTF8Encoder) Wrap(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

func (UTF8Encoder) Name() string {
	return EncodingUTF8
}

// GBKEncoder transcodes the output to the GBK code page, which is what
// the logger vendor's own tooling writes on its host platform.
type GBKEncoder struct{}

func (GBKEncoder) Wrap(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, simplifiedchinese.GBK.NewEncoder())
}

func (GBKEncoder) Name() string {
	return EncodingGBK
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
