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
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func TestNewTextEncoder(t *testing.T) {
	encoder, err := NewTextEncoder("")
	require.NoError(t, err)
	require.Equal(t, EncodingUTF8, encoder.Name())

	encoder, err = NewTextEncoder(EncodingGBK)
	require.NoError(t, err)
	require.Equal(t, EncodingGBK, encoder.Name())

	_, err = NewTextEncoder("latin1")
	require.Error(t, err)
}

func TestUTF8EncoderPassthrough(t *testing.T) {
	var buf bytes.Buffer
	w := UTF8Encoder{}.Wrap(&buf)
	_, err := io.WriteString(w, Header)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, Header, buf.String())
}

func TestGBKEncoderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := GBKEncoder{}.Wrap(&buf)
	_, err := io.WriteString(w, Header+"\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// the file content is no longer UTF-8
	require.NotEqual(t, Header+"\n", buf.String())

	// decoding it back with GBK recovers the exact header
	decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, Header+"\n", string(decoded))
}

func TestGBKEncoderAsciiRows(t *testing.T) {
	// data rows are plain ASCII and must pass through byte-identical
	var buf bytes.Buffer
	w := GBKEncoder{}.Wrap(&buf)
	row := "2025/01/10,13:30:45,1.5,-12.25,0\n"
	_, err := io.WriteString(w, row)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, row, buf.String())
}
