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

package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestPutGet(t *testing.T) {
	c := openCatalog(t)
	entry := &Entry{
		Source:      "/data/run1.bin",
		Output:      "/data/run1.csv",
		Records:     42,
		First:       "2025/01/10 13:30:45",
		Last:        "2025/01/10 14:00:00",
		SourceSize:  4096,
		SourceMtime: time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC),
		ConvertedAt: time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.Put(entry))

	got, err := c.Get("/data/run1.bin")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, entry.Output, got.Output)
	require.Equal(t, entry.Records, got.Records)
	require.Equal(t, entry.First, got.First)
	require.True(t, entry.SourceMtime.Equal(got.SourceMtime))
}

func TestGetMissing(t *testing.T) {
	c := openCatalog(t)
	got, err := c.Get("/data/absent.bin")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPutOverwrites(t *testing.T) {
	c := openCatalog(t)
	require.NoError(t, c.Put(&Entry{Source: "/data/run1.bin", Records: 1}))
	require.NoError(t, c.Put(&Entry{Source: "/data/run1.bin", Records: 2}))

	got, err := c.Get("/data/run1.bin")
	require.NoError(t, err)
	require.Equal(t, 2, got.Records)

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestList(t *testing.T) {
	c := openCatalog(t)
	require.NoError(t, c.Put(&Entry{Source: "/data/b.bin", Records: 2}))
	require.NoError(t, c.Put(&Entry{Source: "/data/a.bin", Records: 1}))

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// bbolt iterates keys in byte order
	require.Equal(t, "/data/a.bin", entries[0].Source)
	require.Equal(t, "/data/b.bin", entries[1].Source)
}
