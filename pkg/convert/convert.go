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

package convert

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vflab/go-vflog/pkg/binlog"
	"github.com/vflab/go-vflog/pkg/catalog"
	"github.com/vflab/go-vflog/pkg/log"
	"github.com/vflab/go-vflog/pkg/report"
)

// Converter runs decode/serialize over batches of input files. The
// per-file batch policy lives here, not in the decoder or serializer:
// merge mode aborts on the first failing file, per-file mode logs the
// failure and continues with the rest.
type Converter struct {
	Encoder report.TextEncoder
	// Catalog may be nil, in which case conversions are not recorded
	// and nothing is skipped
	Catalog *catalog.Catalog
	// Force converts inputs even when the catalog says they are unchanged
	Force bool
}

// Result of one batch run
type Result struct {
	Outputs []string
	Records int
	Skipped []string
	Failed  []string
}

// CollectInputs expands the command line arguments into a flat list of
// input files. A directory argument contributes its *.bin entries.
func CollectInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.bin"))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// OutputPath returns the per-file CSV path for an input, next to it
// with the extension replaced.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".csv"
}

// MergeFiles decodes every input, merges the records and writes a
// single CSV. Any decode failure aborts the whole batch.
func (c *Converter) MergeFiles(paths []string, output string) (*Result, error) {
	var merged []*binlog.Record
	perSource := make(map[string][]*binlog.Record, len(paths))
	for _, path := range paths {
		records, err := binlog.Decode(path)
		if err != nil {
			return nil, err
		}
		log.Info("Decoded %d records from %s", len(records), path)
		merged = append(merged, records...)
		perSource[path] = records
	}

	if err := report.WriteFile(merged, output, c.Encoder); err != nil {
		return nil, err
	}
	log.Info("Wrote %s", output)

	for _, path := range paths {
		c.record(path, output, perSource[path])
	}
	return &Result{Outputs: []string{output}, Records: len(merged)}, nil
}

// ConvertEach writes one CSV next to every input. Failing inputs are
// logged and skipped; unchanged inputs are skipped unless forced.
func (c *Converter) ConvertEach(paths []string) (*Result, error) {
	result := &Result{}
	for _, path := range paths {
		output := OutputPath(path)
		if !c.Force && c.unchanged(path, output) {
			log.Info("Skipping unchanged file %s", path)
			result.Skipped = append(result.Skipped, path)
			continue
		}
		records, err := binlog.Decode(path)
		if err != nil {
			log.Error("Error while converting %s: %s", path, err)
			result.Failed = append(result.Failed, path)
			continue
		}
		if err := report.WriteFile(records, output, c.Encoder); err != nil {
			log.Error("Error while writing %s: %s", output, err)
			result.Failed = append(result.Failed, path)
			continue
		}
		log.Info("Wrote %s with %d records", output, len(records))
		result.Outputs = append(result.Outputs, output)
		result.Records += len(records)
		c.record(path, output, records)
	}
	return result, nil
}

// unchanged reports whether the catalog already has this source with
// the same size and mtime and the recorded output still exists.
func (c *Converter) unchanged(path, output string) bool {
	if c.Catalog == nil {
		return false
	}
	source, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	entry, err := c.Catalog.Get(source)
	if err != nil || entry == nil || entry.Output != output {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.Size() != entry.SourceSize || !info.ModTime().Equal(entry.SourceMtime) {
		return false
	}
	_, err = os.Stat(output)
	return err == nil
}

func (c *Converter) record(path, output string, records []*binlog.Record) {
	if c.Catalog == nil {
		return
	}
	source, err := filepath.Abs(path)
	if err != nil {
		source = path
	}
	entry := &catalog.Entry{
		Source:      source,
		Output:      output,
		Records:     len(records),
		ConvertedAt: time.Now(),
	}
	if info, err := os.Stat(path); err == nil {
		entry.SourceSize = info.Size()
		entry.SourceMtime = info.ModTime()
	}
	if prepared := report.Prepare(records); len(prepared) > 0 {
		first := prepared[0]
		last := prepared[len(prepared)-1]
		entry.First = first.DateStr + " " + first.TimeStr
		entry.Last = last.DateStr + " " + last.TimeStr
	}
	if err := c.Catalog.Put(entry); err != nil {
		log.Warning("Error while updating catalog for %s: %s", path, err)
	}
}
