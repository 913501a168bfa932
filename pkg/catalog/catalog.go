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
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"github.com/vflab/go-vflog/pkg/log"
)

const (
	BucketName = "files"
)

// Entry records one successful conversion of a source .bin file
type Entry struct {
	Source      string    `json:"source"`
	Output      string    `json:"output"`
	Records     int       `json:"records"`
	First       string    `json:"first,omitempty"`
	Last        string    `json:"last,omitempty"`
	SourceSize  int64     `json:"sourceSize"`
	SourceMtime time.Time `json:"sourceMtime"`
	ConvertedAt time.Time `json:"convertedAt"`
}

type Catalog struct {
	DB *bbolt.DB
}

// Open opens or creates the catalog database
func Open(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Catalog{DB: db}, nil
}

// Close ...
func (c *Catalog) Close() {
	c.DB.Close()
}

// Put stores or replaces the entry for its source path
func (c *Catalog) Put(entry *Entry) error {
	log.Debug("Catalog.Put: source: %s records: %d", entry.Source, entry.Records)
	return c.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		entryBytes, err := yaml.Marshal(entry)
		if err != nil {
			return err
		}
		return b.Put([]byte(entry.Source), entryBytes)
	})
}

// Get returns the entry for a source path, or nil if none is recorded
func (c *Catalog) Get(source string) (*Entry, error) {
	var entry *Entry
	if err := c.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		entryBytes := b.Get([]byte(source))
		if entryBytes == nil {
			return nil
		}
		entry = &Entry{}
		return yaml.Unmarshal(entryBytes, entry)
	}); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all entries in key order
func (c *Catalog) List() ([]*Entry, error) {
	var entries []*Entry
	if err := c.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		return b.ForEach(func(_, entryBytes []byte) error {
			entry := &Entry{}
			if err := yaml.Unmarshal(entryBytes, entry); err != nil {
				log.Error("Error while unmarshalling catalog entry: %s", err)
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return entries, nil
}
