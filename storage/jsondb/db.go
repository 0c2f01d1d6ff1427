// Package jsondb is the record store: each collection is a single JSON
// document on disk, read and written whole. A mutex per document serializes
// every read-modify-write cycle; cross-document operations take no global
// lock (last writer wins, matching the on-disk layout's history).
package jsondb

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	studentsFile = "students_data.json"
	homeworkFile = "homework_data.json"
	leavesFile   = "leave_data.json"
)

type (
	DB struct {
		students    *document
		assignments *document
		leaves      *document
	}

	document struct {
		path  string
		mutex sync.Mutex
	}
)

func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	db := &DB{
		students:    &document{path: filepath.Join(dir, studentsFile)},
		assignments: &document{path: filepath.Join(dir, homeworkFile)},
		leaves:      &document{path: filepath.Join(dir, leavesFile)},
	}
	return db, nil
}

// load unmarshals the document into v. A missing file is an empty
// collection: v is left untouched. A malformed file is a fatal read error.
func (doc *document) load(v interface{}) error {
	raw, err := os.ReadFile(doc.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "reading %s", filepath.Base(doc.path))
	}
	if err = json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "parsing %s", filepath.Base(doc.path))
	}
	return nil
}

// save rewrites the document wholesale: temp file then rename, so readers
// never observe a torn write.
func (doc *document) save(v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "encoding %s", filepath.Base(doc.path))
	}

	tmp := doc.path + "." + uuid.New().String() + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", filepath.Base(doc.path))
	}
	if err := os.Rename(tmp, doc.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "replacing %s", filepath.Base(doc.path))
	}
	return nil
}
