// Package journal keeps a history of successful builds in a BoltDB file.
//
// The journal is informational: the hash records in the cache package decide
// staleness, the journal only answers "when was this last built, and how".
// The database is opened for each operation and closed straight after, so no
// file lock is held while a compiled script runs.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.etcd.io/bbolt"

	"github.com/Norgate-AV/scriptbin/internal/errs"
)

const (
	// bucketName is the BoltDB bucket name for journal entries
	bucketName = "builds"

	lockTimeout = 1 * time.Second
)

// Journal records builds in the database at path
type Journal struct {
	path string
}

// New creates a journal backed by the database at path; the file is created on first write
func New(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) open(readOnly bool) (*bbolt.DB, error) {
	db, err := bbolt.Open(j.path, 0o600, &bbolt.Options{Timeout: lockTimeout, ReadOnly: readOnly})
	if err != nil {
		return nil, errs.Wrapf(err, "failed to open journal %s", j.path)
	}

	return db, nil
}

func (j *Journal) update(fn func(b *bbolt.Bucket) error) error {
	db, err := j.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}

		return fn(b)
	})
}

// view reads the journal without creating it; a missing database reads as empty
func (j *Journal) view(fn func(b *bbolt.Bucket) error) error {
	if _, err := os.Stat(j.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	db, err := j.open(true)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}

		return fn(b)
	})
}

// Record stores entry, replacing any previous entry for the same script
func (j *Journal) Record(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return errs.Wrapf(err, "failed to encode journal entry for %s", entry.Name)
	}

	err = j.update(func(b *bbolt.Bucket) error {
		return b.Put([]byte(entry.Name), data)
	})

	return errs.Wrapf(err, "failed to record build of %s", entry.Name)
}

// Remove deletes the entry for name; a missing entry is not an error
func (j *Journal) Remove(name string) error {
	err := j.update(func(b *bbolt.Bucket) error {
		return b.Delete([]byte(name))
	})

	return errs.Wrapf(err, "failed to remove journal entry for %s", name)
}

// Entries returns every recorded entry keyed by script name
func (j *Journal) Entries() (map[string]Entry, error) {
	entries := make(map[string]Entry)

	err := j.view(func(b *bbolt.Bucket) error {
		return b.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("corrupt entry %s: %w", k, err)
			}

			entries[string(k)] = entry
			return nil
		})
	})
	if err != nil {
		return nil, errs.Wrapf(err, "failed to read journal")
	}

	return entries, nil
}

// Stats returns the number of recorded scripts
func (j *Journal) Stats() (int, error) {
	var count int

	err := j.view(func(b *bbolt.Bucket) error {
		count = b.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, errs.Wrapf(err, "failed to read journal")
	}

	return count, nil
}
