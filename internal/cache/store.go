// Package cache provides the content hash store that decides whether a
// script's compiled artifact is still current.
//
// Each script has one hash record holding the SHA-256 of its source as of the
// last successful build. Records are plain files under the hash directory,
// named after the script, holding the hex digest with no trailing newline.
//
// Writes truncate and rewrite the record in place and are not atomic. A crash
// mid-write leaves a torn digest, which never matches and so only costs one
// extra rebuild on the next update.
package cache

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Norgate-AV/scriptbin/internal/errs"
)

const recordPerm = 0o644

// Store reads and writes hash records
type Store struct {
	path func(name string) string
}

// NewStore creates a store that keeps the record of each script at path(name)
func NewStore(path func(name string) string) *Store {
	return &Store{path: path}
}

// Path returns the record path for the named script
func (s *Store) Path(name string) string {
	return s.path(name)
}

// Read returns the stored digest for name.
// ok is false when no record exists; that is not an error.
func (s *Store) Read(name string) (digest string, ok bool, err error) {
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}

		return "", false, errs.Wrap(err, errs.HashIO, "unable to read hash record "+path)
	}

	return string(data), true, nil
}

// Matches reports whether the stored digest for name equals digest byte for byte.
func (s *Store) Matches(name, digest string) (bool, error) {
	stored, ok, err := s.Read(name)
	if err != nil || !ok {
		return false, err
	}

	return stored == digest, nil
}

// Write replaces the record for name with digest
func (s *Store) Write(name, digest string) error {
	path := s.Path(name)
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return errs.Wrap(err, errs.HashIO, "unable to write hash record "+path)
	}

	if err := os.WriteFile(path, []byte(digest), recordPerm); err != nil {
		return errs.Wrap(err, errs.HashIO, "unable to write hash record "+path)
	}

	return nil
}

// Remove deletes the record for name if present
func (s *Store) Remove(name string) error {
	return errs.Wrap(RemoveFileIfExists(s.Path(name)), errs.HashIO, "unable to remove hash record")
}
