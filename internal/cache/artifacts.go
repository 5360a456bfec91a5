package cache

import (
	"os"

	"github.com/Norgate-AV/scriptbin/internal/errs"
)

const dirPerm = 0o755

// FileExists reports whether path is an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDir creates dir and any missing parents
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errs.Wrapf(err, "unable to create directory %s", dir)
	}

	return nil
}

// RemoveFileIfExists deletes the file at path; a missing file is not an error
func RemoveFileIfExists(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}

	if err := os.Remove(path); err != nil {
		return errs.Wrapf(err, "unable to delete file %s", path)
	}

	return nil
}

// RemoveDirIfExists deletes dir and its contents; a missing directory is not an error
func RemoveDirIfExists(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}

	if err := os.RemoveAll(dir); err != nil {
		return errs.Wrapf(err, "unable to delete directory %s", dir)
	}

	return nil
}
