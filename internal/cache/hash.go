package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/Norgate-AV/scriptbin/internal/errs"
)

// HashFile creates a hash of a file's content.
// The file is streamed through the hash, so memory use does not grow with file size.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Wrap(err, errs.HashIO, "unable to calculate hash of "+path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errs.Wrap(err, errs.HashIO, "unable to calculate hash of "+path)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
