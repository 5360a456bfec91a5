// Package paths computes where scriptbin keeps its artifacts, hash records and
// scratch directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Norgate-AV/scriptbin/internal/errs"
	"github.com/Norgate-AV/scriptbin/internal/utils"
)

const (
	// AppName names the application and temp directories
	AppName = "scriptbin"

	binDir     = "bin"
	hashDir    = "hash"
	journalDB  = "journal.db"
	dirPerm    = 0o755
	dotAppName = "." + AppName
)

// Layout is the resolved directory layout for one invocation. Build it once
// and pass it down; nothing below cmd reads the process environment.
type Layout struct {
	AppDir string
	TmpDir string
}

// New returns a layout rooted at appDir and tmpDir.
func New(appDir, tmpDir string) Layout {
	return Layout{AppDir: appDir, TmpDir: tmpDir}
}

// DefaultAppDir is ~/.scriptbin on unix and %APPDATA%\scriptbin on windows.
func DefaultAppDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, AppName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errs.Wrap(err, errs.Config, "unable to locate home directory")
	}

	return filepath.Join(home, dotAppName), nil
}

// DefaultTmpDir is <system temp>/scriptbin.
func DefaultTmpDir() string {
	return filepath.Join(os.TempDir(), AppName)
}

func (l Layout) BinDir() string {
	return filepath.Join(l.AppDir, binDir)
}

func (l Layout) HashDir() string {
	return filepath.Join(l.AppDir, hashDir)
}

// BinPath is the compiled artifact of the named script.
func (l Layout) BinPath(name string) string {
	return filepath.Join(l.BinDir(), utils.ExecutableName(name))
}

// HashPath is the hash record of the named script.
func (l Layout) HashPath(name string) string {
	return filepath.Join(l.HashDir(), name)
}

// ScratchPath is the build scratch directory of the named script.
func (l Layout) ScratchPath(name string) string {
	return filepath.Join(l.TmpDir, name)
}

func (l Layout) JournalPath() string {
	return filepath.Join(l.AppDir, journalDB)
}

// Init creates the application, temp, bin and hash directories if missing.
func (l Layout) Init() error {
	for _, dir := range []string{l.AppDir, l.TmpDir, l.BinDir(), l.HashDir()} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return errs.Wrap(err, errs.Config, "unable to create directory "+dir)
		}
	}

	return nil
}
