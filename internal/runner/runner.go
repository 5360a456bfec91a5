// Package runner executes external processes synchronously and classifies how
// they terminated. The same Runner drives build tools and compiled scripts.
package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/Norgate-AV/scriptbin/internal/codes"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// exitCoder is satisfied by *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

// ProcessError describes a process that did not exit successfully
type ProcessError struct {
	Path string

	// Code is the exit status; meaningful only when neither Signaled nor Err is set
	Code int

	// Signaled is set when the process was terminated by a signal and has no exit code
	Signaled bool

	// Err is set when the process could not be started
	Err error
}

func (e *ProcessError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: execution failed: %v", e.Path, e.Err)
	case e.Signaled:
		return fmt.Sprintf("%s: interrupted by signal", e.Path)
	}

	if desc, ok := codes.Describe(e.Code); ok {
		return fmt.Sprintf("%s: process exited with %d (%s)", e.Path, e.Code, desc)
	}

	return fmt.Sprintf("%s: process exited with %d", e.Path, e.Code)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Runner spawns processes with inherited standard streams
type Runner struct {
	execCommand func(name string, args ...string) Commander
	logger      zerolog.Logger
}

// New creates a runner backed by os/exec
func New(logger zerolog.Logger) *Runner {
	return &Runner{
		execCommand: func(name string, args ...string) Commander {
			cmd := exec.Command(name, args...)
			cmd.Stdin = os.Stdin
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr

			return cmd
		},
		logger: logger,
	}
}

// Run executes path with args and blocks until it terminates. A nil error
// means the process exited with status 0; anything else is a *ProcessError.
func (r *Runner) Run(path string, args []string) error {
	r.logger.Debug().Str("path", path).Strs("args", args).Msg("exec")

	err := r.execCommand(path, args...).Run()
	if err == nil {
		return nil
	}

	return classify(path, err)
}

func classify(path string, err error) error {
	var ec exitCoder
	if !errors.As(err, &ec) {
		return &ProcessError{Path: path, Err: err}
	}

	code := ec.ExitCode()
	switch {
	case code < 0:
		return &ProcessError{Path: path, Signaled: true}
	case codes.IsSuccess(code):
		return nil
	}

	return &ProcessError{Path: path, Code: code}
}
