// Package errs classifies scriptbin failures and carries the context each
// layer adds on the way up.
//
// An Error holds a root cause, a Kind describing that cause, and an ordered
// list of context messages. Context is appended inner to outer as the error
// rises; Error() renders it outer to inner, so the message reads like a
// conventional Go error chain:
//
//	update foo: compile foo: rustc: process exited with 1
package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Kind is the root cause classification of an Error
type Kind int

const (
	Unknown Kind = iota
	Config
	HashIO
	UnsupportedBuildKind
	BuildToolFailure
	ExecutionFailure
	NotFound
)

var kindNames = map[Kind]string{
	Unknown:              "unknown",
	Config:               "config error",
	HashIO:               "hash i/o error",
	UnsupportedBuildKind: "unsupported build kind",
	BuildToolFailure:     "build tool failure",
	ExecutionFailure:     "execution failure",
	NotFound:             "not found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified error with accumulated context
type Error struct {
	Kind Kind

	// Context is ordered inner to outer
	Context []string

	// Err is the root cause
	Err error
}

func (e *Error) Error() string {
	return strings.Join(e.Chain(), ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Chain returns the context messages outer to inner, followed by the root cause message.
func (e *Error) Chain() []string {
	chain := make([]string, 0, len(e.Context)+1)
	for i := len(e.Context) - 1; i >= 0; i-- {
		chain = append(chain, e.Context[i])
	}

	if e.Err != nil {
		chain = append(chain, e.Err.Error())
	}

	return chain
}

// New creates a classified root error carrying a stack trace.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Err: eris.New(msg)}
}

// Errorf is New with formatting.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: eris.Errorf(format, args...)}
}

// Wrap adds msg as context to err and classifies it as kind unless it is
// already classified. A nil err stays nil.
func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}

	var e *Error
	if !errors.As(err, &e) {
		return &Error{Kind: kind, Context: []string{msg}, Err: err}
	}

	ctx := make([]string, len(e.Context), len(e.Context)+1)
	copy(ctx, e.Context)

	wrapped := &Error{
		Kind:    e.Kind,
		Context: append(ctx, msg),
		Err:     e.Err,
	}
	if wrapped.Kind == Unknown {
		wrapped.Kind = kind
	}

	return wrapped
}

// Wrapf adds context to err without changing its classification.
func Wrapf(err error, format string, args ...any) error {
	return Wrap(err, Unknown, fmt.Sprintf(format, args...))
}

// KindOf returns the classification of err, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Unknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Trace renders err with the stack trace of its root cause when one was recorded.
func Trace(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Err == nil {
		return err.Error()
	}

	return fmt.Sprintf("%s\n%s", e.Error(), eris.ToString(e.Err, true))
}
