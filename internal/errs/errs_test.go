package errs

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_ChainRendersOuterToInner(t *testing.T) {
	root := errors.New("permission denied")

	err := Wrap(root, HashIO, "unable to read hash record")
	err = Wrapf(err, "check %s", "foo")
	err = Wrapf(err, "update %s", "foo")

	assert.Equal(t, "update foo: check foo: unable to read hash record: permission denied", err.Error())

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, []string{"unable to read hash record", "check foo", "update foo"}, e.Context)
	assert.Equal(t, []string{"update foo", "check foo", "unable to read hash record", "permission denied"}, e.Chain())
}

func TestWrap_FirstClassificationWins(t *testing.T) {
	err := New(BuildToolFailure, "rustc: process exited with 1")
	err = Wrap(err, ExecutionFailure, "run foo")

	assert.Equal(t, BuildToolFailure, KindOf(err))
	assert.True(t, Is(err, BuildToolFailure))
	assert.False(t, Is(err, ExecutionFailure))
}

func TestWrap_ClassifiesUnknown(t *testing.T) {
	err := Wrapf(errors.New("boom"), "first")
	assert.Equal(t, Unknown, KindOf(err))

	err = Wrap(err, Config, "second")
	assert.Equal(t, Config, KindOf(err))
	assert.Equal(t, "second: first: boom", err.Error())
}

func TestWrap_DoesNotAliasContext(t *testing.T) {
	base := Wrap(errors.New("root"), HashIO, "a")

	left := Wrapf(base, "left")
	right := Wrapf(base, "right")

	assert.Equal(t, "left: a: root", left.Error())
	assert.Equal(t, "right: a: root", right.Error())
	assert.Equal(t, "a: root", base.Error())
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(nil, Config, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing"))
}

func TestWrap_PreservesRootForErrorsIs(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here")
	err := Wrapf(Wrap(statErr, HashIO, "stat"), "outer")

	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(fmt.Errorf("plain")))
	assert.False(t, Is(nil, Unknown))
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Config, "config error"},
		{HashIO, "hash i/o error"},
		{UnsupportedBuildKind, "unsupported build kind"},
		{BuildToolFailure, "build tool failure"},
		{ExecutionFailure, "execution failure"},
		{NotFound, "not found"},
		{Kind(99), "kind(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestTrace(t *testing.T) {
	err := Wrapf(New(NotFound, "script not found"), "run ghost")

	out := Trace(err)
	assert.Contains(t, out, "run ghost: script not found")

	assert.Equal(t, "plain", Trace(errors.New("plain")))
}
