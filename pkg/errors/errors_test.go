package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrBackupCopy, "copy failed")
	assert.Equal(t, ErrBackupCopy, err.Code)
	assert.Equal(t, "[BACKUP_COPY] copy failed", err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("disk full")
	err := Wrap(inner, ErrTargetWrite, "writing target")
	require.NotNil(t, err)
	assert.Equal(t, "[TARGET_WRITE] writing target: disk full", err.Error())
	assert.Equal(t, inner, errors.Unwrap(err))

	assert.Nil(t, Wrap(nil, ErrTargetWrite, "never happens"))
}

func TestIsByCode(t *testing.T) {
	err := Newf(ErrPrune, "pruning %s", "GoLand")
	assert.True(t, errors.Is(err, New(ErrPrune, "")))
	assert.False(t, errors.Is(err, New(ErrBackupCopy, "")))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrEnumerate, GetCode(New(ErrEnumerate, "x")))
	assert.Equal(t, ErrUnknown, GetCode(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("outer: %w", New(ErrFragmentRead, "inner"))
	assert.Equal(t, ErrFragmentRead, GetCode(wrapped))
	assert.True(t, IsCode(wrapped, ErrFragmentRead))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrTargetWrite, "boom").WithDetail("path", "/tmp/idea64.exe.vmoptions")
	assert.Equal(t, "/tmp/idea64.exe.vmoptions", err.Details["path"])
}
