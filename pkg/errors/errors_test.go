package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLofarError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *LofarError
		expected string
	}{
		{
			name:     "without_wrapped",
			err:      New(ErrNotFound, "base config missing"),
			expected: "[NOT_FOUND] base config missing",
		},
		{
			name:     "with_wrapped",
			err:      Wrap(fmt.Errorf("read failed"), ErrConfigParse, "bad document"),
			expected: "[CONFIG_PARSE] bad document: read failed",
		},
		{
			name:     "formatted",
			err:      Newf(ErrUnknownKey, "unknown key %q", "SOLVER.BOGUS"),
			expected: `[UNKNOWN_KEY] unknown key "SOLVER.BOGUS"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "ignored %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrConfigInvalid, "validation failed")
	assert.True(t, IsErrorCode(err, ErrConfigInvalid))
	assert.False(t, IsErrorCode(err, ErrNotFound))

	// Works through wrapping
	wrapped := fmt.Errorf("resolving: %w", err)
	assert.True(t, IsErrorCode(wrapped, ErrConfigInvalid))

	// Non-LofarError
	assert.False(t, IsErrorCode(stderrors.New("plain"), ErrConfigInvalid))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrBaseCycle, GetErrorCode(New(ErrBaseCycle, "cycle")))
	assert.Equal(t, ErrUnknown, GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrUnknownKey, "unknown key").
		WithDetail("path", "MODEL.BOGUS").
		WithDetail("file", "overlay.yaml")

	details := GetErrorDetails(err)
	assert.Equal(t, "MODEL.BOGUS", details["path"])
	assert.Equal(t, "overlay.yaml", details["file"])
	assert.Nil(t, GetErrorDetails(stderrors.New("plain")))
}

func TestErrorsIs(t *testing.T) {
	err := New(ErrConfigParse, "first")
	target := New(ErrConfigParse, "second message, same code")
	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, New(ErrNotFound, "other")))
}
