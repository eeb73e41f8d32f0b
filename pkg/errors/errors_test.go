package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeStructure, "node %d: missing id", 2), "INVALID_STRUCTURE: node 2: missing id"},
		{"wrap", Wrap(ErrCodeParse, cause, "decode graph payload"), "PARSE_ERROR: decode graph payload: unexpected end of JSON input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeInvalidConfig, cause, "read config")

	assert.Same(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))

	var target *Error
	require.True(t, errors.As(fmt.Errorf("load: %w", err), &target))
	assert.Equal(t, ErrCodeInvalidConfig, target.Code)
}

func TestCodeHelpers(t *testing.T) {
	parse := New(ErrCodeParse, "no JSON object found")
	wrapped := fmt.Errorf("synthesize reply.md: %w", New(ErrCodeStructure, "nodes must be an array"))
	nested := Wrap(ErrCodeInvalidInput, New(ErrCodeFileNotFound, "inner"), "outer")
	plain := errors.New("plain")

	tests := []struct {
		name      string
		err       error
		wantCode  Code
		wantFatal bool
	}{
		{"parse", parse, ErrCodeParse, true},
		{"wrapped structure", wrapped, ErrCodeStructure, true},
		{"outermost code wins", nested, ErrCodeInvalidInput, false},
		{"config", New(ErrCodeInvalidConfig, "threshold"), ErrCodeInvalidConfig, false},
		{"plain", plain, "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, GetCode(tt.err))
			assert.Equal(t, tt.wantFatal, IsFatal(tt.err))
			if tt.wantCode != "" {
				assert.True(t, Is(tt.err, tt.wantCode))
			}
			assert.False(t, Is(tt.err, "NO_SUCH_CODE"))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "3 of 4 changes did not match",
		UserMessage(New(ErrCodeInvalidInput, "%d of %d changes did not match", 3, 4)))
	assert.Equal(t, "open reply.md: no such file",
		UserMessage(errors.New("open reply.md: no such file")))
}
