package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidArgs, "expected %d paths", 2)

	if err.Code != ErrCodeInvalidArgs {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidArgs)
	}

	if err.Message != "expected 2 paths" {
		t.Errorf("Message = %v, want %v", err.Message, "expected 2 paths")
	}

	expected := "INVALID_ARGS: expected 2 paths"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeIO, cause, "write out.dat")

	if err.Code != ErrCodeIO {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "IO_ERROR: write out.dat: disk full"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeParse, "test"),
			code:     ErrCodeParse,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeParse, "test"),
			code:     ErrCodeIO,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidPath, "inner"), "outer"),
			code:     ErrCodeInvalidConfig,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeIO,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeIO,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidRecord, "test"),
			expected: ErrCodeInvalidRecord,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidArgs, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "wrapped plain cause",
			err:      Wrap(ErrCodeIO, errors.New("permission denied"), "open a.dat"),
			expected: "open a.dat: permission denied",
		},
		{
			name:     "nested coded cause",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidPath, "path cannot be empty"), "input 2"),
			expected: "input 2: path cannot be empty",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRecordError(t *testing.T) {
	cause := &RecordError{Line: 3, Text: "42"}
	err := Wrap(ErrCodeInvalidRecord, cause, "fewer than two fields")

	if got := cause.Error(); got != `line 3: "42"` {
		t.Errorf("Error() = %v", got)
	}

	var re *RecordError
	if !errors.As(err, &re) {
		t.Fatal("errors.As should find the RecordError")
	}
	if re.Line != 3 {
		t.Errorf("Line = %d, want 3", re.Line)
	}
}
