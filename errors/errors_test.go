package errors

import (
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{
			name:     "with filename",
			loc:      SourceLocation{Filename: "hello.b", Line: 10, Column: 5},
			expected: "hello.b:10:5",
		},
		{
			name:     "without filename",
			loc:      SourceLocation{Line: 10, Column: 5},
			expected: "10:5",
		},
		{
			name:     "zero location",
			loc:      SourceLocation{},
			expected: "0:0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestSourceLocation_IsZero(t *testing.T) {
	require.True(t, SourceLocation{}.IsZero())
	require.True(t, SourceLocation{Filename: "x.b"}.IsZero())
	require.False(t, SourceLocation{Line: 1, Column: 1}.IsZero())
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category string
		desc     string
	}{
		{E1001, "syntax", "unmatched close bracket"},
		{E1002, "syntax", "unmatched open bracket"},
		{E3001, "runtime", "tape pointer underflow"},
		{E3002, "runtime", "execution halted"},
		{E4001, "usage", "invalid arguments"},
		{E4002, "usage", "i/o failure"},
		{ErrorCode("E9999"), "unknown", "unknown error"},
		{ErrorCode(""), "unknown", "unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			require.Equal(t, tt.category, tt.code.Category())
			require.Equal(t, tt.desc, tt.code.Description())
		})
	}
}

func TestSyntaxError(t *testing.T) {
	err := NewUnmatchedClose(SourceLocation{Filename: "a.b", Line: 2, Column: 3, Source: "+]"})
	require.Equal(t, E1001, err.Code)
	require.Equal(t, "syntax error: unmatched ']' (a.b:2:3)", err.Error())

	fe := err.ToFormatted()
	require.Equal(t, E1001, fe.Code)
	require.Equal(t, "syntax error", fe.Kind)
	require.Len(t, fe.SourceLines, 1)
	require.True(t, fe.SourceLines[0].IsMain)
	require.NotEmpty(t, fe.Hint)

	open := NewUnmatchedOpen(SourceLocation{})
	require.Equal(t, E1002, open.Code)
	require.Equal(t, "syntax error: unmatched '['", open.Error())
	require.Empty(t, open.ToFormatted().SourceLines)
}

func TestBoundsError(t *testing.T) {
	err := &BoundsError{Pointer: 0, IP: 4, Location: SourceLocation{Line: 1, Column: 5}}
	require.Equal(t, "bounds error: tape pointer moved below cell 0 (instruction 4 at 1:5)", err.Error())
	fe := err.ToFormatted()
	require.Equal(t, E3001, fe.Code)
	require.Contains(t, fe.Note, "instruction 4")

	err = &BoundsError{IP: 0}
	require.Equal(t, "bounds error: tape pointer moved below cell 0 (instruction 0)", err.Error())
}

func TestIOErrorUnwrap(t *testing.T) {
	err := NewIOError("read", "missing.b", io.ErrUnexpectedEOF)
	require.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
	require.Equal(t, "i/o error: read missing.b: unexpected EOF", err.Error())
	require.True(t, strings.HasPrefix(err.ToFormatted().Message, "cannot read missing.b"))

	err = NewIOError("write", "", io.ErrClosedPipe)
	require.Equal(t, "i/o error: write: io: read/write on closed pipe", err.Error())
}

func TestArgumentError(t *testing.T) {
	err := ArgumentErrorf("expected %d argument, got %d", 1, 0)
	require.Equal(t, "argument error: expected 1 argument, got 0", err.Error())
	require.Equal(t, E4001, err.ToFormatted().Code)
}

func TestHaltError(t *testing.T) {
	err := &HaltError{IP: 3, Steps: 100}
	require.Equal(t, "execution halted at instruction 3 after 100 steps", err.Error())
	require.Equal(t, E3002, err.ToFormatted().Code)
}

func TestFormattableErrors(t *testing.T) {
	var errs = []FormattableError{
		&SyntaxError{},
		&BoundsError{},
		&ArgumentError{},
		&IOError{Err: io.EOF},
		&HaltError{},
	}
	for _, err := range errs {
		require.NotNil(t, err.ToFormatted())
	}
}
