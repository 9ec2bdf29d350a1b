// Package errors defines the error taxonomy of the tape toolchain. Every error
// is fatal at the point of detection; there is no recovery or resumption.
package errors

import (
	"fmt"
)

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// SyntaxError reports an unmatched loop bracket found while parsing. It is
// raised before any instruction executes.
type SyntaxError struct {
	Code     ErrorCode
	Message  string
	Location SourceLocation
}

func (e *SyntaxError) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("syntax error: %s", e.Message)
	}
	return fmt.Sprintf("syntax error: %s (%s)", e.Message, e.Location)
}

// ToFormatted converts to the FormattedError type for display.
func (e *SyntaxError) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:     e.Code,
		Kind:     "syntax error",
		Message:  e.Message,
		Filename: e.Location.Filename,
		Line:     e.Location.Line,
		Column:   e.Location.Column,
	}
	if e.Location.Source != "" {
		fe.SourceLines = []SourceLineEntry{
			{Number: e.Location.Line, Text: e.Location.Source, IsMain: true},
		}
	}
	switch e.Code {
	case E1001:
		fe.Hint = "remove this ']' or add a matching '[' before it"
	case E1002:
		fe.Hint = "add a matching ']' after this '['"
	}
	return fe
}

// NewUnmatchedClose returns the error for a ']' with no pending '['.
func NewUnmatchedClose(loc SourceLocation) *SyntaxError {
	return &SyntaxError{Code: E1001, Message: "unmatched ']'", Location: loc}
}

// NewUnmatchedOpen returns the error for a '[' that is never closed.
func NewUnmatchedOpen(loc SourceLocation) *SyntaxError {
	return &SyntaxError{Code: E1002, Message: "unmatched '['", Location: loc}
}

// BoundsError reports a tape pointer move below cell zero. Output written
// before the failing step is not retracted.
type BoundsError struct {
	Pointer  int // Tape pointer before the failing move
	IP       int // Index of the failing instruction
	Location SourceLocation
}

func (e *BoundsError) Error() string {
	if e.Location.IsZero() {
		return fmt.Sprintf("bounds error: tape pointer moved below cell 0 (instruction %d)", e.IP)
	}
	return fmt.Sprintf("bounds error: tape pointer moved below cell 0 (instruction %d at %s)",
		e.IP, e.Location)
}

// ToFormatted converts to the FormattedError type for display.
func (e *BoundsError) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:     E3001,
		Kind:     "runtime error",
		Message:  "tape pointer moved below cell 0",
		Filename: e.Location.Filename,
		Line:     e.Location.Line,
		Column:   e.Location.Column,
		Note:     fmt.Sprintf("'<' executed at instruction %d with the pointer at cell %d", e.IP, e.Pointer),
	}
	if e.Location.Source != "" {
		fe.SourceLines = []SourceLineEntry{
			{Number: e.Location.Line, Text: e.Location.Source, IsMain: true},
		}
	}
	return fe
}

// ArgumentError indicates the command line did not name a program.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument error: %s", e.Message)
}

// ToFormatted converts to the FormattedError type for display.
func (e *ArgumentError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    E4001,
		Kind:    "error",
		Message: e.Message,
		Hint:    "usage: tape FILE",
	}
}

// ArgumentErrorf creates an ArgumentError with a formatted message.
func ArgumentErrorf(format string, args ...any) *ArgumentError {
	return &ArgumentError{Message: fmt.Sprintf(format, args...)}
}

// IOError wraps a failure to read the program source or to write output.
type IOError struct {
	Op   string // "read", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("i/o error: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("i/o error: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ToFormatted converts to the FormattedError type for display.
func (e *IOError) ToFormatted() *FormattedError {
	msg := fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	if e.Path != "" {
		msg = fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
	}
	return &FormattedError{
		Code:    E4002,
		Kind:    "error",
		Message: msg,
	}
}

// NewIOError wraps err as an IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// HaltError indicates an observer stopped execution before the program
// reached its end.
type HaltError struct {
	IP    int
	Steps int64
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("execution halted at instruction %d after %d steps", e.IP, e.Steps)
}

// ToFormatted converts to the FormattedError type for display.
func (e *HaltError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:    E3002,
		Kind:    "runtime error",
		Message: e.Error(),
	}
}
