package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Syntax errors
//   - E3xxx: Runtime errors
//   - E4xxx: Usage errors
type ErrorCode string

const (
	// Syntax errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unmatched close bracket
	E1002 ErrorCode = "E1002" // Unmatched open bracket

	// Runtime errors (E3xxx)
	E3001 ErrorCode = "E3001" // Tape pointer underflow
	E3002 ErrorCode = "E3002" // Execution halted

	// Usage errors (E4xxx)
	E4001 ErrorCode = "E4001" // Missing or conflicting arguments
	E4002 ErrorCode = "E4002" // I/O failure
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unmatched close bracket",
	E1002: "unmatched open bracket",

	E3001: "tape pointer underflow",
	E3002: "execution halted",

	E4001: "invalid arguments",
	E4002: "i/o failure",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "syntax"
	case '3':
		return "runtime"
	case '4':
		return "usage"
	default:
		return "unknown"
	}
}
