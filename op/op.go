// Package op defines the opcodes shared by the tape parser and virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Tape pointer
	MoveRight Code = 1
	MoveLeft  Code = 2

	// Cell arithmetic
	Increment Code = 10
	Decrement Code = 11

	// I/O
	Output Code = 20
	Input  Code = 21

	// Jump
	JumpIfZero    Code = 30
	JumpIfNonZero Code = 31

	// Synthetic
	Comment Code = 40 // Never emitted into a program
	End     Code = 41
)

// Info contains information about an opcode.
type Info struct {
	Code Code
	Name string
	// Symbol is the source character for the opcode, or 0 for synthetic codes.
	Symbol byte
	// HasOffset is true for the jump opcodes, which carry a partner offset.
	HasOffset bool
}

var (
	infos   = make([]Info, 256)
	symbols = make([]Code, 256)
)

func init() {
	type opInfo struct {
		op     Code
		name   string
		symbol byte
		offset bool
	}
	ops := []opInfo{
		{MoveRight, "MOVE_RIGHT", '>', false},
		{MoveLeft, "MOVE_LEFT", '<', false},
		{Increment, "INCREMENT", '+', false},
		{Decrement, "DECREMENT", '-', false},
		{Output, "OUTPUT", '.', false},
		{Input, "INPUT", ',', false},
		{JumpIfZero, "JUMP_IF_ZERO", '[', true},
		{JumpIfNonZero, "JUMP_IF_NON_ZERO", ']', true},
		{Comment, "COMMENT", 0, false},
		{End, "END", 0, false},
	}
	for i := range symbols {
		symbols[i] = Comment
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:      o.op,
			Name:      o.name,
			Symbol:    o.symbol,
			HasOffset: o.offset,
		}
		if o.symbol != 0 {
			symbols[o.symbol] = o.op
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

// FromSymbol maps a source byte to its opcode. Bytes outside the eight
// language symbols map to Comment.
func FromSymbol(c byte) Code {
	return symbols[c]
}

// String returns the opcode name, e.g. "JUMP_IF_ZERO".
func (c Code) String() string {
	if name := infos[c].Name; name != "" {
		return name
	}
	return "INVALID"
}
