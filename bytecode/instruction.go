package bytecode

import (
	"fmt"

	"github.com/deepnoodle-ai/tape/op"
)

// Instruction is a single decoded operation. Offset is only meaningful for
// the jump opcodes and Char only for Comment.
type Instruction struct {
	Op     op.Code
	Offset int
	Char   rune
}

// New returns a payload-free instruction for the given opcode.
func New(code op.Code) Instruction {
	return Instruction{Op: code}
}

// JumpIfZero returns a loop-open instruction with the given partner offset.
func JumpIfZero(offset int) Instruction {
	return Instruction{Op: op.JumpIfZero, Offset: offset}
}

// JumpIfNonZero returns a loop-close instruction with the given partner offset.
func JumpIfNonZero(offset int) Instruction {
	return Instruction{Op: op.JumpIfNonZero, Offset: offset}
}

// Comment returns a comment instruction carrying the source character.
func Comment(c rune) Instruction {
	return Instruction{Op: op.Comment, Char: c}
}

// End returns the terminal instruction.
func End() Instruction {
	return Instruction{Op: op.End}
}

// Decode maps a source byte to its instruction. Jumps decode with a zero
// offset; the parser backpatches them once the partner is known.
func Decode(c byte) Instruction {
	code := op.FromSymbol(c)
	if code == op.Comment {
		return Comment(rune(c))
	}
	return New(code)
}

// IsJump returns true for JUMP_IF_ZERO and JUMP_IF_NON_ZERO.
func (i Instruction) IsJump() bool {
	return op.GetInfo(i.Op).HasOffset
}

// String returns a readable form such as "JUMP_IF_ZERO 5" or "COMMENT 'x'".
func (i Instruction) String() string {
	switch {
	case i.IsJump():
		return fmt.Sprintf("%s %d", i.Op, i.Offset)
	case i.Op == op.Comment:
		return fmt.Sprintf("%s %q", i.Op, i.Char)
	default:
		return i.Op.String()
	}
}
