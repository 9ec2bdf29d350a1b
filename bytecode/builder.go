package bytecode

import (
	"fmt"

	"github.com/deepnoodle-ai/tape/op"
)

// Builder accumulates instructions for a Program. Emitted instructions are
// addressed by their integer index, which stays stable, so a placeholder jump
// can be rewritten once its partner is known. A Builder is single use: after
// Seal it rejects further changes.
type Builder struct {
	instructions []Instruction
	locations    []SourceLocation
	sealed       bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Len returns the number of emitted instructions, which is also the index
// the next Emit will use.
func (b *Builder) Len() int {
	return len(b.instructions)
}

// Emit appends an instruction and returns its index.
func (b *Builder) Emit(instr Instruction, loc SourceLocation) int {
	b.mustBeOpen()
	if instr.Op == op.Comment {
		panic("bytecode: comments cannot be emitted")
	}
	b.instructions = append(b.instructions, instr)
	b.locations = append(b.locations, loc)
	return len(b.instructions) - 1
}

// PatchOffset rewrites the offset of the jump previously emitted at index.
func (b *Builder) PatchOffset(index, offset int) {
	b.mustBeOpen()
	if index < 0 || index >= len(b.instructions) {
		panic(fmt.Sprintf("bytecode: patch index %d out of range", index))
	}
	if !b.instructions[index].IsJump() {
		panic(fmt.Sprintf("bytecode: cannot patch offset of %s", b.instructions[index].Op))
	}
	b.instructions[index].Offset = offset
}

// Seal appends END and returns the finished Program. The Builder cannot be
// used afterwards.
func (b *Builder) Seal(loc SourceLocation, source, filename string) *Program {
	b.Emit(End(), loc)
	b.sealed = true
	p := &Program{
		instructions: b.instructions,
		locations:    b.locations,
		source:       source,
		filename:     filename,
	}
	b.instructions, b.locations = nil, nil
	return p
}

func (b *Builder) mustBeOpen() {
	if b.sealed {
		panic("bytecode: builder is sealed")
	}
}
