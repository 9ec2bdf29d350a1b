package bytecode

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/tape/op"
)

// Program is a parsed tape program. The instruction sequence is immutable
// after construction; the instruction cursor is not, so a Program must not be
// shared between concurrently running machines.
type Program struct {
	instructions []Instruction
	locations    []SourceLocation
	source       string
	filename     string

	ip int
}

// ProgramParams contains parameters for creating a new Program.
type ProgramParams struct {
	Instructions []Instruction
	Locations    []SourceLocation // Optional; one per instruction when set
	Source       string
	Filename     string
}

// NewProgram creates a Program from the given parameters after checking that
// it is well formed (see Validate). Input slices are copied.
func NewProgram(params ProgramParams) (*Program, error) {
	if params.Locations != nil && len(params.Locations) != len(params.Instructions) {
		return nil, fmt.Errorf("location count %d does not match instruction count %d",
			len(params.Locations), len(params.Instructions))
	}
	p := newProgram(params)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func newProgram(params ProgramParams) *Program {
	return &Program{
		instructions: copyInstructions(params.Instructions),
		locations:    copyLocations(params.Locations),
		source:       params.Source,
		filename:     params.Filename,
	}
}

// Validate checks the structural invariants the virtual machine relies on:
// the last instruction is the only END, no COMMENT is present, and every jump
// has a partner at exactly its offset carrying the same offset. Loops must
// nest; crossed pairs are rejected.
func (p *Program) Validate() error {
	var open []int
	n := len(p.instructions)
	if n == 0 || p.instructions[n-1].Op != op.End {
		return fmt.Errorf("program must end with %s", op.End)
	}
	for i, instr := range p.instructions {
		switch instr.Op {
		case op.MoveRight, op.MoveLeft, op.Increment, op.Decrement, op.Output, op.Input:
		case op.End:
			if i != n-1 {
				return fmt.Errorf("%s at instruction %d is not the last instruction", op.End, i)
			}
		case op.JumpIfZero:
			partner := i + instr.Offset
			if instr.Offset <= 0 || partner >= n-1 {
				return fmt.Errorf("%s at instruction %d has invalid offset %d", instr.Op, i, instr.Offset)
			}
			if p.instructions[partner] != JumpIfNonZero(instr.Offset) {
				return fmt.Errorf("%s at instruction %d has no matching %s at %d",
					instr.Op, i, op.JumpIfNonZero, partner)
			}
			open = append(open, i)
		case op.JumpIfNonZero:
			partner := i - instr.Offset
			if instr.Offset <= 0 || partner < 0 {
				return fmt.Errorf("%s at instruction %d has invalid offset %d", instr.Op, i, instr.Offset)
			}
			if p.instructions[partner] != JumpIfZero(instr.Offset) {
				return fmt.Errorf("%s at instruction %d has no matching %s at %d",
					instr.Op, i, op.JumpIfZero, partner)
			}
			if top := open[len(open)-1]; top != partner {
				return fmt.Errorf("%s at instruction %d closes %d but %d is innermost",
					instr.Op, i, partner, top)
			}
			open = open[:len(open)-1]
		default:
			return fmt.Errorf("unexpected %s at instruction %d", instr.Op, i)
		}
	}
	return nil
}

// InstructionCount returns the number of instructions, including END.
func (p *Program) InstructionCount() int {
	return len(p.instructions)
}

// InstructionAt returns the instruction at the given index.
func (p *Program) InstructionAt(index int) Instruction {
	return p.instructions[index]
}

// Instructions returns a copy of the instruction sequence.
func (p *Program) Instructions() []Instruction {
	return copyInstructions(p.instructions)
}

// LocationAt returns the source location of the instruction at the given
// index, or a zero location when the program carries no source map.
func (p *Program) LocationAt(index int) SourceLocation {
	if index < 0 || index >= len(p.locations) {
		return SourceLocation{}
	}
	return p.locations[index]
}

// Source returns the source text the program was parsed from, if known.
func (p *Program) Source() string {
	return p.source
}

// Filename returns the filename associated with this program, if any.
func (p *Program) Filename() string {
	return p.filename
}

// SourceLine returns the text of the given 1-based source line, or "" when
// it is out of range or the source is unknown.
func (p *Program) SourceLine(line int) string {
	return sourceLine(p.source, line)
}

func sourceLine(source string, line int) string {
	if line < 1 || source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

// IP returns the instruction cursor.
func (p *Program) IP() int {
	return p.ip
}

// SetIP moves the instruction cursor.
func (p *Program) SetIP(ip int) {
	p.ip = ip
}

// Current returns the instruction under the cursor.
func (p *Program) Current() Instruction {
	return p.instructions[p.ip]
}

// Done reports whether the cursor rests on END.
func (p *Program) Done() bool {
	return p.instructions[p.ip].Op == op.End
}

// Reset rewinds the instruction cursor to the first instruction.
func (p *Program) Reset() {
	p.ip = 0
}

// Equal reports whether two programs have identical instruction sequences.
// Cursor position, locations and metadata are ignored.
func (p *Program) Equal(other *Program) bool {
	if len(p.instructions) != len(other.instructions) {
		return false
	}
	for i := range p.instructions {
		if p.instructions[i] != other.instructions[i] {
			return false
		}
	}
	return true
}

// String returns one instruction per line, prefixed with its index.
func (p *Program) String() string {
	var b strings.Builder
	for i, instr := range p.instructions {
		fmt.Fprintf(&b, "%d\t%s\n", i, instr)
	}
	return b.String()
}

func copyInstructions(src []Instruction) []Instruction {
	if src == nil {
		return nil
	}
	dst := make([]Instruction, len(src))
	copy(dst, src)
	return dst
}

func copyLocations(src []SourceLocation) []SourceLocation {
	if src == nil {
		return nil
	}
	dst := make([]SourceLocation, len(src))
	copy(dst, src)
	return dst
}
