// Package bytecode provides the parsed representation of tape programs.
//
// A [Program] is a flat sequence of [Instruction] values terminated by a
// single END instruction. Jump instructions carry the slot distance to their
// partner, resolved once at parse time, so the virtual machine never scans
// for brackets at run time.
//
// # Key Types
//
//   - [Instruction]: one opcode plus its payload (value type)
//   - [Program]: immutable instructions with a mutable instruction cursor
//   - [Builder]: an append-only buffer with backpatching, sealed into a Program
//   - [SourceLocation]: maps an instruction to its source position (value type)
//
// # Immutability
//
// The instruction sequence of a Program never changes after construction.
// Constructors copy input slices and accessors are index based. The only
// mutable part is the instruction cursor, which the virtual machine moves and
// [Program.Reset] rewinds so a Program can be replayed against fresh tapes.
//
// Example:
//
//	program, err := parser.ParseString("++[>+<-]")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Instructions: %d\n", program.InstructionCount())
package bytecode
