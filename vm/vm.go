// Package vm provides a VirtualMachine that executes parsed tape programs.
package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/tape/bytecode"
	"github.com/deepnoodle-ai/tape/errors"
	"github.com/deepnoodle-ai/tape/machine"
	"github.com/deepnoodle-ai/tape/op"
)

// VirtualMachine runs one Program against one machine State. Execution is
// synchronous; INPUT and OUTPUT block on the underlying streams.
type VirtualMachine struct {
	program *bytecode.Program
	state   *machine.State

	input  io.Reader
	output io.Writer
	in     io.ByteReader
	out    *bufio.Writer

	observer Observer
	logger   zerolog.Logger
	steps    int64
}

// New creates a new Virtual Machine for the given program and state.
func New(program *bytecode.Program, state *machine.State, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		program: program,
		state:   state,
		input:   os.Stdin,
		output:  os.Stdout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(vm)
	}
	vm.in = byteReader(vm.input)
	vm.out = bufio.NewWriter(vm.output)
	return vm
}

// Program returns the program being executed.
func (vm *VirtualMachine) Program() *bytecode.Program {
	return vm.program
}

// State returns the machine state being mutated.
func (vm *VirtualMachine) State() *machine.State {
	return vm.state
}

// Steps returns the number of instructions executed so far.
func (vm *VirtualMachine) Steps() int64 {
	return vm.steps
}

// Execute runs the program from its current instruction until END. Buffered
// output is flushed before returning, also when a step fails; output written
// before a failure is never retracted.
func (vm *VirtualMachine) Execute() (err error) {
	vm.logger.Debug().
		Str("file", vm.program.Filename()).
		Int("instructions", vm.program.InstructionCount()).
		Int("tape", vm.state.Len()).
		Msg("run started")
	defer func() {
		if flushErr := vm.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
		event := vm.logger.Debug()
		if err != nil {
			event = event.Err(err)
		}
		event.Int64("steps", vm.steps).
			Int("ptr", vm.state.Pointer()).
			Int("tape", vm.state.Len()).
			Msg("run finished")
	}()

	for !vm.program.Done() {
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the instruction under the cursor and moves the cursor. On
// END it does nothing.
func (vm *VirtualMachine) Step() error {
	ip := vm.program.IP()
	instr := vm.program.InstructionAt(ip)
	if instr.Op == op.End {
		return nil
	}
	vm.steps++

	if vm.observer != nil {
		event := StepEvent{
			Step:     vm.steps,
			IP:       ip,
			Opcode:   instr.Op,
			Offset:   instr.Offset,
			Pointer:  vm.state.Pointer(),
			Cell:     vm.state.Cell(),
			Location: vm.program.LocationAt(ip),
		}
		if !vm.observer.OnStep(event) {
			vm.steps--
			return &errors.HaltError{IP: ip, Steps: vm.steps}
		}
	}

	next := ip + 1
	switch instr.Op {
	case op.MoveRight:
		if vm.state.MoveRight() {
			vm.logger.Debug().Int("tape", vm.state.Len()).Int("ip", ip).Msg("tape grown")
		}
	case op.MoveLeft:
		if err := vm.state.MoveLeft(); err != nil {
			return vm.boundsError(ip)
		}
	case op.Increment:
		vm.state.Increment()
	case op.Decrement:
		vm.state.Decrement()
	case op.Output:
		if err := vm.out.WriteByte(vm.state.Cell()); err != nil {
			return errors.NewIOError("write", "", err)
		}
	case op.Input:
		vm.state.SetCell(vm.readByte())
	case op.JumpIfZero:
		if vm.state.Cell() == 0 {
			// Land one past the matching JUMP_IF_NON_ZERO.
			next = ip + instr.Offset + 1
		}
	case op.JumpIfNonZero:
		if vm.state.Cell() != 0 {
			// Re-enter at the matching JUMP_IF_ZERO.
			next = ip - instr.Offset
		}
	default:
		return fmt.Errorf("unknown opcode %d at instruction %d", instr.Op, ip)
	}
	vm.program.SetIP(next)
	return nil
}

// readByte returns the next input byte, or 0 once the stream is exhausted.
// Pending output is flushed first so prompts are visible.
func (vm *VirtualMachine) readByte() byte {
	if err := vm.out.Flush(); err != nil {
		vm.logger.Debug().Err(err).Msg("flush before input failed")
	}
	b, err := vm.in.ReadByte()
	if err != nil {
		if err != io.EOF {
			vm.logger.Debug().Err(err).Msg("input read failed")
		}
		return 0
	}
	return b
}

// byteReader returns r as an io.ByteReader without reading ahead, so bytes
// a run does not consume stay in r for the next one.
func byteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &singleByteReader{r: r}
}

type singleByteReader struct {
	r   io.Reader
	buf [1]byte
}

func (s *singleByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, err
	}
	return s.buf[0], nil
}

// Flush writes any buffered output to the output stream.
func (vm *VirtualMachine) Flush() error {
	if err := vm.out.Flush(); err != nil {
		return errors.NewIOError("write", "", err)
	}
	return nil
}

func (vm *VirtualMachine) boundsError(ip int) *errors.BoundsError {
	loc := vm.program.LocationAt(ip)
	return &errors.BoundsError{
		Pointer: vm.state.Pointer(),
		IP:      ip,
		Location: errors.SourceLocation{
			Filename: vm.program.Filename(),
			Line:     loc.Line,
			Column:   loc.Column,
			Source:   vm.program.SourceLine(loc.Line),
		},
	}
}
