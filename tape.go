// Package tape runs programs written in the eight-symbol tape language.
//
// Source is parsed into a flat instruction sequence with precomputed loop
// jumps, then executed against a zeroed byte tape:
//
//	_, err := tape.Eval(source, tape.WithInput(os.Stdin), tape.WithOutput(os.Stdout))
//
// The tape grows to the right on demand; moving left of the first cell fails
// with an *errors.BoundsError. Reading past the end of input stores 0.
package tape

import (
	"github.com/deepnoodle-ai/tape/bytecode"
	"github.com/deepnoodle-ai/tape/machine"
	"github.com/deepnoodle-ai/tape/parser"
	"github.com/deepnoodle-ai/tape/vm"
)

// Compile parses source into a Program. Unmatched brackets are reported
// before anything runs.
func Compile(source []byte, opts ...Option) (*bytecode.Program, error) {
	o := collectOptions(opts...)
	return parser.Parse(source, o.parserOpts()...)
}

// Run executes a Program from its first instruction on a fresh tape and
// returns the final tape state. The state is also returned on failure.
func Run(program *bytecode.Program, opts ...Option) (*machine.State, error) {
	o := collectOptions(opts...)
	return vm.Run(program, o.tapeSize, o.vmOpts()...)
}

// Eval is a convenience function that compiles and runs source.
// It is equivalent to Compile followed by Run.
func Eval(source []byte, opts ...Option) (*machine.State, error) {
	program, err := Compile(source, opts...)
	if err != nil {
		return nil, err
	}
	return Run(program, opts...)
}
