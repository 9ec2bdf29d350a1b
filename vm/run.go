package vm

import (
	"github.com/deepnoodle-ai/tape/bytecode"
	"github.com/deepnoodle-ai/tape/machine"
)

// Run executes the program from its first instruction on a fresh tape of the
// given size and returns the final state. The state is returned on failure
// too, for inspection.
func Run(program *bytecode.Program, tapeSize int, options ...Option) (*machine.State, error) {
	state := machine.New(tapeSize)
	program.Reset()
	m := New(program, state, options...)
	return state, m.Execute()
}
