package vm

import (
	"io"

	"github.com/rs/zerolog"
)

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithInput sets the stream INPUT instructions read from. Defaults to
// os.Stdin. Each INPUT consumes exactly one byte and nothing is read ahead,
// so callers wanting buffering should pass a *bufio.Reader they keep.
func WithInput(r io.Reader) Option {
	return func(vm *VirtualMachine) {
		vm.input = r
	}
}

// WithOutput sets the stream OUTPUT instructions write to. Defaults to
// os.Stdout. Output is buffered and flushed before every INPUT and when
// Execute returns.
func WithOutput(w io.Writer) Option {
	return func(vm *VirtualMachine) {
		vm.output = w
	}
}

// WithObserver sets an observer for VM execution events.
// Returning false from OnStep halts execution immediately.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}

// WithLogger sets the logger used for run lifecycle and tape growth events.
// Defaults to a disabled logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VirtualMachine) {
		vm.logger = logger
	}
}
