package tape

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/tape/machine"
	"github.com/deepnoodle-ai/tape/parser"
	"github.com/deepnoodle-ai/tape/vm"
)

// Option configures a tape compilation or execution.
type Option func(*options)

type options struct {
	filename string
	tapeSize int
	input    io.Reader
	output   io.Writer
	observer vm.Observer
	logger   *zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{tapeSize: machine.DefaultSize}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	return opts
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if o.input != nil {
		opts = append(opts, vm.WithInput(o.input))
	}
	if o.output != nil {
		opts = append(opts, vm.WithOutput(o.output))
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	if o.logger != nil {
		opts = append(opts, vm.WithLogger(*o.logger))
	}
	return opts
}

// WithFilename sets the filename for the source code being run.
// This is used for error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithTapeSize sets the initial number of tape cells. The tape still grows
// when a program moves past its right end.
func WithTapeSize(size int) Option {
	return func(o *options) {
		o.tapeSize = size
	}
}

// WithInput sets the stream read by ',' instructions. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(o *options) {
		o.input = r
	}
}

// WithOutput sets the stream written by '.' instructions. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithObserver sets an observer for VM execution events.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithLogger sets the logger passed to the virtual machine.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}
