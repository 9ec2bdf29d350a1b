package vm

import (
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/tape/bytecode"
	"github.com/deepnoodle-ai/tape/op"
)

// Observer is an interface for observing VM execution. Implementations can
// be used for tracing, step budgets or coverage without modifying the VM.
//
// OnStep is called synchronously before each instruction executes, so
// implementations should be fast.
type Observer interface {
	// OnStep returns false to halt execution immediately.
	OnStep(event StepEvent) bool
}

// StepEvent contains information about a single instruction step.
type StepEvent struct {
	// Step is the 1-based count of this instruction within the run.
	Step int64

	// IP is the instruction pointer (index into the program).
	IP int

	// Opcode is the operation about to execute.
	Opcode op.Code

	// Offset is the partner offset for jump instructions.
	Offset int

	// Pointer is the tape pointer before the instruction executes.
	Pointer int

	// Cell is the value of the current cell before the instruction executes.
	Cell byte

	// Location is the source location of the instruction.
	Location bytecode.SourceLocation
}

// NoOpObserver is an Observer implementation that does nothing.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool { return true }

var _ Observer = NoOpObserver{}

// Tracer logs every step at trace level.
type Tracer struct {
	logger zerolog.Logger
}

// NewTracer returns an Observer that writes each step to logger.
func NewTracer(logger zerolog.Logger) *Tracer {
	return &Tracer{logger: logger}
}

func (t *Tracer) OnStep(event StepEvent) bool {
	e := t.logger.Trace().
		Int64("step", event.Step).
		Int("ip", event.IP).
		Str("op", event.Opcode.String()).
		Int("ptr", event.Pointer).
		Uint8("cell", event.Cell)
	if op.GetInfo(event.Opcode).HasOffset {
		e = e.Int("offset", event.Offset)
	}
	if !event.Location.IsZero() {
		e = e.Str("loc", event.Location.String())
	}
	e.Msg("step")
	return true
}

// StepLimit halts execution once more than Max instructions have run.
type StepLimit struct {
	Max int64
}

func (l StepLimit) OnStep(event StepEvent) bool {
	return event.Step <= l.Max
}
