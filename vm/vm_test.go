package vm

import (
	"bytes"
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/tape/errors"
	"github.com/deepnoodle-ai/tape/machine"
	"github.com/deepnoodle-ai/tape/op"
	"github.com/deepnoodle-ai/tape/parser"
)

// Run the given source on a fresh tape and return what it wrote. Used for
// testing.
func run(t *testing.T, source, input string, options ...Option) (string, *machine.State, error) {
	t.Helper()
	program, err := parser.ParseString(source)
	require.Nil(t, err)
	var out bytes.Buffer
	options = append([]Option{WithInput(strings.NewReader(input)), WithOutput(&out)}, options...)
	state, err := Run(program, machine.DefaultSize, options...)
	return out.String(), state, err
}

func TestMultiply(t *testing.T) {
	out, state, err := run(t, "++++++++[>++++++++<-]>.", "")
	require.Nil(t, err)
	require.Equal(t, []byte{64}, []byte(out))
	require.Equal(t, 1, state.Pointer())
}

func TestHelloWorld(t *testing.T) {
	source := `++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>
	---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.`
	out, _, err := run(t, source, "")
	require.Nil(t, err)
	require.Equal(t, "Hello World!\n", out)
}

func TestEcho(t *testing.T) {
	out, _, err := run(t, ",.", "A")
	require.Nil(t, err)
	require.Equal(t, []byte{65}, []byte(out))
}

func TestInputEndOfStreamStoresZero(t *testing.T) {
	out, state, err := run(t, "+++,.", "")
	require.Nil(t, err)
	require.Equal(t, []byte{0}, []byte(out))
	require.Equal(t, byte(0), state.Cell())
}

func TestInputReadErrorStoresZero(t *testing.T) {
	program, err := parser.ParseString("+,.")
	require.Nil(t, err)
	var out bytes.Buffer
	_, err = Run(program, 1,
		WithInput(failingReader{}),
		WithOutput(&out))
	require.Nil(t, err)
	require.Equal(t, []byte{0}, out.Bytes())
}

func TestInputDoesNotReadAhead(t *testing.T) {
	program, err := parser.ParseString(",.")
	require.Nil(t, err)

	// A plain io.Reader without ReadByte.
	input := struct{ io.Reader }{strings.NewReader("xyz")}
	var out bytes.Buffer
	for i := 0; i < 3; i++ {
		_, err = Run(program, 1, WithInput(input), WithOutput(&out))
		require.Nil(t, err)
	}
	require.Equal(t, "xyz", out.String())
}

func TestCatUntilEndOfInput(t *testing.T) {
	out, _, err := run(t, ",[.,]", "hello")
	require.Nil(t, err)
	require.Equal(t, "hello", out)
}

func TestIncrementRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 64, 255, 256, 257, 600} {
		out, _, err := run(t, strings.Repeat("+", n)+".", "")
		require.Nil(t, err)
		require.Equal(t, []byte{byte(n % 256)}, []byte(out), "n=%d", n)
	}
}

func TestDecrementFromZero(t *testing.T) {
	out, _, err := run(t, "-.", "")
	require.Nil(t, err)
	require.Equal(t, []byte{255}, []byte(out))
}

func TestClearLoopTerminates(t *testing.T) {
	_, state, err := run(t, "+++++[-]", "")
	require.Nil(t, err)
	require.Equal(t, byte(0), state.Cell())
}

func TestIncrementLoopWrapsToZero(t *testing.T) {
	// Wrapping arithmetic makes [+] terminate once the cell passes 255.
	_, state, err := run(t, "+[+]", "", WithObserver(StepLimit{Max: 10000}))
	require.Nil(t, err)
	require.Equal(t, byte(0), state.Cell())
}

func TestInfiniteLoopsHitStepBudget(t *testing.T) {
	for _, source := range []string{"+[]", "+[>+<]"} {
		_, _, err := run(t, source, "", WithObserver(StepLimit{Max: 5000}))
		var halt *errors.HaltError
		require.True(t, stderrors.As(err, &halt), source)
		require.Equal(t, int64(5000), halt.Steps)
	}
}

func TestMoveLeftUnderflow(t *testing.T) {
	out, state, err := run(t, "+.\n <", "")
	require.Error(t, err)

	var bounds *errors.BoundsError
	require.True(t, stderrors.As(err, &bounds))
	require.Equal(t, 2, bounds.IP)
	require.Equal(t, 0, bounds.Pointer)
	require.Equal(t, 2, bounds.Location.Line)
	require.Equal(t, 2, bounds.Location.Column)
	require.Equal(t, " <", bounds.Location.Source)

	// Output before the failure is kept.
	require.Equal(t, []byte{1}, []byte(out))
	require.Equal(t, 0, state.Pointer())
}

func TestTapeGrowsOnTheRight(t *testing.T) {
	program, err := parser.ParseString(">>>>+.")
	require.Nil(t, err)
	var out bytes.Buffer
	state, err := Run(program, 1, WithOutput(&out), WithInput(strings.NewReader("")))
	require.Nil(t, err)
	require.Equal(t, []byte{1}, out.Bytes())
	require.Equal(t, 4, state.Pointer())
	require.Equal(t, 8, state.Len())
}

func TestStepJumpTargets(t *testing.T) {
	program, err := parser.ParseString("[-].")
	require.Nil(t, err)
	vm := New(program, machine.New(1), WithOutput(io.Discard))

	// Zero cell: skip past the matching close.
	require.Nil(t, vm.Step())
	require.Equal(t, 3, program.IP())

	program, err = parser.ParseString("++[-]")
	require.Nil(t, err)
	vm = New(program, machine.New(1), WithOutput(io.Discard))
	for i := 0; i < 2; i++ {
		require.Nil(t, vm.Step())
	}
	require.Nil(t, vm.Step()) // JUMP_IF_ZERO falls through on 2
	require.Equal(t, 3, program.IP())
	require.Nil(t, vm.Step()) // DECREMENT to 1
	require.Nil(t, vm.Step()) // JUMP_IF_NON_ZERO back to the open
	require.Equal(t, 2, program.IP())
	require.Nil(t, vm.Step())
	require.Nil(t, vm.Step()) // DECREMENT to 0
	require.Nil(t, vm.Step()) // loop exits
	require.Equal(t, 5, program.IP())
	require.True(t, program.Done())
}

func TestJumpIfZeroLandsPastPartner(t *testing.T) {
	program, err := parser.ParseString("+[[-]>[+<]>]")
	require.Nil(t, err)
	for ip := 0; ip < program.InstructionCount(); ip++ {
		instr := program.InstructionAt(ip)
		if instr.Op != op.JumpIfZero {
			continue
		}
		program.SetIP(ip)
		vm := New(program, machine.New(4), WithOutput(io.Discard))
		require.Nil(t, vm.Step())
		require.Equal(t, ip+instr.Offset+1, program.IP())
	}
}

func TestStepOnEndIsNoOp(t *testing.T) {
	program, err := parser.ParseString("")
	require.Nil(t, err)
	vm := New(program, machine.New(1))
	require.Nil(t, vm.Step())
	require.Equal(t, 0, program.IP())
	require.Equal(t, int64(0), vm.Steps())
	require.Nil(t, vm.Execute())
}

func TestStepsCount(t *testing.T) {
	program, err := parser.ParseString("++[-]")
	require.Nil(t, err)
	vm := New(program, machine.New(1), WithOutput(io.Discard))
	require.Nil(t, vm.Execute())
	// + + [ - ] [ - ]
	require.Equal(t, int64(8), vm.Steps())
	require.Same(t, program, vm.Program())
}

func TestReplayOnFreshState(t *testing.T) {
	program, err := parser.ParseString("+++[>++<-]>.")
	require.Nil(t, err)
	var first, second bytes.Buffer
	_, err = Run(program, 0, WithOutput(&first))
	require.Nil(t, err)
	_, err = Run(program, 0, WithOutput(&second))
	require.Nil(t, err)
	require.Equal(t, []byte{6}, first.Bytes())
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestOutputFlushedBeforeInput(t *testing.T) {
	var out bytes.Buffer
	in := &promptReader{out: &out, data: []byte("x")}
	program, err := parser.ParseString("++++++++[>++++++++<-]>+.,.")
	require.Nil(t, err)
	_, err = Run(program, 0, WithInput(in), WithOutput(&out))
	require.Nil(t, err)
	require.Equal(t, "A", in.seen)
	require.Equal(t, "Ax", out.String())
}

func TestOutputWriteError(t *testing.T) {
	program, err := parser.ParseString("+.")
	require.Nil(t, err)
	_, err = Run(program, 0, WithOutput(failingWriter{}))
	var ioErr *errors.IOError
	require.True(t, stderrors.As(err, &ioErr))
	require.Equal(t, "write", ioErr.Op)
}

func TestLoggerEvents(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	program, err := parser.ParseString(">>.")
	require.Nil(t, err)
	_, err = Run(program, 1, WithOutput(io.Discard), WithLogger(logger))
	require.Nil(t, err)
	require.Contains(t, logs.String(), `"message":"run started"`)
	require.Contains(t, logs.String(), `"message":"tape grown"`)
	require.Contains(t, logs.String(), `"message":"run finished"`)
	require.Contains(t, logs.String(), `"steps":3`)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, stderrors.New("device unavailable")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

// promptReader records what had been written to out when input was first
// requested.
type promptReader struct {
	out  *bytes.Buffer
	data []byte
	seen string
	read bool
}

func (r *promptReader) Read(p []byte) (int, error) {
	if !r.read {
		r.seen = r.out.String()
		r.read = true
	}
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}
