package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/tape"
	"github.com/deepnoodle-ai/tape/errors"
	"github.com/deepnoodle-ai/tape/machine"
	"github.com/deepnoodle-ai/tape/vm"
)

const rootLong = `Run a tape program.

The program is read from FILE, or from --code. It runs against a byte tape
that starts zeroed and grows to the right as needed. ',' reads one byte from
stdin and stores 0 once stdin is exhausted. '.' writes the current cell to
stdout as a raw byte.

Exit status is 0 when the program reaches its end, 2 for usage errors and
1 for everything else.

A program file named like a subcommand (dis, version) must be given as a
path, e.g. "tape ./dis".`

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "tape [FILE]",
		Short:         "Run tape programs",
		Long:          rootLong,
		Args:          sourceArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cmd); err != nil {
				return err
			}
			processGlobalFlags(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd, v, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.ArgumentErrorf("%v", err)
	})

	pflags := cmd.PersistentFlags()
	pflags.String("config", "", "config file (default is $HOME/.tape.yaml)")
	pflags.Int("tape-size", machine.DefaultSize, "initial number of tape cells")
	pflags.Bool("no-color", false, "disable colored output")
	pflags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")

	flags := cmd.Flags()
	flags.StringP("code", "c", "", "program source to run instead of FILE")
	flags.Bool("trace", false, "log every executed instruction")
	flags.Bool("dump", false, "print the tape pointer and used cells to stderr after the run")
	flags.Bool("timing", false, "print execution time to stderr")

	cmd.AddCommand(newDisCmd(), newVersionCmd())
	return cmd
}

// execute runs cmd with args and returns the process exit status.
func execute(cmd *cobra.Command, args []string) int {
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		printError(cmd.ErrOrStderr(), err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	var argErr *errors.ArgumentError
	if stderrors.As(err, &argErr) {
		return 2
	}
	return 1
}

// sourceArgs accepts exactly one program source: a FILE argument or the
// --code flag.
func sourceArgs(cmd *cobra.Command, args []string) error {
	code := cmd.Flags().Changed("code")
	switch {
	case code && len(args) > 0:
		return errors.ArgumentErrorf("cannot combine --code with a FILE argument")
	case code:
		return nil
	case len(args) == 0:
		return errors.ArgumentErrorf("missing FILE argument")
	case len(args) > 1:
		return errors.ArgumentErrorf("expected one FILE argument, got %d", len(args))
	}
	return nil
}

// readSource returns the program named by the command line along with the
// filename used in diagnostics.
func readSource(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if cmd.Flags().Changed("code") {
		code, err := cmd.Flags().GetString("code")
		if err != nil {
			return nil, "", err
		}
		return []byte(code), "", nil
	}
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.NewIOError("read", path, err)
	}
	return data, path, nil
}

type tapeDump struct {
	Pointer int   `json:"pointer"`
	Length  int   `json:"length"`
	Tape    []int `json:"tape"`
}

func runProgram(cmd *cobra.Command, v *viper.Viper, args []string) error {
	source, filename, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	tapeSize := v.GetInt("tape-size")
	if tapeSize < 1 {
		return errors.ArgumentErrorf("tape size must be positive, got %d", tapeSize)
	}
	logger, err := newLogger(v, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	opts := []tape.Option{
		tape.WithFilename(filename),
		tape.WithTapeSize(tapeSize),
		tape.WithInput(bufio.NewReader(cmd.InOrStdin())),
		tape.WithOutput(cmd.OutOrStdout()),
		tape.WithLogger(logger),
	}
	if v.GetBool("trace") {
		opts = append(opts, tape.WithObserver(vm.NewTracer(logger)))
	}

	start := time.Now()
	state, err := tape.Eval(source, opts...)
	if err != nil {
		return err
	}
	dt := time.Since(start)

	stderr := cmd.ErrOrStderr()
	if v.GetBool("dump") {
		used := state.Used()
		cells := make([]int, len(used))
		for i, c := range used {
			cells[i] = int(c)
		}
		dump := tapeDump{Pointer: state.Pointer(), Length: state.Len(), Tape: cells}
		if err := writeJSON(stderr, dump); err != nil {
			return err
		}
	}
	if v.GetBool("timing") {
		fmt.Fprintf(stderr, "%v\n", dt)
	}
	return nil
}
