package main

import (
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/tape/errors"
)

// newLogger returns a console logger on w. --trace forces the trace level so
// the tracer's step events are visible.
func newLogger(v *viper.Viper, w io.Writer) (zerolog.Logger, error) {
	name := v.GetString("log-level")
	if v.GetBool("trace") {
		name = "trace"
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.Nop(), errors.ArgumentErrorf("invalid log level %q", name)
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    color.NoColor || !isTerminal(w),
		TimeFormat: time.Kitchen,
	}
	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if id, err := uuid.NewV4(); err == nil {
		ctx = ctx.Str("run", id.String())
	}
	return ctx.Logger(), nil
}
