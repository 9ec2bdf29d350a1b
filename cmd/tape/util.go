package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"

	"github.com/deepnoodle-ai/tape/errors"
	"github.com/deepnoodle-ai/tape/parser"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printError writes err to w as a diagnostic. Parse failures list every
// unmatched bracket.
func printError(w io.Writer, err error) {
	f := errors.NewFormatter(!color.NoColor && isTerminal(w))

	if syntaxErrs := parser.SyntaxErrors(err); len(syntaxErrs) > 1 {
		formatted := make([]*errors.FormattedError, 0, len(syntaxErrs))
		for _, e := range syntaxErrs {
			formatted = append(formatted, e.ToFormatted())
		}
		fmt.Fprint(w, f.FormatMultiple(formatted))
		return
	}

	var fe errors.FormattableError
	if stderrors.As(err, &fe) {
		fmt.Fprint(w, f.Format(fe.ToFormatted()))
		return
	}
	fmt.Fprint(w, f.Format(&errors.FormattedError{Message: err.Error()}))
}

func writeJSON(w io.Writer, value any) error {
	var data []byte
	var err error
	if color.NoColor || !isTerminal(w) {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = prettyjson.Marshal(value)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
