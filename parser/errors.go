package parser

import (
	"bytes"
	stderrors "errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/tape/errors"
)

// listFormat renders a single error on its own and several as a count
// followed by the first, e.g. "syntax error: unmatched '[' (1:1) (and 2 more errors)".
func listFormat(errs []error) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", errs[0].Error(), len(errs)-1)
	}
}

// SyntaxErrors extracts every *errors.SyntaxError from an error returned by
// Parse, in source order.
func SyntaxErrors(err error) []*errors.SyntaxError {
	var result []*errors.SyntaxError
	var merr *multierror.Error
	if stderrors.As(err, &merr) {
		for _, e := range merr.Errors {
			var serr *errors.SyntaxError
			if stderrors.As(e, &serr) {
				result = append(result, serr)
			}
		}
		return result
	}
	var serr *errors.SyntaxError
	if stderrors.As(err, &serr) {
		result = append(result, serr)
	}
	return result
}

func sourceLine(source []byte, line int) string {
	for i := 1; i < line; i++ {
		idx := bytes.IndexByte(source, '\n')
		if idx < 0 {
			return ""
		}
		source = source[idx+1:]
	}
	if idx := bytes.IndexByte(source, '\n'); idx >= 0 {
		source = source[:idx]
	}
	return string(bytes.TrimRight(source, "\r"))
}
