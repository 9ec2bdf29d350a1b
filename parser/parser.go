// Package parser turns tape source text into a bytecode.Program.
//
// Source is scanned one byte at a time. The eight language symbols become
// instructions; every other byte is a comment and is dropped, so comments
// never occupy instruction slots or affect jump offsets. Loop brackets are
// matched with a stack of pending open indexes and backpatched as soon as the
// closing bracket is seen.
package parser

import (
	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/tape/bytecode"
	"github.com/deepnoodle-ai/tape/errors"
	"github.com/deepnoodle-ai/tape/op"
)

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in errors and on the Program.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// Parser converts one source text into a Program. A Parser should be used
// only once.
type Parser struct {
	source   []byte
	filename string

	builder *bytecode.Builder
	pending []pendingOpen
	errs    *multierror.Error

	line   int
	column int
}

type pendingOpen struct {
	index int
	loc   bytecode.SourceLocation
}

// New returns a Parser for the given source.
func New(source []byte, options ...Option) *Parser {
	p := &Parser{
		source:  source,
		builder: bytecode.NewBuilder(),
		line:    1,
		column:  1,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse the provided source and return the Program. This is shorthand for
// New followed by Parser.Parse.
func Parse(source []byte, options ...Option) (*bytecode.Program, error) {
	return New(source, options...).Parse()
}

// ParseString is Parse for string input.
func ParseString(source string, options ...Option) (*bytecode.Program, error) {
	return Parse([]byte(source), options...)
}

// Parse scans the whole source. Every unmatched bracket is reported; the
// returned error is a *multierror.Error of *errors.SyntaxError values in
// source order, and no Program is returned alongside it.
func (p *Parser) Parse() (*bytecode.Program, error) {
	for _, c := range p.source {
		loc := bytecode.SourceLocation{Line: p.line, Column: p.column}
		p.advance(c)

		instr := bytecode.Decode(c)
		switch instr.Op {
		case op.Comment:
			continue
		case op.JumpIfZero:
			p.pending = append(p.pending, pendingOpen{index: p.builder.Len(), loc: loc})
			p.builder.Emit(instr, loc)
		case op.JumpIfNonZero:
			if len(p.pending) == 0 {
				p.addError(errors.NewUnmatchedClose(p.errorLocation(loc)))
				continue
			}
			open := p.pending[len(p.pending)-1]
			p.pending = p.pending[:len(p.pending)-1]
			offset := p.builder.Len() - open.index
			p.builder.PatchOffset(open.index, offset)
			p.builder.Emit(bytecode.JumpIfNonZero(offset), loc)
		default:
			p.builder.Emit(instr, loc)
		}
	}
	for _, open := range p.pending {
		p.addError(errors.NewUnmatchedOpen(p.errorLocation(open.loc)))
	}
	if err := p.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	end := bytecode.SourceLocation{Line: p.line, Column: p.column}
	return p.builder.Seal(end, string(p.source), p.filename), nil
}

func (p *Parser) advance(c byte) {
	if c == '\n' {
		p.line++
		p.column = 1
		return
	}
	p.column++
}

func (p *Parser) addError(err *errors.SyntaxError) {
	p.errs = multierror.Append(p.errs, err)
	p.errs.ErrorFormat = listFormat
}

func (p *Parser) errorLocation(loc bytecode.SourceLocation) errors.SourceLocation {
	return errors.SourceLocation{
		Filename: p.filename,
		Line:     loc.Line,
		Column:   loc.Column,
		Source:   sourceLine(p.source, loc.Line),
	}
}
