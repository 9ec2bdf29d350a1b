// Package machine holds the mutable state of a tape program run: a byte tape
// and the pointer into it.
//
// The tape grows on the right: moving past the last cell doubles its length
// with zeroed cells, without bound. Moving left from cell 0 is an error; the
// pointer never wraps.
package machine

import "errors"

// DefaultSize is the initial number of tape cells when none is given.
const DefaultSize = 256

// ErrUnderflow is returned by MoveLeft when the pointer is already at cell 0.
var ErrUnderflow = errors.New("tape pointer moved below cell 0")

// State is a zero-initialized byte tape and a pointer into it. A State is
// owned by a single run and is not safe for concurrent use.
type State struct {
	cells   []byte
	pointer int
	grown   int
}

// New returns a State with size zeroed cells. A size of zero or less uses
// DefaultSize.
func New(size int) *State {
	if size <= 0 {
		size = DefaultSize
	}
	return &State{cells: make([]byte, size)}
}

// Pointer returns the index of the current cell.
func (s *State) Pointer() int {
	return s.pointer
}

// Len returns the current tape length.
func (s *State) Len() int {
	return len(s.cells)
}

// Grown returns how many times the tape has been extended.
func (s *State) Grown() int {
	return s.grown
}

// Cell returns the value of the current cell.
func (s *State) Cell() byte {
	return s.cells[s.pointer]
}

// SetCell stores b in the current cell.
func (s *State) SetCell(b byte) {
	s.cells[s.pointer] = b
}

// Increment adds one to the current cell, wrapping 255 to 0.
func (s *State) Increment() {
	s.cells[s.pointer]++
}

// Decrement subtracts one from the current cell, wrapping 0 to 255.
func (s *State) Decrement() {
	s.cells[s.pointer]--
}

// MoveRight advances the pointer, growing the tape when it runs off the end.
// It reports whether the tape grew.
func (s *State) MoveRight() bool {
	s.pointer++
	if s.pointer < len(s.cells) {
		return false
	}
	grown := make([]byte, 2*len(s.cells))
	copy(grown, s.cells)
	s.cells = grown
	s.grown++
	return true
}

// MoveLeft moves the pointer back one cell. At cell 0 it returns
// ErrUnderflow and leaves the pointer unchanged.
func (s *State) MoveLeft() error {
	if s.pointer == 0 {
		return ErrUnderflow
	}
	s.pointer--
	return nil
}

// Cells returns a copy of the tape.
func (s *State) Cells() []byte {
	cells := make([]byte, len(s.cells))
	copy(cells, s.cells)
	return cells
}

// Used returns a copy of the tape up to its last non-zero cell or the
// pointer, whichever is further right.
func (s *State) Used() []byte {
	end := s.pointer + 1
	for i := len(s.cells) - 1; i >= end; i-- {
		if s.cells[i] != 0 {
			end = i + 1
			break
		}
	}
	used := make([]byte, end)
	copy(used, s.cells[:end])
	return used
}
