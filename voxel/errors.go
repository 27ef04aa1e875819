package voxel

import (
	"errors"
	"fmt"
)

var (
	// ErrRenderingUnavailable is returned when the renderer fails to create
	// or destroy an object.
	ErrRenderingUnavailable = errors.New("rendering unavailable")
	ErrIO                   = errors.New("i/o error")
	ErrCorruptData          = errors.New("corrupt data")
	ErrNotFound             = errors.New("not found")
	ErrParse                = errors.New("parse error")
	// ErrColumnFull means every cell of a column up to the height limit is
	// occupied.
	ErrColumnFull   = errors.New("column full")
	ErrEmptyPalette = errors.New("empty palette")
)

// ParseError describes one rejected token of a text land map. Line and
// Column are 1-based.
type ParseError struct {
	Line   int
	Column int
	Token  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: invalid height %q: %v", e.Line, e.Column, e.Token, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }
