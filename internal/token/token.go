// Package token defines the lexical pieces of an hkanno line.
// Invariants:
//   - Space.Raw and Field.Raw are slices of the original line (no copies).
//   - A Space with empty Raw is absent.
//   - A Field with empty Raw is missing; its Pos is the zero-width location
//     where the token was expected.
//   - A present Field whose Raw did not decode has Valid == false.
package token

import "hkanno/internal/source"

// Space is a run of whitespace between fields.
type Space struct {
	Raw string
	Pos source.Position
}

// Present reports whether any whitespace was consumed.
func (s Space) Present() bool { return s.Raw != "" }

// Field is a single lexical unit: a number, a fixed keyword or free text.
type Field[T any] struct {
	Value T
	Raw   string
	Pos   source.Position
	Valid bool
}

// Present reports whether the token exists in the text.
func (f Field[T]) Present() bool { return f.Raw != "" }

// Malformed reports a token that exists but did not decode.
func (f Field[T]) Malformed() bool { return f.Raw != "" && !f.Valid }

// Missing returns an absent field expected at pos.
func Missing[T any](pos source.Position) Field[T] {
	return Field[T]{Pos: pos}
}
