package ast

import (
	"hkanno/internal/source"
	"hkanno/internal/token"
)

// Kind discriminates the line shapes a Node can hold.
type Kind uint8

const (
	// KindBlank is an empty or whitespace-only line.
	KindBlank Kind = iota
	// KindComment starts with '#'.
	KindComment
	// KindText is a timed free-text annotation.
	KindText
	// KindMotion is a timed animmotion event.
	KindMotion
	// KindRotation is a timed animrotation event.
	KindRotation
	// KindInvalid has a time token that is not a number.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindText:
		return "text"
	case KindMotion:
		return "motion"
	case KindRotation:
		return "rotation"
	case KindInvalid:
		return "invalid"
	}
	return "unknown"
}

// Verbs recognised right after the time field. Matching is case-insensitive.
const (
	VerbMotion   = "animmotion"
	VerbRotation = "animrotation"
)

// AxisNames labels MotionNode.Axes in order.
var AxisNames = [3]string{"x", "y", "z"}

// Node is one parsed line. Exactly one variant pointer matching Kind is set.
type Node struct {
	Kind   Kind
	Line   int
	Source string

	Blank    *BlankNode
	Comment  *CommentNode
	Text     *TextNode
	Motion   *MotionNode
	Rotation *RotationNode
	Invalid  *InvalidNode
}

type BlankNode struct {
	Leading token.Space
}

// CommentNode: <space0> # <space0> <comment> <space0>
type CommentNode struct {
	Leading  token.Space
	Hash     token.Field[string]
	Gap      token.Space
	Comment  token.Field[string]
	Trailing token.Space
	// Meta is set when the comment reads "key: value".
	Meta *Meta
}

// Meta is a header comment such as "# numOriginalFrames: 10".
type Meta struct {
	Key   token.Field[string]
	Colon source.Position
	Value token.Field[string]
}

// TextNode: <space0> <time> <space1> <text> <space0>
type TextNode struct {
	Leading  token.Space
	Time     token.Field[float64]
	Gap      token.Space
	Text     token.Field[string]
	Trailing token.Space
	// Payload is set when the text starts with the payload dispatch prefix.
	Payload *Payload
}

// MotionNode: <space0> <time> <space1> animmotion (<space1> <f32>){3} <space0>
type MotionNode struct {
	Leading  token.Space
	Time     token.Field[float64]
	Gap      token.Space
	Verb     token.Field[string]
	Axes     [3]Arg
	Extra    token.Field[string]
	Trailing token.Space
}

// RotationNode: <space0> <time> <space1> animrotation <space1> <degrees> <space0>
type RotationNode struct {
	Leading  token.Space
	Time     token.Field[float64]
	Gap      token.Space
	Verb     token.Field[string]
	Degrees  Arg
	Extra    token.Field[string]
	Trailing token.Space
}

// Arg is a numeric argument with the whitespace that precedes it.
type Arg struct {
	Gap   token.Space
	Value token.Field[float64]
}

// InvalidNode keeps the offending time token and the reason it was rejected.
type InvalidNode struct {
	Leading token.Space
	Time    token.Field[string]
	Rest    token.Field[string]
	Reason  string
}

// Payload is an embedded instruction: PIE.@NAME|param|param...
type Payload struct {
	Prefix token.Field[string]
	Dot    source.Position
	At     token.Field[string]
	Name   token.Field[string]
	Params []Param
}

// Param is one '|'-separated payload argument. Value may be empty.
type Param struct {
	Pipe  source.Position
	Value token.Field[string]
}

// Count returns how many axes hold a token.
func (m *MotionNode) Count() int {
	n := 0
	for _, a := range m.Axes {
		if a.Value.Present() {
			n++
		}
	}
	return n
}

// Timed reports whether the line carries a numeric time and becomes an
// annotation entry.
func (n Node) Timed() bool {
	switch n.Kind {
	case KindText, KindMotion, KindRotation:
		return true
	}
	return false
}

// Time returns the time field of a timed node.
func (n Node) Time() (token.Field[float64], bool) {
	switch n.Kind {
	case KindText:
		return n.Text.Time, true
	case KindMotion:
		return n.Motion.Time, true
	case KindRotation:
		return n.Rotation.Time, true
	}
	return token.Field[float64]{}, false
}

// Event returns the raw annotation text after the time field, i.e. the value
// stored in an annotation track. ok is false for untimed lines.
func (n Node) Event() (text string, ok bool) {
	switch n.Kind {
	case KindText:
		return n.Text.Text.Raw, true
	case KindMotion:
		return eventText(n.Source, n.Motion.Verb.Pos, n.Motion.Trailing), true
	case KindRotation:
		return eventText(n.Source, n.Rotation.Verb.Pos, n.Rotation.Trailing), true
	}
	return "", false
}

func eventText(line string, verb source.Position, trailing token.Space) string {
	start := source.ByteOffset(line, verb.StartColumn)
	end := len(line)
	if trailing.Present() {
		end = source.ByteOffset(line, trailing.Pos.StartColumn)
	}
	if start > end {
		return ""
	}
	return line[start:end]
}
