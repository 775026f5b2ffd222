package langsvc

import (
	"strings"

	"hkanno/internal/ast"
	"hkanno/internal/payload"
	"hkanno/internal/source"
	"hkanno/internal/token"
)

// SuggestionKind classifies a completion entry.
type SuggestionKind uint8

const (
	SuggestKeyword SuggestionKind = iota + 1
	SuggestValue
	SuggestSnippet
	SuggestFunction
)

// Suggestion is one completion entry. InsertText is the complete new content
// of the line and Range covers the whole current line.
type Suggestion struct {
	Label         string
	Kind          SuggestionKind
	Detail        string
	Documentation string
	InsertText    string
	FilterText    string
	Snippet       bool
	Range         source.Position
}

// metaKeys are the header comments understood by the annotation model.
var metaKeys = []struct {
	key, value, doc string
}{
	{"numOriginalFrames", "0", "Number of frames of the original animation."},
	{"duration", "0.000000", "Animation length in seconds."},
	{"numAnnotationTracks", "0", "Number of annotation tracks in the animation."},
	{"numAnnotations", "0", "Starts a new annotation track holding the given number of annotations."},
}

type completer struct {
	line string
	full source.Position
	out  []Suggestion
}

func (c *completer) plain(label string, kind SuggestionKind, doc, line string) {
	c.out = append(c.out, Suggestion{
		Label:         label,
		Kind:          kind,
		Documentation: doc,
		InsertText:    line,
		FilterText:    line,
		Range:         c.full,
	})
}

// snippet adds an entry whose inserted text is prefix + body + suffix, where
// only body holds snippet syntax.
func (c *completer) snippet(label string, kind SuggestionKind, doc, prefix, body, suffix, filter string) {
	c.out = append(c.out, Suggestion{
		Label:         label,
		Kind:          kind,
		Documentation: doc,
		InsertText:    escapeSnippet(prefix) + body + escapeSnippet(suffix),
		FilterText:    filter,
		Snippet:       true,
		Range:         c.full,
	})
}

// Complete returns completion entries for the caret at cur.
func Complete(doc *ast.Document, cur source.Cursor) []Suggestion {
	n := nodeAt(doc, cur.Line)
	c := &completer{line: n.Source, full: source.FullLine(cur.Line, n.Source)}

	switch n.Kind {
	case ast.KindBlank:
		c.starters(n.Blank.Leading.Raw, token.Field[string]{})
		return c.out
	case ast.KindComment:
		c.starters(n.Comment.Leading.Raw, token.Field[string]{})
		return c.out
	case ast.KindInvalid:
		c.starters(n.Invalid.Leading.Raw, n.Invalid.Time)
		return c.out
	}

	t, _ := n.Time()
	if cur.Column <= t.Pos.EndColumn {
		c.verbs(n, t)
		return c.out
	}

	switch n.Kind {
	case ast.KindMotion:
		m := n.Motion
		for i := range m.Axes {
			if !m.Axes[i].Value.Valid {
				c.argument(ast.AxisNames[i], m.Axes[i], motionDoc(ast.AxisNames[i]))
				break
			}
		}
	case ast.KindRotation:
		if !n.Rotation.Degrees.Value.Valid {
			c.argument("degrees", n.Rotation.Degrees, rotationDoc)
		}
	case ast.KindText:
		if n.Text.Payload != nil {
			c.instructions(n.Text)
		} else {
			c.events(n.Text)
		}
	}
	return c.out
}

// starters offers a header comment and a time literal. A malformed time token
// is replaced in place.
func (c *completer) starters(leading string, badTime token.Field[string]) {
	for _, mk := range metaKeys {
		doc := "```hkanno\n# " + mk.key + ": <value>\n```\n" + mk.doc
		c.plain("# "+mk.key+":", SuggestKeyword, doc, leading+"# "+mk.key+": "+mk.value)
	}
	timeDoc := "```hkanno\n<time: f32>\n```\nThe timestamp at which this annotation occurs."
	if badTime.Present() {
		line := splice(c.line, badTime.Pos.StartColumn, badTime.Pos.EndColumn, "0.0")
		c.plain("<time>", SuggestValue, timeDoc, line)
		return
	}
	c.plain("<time>", SuggestValue, timeDoc, leading+"0.0")
}

// verbs offers animmotion and animrotation right after the time field,
// keeping whatever follows the current verb.
func (c *completer) verbs(n ast.Node, t token.Field[float64]) {
	rest, _ := n.Event()
	if n.Kind == ast.KindMotion || n.Kind == ast.KindRotation {
		rest = strings.TrimLeft(strings.TrimPrefix(rest, verbRaw(n)), " \t")
	}
	head := c.line[:source.ByteOffset(c.line, t.Pos.EndColumn)]
	for _, v := range []struct{ verb, doc string }{
		{ast.VerbMotion, motionVerbDoc},
		{ast.VerbRotation, rotationVerbDoc},
	} {
		line := head + " " + v.verb
		if rest != "" {
			line += " " + rest
		}
		c.plain(v.verb, SuggestFunction, v.doc, line)
	}
}

func verbRaw(n ast.Node) string {
	switch n.Kind {
	case ast.KindMotion:
		return n.Motion.Verb.Raw
	case ast.KindRotation:
		return n.Rotation.Verb.Raw
	}
	return ""
}

// argument offers a numeric placeholder for a missing or malformed argument.
func (c *completer) argument(label string, arg ast.Arg, doc string) {
	insert := "0.0"
	if !arg.Gap.Present() {
		insert = " " + insert
	}
	pos := arg.Value.Pos
	c.plain(label, SuggestValue, doc, splice(c.line, pos.StartColumn, pos.EndColumn, insert))
}

// events offers replacements for the free text after the time field.
func (c *completer) events(t *ast.TextNode) {
	start, end := t.Text.Pos.StartColumn, t.Text.Pos.EndColumn
	s := source.ByteOffset(c.line, start)
	prefix := c.line[:s]
	if !t.Gap.Present() {
		prefix += " "
	}
	suffix := c.line[source.ByteOffset(c.line, end):]

	c.snippet("<eventName>", SuggestSnippet,
		"```hkanno\n<eventName>\n```\nAnnotation text event name (e.g. `weaponSwing`).",
		prefix, "${1:eventName}", suffix, prefix+"eventName")
	c.plain("SoundPlay", SuggestFunction,
		"```hkanno\nSoundPlay.<event>\n```\nPlay a sound effect on the actor.",
		prefix+"SoundPlay."+suffix)
	c.plain(ast.VerbMotion, SuggestFunction, motionVerbDoc, prefix+ast.VerbMotion+suffix)
	c.plain(ast.VerbRotation, SuggestFunction, rotationVerbDoc, prefix+ast.VerbRotation+suffix)
	c.plain(payload.Namespace, SuggestFunction, pieDoc, prefix+payload.Namespace+"."+suffix)
}

// instructions offers every registered payload instruction after the prefix.
func (c *completer) instructions(t *ast.TextNode) {
	p := t.Payload
	at := ""
	start := p.Name.Pos.StartColumn
	if !p.At.Present() {
		at = "@"
		start = p.At.Pos.StartColumn
	}
	prefix := c.line[:source.ByteOffset(c.line, start)]
	suffix := c.line[source.ByteOffset(c.line, t.Text.Pos.EndColumn):]
	for _, ins := range payload.All() {
		c.snippet(ins.Name, SuggestFunction, ins.Documentation(), prefix, at+ins.Snippet(), suffix, prefix+at+ins.Name)
		c.out[len(c.out)-1].Detail = ins.Usage()
	}
}

const (
	motionVerbDoc   = "```hkanno\nanimmotion <x: f32> <y: f32> <z: f32>\n```\nMove the actor by X, Y, Z. (Needs `AMR`)"
	rotationVerbDoc = "```hkanno\nanimrotation <degrees: f32>\n```\nRotate the actor by degrees. (Needs `AMR`)"
	rotationDoc     = "```hkanno\n<time: f32> animrotation <degrees: f32>\n```\nRotation in degrees."
	pieDoc          = "```hkanno\n<time: f32> PIE.@<inst>|...\n```\nDummy event hosting payload instructions. (Needs `PayloadInterpreter`)"
)

func motionDoc(axis string) string {
	return "```hkanno\n<time: f32> animmotion <x: f32> <y: f32> <z: f32>\n```\nThe " +
		strings.ToUpper(axis) + " coordinate of the motion."
}
