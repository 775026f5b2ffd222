package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hkanno/internal/diag"
	"hkanno/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes diags for one file in a human-readable format:
//
//	anim.txt:1:20: ERROR EVT2001: Missing z value in animmotion
//	   1 | 0.1 animmotion 1 2
//	     |                    ^
//
// text is the file contents the positions refer to. Diagnostics are printed
// in the order given.
func Pretty(w io.Writer, path, text string, diags []diag.Diagnostic, opts PrettyOpts) error {
	if len(diags) == 0 {
		return nil
	}
	pal := newPalette(opts.Color)
	name := displayPath(path, opts.PathMode, opts.BaseDir)
	lines := source.Lines(text)

	width := 1
	for _, d := range diags {
		width = max(width, len(strconv.Itoa(d.Pos.Line)))
	}

	var b strings.Builder
	for _, d := range diags {
		sev := pal.severity(d.Severity)
		fmt.Fprintf(&b, "%s: %s %s: %s\n",
			pal.path.Sprintf("%s:%d:%d", name, d.Pos.Line, d.Pos.StartColumn),
			sev.Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			strings.Join(strings.Fields(d.Message), " "))

		if opts.NoSource || d.Pos.Line < 1 || d.Pos.Line > len(lines) {
			continue
		}
		line := expandTabs(lines[d.Pos.Line-1])
		fmt.Fprintf(&b, "%s %s\n", pal.gutter.Sprintf("%*d |", width, d.Pos.Line), line)
		fmt.Fprintf(&b, "%s %s\n", pal.gutter.Sprintf("%*s |", width, ""), sev.Sprint(underline(line, d.Pos)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// underline returns padding up to the start column followed by a caret and
// tildes spanning the range in display cells.
func underline(line string, pos source.Position) string {
	start := source.ByteOffset(line, pos.StartColumn)
	end := source.ByteOffset(line, pos.EndColumn)
	if end < start {
		end = start
	}
	pad := runewidth.StringWidth(line[:start])
	span := runewidth.StringWidth(line[start:end])
	if span < 1 {
		return strings.Repeat(" ", pad) + "^"
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", span-1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
