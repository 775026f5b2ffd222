// Package panesync keeps the preview pane aligned with the annotation source.
// The preview is scanned into an AnnotationMap of preview line numbers, and a
// caret in the source is mapped to the preview line of the same annotation.
package panesync

import (
	"html"
	"strings"

	"hkanno/internal/parser"
	"hkanno/internal/source"
)

// Anchor marks the animation object in a preview. Lines before it are ignored.
const Anchor = ` class="hkaSplineCompressedAnimation" signature="0x792ee0bb">`

const (
	trackNameTag = `<hkparam name="trackName">`
	timeTag      = `<hkparam name="time">`
	closeTag     = `</hkparam>`
)

// Track lists the preview lines holding the time of each annotation in one
// annotation track.
type Track struct {
	TrackName string
	Lines     []int
}

// AnnotationMap is the ordered list of tracks found in a preview.
type AnnotationMap []Track

// BuildIndex scans preview text. Without an anchor line the map is empty.
func BuildIndex(preview string) AnnotationMap {
	lines := source.Lines(preview)
	start := -1
	for i, l := range lines {
		if strings.Contains(l, Anchor) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var m AnnotationMap
	for i := start; i < len(lines); i++ {
		l := lines[i]
		if at := strings.Index(l, trackNameTag); at >= 0 {
			m = append(m, Track{TrackName: elementText(l[at+len(trackNameTag):])})
			continue
		}
		if strings.Contains(l, timeTag) {
			if len(m) == 0 {
				m = append(m, Track{})
			}
			last := &m[len(m)-1]
			last.Lines = append(last.Lines, i+1)
		}
	}
	return m
}

func elementText(rest string) string {
	if end := strings.Index(rest, closeTag); end >= 0 {
		rest = rest[:end]
	}
	return html.UnescapeString(strings.TrimSpace(rest))
}

// Len is the number of indexed annotations.
func (m AnnotationMap) Len() int {
	n := 0
	for _, t := range m {
		n += len(t.Lines)
	}
	return n
}

// Lookup returns the preview line of the flat-th annotation (0-based) counted
// across all tracks in order.
func (m AnnotationMap) Lookup(flat int) (line int, ok bool) {
	if flat < 0 {
		return 0, false
	}
	for _, t := range m {
		if flat < len(t.Lines) {
			return t.Lines[flat], true
		}
		flat -= len(t.Lines)
	}
	return 0, false
}

// FlatIndex counts the timed lines strictly before the 1-based line of src.
// Comments, blank lines and lines whose time does not parse are not counted.
func FlatIndex(src string, line int) int {
	n := 0
	for i, l := range source.Lines(src) {
		if i+1 >= line {
			break
		}
		if parser.ParseLine(l, i+1).Timed() {
			n++
		}
	}
	return n
}
