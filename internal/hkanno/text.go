package hkanno

import (
	"strconv"

	"hkanno/internal/ast"
	"hkanno/internal/parser"
)

// Header comment keys.
const (
	MetaNumOriginalFrames   = "numOriginalFrames"
	MetaDuration            = "duration"
	MetaNumAnnotationTracks = "numAnnotationTracks"
	MetaNumAnnotations      = "numAnnotations"
)

// FromText projects text onto annotation tracks. Every numAnnotations header
// starts a new track; timed lines before the first header open one
// implicitly. Lines with an invalid time are skipped.
func FromText(text string) []AnnotationTrack {
	return FromDocument(parser.Parse(text))
}

// FromDocument is FromText over an already parsed document.
func FromDocument(doc *ast.Document) []AnnotationTrack {
	var tracks []AnnotationTrack
	open := false
	for _, n := range doc.Lines {
		if n.Kind == ast.KindComment {
			if m := n.Comment.Meta; m != nil && m.Key.Value == MetaNumAnnotations {
				tracks = append(tracks, AnnotationTrack{})
				open = true
			}
			continue
		}
		t, ok := n.Time()
		if !ok {
			continue
		}
		if !open {
			tracks = append(tracks, AnnotationTrack{})
			open = true
		}
		event, _ := n.Event()
		ann := Annotation{Time: float32(t.Value)}
		if event != NullText {
			ann.Text = &event
		}
		last := &tracks[len(tracks)-1]
		last.Annotations = append(last.Annotations, ann)
	}
	return tracks
}

// Project rebuilds base from the edited text: tracks come from the text and
// numOriginalFrames or duration headers override the base values. Text tracks
// take the places of the base tracks that had annotations, in order, so they
// keep those tracks' names. Empty base tracks, which the text format does not
// show, stay where they were.
func Project(base Hkanno, text string) Hkanno {
	doc := parser.Parse(text)
	out := Hkanno{
		Ptr:               base.Ptr,
		NumOriginalFrames: base.NumOriginalFrames,
		Duration:          base.Duration,
		AnnotationTracks:  mergeTracks(base.AnnotationTracks, FromDocument(doc)),
	}
	meta := doc.Meta()
	if v, ok := meta[MetaNumOriginalFrames]; ok {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			out.NumOriginalFrames = int32(n)
		}
	}
	if v, ok := meta[MetaDuration]; ok {
		if d, ok := parser.ParseNumber(v); ok {
			out.Duration = float32(d)
		}
	}
	return out
}

func mergeTracks(base, edited []AnnotationTrack) []AnnotationTrack {
	out := make([]AnnotationTrack, 0, max(len(base), len(edited)))
	next := 0
	for _, bt := range base {
		if len(bt.Annotations) == 0 {
			out = append(out, AnnotationTrack{TrackName: bt.TrackName})
			continue
		}
		if next >= len(edited) {
			continue
		}
		t := edited[next]
		t.TrackName = bt.TrackName
		out = append(out, t)
		next++
	}
	out = append(out, edited[next:]...)
	if len(out) == 0 {
		return nil
	}
	return out
}
