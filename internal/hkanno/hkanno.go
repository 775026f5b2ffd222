// Package hkanno is the structured annotation model behind the text format:
// an animation with its frame count, duration and annotation tracks.
//
//	# numOriginalFrames: 38
//	# duration: 1.5
//	# numAnnotationTracks: 1
//	# numAnnotations: 2
//	0.100000 MCO_DodgeOpen
//	0.400000 MCO_DodgeClose
package hkanno

import (
	"fmt"
	"strconv"
	"strings"
)

// NullText is how a missing annotation text is displayed.
const NullText = "␀"

// Hkanno holds the annotation data of one hkaSplineCompressedAnimation.
type Hkanno struct {
	// Ptr is the object index of the animation, e.g. "#0003".
	Ptr               string            `json:"ptr" toml:"ptr" msgpack:"ptr"`
	NumOriginalFrames int32             `json:"num_original_frames" toml:"num_original_frames" msgpack:"num_original_frames"`
	Duration          float32           `json:"duration" toml:"duration" msgpack:"duration"`
	AnnotationTracks  []AnnotationTrack `json:"annotation_tracks" toml:"annotation_tracks" msgpack:"annotation_tracks"`
}

// AnnotationTrack is an ordered list of timed events.
type AnnotationTrack struct {
	TrackName   string       `json:"track_name,omitempty" toml:"track_name,omitempty" msgpack:"track_name,omitempty"`
	Annotations []Annotation `json:"annotations" toml:"annotations" msgpack:"annotations"`
}

// Annotation is one event. A nil Text is a null string pointer.
type Annotation struct {
	Time float32 `json:"time" toml:"time" msgpack:"time"`
	Text *string `json:"text" toml:"text,omitempty" msgpack:"text"`
}

// TextOrNull returns the annotation text, or NullText when it is nil.
func (a Annotation) TextOrNull() string {
	if a.Text == nil {
		return NullText
	}
	return *a.Text
}

// Len is the number of annotations across all tracks.
func (h Hkanno) Len() int {
	n := 0
	for _, t := range h.AnnotationTracks {
		n += len(t.Annotations)
	}
	return n
}

// String renders h in the hkanno text format. Empty tracks are skipped.
func (h Hkanno) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %d\n", MetaNumOriginalFrames, h.NumOriginalFrames)
	fmt.Fprintf(&b, "# %s: %s\n", MetaDuration, FormatDuration(h.Duration))
	fmt.Fprintf(&b, "# %s: %d\n", MetaNumAnnotationTracks, len(h.AnnotationTracks))
	for _, track := range h.AnnotationTracks {
		if len(track.Annotations) == 0 {
			continue
		}
		fmt.Fprintf(&b, "# %s: %d\n", MetaNumAnnotations, len(track.Annotations))
		for _, ann := range track.Annotations {
			fmt.Fprintf(&b, "%s %s\n", FormatTime(ann.Time), ann.TextOrNull())
		}
	}
	return b.String()
}

// ToText is String under the name editors use.
func ToText(h Hkanno) string {
	return h.String()
}

// FormatTime renders a time with six decimals.
func FormatTime(t float32) string {
	return strconv.FormatFloat(float64(t), 'f', 6, 32)
}

// FormatDuration renders the shortest form that round-trips.
func FormatDuration(d float32) string {
	return strconv.FormatFloat(float64(d), 'f', -1, 32)
}
