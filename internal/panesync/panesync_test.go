package panesync

import (
	"strings"
	"testing"

	"kr.dev/diff"

	"hkanno/internal/engine"
	"hkanno/internal/hkanno"
)

func str(s string) *string { return &s }

func twoTracks() hkanno.Hkanno {
	return hkanno.Hkanno{
		Ptr: "#0003",
		AnnotationTracks: []hkanno.AnnotationTrack{
			{TrackName: "Bip01", Annotations: []hkanno.Annotation{{Time: 0.1, Text: str("a")}, {Time: 0.2, Text: str("b")}}},
			{TrackName: "R&D", Annotations: []hkanno.Annotation{{Time: 0.3, Text: str("c")}}},
		},
	}
}

func TestBuildIndex(t *testing.T) {
	m := BuildIndex(engine.RenderXML(twoTracks()))
	want := AnnotationMap{
		{TrackName: "Bip01", Lines: []int{19, 23}},
		{TrackName: "R&D", Lines: []int{32}},
	}
	diff.Test(t, t.Errorf, m, want)
}

func TestLookupSecondTrack(t *testing.T) {
	m := AnnotationMap{
		{TrackName: "a", Lines: []int{19, 23}},
		{TrackName: "b", Lines: []int{32}},
	}
	line, ok := m.Lookup(2)
	if !ok || line != 32 {
		t.Fatalf("Lookup(2) = %d %v", line, ok)
	}
	if _, ok := m.Lookup(3); ok {
		t.Fatal("lookup past the last track should fail")
	}
	if _, ok := m.Lookup(-1); ok {
		t.Fatal("negative index should fail")
	}
}

func TestBuildIndexWithoutAnchor(t *testing.T) {
	if m := BuildIndex("<hkparam name=\"time\">0.1</hkparam>"); len(m) != 0 {
		t.Fatalf("m = %+v", m)
	}
}

func TestBuildIndexCRLF(t *testing.T) {
	preview := strings.ReplaceAll(engine.RenderXML(twoTracks()), "\n", "\r\n")
	if got := BuildIndex(preview).Len(); got != 3 {
		t.Fatalf("len = %d", got)
	}
}

func TestFlatIndex(t *testing.T) {
	src := "# numAnnotations: 2\n0.1 a\n\n0.2 animmotion 1 2 3\nbad line\n0.3 c\n"
	cases := []struct {
		line, want int
	}{
		{1, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 2}, {6, 2}, {7, 3}, {99, 3},
	}
	for _, c := range cases {
		if got := FlatIndex(src, c.line); got != c.want {
			t.Errorf("FlatIndex(line %d) = %d, want %d", c.line, got, c.want)
		}
	}
}

func TestSynchronizer(t *testing.T) {
	value := twoTracks()
	var s Synchronizer
	if _, ok := s.OnSourceCursorMove(value.String(), 1); ok {
		t.Fatal("no preview yet")
	}
	s.UpdateIndex(engine.RenderXML(value))

	src := value.String()
	lines := strings.Split(src, "\n")
	var timed []int
	for i, l := range lines {
		if l != "" && !strings.HasPrefix(l, "#") {
			timed = append(timed, i+1)
		}
	}
	var got []int
	for _, line := range timed {
		target, ok := s.OnSourceCursorMove(src, line)
		if !ok {
			t.Fatalf("line %d not mapped", line)
		}
		got = append(got, target)
	}
	diff.Test(t, t.Errorf, got, []int{19, 23, 32})
}

func TestCoordinator(t *testing.T) {
	var c Coordinator
	first := c.Begin("a", "text")
	second := c.Begin("a", "text")
	if c.Accept(first, "a", "text") {
		t.Fatal("older ticket accepted")
	}
	if !c.Accept(second, "a", "text") {
		t.Fatal("newest ticket rejected")
	}
	if c.Accept(second, "b", "text") {
		t.Fatal("ticket for another tab accepted")
	}
	if c.Accept(second, "a", "edited") {
		t.Fatal("ticket for stale text accepted")
	}
}
