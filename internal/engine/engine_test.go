package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kr.dev/diff"

	"hkanno/internal/hkanno"
)

func ptr(s string) *string { return &s }

func sample() hkanno.Hkanno {
	return hkanno.Hkanno{
		Ptr:               "#0007",
		NumOriginalFrames: 38,
		Duration:          1.5,
		AnnotationTracks: []hkanno.AnnotationTrack{
			{TrackName: "NPC Root", Annotations: []hkanno.Annotation{
				{Time: 0.1, Text: ptr("MCO_DodgeOpen")},
				{Time: 0.4, Text: nil},
			}},
			{TrackName: "", Annotations: []hkanno.Annotation{
				{Time: 0.9, Text: ptr("PIE.@SGVB|a<b|true")},
			}},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	eng := NewLocal()
	dir := t.TempDir()
	want := sample()

	for _, format := range []hkanno.OutFormat{hkanno.FormatJSON, hkanno.FormatTOML, hkanno.FormatXML, hkanno.FormatText} {
		out := filepath.Join(dir, "anim"+format.Extension())
		if err := eng.Save(ctx, "anim.xml", out, format, want); err != nil {
			t.Fatalf("%s: save: %v", format, err)
		}
		got, err := eng.Load(ctx, out)
		if err != nil {
			t.Fatalf("%s: load: %v", format, err)
		}
		diff.Test(t, t.Errorf, got.String(), want.String())
		if format != hkanno.FormatText && got.Ptr != want.Ptr {
			t.Fatalf("%s: ptr = %q", format, got.Ptr)
		}
		if format == hkanno.FormatXML && got.AnnotationTracks[0].TrackName != "NPC Root" {
			t.Fatalf("xml: track name = %q", got.AnnotationTracks[0].TrackName)
		}
	}
}

func TestBinaryUnsupported(t *testing.T) {
	ctx := context.Background()
	eng := NewLocal()
	if _, err := eng.Load(ctx, "anim.hkx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	out := filepath.Join(t.TempDir(), "anim.hkx")
	if err := eng.Save(ctx, "anim.xml", out, hkanno.FormatAmd64, sample()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("nothing should be written, stat err = %v", err)
	}
}

func TestPreviewLayout(t *testing.T) {
	xml, err := NewLocal().Preview(context.Background(), "anim.xml", sample())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(xml, "\n")
	anchor := -1
	for i, l := range lines {
		if strings.Contains(l, ` class="hkaSplineCompressedAnimation" signature="0x792ee0bb">`) {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		t.Fatalf("anchor missing:\n%s", xml)
	}
	diff.Test(t, t.Errorf, strings.TrimSpace(lines[anchor+13]), `<hkparam name="time">0.100000</hkparam>`)
	diff.Test(t, t.Errorf, strings.TrimSpace(lines[anchor+17]), `<hkparam name="time">0.400000</hkparam>`)
	if !strings.Contains(xml, `<hkparam name="text">&#9216;</hkparam>`) {
		t.Fatal("null text should be written as a character reference")
	}
	if !strings.Contains(xml, `PIE.@SGVB|a&lt;b|true`) {
		t.Fatal("markup in text should be escaped")
	}
}

func TestLoadTextProjectsHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anim.txt")
	text := "# numOriginalFrames: 12\n# duration: 0.5\n# numAnnotations: 1\n0.25 hit\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := NewLocal().Load(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if h.Ptr != DefaultPtr || h.NumOriginalFrames != 12 || h.Duration != 0.5 || h.Len() != 1 {
		t.Fatalf("unexpected model %+v", h)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLocal().Preview(ctx, "x.xml", sample()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
