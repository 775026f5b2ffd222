package engine

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hkanno/internal/hkanno"
)

// Markers shared with the preview index builder.
const (
	AnimationClass     = "hkaSplineCompressedAnimation"
	AnimationSignature = "0x792ee0bb"
)

var errNoAnimation = errors.New("no " + AnimationClass + " object")

// RenderXML writes value as an hkpackfile holding one spline animation.
// Every annotation takes four lines and the first time parameter sits
// thirteen lines below the animation object.
func RenderXML(value hkanno.Hkanno) string {
	ptr := value.Ptr
	if ptr == "" {
		ptr = DefaultPtr
	}
	var b strings.Builder
	line := func(depth int, format string, args ...any) {
		b.WriteString(strings.Repeat("\t", depth))
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line(0, `<?xml version="1.0" encoding="ascii"?>`)
	line(0, `<hkpackfile classversion="8" contentsversion="hk_2010.2.0-r1" toplevelobject="#0001">`)
	b.WriteByte('\n')
	line(1, `<hksection name="__data__">`)
	b.WriteByte('\n')
	line(2, `<hkobject name="%s" class="%s" signature="%s">`, escape(ptr), AnimationClass, AnimationSignature)
	line(3, `<!-- memSizeAndFlags SERIALIZE_IGNORED -->`)
	line(3, `<!-- referenceCount SERIALIZE_IGNORED -->`)
	line(3, `<hkparam name="type">HK_SPLINE_COMPRESSED_ANIMATION</hkparam>`)
	line(3, `<hkparam name="duration">%s</hkparam>`, hkanno.FormatTime(value.Duration))
	line(3, `<hkparam name="numberOfTransformTracks">0</hkparam>`)
	line(3, `<hkparam name="numberOfFloatTracks">0</hkparam>`)
	line(3, `<hkparam name="extractedMotion">null</hkparam>`)
	line(3, `<hkparam name="annotationTracks" numelements="%d">`, len(value.AnnotationTracks))
	for _, track := range value.AnnotationTracks {
		line(4, `<hkobject>`)
		line(5, `<hkparam name="trackName">%s</hkparam>`, escape(track.TrackName))
		line(5, `<hkparam name="annotations" numelements="%d">`, len(track.Annotations))
		for _, ann := range track.Annotations {
			line(6, `<hkobject>`)
			line(7, `<hkparam name="time">%s</hkparam>`, hkanno.FormatTime(ann.Time))
			line(7, `<hkparam name="text">%s</hkparam>`, escape(ann.TextOrNull()))
			line(6, `</hkobject>`)
		}
		line(5, `</hkparam>`)
		line(4, `</hkobject>`)
	}
	line(3, `</hkparam>`)
	line(3, `<hkparam name="numFrames">%d</hkparam>`, value.NumOriginalFrames)
	line(2, `</hkobject>`)
	b.WriteByte('\n')
	line(1, `</hksection>`)
	b.WriteByte('\n')
	line(0, `</hkpackfile>`)
	return b.String()
}

// escape produces ASCII-only markup: XML specials and non-ASCII runes become
// character references.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '&':
			b.WriteString("&amp;")
		case r == '"':
			b.WriteString("&quot;")
		case r > 0x7e || r < 0x20:
			fmt.Fprintf(&b, "&#%d;", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecodeXML reads the first spline animation from an hkpackfile.
func DecodeXML(r io.Reader) (hkanno.Hkanno, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }

	var (
		out      hkanno.Hkanno
		found    bool
		depth    int // hkobject nesting inside the animation
		params   []string
		text     strings.Builder
		finished bool
	)
	path := func() string { return strings.Join(params, "/") }

	for !finished {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return hkanno.Hkanno{}, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "hkobject":
				if !found {
					if attr(el, "class") == AnimationClass {
						found = true
						out.Ptr = attr(el, "name")
					}
					continue
				}
				depth++
				switch path() {
				case "annotationTracks":
					out.AnnotationTracks = append(out.AnnotationTracks, hkanno.AnnotationTrack{})
				case "annotationTracks/annotations":
					if n := len(out.AnnotationTracks); n > 0 {
						tr := &out.AnnotationTracks[n-1]
						tr.Annotations = append(tr.Annotations, hkanno.Annotation{})
					}
				}
			case "hkparam":
				if found {
					params = append(params, attr(el, "name"))
					text.Reset()
				}
			}
		case xml.CharData:
			if found {
				text.Write(el)
			}
		case xml.EndElement:
			if !found {
				continue
			}
			switch el.Name.Local {
			case "hkobject":
				if depth == 0 {
					finished = true
					continue
				}
				depth--
			case "hkparam":
				if len(params) == 0 {
					continue
				}
				if err := assign(&out, path(), text.String()); err != nil {
					return hkanno.Hkanno{}, err
				}
				params = params[:len(params)-1]
				text.Reset()
			}
		}
	}
	if !found {
		return hkanno.Hkanno{}, errNoAnimation
	}
	return out, nil
}

func assign(out *hkanno.Hkanno, path, raw string) error {
	value := strings.TrimSpace(raw)
	switch path {
	case "duration":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		out.Duration = float32(f)
	case "numFrames":
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return fmt.Errorf("numFrames: %w", err)
		}
		out.NumOriginalFrames = int32(n)
	case "annotationTracks/trackName":
		if n := len(out.AnnotationTracks); n > 0 {
			out.AnnotationTracks[n-1].TrackName = value
		}
	case "annotationTracks/annotations/time", "annotationTracks/annotations/text":
		ann := lastAnnotation(out)
		if ann == nil {
			return nil
		}
		if strings.HasSuffix(path, "time") {
			f, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return fmt.Errorf("annotation time: %w", err)
			}
			ann.Time = float32(f)
			return nil
		}
		if value != hkanno.NullText {
			ann.Text = &value
		}
	}
	return nil
}

func lastAnnotation(out *hkanno.Hkanno) *hkanno.Annotation {
	n := len(out.AnnotationTracks)
	if n == 0 {
		return nil
	}
	tr := &out.AnnotationTracks[n-1]
	if len(tr.Annotations) == 0 {
		return nil
	}
	return &tr.Annotations[len(tr.Annotations)-1]
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
