package editor

import (
	"context"
	"errors"
	"testing"

	"hkanno/internal/hkanno"
)

type fakeEngine struct {
	files   map[string]hkanno.Hkanno
	saveErr error
	saved   []hkanno.Hkanno
	onSave  func()
}

func (f *fakeEngine) Load(_ context.Context, path string) (hkanno.Hkanno, error) {
	h, ok := f.files[path]
	if !ok {
		return hkanno.Hkanno{}, errors.New("no such file")
	}
	return h, nil
}

func (f *fakeEngine) Save(_ context.Context, _, _ string, _ hkanno.OutFormat, value hkanno.Hkanno) error {
	if f.onSave != nil {
		f.onSave()
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, value)
	return nil
}

func (f *fakeEngine) Preview(_ context.Context, _ string, value hkanno.Hkanno) (string, error) {
	return value.String(), nil
}

func TestSessionOpen(t *testing.T) {
	eng := &fakeEngine{files: map[string]hkanno.Hkanno{"a.xml": sample()}}
	sess := NewSession(NewStore(State{}, nil), eng)
	notes, err := sess.Open(context.Background(), "a.xml", "missing.xml")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Level != LevelError || notes[0].Message != "Failed to load: missing.xml" {
		t.Fatalf("notes = %+v", notes)
	}
	if s := sess.Store.State(); len(s.Tabs) != 1 || s.Tabs[0].ID != "a.xml" {
		t.Fatalf("state = %+v", s)
	}
}

func TestSessionSave(t *testing.T) {
	eng := &fakeEngine{files: map[string]hkanno.Hkanno{"a.xml": sample()}}
	sess := NewSession(NewStore(State{}, nil), eng)
	if _, err := sess.Open(context.Background(), "a.xml"); err != nil {
		t.Fatal(err)
	}
	sess.Store.Dispatch(UpdateText{Text: "# duration: 2\n0.1 a\n0.2 b"}) //nolint:errcheck

	eng.saveErr = errors.New("read-only")
	note, _ := sess.Save(context.Background())
	if note.Level != LevelError || !sess.Store.State().Tabs[0].Dirty {
		t.Fatalf("failed save: note=%+v dirty=%v", note, sess.Store.State().Tabs[0].Dirty)
	}

	eng.saveErr = nil
	note, err := sess.Save(context.Background())
	if err != nil || note.Level != LevelInfo {
		t.Fatalf("note=%+v err=%v", note, err)
	}
	tb := sess.Store.State().Tabs[0]
	if tb.Dirty || tb.Original.Len() != 2 || tb.Original.Duration != 2 || tb.Original.Ptr != "#0003" {
		t.Fatalf("saved tab = %+v", tb)
	}
	if len(eng.saved) != 1 || eng.saved[0].NumOriginalFrames != 10 {
		t.Fatalf("engine got %+v", eng.saved)
	}
}

func TestSessionSaveWithoutTabs(t *testing.T) {
	sess := NewSession(NewStore(State{}, nil), &fakeEngine{})
	note, err := sess.Save(context.Background())
	if err != nil || note.Level != LevelError {
		t.Fatalf("note=%+v err=%v", note, err)
	}
}

func TestSaveKeepsEditsMadeDuringWrite(t *testing.T) {
	eng := &fakeEngine{files: map[string]hkanno.Hkanno{"a.xml": sample()}}
	sess := NewSession(NewStore(State{}, nil), eng)
	if _, err := sess.Open(context.Background(), "a.xml"); err != nil {
		t.Fatal(err)
	}
	before := sess.Store.State().Tabs[0].Text
	eng.onSave = func() {
		sess.Store.Dispatch(UpdateText{Text: "0.1 typed while saving"}) //nolint:errcheck
	}
	note, err := sess.Save(context.Background())
	if err != nil || note.Level != LevelInfo {
		t.Fatalf("note=%+v err=%v", note, err)
	}
	tb := sess.Store.State().Tabs[0]
	if !tb.Dirty || tb.Text != "0.1 typed while saving" {
		t.Fatalf("tab after save = %+v", tb)
	}
	if got := tb.Original.String(); got != before {
		t.Fatalf("original = %q, want the written text %q", got, before)
	}
}

func TestCommitFollowsTabByID(t *testing.T) {
	eng := &fakeEngine{files: map[string]hkanno.Hkanno{"a.xml": sample(), "b.xml": sample()}}
	sess := NewSession(NewStore(State{}, nil), eng)
	if _, err := sess.Open(context.Background(), "a.xml", "b.xml"); err != nil {
		t.Fatal(err)
	}
	for _, a := range []Action{SetActive{Index: 1}, UpdateText{Text: "0.3 b"}, SetActive{Index: 0}, UpdateText{Text: "0.2 a"}} {
		if err := sess.Store.Dispatch(a); err != nil {
			t.Fatal(err)
		}
	}

	r := sess.Write(context.Background())
	sess.Store.Dispatch(Close{Index: 0}) //nolint:errcheck
	if err := sess.Commit(r); err != nil {
		t.Fatal(err)
	}
	if tb := sess.Store.State().Tabs[0]; tb.ID != "b.xml" || !tb.Dirty {
		t.Fatalf("commit for a closed tab touched %+v", tb)
	}
}
