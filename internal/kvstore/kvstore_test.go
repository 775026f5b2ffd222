package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"kr.dev/diff"
)

type record struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

type recordV2 struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Extra bool   `json:"extra"`
}

func TestPutGet(t *testing.T) {
	for _, codec := range []Codec{CodecMsgpack, CodecJSON} {
		s, err := Open(t.TempDir(), codec)
		if err != nil {
			t.Fatal(err)
		}
		want := record{Name: "tabs", Count: 2, Tags: []string{"a"}}
		if err := s.Put("editor.tabs", want); err != nil {
			t.Fatalf("%s: put: %v", codec, err)
		}
		var got record
		ok, err := s.Get("editor.tabs", &got)
		if err != nil || !ok {
			t.Fatalf("%s: get ok=%v err=%v", codec, ok, err)
		}
		diff.Test(t, t.Errorf, got, want)

		// Unknown and missing fields default instead of failing.
		var v2 recordV2
		if _, err := s.Get("editor.tabs", &v2); err != nil {
			t.Fatalf("%s: additive decode: %v", codec, err)
		}
		if v2.Name != "tabs" || v2.Extra {
			t.Fatalf("%s: v2 = %+v", codec, v2)
		}
	}
}

func TestGetMissingAndDelete(t *testing.T) {
	s, err := Open(t.TempDir(), CodecMsgpack)
	if err != nil {
		t.Fatal(err)
	}
	var r record
	if ok, err := s.Get("nope", &r); ok || err != nil {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := s.Put("k", record{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if ok, _ := s.Get("k", &r); ok {
		t.Fatal("record should be gone")
	}
}

func TestNoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, CodecJSON)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := s.Put("state", record{Count: i}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected files %v", names)
	}
}

func TestInvalidKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nested"), CodecMsgpack)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put("../escape", 1); err == nil {
		t.Fatal("expected error for path-like key")
	}
}
