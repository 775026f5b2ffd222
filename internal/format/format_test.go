package format

import (
	"strings"
	"testing"

	"kr.dev/diff"
)

func TestTextExample(t *testing.T) {
	got := Text("   0.5 Hello\n# numOriginalFrames: 10")
	want := "0.5 Hello\n# numOriginalFrames: 10"
	if got != want {
		t.Fatalf("Text mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestTextRules(t *testing.T) {
	in := strings.Join([]string{
		"  #  keep   inner  ",
		"0.5\t\tanimmotion   1  2 3   ",
		"   ",
		"  single  ",
		"1 PIE.@SGVB|a b|true",
	}, "\n")
	want := []string{
		"#  keep   inner  ",
		"0.5 animmotion 1 2 3",
		"",
		"single",
		"1 PIE.@SGVB|a b|true",
	}
	diff.Test(t, t.Errorf, strings.Split(Text(in), "\n"), want)
}

func TestTextKeepsCRLF(t *testing.T) {
	got := Text("0.1   a\r\n  # c\r\n")
	if got != "0.1 a\r\n# c\r\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		" \t # x \r\n 1  2 ",
		"0.5 animrotation  \u00a0 90",
		"a\rb c",
		"  \U0001F600   x",
	}
	for _, in := range inputs {
		once := Text(in)
		if twice := Text(once); twice != once {
			t.Fatalf("not idempotent for %q:\nonce  %q\ntwice %q", in, once, twice)
		}
	}
}

func FuzzText(f *testing.F) {
	for _, s := range []string{"", "#", " 0.5  a ", "\r\n\r", "1\u2028 2"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := Text(in)
		if twice := Text(once); twice != once {
			t.Fatalf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	})
}
