package mdpo

import "testing"

func TestEscapeLinkTitles(t *testing.T) {
	in := `Check [this link](https://example.com "a "quoted" title") out.`
	want := `Check [this link](https://example.com "a \"quoted\" title") out.`
	if got := EscapeLinkTitles(in, "[", "]"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEscapeLinkTitlesMultiple(t *testing.T) {
	in := `[a](x "t "1"") and [b](y "t "2"")`
	want := `[a](x "t \"1\"") and [b](y "t \"2\"")`
	if got := EscapeLinkTitles(in, "[", "]"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEscapeLinkTitlesNoTitleUnchanged(t *testing.T) {
	in := "No links here, just [a](b) and plain text."
	if got := EscapeLinkTitles(in, "[", "]"); got != in {
		t.Fatalf("text without titles changed: %q", got)
	}
}

func TestEscapeLinkTitlesLeavesTitlelessLinkAlone(t *testing.T) {
	in := `See [a](b) then [c](d "t "x"").`
	want := `See [a](b) then [c](d "t \"x\"").`
	if got := EscapeLinkTitles(in, "[", "]"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMinNotMaxCharsInARow(t *testing.T) {
	for _, tc := range []struct {
		text string
		want int
	}{
		{"no ticks at all", 1},
		{"one ` tick", 2},
		{"two `` ticks", 1},
		{"` and ``", 3},
		{"` and `` and ```", 4},
	} {
		if got := minNotMaxCharsInARow('`', tc.text); got != tc.want {
			t.Fatalf("%q: got %d, want %d", tc.text, got, tc.want)
		}
	}
}
