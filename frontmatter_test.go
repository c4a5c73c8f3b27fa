package mdpo

import (
	"bytes"
	"testing"
)

func TestSplitFrontMatterYAML(t *testing.T) {
	src := []byte("---\ntitle: Demo\ndate: 2024-01-01\n---\n# Body\n")
	front, body := splitFrontMatter(src)
	if !bytes.Equal(front, []byte("---\ntitle: Demo\ndate: 2024-01-01\n---\n")) {
		t.Fatalf("front = %q", front)
	}
	if !bytes.Equal(body, []byte("# Body\n")) {
		t.Fatalf("body = %q", body)
	}
}

func TestSplitFrontMatterTOML(t *testing.T) {
	src := []byte("+++\ntitle = \"Demo\"\n+++\nBody.\n")
	front, _ := splitFrontMatter(src)
	if len(front) == 0 {
		t.Fatalf("TOML front matter not detected")
	}
}

func TestSplitFrontMatterAbsent(t *testing.T) {
	src := []byte("# Just a document\n\nWith text.\n")
	front, body := splitFrontMatter(src)
	if front != nil {
		t.Fatalf("unexpected front matter: %q", front)
	}
	if !bytes.Equal(body, src) {
		t.Fatalf("body changed: %q", body)
	}
}

func TestSplitFrontMatterUnterminated(t *testing.T) {
	src := []byte("---\ntitle: Demo\nno closing delimiter\n")
	front, body := splitFrontMatter(src)
	if front != nil {
		t.Fatalf("unterminated block treated as front matter: %q", front)
	}
	if !bytes.Equal(body, src) {
		t.Fatalf("body changed: %q", body)
	}
}

func TestSplitFrontMatterRequiresMetadataLine(t *testing.T) {
	// A thematic break followed by prose is not front matter.
	src := []byte("---\nJust a sentence\n---\n")
	front, _ := splitFrontMatter(src)
	if front != nil {
		t.Fatalf("prose misdetected as front matter: %q", front)
	}
}
