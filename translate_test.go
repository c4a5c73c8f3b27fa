package mdpo

import (
	"strings"
	"testing"
)

func translate(t *testing.T, src string, entries map[string]string, width int) string {
	t.Helper()
	catalog := NewCatalog()
	for msgid, msgstr := range entries {
		catalog.Set(msgid, msgstr)
	}
	out, err := NewTranslator(catalog, width).Translate([]byte(src))
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	return string(out)
}

func TestTranslateParagraph(t *testing.T) {
	out := translate(t, "Hello world.\n", map[string]string{
		"Hello world.": "Hola mundo.",
	}, 80)
	if out != "Hola mundo.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateHeading(t *testing.T) {
	out := translate(t, "# Title\n\nBody.\n", map[string]string{
		"Title": "Titulo",
		"Body.": "Cuerpo.",
	}, 80)
	if out != "# Titulo\n\nCuerpo.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateFallsBackToSourceText(t *testing.T) {
	out := translate(t, "Hello world.\n", nil, 80)
	if out != "Hello world.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateTightList(t *testing.T) {
	out := translate(t, "- one\n- two\n", map[string]string{
		"one": "uno",
		"two": "dos",
	}, 80)
	if out != "- uno\n- dos\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateOrderedList(t *testing.T) {
	out := translate(t, "1. one\n2. two\n", map[string]string{
		"one": "uno",
		"two": "dos",
	}, 80)
	if out != "1. uno\n2. dos\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateBlockquote(t *testing.T) {
	out := translate(t, "> Quoted text.\n", map[string]string{
		"Quoted text.": "Texto citado.",
	}, 80)
	if out != "> Texto citado.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateWrapsLongTranslations(t *testing.T) {
	long := strings.Repeat("palabra ", 20)
	out := translate(t, "Short line.\n", map[string]string{
		"Short line.": strings.TrimSpace(long),
	}, 30)
	for i, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if lineWidth(line) > 30 {
			t.Fatalf("line %d exceeds width: %q", i+1, line)
		}
	}
}

func TestTranslateCodeBlockPassesThrough(t *testing.T) {
	src := "```go\nfmt.Println(\"hi\")\n```\n"
	out := translate(t, src, map[string]string{
		"fmt.Println(\"hi\")": "should never be used",
	}, 80)
	if out != src {
		t.Fatalf("code block changed: %q", out)
	}
}

func TestTranslateKeepsFrontMatter(t *testing.T) {
	src := "---\ntitle: Demo\n---\nHello.\n"
	out := translate(t, src, map[string]string{"Hello.": "Hola."}, 80)
	if out != "---\ntitle: Demo\n---\nHola.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateKeepsBlankLineAfterFrontMatter(t *testing.T) {
	src := "---\ntitle: Demo\n---\n\nHello.\n"
	out := translate(t, src, map[string]string{"Hello.": "Hola."}, 80)
	if out != "---\ntitle: Demo\n---\n\nHola.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateResolvesLinkReferences(t *testing.T) {
	src := "[ref]: /page\n\nSee [text][ref].\n"
	catalog := NewCatalog()
	catalog.Set("[ref]: /page", "[ref]: /pagina")
	catalog.Set("See [text][ref].", "Ver [texto][ref].")
	out, err := NewTranslator(catalog, 80).Translate([]byte(src))
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if string(out) != "Ver [texto](/pagina).\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateDropsDefinitionWithoutExtraBlank(t *testing.T) {
	// The parser consumes definition lines; whatever empty block is left
	// behind must not leave a stray separator.
	src := "One.\n\n[ref]: /x\n\nTwo.\n"
	out := translate(t, src, map[string]string{
		"One.": "Uno.",
		"Two.": "Dos.",
	}, 80)
	if out != "Uno.\n\nDos.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateThematicBreak(t *testing.T) {
	out := translate(t, "One.\n\n---\n\nTwo.\n", map[string]string{
		"One.": "Uno.",
		"Two.": "Dos.",
	}, 80)
	if out != "Uno.\n\n---\n\nDos.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTranslateRejectsInvalidInput(t *testing.T) {
	if _, err := NewTranslator(NewCatalog(), 80).Translate([]byte{0xff, 0xfe}); err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}
