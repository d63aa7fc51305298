package extract

import (
	"strings"
	"testing"
)

const samplePage = `<!doctype html>
<html>
<head><title>Sample Page</title></head>
<body>
<nav>Home | About</nav>
<article>
<h1>Sample Heading</h1>
<p>First paragraph with enough words to look like real prose for the
readability scorer. It keeps going for a little while so the density
heuristics have something to measure against the page boilerplate.</p>
<p>Second paragraph mentions <strong>bold text</strong> and a
<a href="https://example.com/link">link</a> in passing, again padded with
enough ordinary sentence content to register as the main article body.</p>
<ul><li>alpha</li><li>beta</li></ul>
</article>
<footer>copyright</footer>
</body>
</html>`

func TestFromHTML_ExtractsMainContent(t *testing.T) {
	doc := FromHTML([]byte(samplePage), "https://example.com/page")
	if !strings.Contains(doc.Text, "First paragraph") {
		t.Fatalf("missing article text: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "Second paragraph") {
		t.Fatalf("missing second paragraph: %q", doc.Text)
	}
}

func TestFromHTML_HeuristicFallbackSkipsBoilerplate(t *testing.T) {
	// A page too thin for readability still extracts via the DOM walk.
	page := `<html><head><title>Tiny</title></head><body>
<nav>menu</nav><main><p>body text</p></main><footer>foot</footer>
</body></html>`
	doc := FromHTML([]byte(page), "")
	if doc.Title != "Tiny" {
		t.Fatalf("title = %q, want Tiny", doc.Title)
	}
	if !strings.Contains(doc.Text, "body text") {
		t.Fatalf("missing body text: %q", doc.Text)
	}
	if strings.Contains(doc.Text, "menu") || strings.Contains(doc.Text, "foot") {
		t.Fatalf("boilerplate leaked into text: %q", doc.Text)
	}
}

func TestMarkdownFromHTML(t *testing.T) {
	md := MarkdownFromHTML([]byte(`<h2>Section</h2><p>Hello <strong>world</strong></p><ul><li>one</li><li>two</li></ul>`))
	if !strings.Contains(md, "## Section") {
		t.Fatalf("missing heading: %q", md)
	}
	if !strings.Contains(md, "**world**") {
		t.Fatalf("missing bold: %q", md)
	}
	if !strings.Contains(md, "- one") || !strings.Contains(md, "- two") {
		t.Fatalf("missing list items: %q", md)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	in := "  a   b\t c \n\n\n\nnext  line \n"
	got := NormalizeWhitespace(in)
	want := "a b c\n\nnext line"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeWhitespace_Idempotent(t *testing.T) {
	in := "para one\n\npara two with  spaces"
	once := NormalizeWhitespace(in)
	twice := NormalizeWhitespace(once)
	if once != twice {
		t.Fatalf("not idempotent: %q != %q", once, twice)
	}
}
