package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/contentcore/contentd/internal/extract"
)

// DocSimpleEngine parses documents locally: PDF text, plain text,
// markdown, and HTML files. It has no OCR capability; scanned PDFs with
// no text layer fail with a parse error so the selector can fall back to
// the heavy engine.
type DocSimpleEngine struct{}

func (DocSimpleEngine) Name() string    { return "doc-simple" }
func (DocSimpleEngine) Kind() Kind      { return KindDocument }
func (DocSimpleEngine) Available() bool { return true }

func (e DocSimpleEngine) Extract(ctx context.Context, in Input) (*Raw, error) {
	if in.FilePath == "" {
		return nil, NewError(e.Name(), KindUnsupported, "no file input")
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(in.FilePath))
	}

	meta := map[string]string{}
	if in.Filename != "" {
		meta["filename"] = in.Filename
	}

	switch ext {
	case ".pdf":
		text, pages, err := e.pdfText(ctx, in.FilePath)
		if err != nil {
			return nil, err
		}
		meta["pages"] = fmt.Sprintf("%d", pages)
		return &Raw{Text: text, Metadata: meta}, nil
	case ".txt", ".text", "":
		data, err := os.ReadFile(in.FilePath)
		if err != nil {
			return nil, WrapError(e.Name(), KindParseFailure, err)
		}
		return &Raw{Text: string(data), Metadata: meta}, nil
	case ".md", ".markdown":
		data, err := os.ReadFile(in.FilePath)
		if err != nil {
			return nil, WrapError(e.Name(), KindParseFailure, err)
		}
		return &Raw{Text: string(data), Markdown: string(data), Metadata: meta}, nil
	case ".html", ".htm":
		data, err := os.ReadFile(in.FilePath)
		if err != nil {
			return nil, WrapError(e.Name(), KindParseFailure, err)
		}
		doc := extract.FromHTML(data, "")
		if strings.TrimSpace(doc.Text) == "" {
			return nil, NewError(e.Name(), KindParseFailure, "no readable content in %s", in.Filename)
		}
		if doc.Title != "" {
			meta["title"] = doc.Title
		}
		return &Raw{Title: doc.Title, Text: doc.Text, Markdown: doc.Markdown, Metadata: meta}, nil
	default:
		return nil, NewError(e.Name(), KindUnsupported, "extension %q", ext)
	}
}

// pdfText extracts the text layer page by page. Pages are 1-indexed.
func (e DocSimpleEngine) pdfText(ctx context.Context, path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, WrapError(e.Name(), KindParseFailure, fmt.Errorf("open pdf: %w", err))
	}
	defer f.Close()

	total := r.NumPage()
	var b strings.Builder
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, WrapError(e.Name(), KindTimeout, err)
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// Tolerate individual bad pages; a wholly empty result is
			// handled below.
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(text)
		}
	}

	if b.Len() == 0 {
		return "", 0, NewError(e.Name(), KindParseFailure, "no text layer in %s", filepath.Base(path))
	}
	return b.String(), total, nil
}
