package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MarkdownFromHTML renders cleaned HTML (typically readability output) as
// markdown. Returns "" when nothing renderable is found.
func MarkdownFromHTML(input []byte) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(input)))
	if err != nil {
		return ""
	}
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	var b strings.Builder
	renderMarkdown(root, &b)
	return strings.TrimSpace(b.String())
}

func renderMarkdown(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch node.Type {
		case html.TextNode:
			if text := strings.TrimSpace(node.Data); text != "" {
				b.WriteString(text)
				b.WriteString(" ")
			}
			return
		case html.ElementNode:
		default:
			return
		}

		switch tag := strings.ToLower(node.Data); tag {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(tag[1] - '0')
			fmt.Fprintf(b, "\n%s %s\n\n", strings.Repeat("#", level), strings.TrimSpace(s.Text()))
		case "p":
			var inner strings.Builder
			renderMarkdown(s, &inner)
			if text := strings.TrimSpace(inner.String()); text != "" {
				b.WriteString(text)
				b.WriteString("\n\n")
			}
		case "br":
			b.WriteString("\n")
		case "a":
			href := s.AttrOr("href", "")
			text := strings.TrimSpace(s.Text())
			if href != "" && text != "" {
				fmt.Fprintf(b, "[%s](%s)", text, href)
			} else {
				b.WriteString(text)
			}
		case "strong", "b":
			fmt.Fprintf(b, "**%s**", strings.TrimSpace(s.Text()))
		case "em", "i":
			fmt.Fprintf(b, "*%s*", strings.TrimSpace(s.Text()))
		case "code":
			fmt.Fprintf(b, "`%s`", s.Text())
		case "pre":
			fmt.Fprintf(b, "\n```\n%s\n```\n\n", strings.TrimRight(s.Text(), "\n"))
		case "blockquote":
			for _, line := range strings.Split(strings.TrimSpace(s.Text()), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					fmt.Fprintf(b, "> %s\n", line)
				}
			}
			b.WriteString("\n")
		case "ul", "ol":
			renderList(s, b, tag == "ol", 0)
			b.WriteString("\n")
		case "img":
			if src := s.AttrOr("src", ""); src != "" {
				fmt.Fprintf(b, "![%s](%s)\n\n", s.AttrOr("alt", ""), src)
			}
		case "script", "style", "noscript":
			// dropped
		default:
			renderMarkdown(s, b)
		}
	})
}

func renderList(sel *goquery.Selection, b *strings.Builder, ordered bool, depth int) {
	prefix := strings.Repeat("  ", depth)
	sel.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", i+1)
		}
		// Item text without nested list content.
		item := li.Clone()
		item.Find("ul, ol").Remove()
		fmt.Fprintf(b, "%s%s%s\n", prefix, marker, strings.TrimSpace(item.Text()))
		li.ChildrenFiltered("ul, ol").Each(func(_ int, nested *goquery.Selection) {
			renderList(nested, b, nested.Is("ol"), depth+1)
		})
	})
}
