package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Mode selects what Render produces from a fetched page.
type Mode string

const (
	// ModeText is the visible body text with markup stripped.
	ModeText Mode = "text"
	// ModeMarkdown converts the body to Markdown.
	ModeMarkdown Mode = "markdown"
	// ModeHTML returns the cleaned document HTML.
	ModeHTML Mode = "html"
	// ModeImages returns an HTML list of every image with a src.
	ModeImages Mode = "images"
)

// ParseMode maps a user-supplied mode name onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeText):
		return ModeText, nil
	case string(ModeMarkdown), "md":
		return ModeMarkdown, nil
	case string(ModeHTML):
		return ModeHTML, nil
	case string(ModeImages), "img":
		return ModeImages, nil
	}
	return "", fmt.Errorf("unknown scrape mode %q", s)
}

// ErrEmpty means the page parsed fine but nothing visible was left after
// stripping markup.
var ErrEmpty = errors.New("no visible content")

// strippedTags never contribute visible content and are removed before any
// mode runs.
var strippedTags = []string{"script", "style", "template", "svg", "noscript", "iframe"}

// Parse builds a document from UTF-8 HTML with non-content tags removed.
func Parse(input []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	doc.Find(strings.Join(strippedTags, ", ")).Remove()
	return doc, nil
}

// Title returns the trimmed <title> text, empty when absent.
func Title(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("head title").First().Text())
}

// Render runs the selected mode against a parsed document.
func Render(doc *goquery.Document, mode Mode) (string, error) {
	switch mode {
	case ModeMarkdown:
		return Markdown(doc)
	case ModeHTML:
		return CleanHTML(doc)
	case ModeImages:
		return ImageList(doc)
	default:
		return Text(doc)
	}
}

func body(doc *goquery.Document) (*goquery.Selection, error) {
	sel := doc.Find("body").First()
	if sel.Length() == 0 {
		return nil, errors.New("document has no <body>")
	}
	return sel, nil
}

// Text returns the visible text of the body, whitespace-normalized: space
// runs collapsed, at most one consecutive blank line, block elements kept on
// their own lines.
func Text(doc *goquery.Document) (string, error) {
	sel, err := body(doc)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(&b, n, false)
	}
	text := normalizeWhitespace(b.String())
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// Markdown converts the body to Markdown, the way the text pipeline's
// default export works.
func Markdown(doc *goquery.Document) (string, error) {
	sel, err := body(doc)
	if err != nil {
		return "", err
	}
	raw, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", err
	}
	conv := md.NewConverter("", true, nil)
	out, err := conv.ConvertString(raw)
	if err != nil {
		return "", fmt.Errorf("markdown conversion: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmpty
	}
	return out, nil
}

// CleanHTML returns the full document HTML after tag stripping.
func CleanHTML(doc *goquery.Document) (string, error) {
	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmpty
	}
	return out, nil
}

// ImageList renders every img that has a src as an HTML list.
func ImageList(doc *goquery.Document) (string, error) {
	var b strings.Builder
	b.WriteString("<ul>")
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		alt, _ := s.Attr("alt")
		fmt.Fprintf(&b, "<li><img src='%s' alt='%s'></li>", src, alt)
	})
	b.WriteString("</ul>")
	return b.String(), nil
}

func collectText(b *strings.Builder, n *html.Node, inPre bool) {
	if n.Type == html.ElementNode {
		name := strings.ToLower(n.Data)
		switch name {
		case "pre", "code":
			inPre = true
		case "br", "hr":
			b.WriteString("\n")
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "div", "ul", "ol", "table":
			b.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		data := n.Data
		if !inPre {
			data = strings.ReplaceAll(data, "\t", " ")
			data = strings.ReplaceAll(data, "\r", " ")
		}
		b.WriteString(data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, inPre)
	}

	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n\n")
		case "li", "tr", "div":
			b.WriteString("\n")
		case "pre", "code":
			b.WriteString("\n")
		}
	}
}

func normalizeWhitespace(s string) string {
	// Collapse multiple spaces and blank lines
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Keep at most one consecutive blank
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	// trim trailing blank line
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
