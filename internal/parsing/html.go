package parsing

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/jonathan/offer-scorer/internal/types"
	"golang.org/x/net/html"
)

// noiseSelectors are removed before any text is collected
const noiseSelectors = "script, style, noscript, template, svg, iframe, head"

// inlineElements do not introduce a word boundary, so <b>10</b>x stays "10x"
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "cite": true,
	"code": true, "data": true, "em": true, "i": true, "kbd": true, "mark": true,
	"q": true, "s": true, "samp": true, "small": true, "span": true, "strong": true,
	"sub": true, "sup": true, "time": true, "u": true, "var": true,
}

// readabilityBase resolves relative URLs inside readability; it never leaves the parser
var readabilityBase = &url.URL{Scheme: "https", Host: "offer.invalid", Path: "/"}

// HTMLParser extracts ParsedContent from an HTML document
type HTMLParser struct {
	mainContent bool
}

// HTMLOption configures an HTMLParser
type HTMLOption func(*HTMLParser)

// WithMainContent restricts body text to the main article found by readability.
// Headings, links and images are still collected from the whole document, and
// pages where readability finds nothing fall back to the full body text.
func WithMainContent(enabled bool) HTMLOption {
	return func(p *HTMLParser) {
		p.mainContent = enabled
	}
}

// NewHTMLParser creates an HTML parser
func NewHTMLParser(opts ...HTMLOption) *HTMLParser {
	p := &HTMLParser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Variant names the text extraction mode, for keying cached results
func (p *HTMLParser) Variant() string {
	if p.mainContent {
		return "main-content"
	}
	return ""
}

// ParseHTML collects visible text, headings, links and images from an HTML document.
// Documents that cannot be read or contain no text are reported with Success=false;
// the returned error is reserved for context cancellation.
func (p *HTMLParser) ParseHTML(ctx context.Context, htmlContent string) (*types.ParsedContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(htmlContent) == "" {
		return failed("html", "empty document", nil), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return failed("html", "failed to read document", err), nil
	}

	doc.Find(noiseSelectors).Remove()

	headings := make([]string, 0)
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		if text := NormalizeText(s.Text()); text != "" {
			headings = append(headings, text)
		}
	})

	links := make([]types.Link, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, types.Link{
			Text: NormalizeText(s.Text()),
			Href: strings.TrimSpace(href),
		})
	})

	images := make([]types.Image, 0)
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		alt, _ := s.Attr("alt")
		src, _ := s.Attr("src")
		images = append(images, types.Image{
			Alt: NormalizeText(alt),
			Src: strings.TrimSpace(src),
		})
	})

	text := ""
	if p.mainContent {
		text = mainContentText(htmlContent)
	}
	if text == "" {
		text = bodyText(doc)
	}
	if text == "" {
		return failed("html", "no text content found", nil), nil
	}

	return &types.ParsedContent{
		Text:      text,
		WordCount: CountWords(text),
		Headings:  headings,
		Links:     links,
		Images:    images,
		Success:   true,
	}, nil
}

func bodyText(doc *goquery.Document) string {
	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var sb strings.Builder
	for _, n := range root.Nodes {
		collectText(n, &sb)
	}
	return NormalizeText(sb.String())
}

// mainContentText returns the text of the readability article, or "" when none is found
func mainContentText(htmlContent string) string {
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(htmlContent), readabilityBase)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return ""
	}
	doc.Find(noiseSelectors).Remove()
	return bodyText(doc)
}

// collectText walks the node tree, separating block-level elements with spaces
func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	}

	block := n.Type == html.ElementNode && !inlineElements[n.Data]
	if block {
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
	if block {
		sb.WriteByte(' ')
	}
}
