package parsing

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/offer-scorer/internal/types"
	"github.com/ledongthuc/pdf"
)

// PDFParser extracts ParsedContent from a PDF document
type PDFParser struct{}

// NewPDFParser creates a PDF parser
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// tjWordGap is the TJ displacement, in thousandths of text space, treated as a word
// gap. TJ numbers move the next glyph left, so a gap is a negative number below
// -tjWordGap; kerning adjustments stay well above it.
const tjWordGap = 180

// ParsePDF extracts the text of every page and uses outline (bookmark) titles as
// headings. PDFs carry no reliable link or image text, so those stay empty.
// Malformed documents are reported with Success=false; the pdf library panics on some
// corrupt inputs, which is recovered here.
func (p *PDFParser) ParsePDF(ctx context.Context, data []byte) (content *types.ParsedContent, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return failed("pdf", "empty document", nil), nil
	}

	defer func() {
		if r := recover(); r != nil {
			content = failed("pdf", "corrupt document", fmt.Errorf("%v", r))
			err = nil
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return failed("pdf", "failed to open document", err), nil
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		sb.WriteString(pageText(page))
		sb.WriteByte('\n')
	}

	text := NormalizeText(sb.String())
	if text == "" {
		return failed("pdf", "no text content found", nil), nil
	}

	return &types.ParsedContent{
		Text:      text,
		WordCount: CountWords(text),
		Headings:  outlineTitles(reader.Outline()),
		Links:     []types.Link{},
		Images:    []types.Image{},
		Success:   true,
	}, nil
}

// pageText renders the text-showing operators of one page. Every text positioning
// operator and every wide TJ displacement becomes a word boundary, so separately
// placed lines and words never fuse.
func pageText(page pdf.Page) string {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}

	var (
		sb  strings.Builder
		enc pdf.TextEncoding
	)
	show := func(raw string) {
		if enc == nil {
			sb.WriteString(raw)
			return
		}
		sb.WriteString(enc.Decode(raw))
	}

	interpret := func(strm pdf.Value) {
		pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
			n := stk.Len()
			args := make([]pdf.Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = stk.Pop()
			}

			switch op {
			case "Tf":
				enc = nil
				if n == 2 {
					if f, ok := fonts[args[0].Name()]; ok {
						enc = f.Encoder()
					}
				}
			case "BT", "ET", "Td", "TD", "Tm", "T*":
				sb.WriteByte(' ')
			case "Tj":
				if n == 1 {
					show(args[0].RawString())
				}
			case "'", "\"":
				sb.WriteByte(' ')
				if n > 0 {
					show(args[n-1].RawString())
				}
			case "TJ":
				if n != 1 {
					return
				}
				for i := 0; i < args[0].Len(); i++ {
					v := args[0].Index(i)
					switch v.Kind() {
					case pdf.String:
						show(v.RawString())
					case pdf.Integer, pdf.Real:
						if v.Float64() < -tjWordGap {
							sb.WriteByte(' ')
						}
					}
				}
			}
		})
	}

	contents := page.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			interpret(contents.Index(i))
			sb.WriteByte(' ')
		}
	} else {
		interpret(contents)
	}
	return sb.String()
}

// outlineTitles flattens the bookmark tree depth-first, skipping the untitled root
func outlineTitles(o pdf.Outline) []string {
	titles := make([]string, 0)
	var walk func(pdf.Outline)
	walk = func(node pdf.Outline) {
		if title := NormalizeText(node.Title); title != "" {
			titles = append(titles, title)
		}
		for _, child := range node.Child {
			walk(child)
		}
	}
	walk(o)
	return titles
}
