// Package testutil builds small in-memory fixtures shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

// BuildPDF returns a valid uncompressed PDF with one page per content stream.
// Every page gets a Helvetica font resource named /F1.
func BuildPDF(pages ...string) []byte {
	// objects: 1 catalog, 2 page tree, 3 font, then a page and a content stream per page
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled once page numbers are known
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	kids := make([]string, 0, len(pages))
	for _, content := range pages {
		pageNum := len(objects) + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageNum+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// TextLines is a content stream that shows each line with Tj, moving down with Td
// between lines.
func TextLines(lines ...string) string {
	var sb strings.Builder
	sb.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("0 -16 Td\n")
		}
		fmt.Fprintf(&sb, "(%s) Tj\n", EscapePDFString(line))
	}
	sb.WriteString("ET")
	return sb.String()
}

// EscapePDFString escapes the characters that are special inside a PDF literal string
func EscapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
