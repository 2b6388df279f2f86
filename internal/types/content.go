// Package types provides type definitions for structured data used throughout the offer-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ParsedContent is the normalized representation produced by the HTML and PDF parsers
// and consumed by every metric check.
type ParsedContent struct {
	Text      string   `json:"text"`      // Whitespace-collapsed plain text
	WordCount int      `json:"wordCount"` // Count of whitespace-delimited tokens
	Headings  []string `json:"headings"`
	Links     []Link   `json:"links"`
	Images    []Image  `json:"images"`
	Success   bool     `json:"success"`
	Error     string   `json:"error,omitempty"` // Set only when Success is false
}

// Link is a hyperlink found in the source document
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Image is an image reference found in the source document
type Image struct {
	Alt string `json:"alt"`
	Src string `json:"src"`
}

// FailedContent returns the shape a parser reports when it could not extract anything.
// Text is empty and WordCount is zero so checks read it as "no evidence".
func FailedContent(message string) *ParsedContent {
	return &ParsedContent{
		Headings: []string{},
		Links:    []Link{},
		Images:   []Image{},
		Success:  false,
		Error:    message,
	}
}

// HasEvidence reports whether checks should inspect the content at all.
func (c *ParsedContent) HasEvidence() bool {
	return c != nil && c.Success
}
