// Package analysis is the entry point that routes raw HTML or PDF content through a
// parser and the scoring engine, reporting every outcome as a Response envelope.
package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/jonathan/offer-scorer/internal/types"
)

// Content types accepted by AnalyzeContent
const (
	TypeHTML = "html"
	TypePDF  = "pdf"
)

// Error codes carried by a failed Response
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeParse      = "PARSE_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// RubricVersion is mixed into cache keys so cached results are invalidated
// whenever the checks, weights or lever constants change.
const RubricVersion = "offer-rubric/1"

// HTMLParser turns an HTML document into ParsedContent
type HTMLParser interface {
	ParseHTML(ctx context.Context, html string) (*types.ParsedContent, error)
}

// PDFParser turns a PDF document into ParsedContent
type PDFParser interface {
	ParsePDF(ctx context.Context, data []byte) (*types.ParsedContent, error)
}

// Cache stores scoring results keyed by InputHash.
// Get reports found=false (and no error) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*types.ScoringResult, bool, error)
	Put(ctx context.Context, key, contentType string, result *types.ScoringResult) error
}

// Request is a single analysis call. Content must be a string for html and a
// []byte for pdf.
type Request struct {
	Type    string `json:"type" validate:"required,oneof=html pdf"`
	Content any    `json:"-"`
}

// Response is the envelope returned for every call. Result is present on success
// and on parse failures (as a zero score), and absent for validation and
// internal errors.
type Response struct {
	Success bool                 `json:"success"`
	Result  *types.ScoringResult `json:"result,omitempty"`
	Error   string               `json:"error,omitempty"`
	Code    string               `json:"code,omitempty"`
}

// ValidationError represents a malformed request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InternalError represents a parser or engine failure
type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// InputHash derives the cache key for a request from the rubric version, the
// content type and the raw content bytes.
func InputHash(contentType string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(RubricVersion))
	h.Write([]byte{0})
	h.Write([]byte(contentType))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
