package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/offer-scorer/internal/scoring"
	"github.com/jonathan/offer-scorer/internal/types"
)

// Analyzer wires the parsers, the scorer and an optional result cache
type Analyzer struct {
	html      HTMLParser
	pdf       PDFParser
	scorer    *scoring.Scorer
	cache     Cache
	verbose   bool
	variant   string
	onParsed  func(contentType string, content *types.ParsedContent)
	validator *validator.Validate
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithCache enables result caching
func WithCache(c Cache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// WithScorer replaces the default scorer. A nil scorer keeps the default.
func WithScorer(s *scoring.Scorer) Option {
	return func(a *Analyzer) {
		if s != nil {
			a.scorer = s
		}
	}
}

// WithVerbose enables [VERBOSE] logging
func WithVerbose(verbose bool) Option {
	return func(a *Analyzer) {
		a.verbose = verbose
	}
}

// WithVariant separates cache entries produced by a non-default parser mode
func WithVariant(variant string) Option {
	return func(a *Analyzer) {
		a.variant = variant
	}
}

// WithParsedHook registers a callback that receives every parser output before scoring
func WithParsedHook(fn func(contentType string, content *types.ParsedContent)) Option {
	return func(a *Analyzer) {
		a.onParsed = fn
	}
}

// New creates an Analyzer backed by the given parsers
func New(htmlParser HTMLParser, pdfParser PDFParser, opts ...Option) *Analyzer {
	a := &Analyzer{
		html:      htmlParser,
		pdf:       pdfParser,
		scorer:    scoring.NewScorer(),
		validator: validator.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeContent validates the request, parses the content and scores it.
// It never panics and never returns an error; every failure is reported in the
// Response with a code.
func (a *Analyzer) AnalyzeContent(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[analysis] recovered from panic: %v", r)
			resp = failure(&InternalError{Message: fmt.Sprintf("internal error: %v", r)})
		}
	}()

	payload, err := a.validateRequest(req)
	if err != nil {
		return failure(err)
	}

	key := a.cacheKey(req.Type, payload)
	if cached := a.lookup(ctx, key); cached != nil {
		return Response{Success: true, Result: cached}
	}

	content, err := a.parse(ctx, req)
	if err != nil {
		return failure(err)
	}

	if a.onParsed != nil {
		a.onParsed(req.Type, content)
	}

	result := a.scorer.Score(content)
	if !content.Success {
		msg := content.Error
		if msg == "" {
			msg = "failed to parse content"
		}
		if a.verbose {
			log.Printf("[VERBOSE] %s content could not be parsed: %s", req.Type, msg)
		}
		return Response{Success: false, Result: result, Error: msg, Code: CodeParse}
	}

	if a.verbose {
		log.Printf("[VERBOSE] Scored %s content (%d words): overall %.2f", req.Type, content.WordCount, result.OverallScore)
	}
	a.store(ctx, key, req.Type, result)

	return Response{Success: true, Result: result}
}

// validateRequest checks the declared type against the runtime type of the content
// and returns the raw content bytes used for cache keys.
func (a *Analyzer) validateRequest(req Request) ([]byte, error) {
	if err := a.validator.Struct(req); err != nil {
		return nil, &ValidationError{Field: "type", Message: describeValidation(err)}
	}

	switch req.Type {
	case TypeHTML:
		s, ok := req.Content.(string)
		if !ok {
			return nil, &ValidationError{Field: "content", Message: "content must be a string"}
		}
		return []byte(s), nil
	default:
		b, ok := req.Content.([]byte)
		if !ok {
			return nil, &ValidationError{Field: "content", Message: "content must be a buffer"}
		}
		return b, nil
	}
}

func (a *Analyzer) parse(ctx context.Context, req Request) (*types.ParsedContent, error) {
	var (
		content *types.ParsedContent
		err     error
	)
	switch req.Type {
	case TypeHTML:
		if a.html == nil {
			return nil, &InternalError{Message: "no HTML parser configured"}
		}
		content, err = a.html.ParseHTML(ctx, req.Content.(string))
	default:
		if a.pdf == nil {
			return nil, &InternalError{Message: "no PDF parser configured"}
		}
		content, err = a.pdf.ParsePDF(ctx, req.Content.([]byte))
	}
	if err != nil {
		return nil, &InternalError{Message: fmt.Sprintf("failed to parse %s", req.Type), Cause: err}
	}
	if content == nil {
		return nil, &InternalError{Message: fmt.Sprintf("%s parser returned no content", req.Type)}
	}
	return content, nil
}

// cacheKey hashes the payload together with everything that changes the result for
// it: the content type, the parser variant and the scoring rubric
func (a *Analyzer) cacheKey(contentType string, payload []byte) string {
	key := contentType
	if a.variant != "" {
		key += "+" + a.variant
	}
	if fp := a.scorer.Fingerprint(); fp != "" {
		key += "+rubric:" + fp
	}
	return InputHash(key, payload)
}

// lookup returns a cached result, treating cache failures as misses
func (a *Analyzer) lookup(ctx context.Context, key string) *types.ScoringResult {
	if a.cache == nil {
		return nil
	}
	result, found, err := a.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[cache] lookup failed for %s: %v", shortKey(key), err)
		return nil
	}
	if !found || result == nil {
		return nil
	}
	if a.verbose {
		log.Printf("[cache] hit for %s", shortKey(key))
	}
	return result
}

func (a *Analyzer) store(ctx context.Context, key, contentType string, result *types.ScoringResult) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Put(ctx, key, contentType, result); err != nil {
		log.Printf("[cache] store failed for %s: %v", shortKey(key), err)
	}
}

func failure(err error) Response {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return Response{Success: false, Error: vErr.Error(), Code: CodeValidation}
	}
	return Response{Success: false, Error: err.Error(), Code: CodeInternal}
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", field)
		case "oneof":
			return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
		}
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
	return "invalid request"
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
