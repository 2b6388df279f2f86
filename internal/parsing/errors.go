package parsing

import (
	"fmt"

	"github.com/jonathan/offer-scorer/internal/types"
)

// ParseError describes why a document could not be turned into ParsedContent
type ParseError struct {
	Format  string // "html" or "pdf"
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s parse error: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// failed reports a parse failure through the ParsedContent contract rather than an error
func failed(format, message string, cause error) *types.ParsedContent {
	err := &ParseError{Format: format, Message: message, Cause: cause}
	return types.FailedContent(err.Error())
}
