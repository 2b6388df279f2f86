package server

import (
	"fmt"
	"net/http"

	"github.com/jonathan/offer-scorer/internal/analysis"
)

// ErrValidation indicates the request body could not be decoded
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates the request body exceeded the configured limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// StatusForResponse maps an analysis envelope to its HTTP status code
func StatusForResponse(resp analysis.Response) int {
	if resp.Success {
		return http.StatusOK
	}
	switch resp.Code {
	case analysis.CodeValidation:
		return http.StatusBadRequest
	case analysis.CodeParse:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
