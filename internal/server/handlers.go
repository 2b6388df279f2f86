package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/offer-scorer/internal/analysis"
)

// AnalyzeRequest represents the request body for /analyze.
// HTML may be sent as text in Content; PDF must be sent in ContentBase64.
type AnalyzeRequest struct {
	Type          string  `json:"type"`
	Content       *string `json:"content,omitempty"`
	ContentBase64 string  `json:"content_base64,omitempty"`
}

// toAnalysisRequest converts the wire body into a façade request. A PDF sent as
// plain text is passed through as a string so the façade reports the type mismatch.
func (req *AnalyzeRequest) toAnalysisRequest() (analysis.Request, error) {
	out := analysis.Request{Type: req.Type}

	if req.ContentBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.ContentBase64)
		if err != nil {
			return out, &ErrValidation{Field: "content_base64", Message: "must be valid base64"}
		}
		if req.Type == analysis.TypeHTML {
			out.Content = string(data)
		} else {
			out.Content = data
		}
		return out, nil
	}

	if req.Content != nil {
		out.Content = *req.Content
	}
	return out, nil
}

// handleAnalyze scores an HTML or PDF document
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if err := s.decodeBody(w, r, &body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	req, err := body.toAnalysisRequest()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := s.analyzer.AnalyzeContent(r.Context(), req)
	if !resp.Success {
		log.Printf("[analyze] %s request %s failed: %s (%s)", req.Type, r.Header.Get(requestIDHeader), resp.Error, resp.Code)
	}
	s.jsonResponse(w, StatusForResponse(resp), resp)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBody reads a JSON body bounded by the configured size limit
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if s.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrPayloadTooLarge{Limit: tooLarge.Limit}
		}
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return nil
}
