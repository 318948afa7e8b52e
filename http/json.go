package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/AmKilopa/KlpGIT"
)

// maxBodySize caps request bodies.
const maxBodySize = 1 << 20

var (
	errBadRequest       = errors.New("bad request")
	errUnsupportedMedia = errors.New("content type must be application/json")
)

type errorResponse struct {
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into v. An empty body without a
// Content-Type leaves v as is; anything else must be application/json.
func decodeJSON(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" || r.ContentLength != 0 {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return errUnsupportedMedia
		}
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// writeError maps err to a status code and writes {"error": msg}.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, klpgit.ErrPathOutsideRoot):
		return http.StatusForbidden
	case errors.Is(err, klpgit.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, klpgit.ErrEmptyMessage),
		errors.Is(err, klpgit.ErrNoChanges),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, errSuggestDisabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
