package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "salon/pkg/errors"
)

// DecodeJSON reads a single JSON document from the request body into target.
// Unknown fields are ignored; an empty or malformed body is invalid input.
func DecodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return apperrors.InvalidInput("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body is required")
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperrors.InvalidInput("Request body too large")
		}
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}

// RequiredQuery returns the named query parameters, failing on the first
// missing one.
func RequiredQuery(r *http.Request, names ...string) ([]string, error) {
	query := r.URL.Query()
	values := make([]string, 0, len(names))
	for _, name := range names {
		value := query.Get(name)
		if value == "" {
			return nil, apperrors.InvalidInput("Missing required query parameter: " + name)
		}
		values = append(values, value)
	}
	return values, nil
}
