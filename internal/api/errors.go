package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response from the backend, with the error payload
// parsed into the shapes the API produces: a top-level detail string, a
// non_field_errors array, or per-field validation messages.
type APIError struct {
	StatusCode     int
	Detail         string
	NonFieldErrors []string
	Fields         map[string][]string
	Raw            string
}

func (e *APIError) Error() string {
	return e.Message()
}

// Message normalizes the payload into one user-facing string. Precedence:
// detail, then the first non-field error, then field-level messages, then
// the raw payload, then the status text.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.NonFieldErrors) > 0 {
		return e.NonFieldErrors[0]
	}
	if len(e.Fields) > 0 {
		fields := make([]string, 0, len(e.Fields))
		for f := range e.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, f+": "+strings.Join(e.Fields[f], "; "))
		}
		return strings.Join(parts, ", ")
	}
	if e.Raw != "" {
		return e.Raw
	}
	return http.StatusText(e.StatusCode)
}

// IsStatus reports whether err carries an APIError with the given status.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// newAPIError drains the response body and classifies the payload.
func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Raw:        strings.TrimSpace(string(body)),
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	for key, raw := range payload {
		switch key {
		case "detail", "error":
			var s string
			if json.Unmarshal(raw, &s) == nil && apiErr.Detail == "" {
				apiErr.Detail = s
			}
		case "non_field_errors":
			var msgs []string
			if json.Unmarshal(raw, &msgs) == nil {
				apiErr.NonFieldErrors = msgs
			}
		default:
			var msgs []string
			if json.Unmarshal(raw, &msgs) == nil && len(msgs) > 0 {
				if apiErr.Fields == nil {
					apiErr.Fields = make(map[string][]string)
				}
				apiErr.Fields[key] = msgs
			}
		}
	}
	return apiErr
}
