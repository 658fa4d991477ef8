package http

import (
	"bytes"
	"encoding/json"
)

// marshalJSON is the single JSON serializer for every response body, success
// or error. It escapes quotes, backslashes and control characters as JSON
// requires and leaves HTML characters alone.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// errorBody is the wire shape of every error: {"error":"<message>"}.
type errorBody struct {
	Error string `json:"error"`
}

// messageBody is the wire shape of plain acknowledgements.
type messageBody struct {
	Message string `json:"message"`
}

var fallbackErrorBody = []byte(`{"error":"Internal server error"}`)
