// Package jsonutil provides shared helpers for decoding API payloads:
// error wrapping and lenient decoding of diagnostic bodies.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// Diagnostic decodes a response body for logging. Valid JSON is returned as
// the decoded value; anything else comes back as the trimmed raw text.
// An empty body yields nil.
func Diagnostic(data []byte) interface{} {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return trimmed
	}
	return v
}

// GetString safely extracts a string value from a map[string]interface{}.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// ErrorMessage pulls a human-readable message out of a decoded error body.
// It looks at "error" then "message"; other shapes yield "".
func ErrorMessage(body interface{}) string {
	m, ok := body.(map[string]interface{})
	if !ok {
		if s, ok := body.(string); ok {
			return s
		}
		return ""
	}
	if s := GetString(m, "error"); s != "" {
		return s
	}
	return GetString(m, "message")
}
