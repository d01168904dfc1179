package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

type LogDetails struct {
	Parsed bool           `json:"parsed"`
	Fields map[string]any `json:"fields,omitempty"`
	Text   string         `json:"text,omitempty"`
}

// ParseLogDetails decodes a details payload that may be an object, a JSON-encoded
// string holding an object, or free text. Anything malformed falls back to text.
func ParseLogDetails(raw json.RawMessage) LogDetails {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return LogDetails{}
	}

	var embedded string
	if err := json.Unmarshal(trimmed, &embedded); err == nil {
		return parseDetailsText(embedded)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(trimmed, &fields); err == nil {
		return LogDetails{Parsed: true, Fields: fields}
	}
	return LogDetails{Text: string(trimmed)}
}

func parseDetailsText(text string) LogDetails {
	candidate := strings.TrimSpace(text)
	if strings.HasPrefix(candidate, "{") {
		fields := map[string]any{}
		if err := json.Unmarshal([]byte(candidate), &fields); err == nil {
			return LogDetails{Parsed: true, Fields: fields}
		}
	}
	return LogDetails{Text: text}
}

// Summary renders details on one line as sorted key=value pairs.
func (details LogDetails) Summary() string {
	if !details.Parsed {
		return details.Text
	}
	keys := make([]string, 0, len(details.Fields))
	for key := range details.Fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, details.Fields[key]))
	}
	return strings.Join(parts, " ")
}
