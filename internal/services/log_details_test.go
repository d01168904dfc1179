package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogDetails(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantParsed  bool
		wantSummary string
	}{
		{name: "object", raw: `{"agent":"sleep-coach","step":2}`, wantParsed: true, wantSummary: "agent=sleep-coach step=2"},
		{name: "string holding object", raw: `"{\"ip\":\"10.0.0.1\"}"`, wantParsed: true, wantSummary: "ip=10.0.0.1"},
		{name: "plain string", raw: `"password changed"`, wantParsed: false, wantSummary: "password changed"},
		{name: "malformed json", raw: `{"agent":`, wantParsed: false, wantSummary: `{"agent":`},
		{name: "null", raw: `null`, wantParsed: false, wantSummary: ""},
		{name: "empty", raw: ``, wantParsed: false, wantSummary: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ParseLogDetails(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantParsed, details.Parsed)
			assert.Equal(t, tt.wantSummary, details.Summary())
		})
	}
}
