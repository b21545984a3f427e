package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueUnmarshalDefaults(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantConf float64
		wantPage int
	}{
		{"missing confidence", `{"id":"REQ-001","description":"x"}`, DefaultConfidence, 0},
		{"zero confidence", `{"confidenceScore":0}`, DefaultConfidence, 0},
		{"negative confidence", `{"confidenceScore":-0.3}`, DefaultConfidence, 0},
		{"above one clamps", `{"confidenceScore":1.7}`, 1.0, 0},
		{"valid kept", `{"confidenceScore":0.85,"pageReference":4}`, 0.85, 4},
		{"negative page reset", `{"confidenceScore":0.6,"pageReference":-2}`, 0.6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var issue Issue
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &issue))
			assert.Equal(t, tt.wantConf, issue.Confidence)
			assert.Equal(t, tt.wantPage, issue.PageReference)
		})
	}
}

func TestSeverityParsing(t *testing.T) {
	assert.Equal(t, SeverityHigh, ParseSeverity("high"))
	assert.Equal(t, SeverityHigh, ParseSeverity("CRITICAL"))
	assert.Equal(t, SeverityMedium, ParseSeverity(" Medium "))
	assert.Equal(t, SeverityMedium, ParseSeverity("MAJOR"))
	assert.Equal(t, SeverityLow, ParseSeverity("LOW"))
	assert.Equal(t, SeverityLow, ParseSeverity("whatever"))
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SeverityHigh)
	require.NoError(t, err)
	assert.Equal(t, `"HIGH"`, string(data))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"medium"`), &s))
	assert.Equal(t, SeverityMedium, s)

	// Malformed severities degrade instead of failing the whole issue.
	require.NoError(t, json.Unmarshal([]byte(`3`), &s))
	assert.Equal(t, SeverityLow, s)
}

func TestWithConfidenceClamps(t *testing.T) {
	issue := Issue{Confidence: 0.9}
	assert.Equal(t, 1.0, issue.WithConfidence(1.2).Confidence)
	assert.Equal(t, 0.0, issue.WithConfidence(-0.1).Confidence)
	assert.Equal(t, 0.42, issue.WithConfidence(0.42).Confidence)
	// Receiver untouched.
	assert.Equal(t, 0.9, issue.Confidence)
}
