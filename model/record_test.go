package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRepositoryRecordUnmarshal will test the extraction of the ranking fields
func TestRepositoryRecordUnmarshal(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedStars   int
		starsValid      bool
		expectedUpdated time.Time
		updatedValid    bool
		expectedName    string
	}{
		{
			name:            "Complete record",
			input:           `{"full_name":"octo/cat","stargazers_count":42,"updated_at":"2023-06-01T10:00:00Z"}`,
			expectedStars:   42,
			starsValid:      true,
			expectedUpdated: time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC),
			updatedValid:    true,
			expectedName:    "octo/cat",
		},
		{
			name:            "Float star count without fraction",
			input:           `{"name":"cat","stargazers_count":12.0,"updated_at":"2023-06-01"}`,
			expectedStars:   12,
			starsValid:      true,
			expectedUpdated: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
			updatedValid:    true,
			expectedName:    "cat",
		},
		{
			name:  "Missing fields",
			input: `{"id":1}`,
		},
		{
			name:  "Wrong types",
			input: `{"stargazers_count":"12","updated_at":1685613600,"full_name":7}`,
		},
		{
			name:  "Negative star count",
			input: `{"stargazers_count":-1,"updated_at":"soon"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RepositoryRecord
			require.NoError(t, json.Unmarshal([]byte(tt.input), &r))

			stars, starsValid := r.StarCount()
			assert.Equal(t, tt.starsValid, starsValid)
			assert.Equal(t, tt.expectedStars, stars)

			updated, updatedValid := r.LastUpdated()
			assert.Equal(t, tt.updatedValid, updatedValid)
			assert.True(t, tt.expectedUpdated.Equal(updated))

			assert.Equal(t, tt.expectedName, r.Name())
		})
	}
}

// TestRepositoryRecordPassThrough will check unknown fields are written back unchanged
func TestRepositoryRecordPassThrough(t *testing.T) {
	input := `[{"stargazers_count":1,"updated_at":"2023-01-01","owner":{"login":"octo"},"topics":["go","cli"],"score":0.5},{"id":2}]`

	var records []RepositoryRecord
	require.NoError(t, json.Unmarshal([]byte(input), &records))
	require.Len(t, records, 2)

	output, err := json.Marshal(records)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(output))
}

// TestRepositoryRecordRejectsNonObjects will check the body validation
func TestRepositoryRecordRejectsNonObjects(t *testing.T) {
	for _, input := range []string{`[1]`, `["repo"]`, `[[]]`, `[true]`} {
		var records []RepositoryRecord
		assert.Error(t, json.Unmarshal([]byte(input), &records), input)
	}
}

// TestParseTimestamp will test the accepted layouts
func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
		valid    bool
	}{
		{input: "2023-01-01T00:00:00Z", expected: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01T02:00:00+02:00", expected: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01T00:00:00.250Z", expected: time.Date(2023, 1, 1, 0, 0, 0, 250000000, time.UTC), valid: true},
		{input: "2023-01-01T12:30:00", expected: time.Date(2023, 1, 1, 12, 30, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01T12:30", expected: time.Date(2023, 1, 1, 12, 30, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01T10:00Z", expected: time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01T10:00+02:00", expected: time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01 10:00:00", expected: time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01 10:00:00.5", expected: time.Date(2023, 1, 1, 10, 0, 0, 500000000, time.UTC), valid: true},
		{input: "2023-01-01 10:00:00Z", expected: time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01 12:00:00+02:00", expected: time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01 10:00", expected: time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC), valid: true},
		{input: "2023-01-01 10:00-05:00", expected: time.Date(2023, 1, 1, 15, 0, 0, 0, time.UTC), valid: true},
		{input: " 2023-06-01 ", expected: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), valid: true},
		{input: "2023-06", expected: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), valid: true},
		{input: "2023", expected: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), valid: true},
		{input: ""},
		{input: "yesterday"},
		{input: "2023-02-30"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parsed, ok := ParseTimestamp(tt.input)

			assert.Equal(t, tt.valid, ok)
			assert.True(t, tt.expected.Equal(parsed), "got %s", parsed)
		})
	}
}
