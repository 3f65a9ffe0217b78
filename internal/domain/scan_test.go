package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "valid RFC 3339 string",
			input:    `"2025-06-15T12:00:00Z"`,
			expected: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "malformed date string decodes to zero time",
			input:    `"not-a-date"`,
			expected: time.Time{},
		},
		{
			name:     "null decodes to zero time",
			input:    `null`,
			expected: time.Time{},
		},
		{
			name:     "empty string decodes to zero time",
			input:    `""`,
			expected: time.Time{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tc.input), &ts)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestScan_UnmarshalSurvivesBadTimestamps(t *testing.T) {
	// A scan with a garbage completed_at must still decode; the bad
	// timestamp just becomes zero and is excluded by bounded windows.
	payload := `{"id":7,"status":"completed","started_at":"2025-06-15T10:00:00Z","completed_at":"yesterday","critical_count":1,"total_vulnerabilities":1}`
	var scan Scan
	require.NoError(t, json.Unmarshal([]byte(payload), &scan))
	assert.Equal(t, int64(7), scan.ID)
	assert.False(t, scan.StartedAt.IsZero())
	assert.True(t, scan.CompletedAt.IsZero())
}

func TestSelectorMatches(t *testing.T) {
	assert.True(t, SelectorMatches("all", 42))
	assert.True(t, SelectorMatches("", 42))
	assert.True(t, SelectorMatches("42", 42))
	assert.False(t, SelectorMatches("41", 42))
	assert.False(t, SelectorMatches("not-an-id", 42))
}
