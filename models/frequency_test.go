package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Frequency
	}{
		{"daily", "daily", Frequency{Days: 1}},
		{"weekly", "weekly", Frequency{Days: 7}},
		{"biweekly", "biweekly", Frequency{Days: 14}},
		{"monthly", "monthly", Frequency{Period: PeriodMonthly}},
		{"numeric", "10", Frequency{Days: 10}},
		{"mixed case with spaces", "  Weekly ", Frequency{Days: 7}},
		{"unknown word", "fortnightly-ish", Frequency{Days: FallbackFrequencyDays}},
		{"negative number", "-4", Frequency{Days: FallbackFrequencyDays}},
		{"empty", "", Frequency{Days: FallbackFrequencyDays}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFrequency(tt.raw))
		})
	}
}

func TestFrequencyUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Frequency
	}{
		{"bare day count", `14`, Frequency{Days: 14}},
		{"symbolic string", `"weekly"`, Frequency{Days: 7}},
		{"monthly string", `"monthly"`, Frequency{Period: PeriodMonthly}},
		{"object form", `{"days": 5}`, Frequency{Days: 5}},
		{"object monthly", `{"period": "monthly"}`, Frequency{Period: PeriodMonthly}},
		{"null", `null`, Frequency{}},
		{"empty string", `""`, Frequency{}},
		{"zero day count", `0`, Frequency{Days: FallbackFrequencyDays}},
		{"garbage string", `"whenever"`, Frequency{Days: FallbackFrequencyDays}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Frequency
			require.NoError(t, json.Unmarshal([]byte(tt.data), &f))
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestFrequencyIsZero(t *testing.T) {
	assert.True(t, Frequency{}.IsZero())
	assert.False(t, Frequency{Days: 7}.IsZero())
	assert.False(t, Frequency{Period: PeriodMonthly}.IsZero())
}
