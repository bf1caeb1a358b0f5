package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"30s", 30 * time.Second},
		{"45sec", 45 * time.Second},
		{"10 seconds", 10 * time.Second},
		{"5m", 5 * time.Minute},
		{"2min", 2 * time.Minute},
		{"1h", time.Hour},
		{"3hr", 3 * time.Hour},
		{"2 hours", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"2 days", 48 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"1h30m", 90 * time.Minute},
		{"1h 30m", 90 * time.Minute},
		{"2d12h", 60 * time.Hour},
		{"1W", 7 * 24 * time.Hour},
		{"1H30M", 90 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{"", "forever", "h", "0s", "0m0s", "abc def"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
