package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSignedDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"00:00:00", 0},
		{"0:05:30", 5*time.Minute + 30*time.Second},
		{"01:30:00", 90 * time.Minute},
		{"12:00:01", 12*time.Hour + time.Second},
		{"-00:10:00", -10 * time.Minute},
		{"-1:00:30", -(time.Hour + 30*time.Second)},
		{" 00:45:00 ", 45 * time.Minute}, // surrounding whitespace is tolerated
		{"00:99:00", 99 * time.Minute},   // overflowing fields carry over
	}

	for _, tt := range tests {
		got, err := ParseSignedDuration(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseSignedDurationRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{
		"",
		"abc",
		"10:00",
		"1:2:3",
		"100:00:00",
		"00:00:00:00",
		"+00:10:00",
		"00-10-00",
	} {
		_, err := ParseSignedDuration(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "00:00:00"},
		{5*time.Minute + 30*time.Second, "00:05:30"},
		{11 * time.Minute, "00:11:00"},
		{90 * time.Minute, "01:30:00"},
		{-10 * time.Minute, "-00:10:00"},
		{123 * time.Hour, "123:00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.input))
	}
}

func TestDurationRoundTrip(t *testing.T) {
	// format -> parse must return the original value for every signed
	// duration expressible as HH:mm:ss
	for hours := 0; hours <= 99; hours += 7 {
		for _, minSec := range []time.Duration{0, 59 * time.Second, 59 * time.Minute, 59*time.Minute + 59*time.Second} {
			for _, sign := range []time.Duration{1, -1} {
				d := sign * (time.Duration(hours)*time.Hour + minSec)
				parsed, err := ParseSignedDuration(FormatDuration(d))
				require.NoError(t, err)
				assert.Equal(t, d, parsed, "duration %v", d)
			}
		}
	}
}

func TestClampNonNegative(t *testing.T) {
	assert.Equal(t, 5, ClampNonNegative(5))
	assert.Equal(t, 0, ClampNonNegative(0))
	assert.Equal(t, 0, ClampNonNegative(-3))
}

func TestAccumulateDuration(t *testing.T) {
	assert.Equal(t, 15*time.Minute, AccumulateDuration(10*time.Minute, 5*time.Minute))
	assert.Equal(t, 5*time.Minute, AccumulateDuration(10*time.Minute, -5*time.Minute))
	assert.Equal(t, time.Duration(0), AccumulateDuration(10*time.Minute, -15*time.Minute))
	assert.Equal(t, time.Duration(0), AccumulateDuration(0, -time.Hour))
}
