package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockMinutes(t *testing.T) {
	tests := []struct {
		clock    string
		expected int
		ok       bool
	}{
		{"08:00", 480, true},
		{"08:30:00", 510, true},
		{"08:30:59", 510, true},
		{"00:00", 0, true},
		{"25:10:00", 1510, true},
		{" 07:05 ", 425, true},
		{"", 0, false},
		{"8", 0, false},
		{"ab:cd", 0, false},
		{"08:xx:00", 0, false},
		{"08:00:00:00", 0, false},
		{"-1:00", 0, false},
	}

	for _, test := range tests {
		t.Run(test.clock, func(t *testing.T) {
			minutes, ok := ParseClockMinutes(test.clock)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.expected, minutes)
		})
	}
}

func TestParseClockSeconds(t *testing.T) {
	seconds, ok := ParseClockSeconds("08:30:59")
	assert.True(t, ok)
	assert.Equal(t, 30659, seconds)

	_, ok = ParseClockSeconds("08")
	assert.False(t, ok)
}

func TestFormatClockMinutes(t *testing.T) {
	assert.Equal(t, "08:05", FormatClockMinutes(485))
	assert.Equal(t, "00:00", FormatClockMinutes(0))
	assert.Equal(t, "25:10", FormatClockMinutes(1510))
}

func TestNormaliseServiceDate(t *testing.T) {
	date, err := NormaliseServiceDate("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", date)

	date, err = NormaliseServiceDate("20240501")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", date)

	_, err = NormaliseServiceDate("01/05/2024")
	assert.Error(t, err)

	_, err = NormaliseServiceDate("")
	assert.Error(t, err)
}
