package iso8601

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "PT00S"},
		{time.Second, "PT01S"},
		{50 * time.Millisecond, "PT00.05S"},
		{60*time.Second + 500*time.Millisecond, "PT01M00.5S"},
		{2*time.Hour + time.Minute + time.Second + 500*time.Millisecond, "PT02H01M01.5S"},
		{60 * time.Hour, "P2DT12H00M00S"},
		{25 * time.Hour, "P1DT01H00M00S"},
		{90 * time.Second, "PT01M30S"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDuration(c.in), "duration %v", c.in)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"PT00S", 0},
		{"PT1S", time.Second},
		{"PT00.05S", 50 * time.Millisecond},
		{"PT01M00.5S", 60*time.Second + 500*time.Millisecond},
		{"PT02H01M01.5S", 2*time.Hour + time.Minute + time.Second + 500*time.Millisecond},
		{"P2DT12H00M00S", 60 * time.Hour},
		{"PT1,5S", 1500 * time.Millisecond},
		{"P1DT", 24 * time.Hour},
	}
	for _, c := range cases {
		got, err := ParseDuration(c.in)
		require.NoError(t, err, "duration %q", c.in)
		assert.Equal(t, c.want, got, "duration %q", c.in)
	}
}

func TestParseDurationRoundTrip(t *testing.T) {
	for _, d := range []time.Duration{
		0,
		time.Second,
		50 * time.Millisecond,
		60*time.Second + 500*time.Millisecond,
		2*time.Hour + time.Minute + time.Second + 500*time.Millisecond,
		60 * time.Hour,
	} {
		got, err := ParseDuration(FormatDuration(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestParseDurationRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"P",
		"PT",
		"1H30M",
		"P1Y",
		"P1M",          // months are calendar units
		"PT1.5H30M",    // fractional middle unit
		"PT1.5M30S",    // fractional middle unit
		"P1.5DT1H",     // fractional middle unit
		"PT5X",
		"banana",
	} {
		_, err := ParseDuration(in)
		assert.Error(t, err, "duration %q", in)
		assert.ErrorIs(t, err, ErrFormat, "duration %q", in)
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2024-03-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), got)

	got, err = ParseTimestamp("2024-03-01T10:30:00.25-05:00")
	require.NoError(t, err)
	assert.Equal(t, 250*int(time.Millisecond), got.Nanosecond())
	_, offset := got.Zone()
	assert.Equal(t, -5*3600, offset)

	got, err = ParseTimestamp("2024-03-01T10:30:00+0200")
	require.NoError(t, err)
	_, offset = got.Zone()
	assert.Equal(t, 2*3600, offset)
}

func TestParseTimestampRequiresZone(t *testing.T) {
	for _, in := range []string{
		"2024-03-01T10:30:00",
		"2024-03-01",
		"not a time",
	} {
		_, err := ParseTimestamp(in)
		assert.ErrorIs(t, err, ErrFormat, "timestamp %q", in)
	}
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	in := time.Date(2024, 3, 1, 10, 30, 0, 250000000, time.UTC)
	got, err := ParseTimestamp(FormatTimestamp(in))
	require.NoError(t, err)
	assert.True(t, in.Equal(got))
}
