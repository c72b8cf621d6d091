package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCutoff = Cutoff{Hour: 18, Minute: 30}

func timeAt(t *testing.T, value string) *time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return &parsed
}

func TestParseCutoff(t *testing.T) {
	cutoff, err := ParseCutoff("18:30")
	require.NoError(t, err)
	assert.Equal(t, 18, cutoff.Hour)
	assert.Equal(t, 30, cutoff.Minute)

	_, err = ParseCutoff("25:00")
	assert.Error(t, err)

	_, err = ParseCutoff("half past six")
	assert.Error(t, err)
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{60, "1:00"},
		{525, "8:45"},
		{615, "10:15"},
		{-1, "-"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatMinutes(c.minutes))
	}
}

func TestComputeHours_TotalDuration(t *testing.T) {
	clockIn := timeAt(t, "2024-03-11T09:00:00Z")
	clockOut := timeAt(t, "2024-03-11T17:45:00Z")

	total, overtime := ComputeHours(clockIn, clockOut, testCutoff, time.UTC)

	assert.Equal(t, "8:45", total)
	assert.Equal(t, "0:00", overtime)
}

func TestComputeHours_FloorsPartialMinutes(t *testing.T) {
	clockIn := timeAt(t, "2024-03-11T09:00:00Z")
	clockOut := timeAt(t, "2024-03-11T09:01:59Z")

	total, _ := ComputeHours(clockIn, clockOut, testCutoff, time.UTC)

	assert.Equal(t, "0:01", total)
}

func TestComputeHours_MissingEndpoints(t *testing.T) {
	clockIn := timeAt(t, "2024-03-11T09:00:00Z")

	total, overtime := ComputeHours(clockIn, nil, testCutoff, time.UTC)
	assert.Equal(t, "-", total)
	assert.Equal(t, "-", overtime)

	total, overtime = ComputeHours(nil, nil, testCutoff, time.UTC)
	assert.Equal(t, "-", total)
	assert.Equal(t, "-", overtime)
}

func TestComputeHours_NegativeDuration(t *testing.T) {
	clockIn := timeAt(t, "2024-03-11T17:00:00Z")
	clockOut := timeAt(t, "2024-03-11T09:00:00Z")

	total, overtime := ComputeHours(clockIn, clockOut, testCutoff, time.UTC)

	assert.Equal(t, "-", total)
	assert.Equal(t, "-", overtime)
}

func TestComputeHours_OvertimePastCutoff(t *testing.T) {
	clockIn := timeAt(t, "2024-03-11T09:00:00Z")
	clockOut := timeAt(t, "2024-03-11T19:10:00Z")

	_, overtime := ComputeHours(clockIn, clockOut, testCutoff, time.UTC)

	assert.Equal(t, "0:40", overtime)
}

func TestComputeHours_NoOvertimeBeforeCutoff(t *testing.T) {
	clockIn := timeAt(t, "2024-03-11T09:00:00Z")
	clockOut := timeAt(t, "2024-03-11T18:00:00Z")

	_, overtime := ComputeHours(clockIn, clockOut, testCutoff, time.UTC)

	assert.Equal(t, "0:00", overtime)
}

func TestComputeHours_CutoffUsesLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)

	// 12:10 UTC is 19:10 local, 40 minutes past an 18:30 local cutoff.
	clockIn := timeAt(t, "2024-03-11T02:00:00Z")
	clockOut := timeAt(t, "2024-03-11T12:10:00Z")

	_, overtime := ComputeHours(clockIn, clockOut, testCutoff, loc)

	assert.Equal(t, "0:40", overtime)
}
