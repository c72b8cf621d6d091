package attendance

import (
	"fmt"
	"time"
)

// MetricUnavailable is reported when a duration cannot be computed: a missing
// clock-in or clock-out, or a clock-out earlier than the clock-in. It is a
// sentinel, deliberately not "0:00".
const MetricUnavailable = "-"

// Cutoff is the local time of day beyond which worked minutes count as
// overtime. The same cutoff applies to every record; no call site carries its
// own policy.
type Cutoff struct {
	Hour   int
	Minute int
}

// ParseCutoff parses an HH:MM cutoff string.
func ParseCutoff(s string) (Cutoff, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Cutoff{}, fmt.Errorf("invalid overtime cutoff %q: %w", s, err)
	}
	return Cutoff{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// FormatMinutes renders whole minutes as an H:MM duration, e.g. 525 -> "8:45".
// Hours are not zero-padded, minutes are.
func FormatMinutes(totalMinutes int) string {
	if totalMinutes < 0 {
		return MetricUnavailable
	}
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}

// ComputeHours derives the worked duration and the overtime past the cutoff,
// both formatted H:MM with minutes floored. Either value is MetricUnavailable
// when the pair of timestamps cannot support it.
func ComputeHours(clockIn, clockOut *time.Time, cutoff Cutoff, loc *time.Location) (total, overtime string) {
	if clockIn == nil || clockOut == nil {
		return MetricUnavailable, MetricUnavailable
	}

	workMinutes, overtimeMinutes, ok := computeMinutes(*clockIn, *clockOut, cutoff, loc)
	if !ok {
		return MetricUnavailable, MetricUnavailable
	}

	return FormatMinutes(workMinutes), FormatMinutes(overtimeMinutes)
}

// computeMinutes floors both durations to whole minutes. ok is false when the
// clock-out precedes the clock-in (clock skew or bad data).
func computeMinutes(clockIn, clockOut time.Time, cutoff Cutoff, loc *time.Location) (workMinutes, overtimeMinutes int, ok bool) {
	elapsed := clockOut.Sub(clockIn)
	if elapsed < 0 {
		return 0, 0, false
	}
	workMinutes = int(elapsed.Minutes())

	// Overtime is measured against the cutoff on the clock-out's local day.
	outLocal := clockOut.In(loc)
	cutoffAt := time.Date(
		outLocal.Year(), outLocal.Month(), outLocal.Day(),
		cutoff.Hour, cutoff.Minute, 0, 0,
		loc,
	)

	past := outLocal.Sub(cutoffAt)
	if past > 0 {
		overtimeMinutes = int(past.Minutes())
	}

	return workMinutes, overtimeMinutes, true
}
