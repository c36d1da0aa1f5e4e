// Package iso8601 implements the ISO 8601 duration and timestamp encodings
// used on the xAPI wire.
package iso8601

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrFormat is wrapped by every parse failure in this package.
var ErrFormat = errors.New("iso8601: bad format")

// Duration grammar: P[nD]T[nH][nM][nS]. Years, months and weeks are
// rejected; durations are calendar-free time deltas. A fractional part is
// permitted only on the last unit present.
var durationRe = regexp.MustCompile(`^P(?:(\d+(?:[.,]\d+)?)D)?(?:T(?:(\d+(?:[.,]\d+)?)H)?(?:(\d+(?:[.,]\d+)?)M)?(?:(\d+(?:[.,]\d+)?)S)?)?$`)

const day = 24 * time.Hour

// ParseDuration decodes an ISO 8601 duration string into a time delta.
func ParseDuration(s string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("duration %q: %w", s, ErrFormat)
	}
	parts := m[1:] // D, H, M, S
	last := -1
	for i, p := range parts {
		if p != "" {
			last = i
		}
	}
	if last < 0 {
		return 0, fmt.Errorf("duration %q: no components: %w", s, ErrFormat)
	}
	units := []time.Duration{day, time.Hour, time.Minute, time.Second}
	var total time.Duration
	for i, p := range parts {
		if p == "" {
			continue
		}
		frac := strings.ContainsAny(p, ".,")
		if frac && i != last {
			return 0, fmt.Errorf("duration %q: fractional %c before final unit: %w", s, "DHMS"[i], ErrFormat)
		}
		intPart, fracPart := p, ""
		if j := strings.IndexAny(p, ".,"); j >= 0 {
			intPart, fracPart = p[:j], p[j+1:]
		}
		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("duration %q: %w", s, ErrFormat)
		}
		total += time.Duration(n) * units[i]
		if fracPart != "" {
			f, err := strconv.ParseFloat("0."+fracPart, 64)
			if err != nil {
				return 0, fmt.Errorf("duration %q: %w", s, ErrFormat)
			}
			total += time.Duration(math.Round(f * float64(units[i])))
		}
	}
	return total, nil
}

// FormatDuration renders a time delta as the minimal ISO 8601 form: always a
// PT body, two-digit hours and minutes when any larger unit is present, and
// fractional seconds with trailing zeros trimmed (microsecond precision).
func FormatDuration(d time.Duration) string {
	var b strings.Builder
	if d < 0 {
		b.WriteString("-")
		d = -d
	}
	b.WriteString("P")
	days := d / day
	d -= days * day
	hours := d / time.Hour
	d -= hours * time.Hour
	mins := d / time.Minute
	d -= mins * time.Minute
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	b.WriteString("T")
	if hours > 0 || days > 0 {
		fmt.Fprintf(&b, "%02dH", hours)
	}
	if mins > 0 || hours > 0 || days > 0 {
		fmt.Fprintf(&b, "%02dM", mins)
	}
	micros := d.Microseconds()
	whole := micros / 1e6
	frac := micros % 1e6
	if frac == 0 {
		fmt.Fprintf(&b, "%02dS", whole)
	} else {
		fs := strings.TrimRight(fmt.Sprintf("%06d", frac), "0")
		fmt.Fprintf(&b, "%02d.%sS", whole, fs)
	}
	return b.String()
}

// Timestamp layouts tried in order. All carry a zone; a naive timestamp has
// nothing to match and is rejected.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
}

// ParseTimestamp decodes an ISO 8601 instant. The zone designator is
// mandatory.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q (zone required): %w", s, ErrFormat)
}

// FormatTimestamp renders an instant as ISO 8601 with its zone offset.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
