package format

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	timeLayout = "03:04 PM"
	dateLayout = "01/02/2006"
)

// RelativeTimestamp renders ts relative to now: time of day for today,
// "Yesterday <time>" for the previous calendar day, "<date> <time>" otherwise.
// The zero time renders as "".
func RelativeTimestamp(ts, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	ts = ts.In(now.Location())
	clock := ts.Format(timeLayout)

	y1, m1, d1 := ts.Date()
	today := time.Date(y1, m1, d1, 0, 0, 0, 0, now.Location())
	y2, m2, d2 := now.Date()
	current := time.Date(y2, m2, d2, 0, 0, 0, 0, now.Location())

	switch {
	case today.Equal(current):
		return clock
	case today.Equal(current.AddDate(0, 0, -1)):
		return "Yesterday " + clock
	default:
		return ts.Format(dateLayout) + " " + clock
	}
}

// RelativeTimestampString is RelativeTimestamp for RFC3339 text. Empty or
// unparseable input renders as "".
func RelativeTimestampString(s string, now time.Time) string {
	if s == "" {
		return ""
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return ""
	}
	return RelativeTimestamp(ts, now)
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FileSize renders a byte count in the largest unit whose value is at least 1,
// rounded to two decimals.
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	const k = 1024
	v := float64(bytes)
	i := 0
	for v >= k && i < len(sizeUnits)-1 {
		v /= k
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// flagOffset moves 'A'..'Z' onto the regional indicator symbols.
const flagOffset = 127397

// CountryFlag returns the flag emoji for a two-letter ISO country code.
// Anything other than exactly two ASCII letters yields "".
func CountryFlag(code string) string {
	if len(code) != 2 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < 2; i++ {
		c := code[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return ""
		}
		sb.WriteRune(rune(c) + flagOffset)
	}
	return sb.String()
}

// Date renders a calendar date for list rows.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// Intake renders an intake season and year, e.g. "Fall 2026".
func Intake(season string, year int) string {
	switch {
	case season == "" && year == 0:
		return ""
	case year == 0:
		return season
	case season == "":
		return strconv.Itoa(year)
	}
	return season + " " + strconv.Itoa(year)
}
