package gridfmt

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// HumanTime renders unix seconds as a UTC wall clock time.
func HumanTime(v float64) string {
	return unixTime(v).Format(time.TimeOnly)
}

// HumanDate renders unix seconds as a UTC calendar date.
func HumanDate(v float64) string {
	return unixTime(v).Format(time.DateOnly)
}

// HumanTimeSpan renders a duration in seconds as a coarse phrase such as
// "3 hours". Spans under a second render as "now".
func HumanTimeSpan(v float64) string {
	var start time.Time
	end := start.Add(time.Duration(v * float64(time.Second)))
	return strings.TrimSpace(humanize.RelTime(start, end, "", ""))
}

// HumanFormatters returns options wiring HumanTime, HumanDate and
// HumanTimeSpan into a [Formatter].
func HumanFormatters() []FormatterOption {
	return []FormatterOption{
		WithTime(HumanTime),
		WithDate(HumanDate),
		WithTimeSpan(HumanTimeSpan),
	}
}

func unixTime(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
}
