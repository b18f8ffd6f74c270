package helper_util

import (
	"math"
	"time"
)

func ParseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// ProcessingHours returns the elapsed wall-clock time between submission and
// decision in hours, rounded to one decimal.
func ProcessingHours(submittedAt, decidedAt time.Time) float64 {
	hours := decidedAt.Sub(submittedAt).Hours()
	return math.Round(hours*10) / 10
}
