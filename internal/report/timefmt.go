package report

import "time"

// TimeLayout is ISO-8601 in UTC with a literal Z
const TimeLayout = "2006-01-02T15:04:05Z"

// FormatCreationDate renders Unix seconds as UTC
func FormatCreationDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(TimeLayout)
}
