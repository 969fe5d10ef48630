package schedule

import (
	"strings"
	"time"
)

// Layouts the platform has been observed to send for scheduleStartDate.
var startDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseStartDate attempts an ISO-8601 parse and keeps the verbatim string
// when none of the layouts match. It never fails and never drops data.
func ParseStartDate(s string) StartDate {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return StartDate{}
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return StartDate{Time: t, Parsed: true}
		}
	}
	return StartDate{Raw: s}
}
