package schedule

import (
	"fmt"
	"strings"
)

var weekdayNames = map[int]string{
	1: "Monday",
	2: "Tuesday",
	3: "Wednesday",
	4: "Thursday",
	5: "Friday",
	6: "Saturday",
	7: "Sunday",
}

// Describe renders a Schedule for display. It is total over the three
// variants: absent fields are omitted from the string, never rendered as a
// null placeholder, and no well-formed Schedule produces an error.
func Describe(s Schedule) string {
	switch s.Type {
	case TypeCron:
		return fmt.Sprintf("Runs via cron expression '%s'", s.Cron.Expression)
	case TypeSimple:
		return describeSimple(s)
	case TypeAdvanced:
		return describeAdvanced(s)
	default:
		return "Unknown schedule"
	}
}

func describeSimple(s Schedule) string {
	if s.Frequency == FreqOnce {
		if s.StartDate.Parsed {
			return fmt.Sprintf("Runs once on %s", s.StartDate.String())
		}
		return "Runs once"
	}
	return "Manual trigger only"
}

func describeAdvanced(s Schedule) string {
	adv := s.Advanced
	switch s.Frequency {
	case FreqHourly:
		interval := 1
		if adv.Interval != nil {
			interval = *adv.Interval
		}
		if adv.Minute != nil {
			return fmt.Sprintf("Every %d hour(s) at minute %d", interval, *adv.Minute)
		}
		return fmt.Sprintf("Every %d hour(s)", interval)
	case FreqDaily:
		if adv.Hour != nil {
			out := fmt.Sprintf("Daily at %s", clock(adv.Hour, adv.Minute))
			if adv.Timezone != "" {
				out += " " + adv.Timezone
			}
			return out
		}
		return "Daily"
	case FreqWeekly:
		out := "Weekly"
		if len(adv.DaysOfWeek) > 0 {
			out += " on " + weekdayList(adv.DaysOfWeek)
		}
		if adv.Hour != nil {
			out += " at " + clock(adv.Hour, adv.Minute)
		}
		return out
	default:
		return describeAdvancedGeneric(adv)
	}
}

// describeAdvancedGeneric lists whichever fields are present, for
// frequencies without a dedicated template (monthly, custom, unknown).
func describeAdvancedGeneric(adv *Advanced) string {
	var parts []string
	if adv.Interval != nil {
		parts = append(parts, fmt.Sprintf("every %d", *adv.Interval))
	}
	if len(adv.DaysOfWeek) > 0 {
		parts = append(parts, "on "+weekdayList(adv.DaysOfWeek))
	}
	switch {
	case adv.Hour != nil:
		parts = append(parts, "at "+clock(adv.Hour, adv.Minute))
	case adv.Minute != nil:
		parts = append(parts, fmt.Sprintf("at minute %d", *adv.Minute))
	}
	if adv.Timezone != "" {
		parts = append(parts, adv.Timezone)
	}
	if len(parts) == 0 {
		return "Custom schedule"
	}
	return "Custom schedule: " + strings.Join(parts, ", ")
}

// clock renders HH:MM with the minute zero-padded and defaulted to 0.
func clock(hour, minute *int) string {
	m := 0
	if minute != nil {
		m = *minute
	}
	return fmt.Sprintf("%d:%02d", *hour, m)
}

func weekdayList(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if name, ok := weekdayNames[d]; ok {
			names = append(names, name)
		} else {
			names = append(names, fmt.Sprintf("day %d", d))
		}
	}
	return strings.Join(names, ", ")
}
