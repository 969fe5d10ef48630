package schedule

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate is the opt-in strict pass over an already-parsed Schedule.
// Parse stays lenient so hydration never fails against third-party data;
// callers with stronger data-quality needs run Validate afterwards and
// decide what to do with the issues.
//
// Cron expressions get a real grammar check here (standard five-field
// form), unlike the classifier's space-and-digit heuristic.
func Validate(s Schedule) []Issue {
	var issues []Issue

	switch s.Type {
	case TypeAdvanced:
		adv := s.Advanced
		if adv.Hour != nil && (*adv.Hour < 0 || *adv.Hour > 23) {
			issues = append(issues, Issue{Field: "hour", Value: *adv.Hour, Reason: "out of range 0-23"})
		}
		if adv.Minute != nil && (*adv.Minute < 0 || *adv.Minute > 59) {
			issues = append(issues, Issue{Field: "minute", Value: *adv.Minute, Reason: "out of range 0-59"})
		}
		for _, d := range adv.DaysOfWeek {
			if d < 1 || d > 7 {
				issues = append(issues, Issue{Field: "daysOfWeek", Value: d, Reason: "out of range 1-7"})
			}
		}
		if adv.RawPayload != nil {
			issues = append(issues, Issue{Field: keyAdvancedJSON, Reason: "payload could not be decoded"})
		}
	case TypeCron:
		if _, err := cron.ParseStandard(s.Cron.Expression); err != nil {
			issues = append(issues, Issue{
				Field:  keyExpression,
				Value:  s.Cron.Expression,
				Reason: fmt.Sprintf("not a valid cron expression: %v", err),
			})
		}
	case TypeSimple:
		if kw := s.Simple.Keyword; kw != KeywordManual && kw != KeywordOnce {
			issues = append(issues, Issue{Field: keyExpression, Value: kw, Reason: "unrecognized keyword"})
		}
	}

	return issues
}
