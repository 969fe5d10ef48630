package schedule

import (
	"encoding/json"
	"strings"
)

// Parse normalizes a raw platform record into a Schedule, classifying it
// first and then running the matching variant parser. It is deliberately
// lenient: malformed pieces are coerced where possible and reported as
// Issues where not, and no input makes it fail. The returned value is
// complete even when issues are present.
func Parse(raw map[string]any) (Schedule, []Issue) {
	s := Schedule{
		Type:      DetermineType(raw),
		StartDate: ParseStartDate(asString(raw[keyStartDate])),
		Active:    asBool(raw[keyActive], true),
		Raw:       raw,
	}

	var issues []Issue
	switch s.Type {
	case TypeAdvanced:
		s.Advanced, s.Frequency, issues = parseAdvanced(raw[keyAdvancedJSON])
	case TypeCron:
		s.Cron = &Cron{Expression: asString(raw[keyExpression])}
		s.Frequency = FreqCron
	case TypeSimple:
		s.Simple, s.Frequency = parseSimple(asString(raw[keyExpression]))
	}
	return s, issues
}

// parseAdvanced accepts the payload either as an already-decoded mapping or
// as a JSON-encoded string. A string that fails to decode is retained
// verbatim on the payload rather than failing the parse.
func parseAdvanced(payload any) (*Advanced, Frequency, []Issue) {
	var issues []Issue
	var fields map[string]any

	switch p := payload.(type) {
	case map[string]any:
		fields = p
	case string:
		if err := json.Unmarshal([]byte(p), &fields); err != nil {
			kept := p
			issues = append(issues, Issue{
				Field:  keyAdvancedJSON,
				Reason: "payload is not valid JSON; kept verbatim",
			})
			return &Advanced{RawPayload: &kept}, FreqCustom, issues
		}
	default:
		issues = append(issues, Issue{
			Field:  keyAdvancedJSON,
			Value:  payload,
			Reason: "unexpected payload type",
		})
		return &Advanced{}, FreqCustom, issues
	}

	adv := &Advanced{Timezone: asString(fields["timezone"])}

	days, dropped := asIntSlice(fields["daysOfWeek"])
	adv.DaysOfWeek = days
	for _, d := range dropped {
		issues = append(issues, Issue{Field: "daysOfWeek", Value: d, Reason: "not a weekday ordinal; dropped"})
	}

	if v, ok := fields["hour"]; ok {
		if h, ok := asInt(v); ok {
			adv.Hour = &h
			if h < 0 || h > 23 {
				issues = append(issues, Issue{Field: "hour", Value: h, Reason: "out of range 0-23"})
			}
		} else {
			issues = append(issues, Issue{Field: "hour", Value: v, Reason: "not an integer; dropped"})
		}
	}
	if v, ok := fields["minute"]; ok {
		if m, ok := asInt(v); ok {
			adv.Minute = &m
			if m < 0 || m > 59 {
				issues = append(issues, Issue{Field: "minute", Value: m, Reason: "out of range 0-59"})
			}
		} else {
			issues = append(issues, Issue{Field: "minute", Value: v, Reason: "not an integer; dropped"})
		}
	}
	if v, ok := fields["interval"]; ok {
		if n, ok := asInt(v); ok && n > 0 {
			adv.Interval = &n
		} else {
			issues = append(issues, Issue{Field: "interval", Value: v, Reason: "not a positive integer; dropped"})
		}
	}

	return adv, advancedFrequency(asString(fields["frequency"])), issues
}

// advancedFrequency uppercases the payload frequency and lets unknown
// values through as CUSTOM, since the upstream vocabulary grows on its own
// clock.
func advancedFrequency(s string) Frequency {
	if s == "" {
		return FreqCustom
	}
	f := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	if knownFrequencies[f] {
		return f
	}
	return FreqCustom
}

// parseSimple maps the literal expression to a keyword. A record with no
// relevant key at all defaults to manual; unrecognized keywords pass
// through verbatim and behave as manual.
func parseSimple(expr string) (*Simple, Frequency) {
	switch expr {
	case "":
		return &Simple{Keyword: KeywordManual}, FreqManual
	case KeywordOnce:
		return &Simple{Keyword: KeywordOnce}, FreqOnce
	case KeywordManual:
		return &Simple{Keyword: KeywordManual}, FreqManual
	default:
		return &Simple{Keyword: expr}, FreqManual
	}
}
