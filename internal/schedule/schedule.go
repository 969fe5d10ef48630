// Package schedule normalizes the three schedule encodings the platform API
// returns on datasets and jobs (structured "advanced" JSON, cron expressions,
// simple keywords) into one value type, and renders that value for display.
//
// Everything in this package is a pure function over the raw record; nothing
// here performs I/O or mutates its input.
package schedule

import (
	"encoding/json"
	"time"
)

// Raw record keys as the platform API spells them.
const (
	keyAdvancedJSON = "advancedScheduleJson"
	keyExpression   = "scheduleExpression"
	keyStartDate    = "scheduleStartDate"
	keyActive       = "isActive"
)

// Type identifies which of the three encodings produced a Schedule.
type Type string

const (
	TypeAdvanced Type = "ADVANCED"
	TypeCron     Type = "CRON"
	TypeSimple   Type = "SIMPLE"
)

// Frequency is the semantic cadence, independent of the encoding that
// carried it. Values the platform has not taught us yet come through as
// FreqCustom rather than failing.
type Frequency string

const (
	FreqManual  Frequency = "MANUAL"
	FreqOnce    Frequency = "ONCE"
	FreqHourly  Frequency = "HOURLY"
	FreqDaily   Frequency = "DAILY"
	FreqWeekly  Frequency = "WEEKLY"
	FreqMonthly Frequency = "MONTHLY"
	FreqCron    Frequency = "CRON"
	FreqCustom  Frequency = "CUSTOM"
)

// knownFrequencies are the advanced-payload frequencies we recognize.
var knownFrequencies = map[Frequency]bool{
	FreqManual:  true,
	FreqOnce:    true,
	FreqHourly:  true,
	FreqDaily:   true,
	FreqWeekly:  true,
	FreqMonthly: true,
}

// StartDate keeps scheduleStartDate without losing data: either the parsed
// timestamp, or the verbatim string when it is not ISO-8601.
type StartDate struct {
	Time   time.Time
	Raw    string
	Parsed bool
}

// IsZero reports whether the record carried no start date at all.
func (d StartDate) IsZero() bool {
	return !d.Parsed && d.Raw == ""
}

func (d StartDate) String() string {
	if d.Parsed {
		return d.Time.Format("2006-01-02 15:04")
	}
	return d.Raw
}

// MarshalJSON emits the parsed timestamp as RFC3339, the verbatim string
// when unparsed, and null when absent.
func (d StartDate) MarshalJSON() ([]byte, error) {
	switch {
	case d.Parsed:
		return json.Marshal(d.Time.Format(time.RFC3339))
	case d.Raw != "":
		return json.Marshal(d.Raw)
	default:
		return []byte("null"), nil
	}
}

// Advanced carries the fields of the structured advancedScheduleJson payload.
// Pointer fields distinguish "absent" from zero.
type Advanced struct {
	DaysOfWeek []int   `json:"day_of_week,omitempty"` // Monday=1 .. Sunday=7
	Hour       *int    `json:"hour,omitempty"`
	Minute     *int    `json:"minute,omitempty"`
	Interval   *int    `json:"interval,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`
	RawPayload *string `json:"-"` // verbatim payload kept when it fails to decode
}

// Cron carries a cron-style scheduleExpression, stored verbatim. No field
// decomposition happens here; see Validate for the optional grammar check.
type Cron struct {
	Expression string `json:"cron_expression"`
}

// Simple carries a keyword expression. Unrecognized keywords pass through
// verbatim so that a growing upstream vocabulary does not break us.
type Simple struct {
	Keyword string `json:"keyword"`
}

const (
	KeywordManual = "MANUAL"
	KeywordOnce   = "ONCE"
)

// Schedule is the normalized value. It is a closed tagged union: Type names
// the variant and exactly one of Advanced/Cron/Simple is non-nil, always the
// one matching Type. Values are immutable once built; re-parse the raw
// record to get a different one.
type Schedule struct {
	Type      Type           `json:"schedule_type"`
	Frequency Frequency      `json:"frequency"`
	StartDate StartDate      `json:"start_date"`
	Active    bool           `json:"is_active"`
	Raw       map[string]any `json:"-"`

	Advanced *Advanced `json:"advanced,omitempty"`
	Cron     *Cron     `json:"cron,omitempty"`
	Simple   *Simple   `json:"simple,omitempty"`
}
