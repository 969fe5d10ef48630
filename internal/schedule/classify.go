package schedule

import (
	"encoding/json"
	"strings"
	"unicode"
)

// DetermineType picks the variant for a raw record. It tolerates any
// mapping, including nil and records with none of the schedule keys, and
// never fails; the fallback is always TypeSimple.
//
// The three encodings are not mutually exclusive in arbitrary input, so the
// order below is load-bearing: advanced JSON wins over everything, the two
// literal keywords win over the cron heuristic, and anything unrecognized
// degrades to simple.
func DetermineType(raw map[string]any) Type {
	if truthy(raw[keyAdvancedJSON]) {
		return TypeAdvanced
	}

	expr := asString(raw[keyExpression])
	if expr == "" {
		return TypeSimple
	}
	if expr == KeywordManual || expr == KeywordOnce {
		return TypeSimple
	}
	if looksLikeCron(expr) {
		return TypeCron
	}
	return TypeSimple
}

// looksLikeCron is a heuristic, not a grammar check: at least one space and
// at least one digit. Known to misfire on strings like "run at 5"; kept
// until the upstream expression vocabulary is confirmed. Strict callers can
// run Validate, which parses the expression for real.
func looksLikeCron(expr string) bool {
	if !strings.Contains(expr, " ") {
		return false
	}
	return strings.ContainsFunc(expr, unicode.IsDigit)
}

// HasScheduleData reports whether the record carries any of the schedule
// keys at all. Owning entities that treat "no schedule data" as nil rather
// than a manual default gate on this before calling Parse.
func HasScheduleData(raw map[string]any) bool {
	for _, k := range []string{keyAdvancedJSON, keyExpression, keyStartDate} {
		if _, ok := raw[k]; ok {
			return true
		}
	}
	return false
}

// truthy reports whether an advanced payload is worth parsing: present,
// non-null, and non-empty for the shapes the API actually sends. Scalar
// zero values (false, 0) count as absent, matching upstream truthiness.
func truthy(v any) bool {
	switch p := v.(type) {
	case nil:
		return false
	case bool:
		return p
	case string:
		return p != ""
	case map[string]any:
		return len(p) > 0
	case float64:
		return p != 0
	case int:
		return p != 0
	case int64:
		return p != 0
	case json.Number:
		f, err := p.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}
