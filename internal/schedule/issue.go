package schedule

import "fmt"

// Issue is a structured, non-fatal problem found while normalizing or
// validating a schedule. Parsing never fails outright — the platform owns
// the data shape, not us — so problems are reported alongside the value and
// the caller decides whether to reject or accept with a warning.
type Issue struct {
	Field  string
	Value  any
	Reason string
}

func (i Issue) String() string {
	if i.Value == nil {
		return fmt.Sprintf("%s: %s", i.Field, i.Reason)
	}
	return fmt.Sprintf("%s: %s (got %v)", i.Field, i.Reason, i.Value)
}
