// Package report implements the aggregation core of the ledger.
//
// All functions are pure: they consume a read-only snapshot of the ledger
// (plain slices of models) plus scalar parameters and return freshly
// allocated derived records. They never touch the database and never
// mutate their inputs. Callers that need interactivity should memoize
// results keyed by (ledger version, period, range).
package report

import (
	"errors"
	"time"
)

var (
	// ErrCorruptHierarchy is returned when a category parent chain
	// contains a cycle. The whole operation fails, no partial report is
	// returned.
	ErrCorruptHierarchy = errors.New("the category hierarchy contains a cycle")

	// ErrKindMismatch is returned when a category has a different kind
	// than its parent.
	ErrKindMismatch = errors.New("a category must have the same kind as its parent")
)

// UnknownCategory is the label transactions referencing a missing category
// are aggregated under. Stale references degrade to this sentinel instead
// of failing the report, ledgers may contain historical data referencing
// deleted categories.
const UnknownCategory = "Unknown"

// Range is an inclusive date range used to restrict aggregation.
type Range struct {
	Start time.Time
	End   time.Time
}

// DefaultRange returns the range from January 1 of now's year up to now.
//
// This is a policy choice, not a constraint of the aggregation functions:
// callers are free to pass any range they want.
func DefaultRange(now time.Time) Range {
	return Range{
		Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// Contains reports whether t lies within the range, boundaries included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
