// Package ordering is the single sort policy for every list of open tasks:
// urgency rank first, then earliest deadline. Equal tasks keep their input order.
package ordering

import (
	"cmp"
	"slices"
	"time"

	"github.com/josephgoksu/dayplan/internal/urgency"
	"github.com/josephgoksu/dayplan/models"
)

// Compare returns -1, 0 or 1. Tiers are computed at call time from now.
func Compare(a, b models.Task, now time.Time) int {
	if c := cmp.Compare(urgency.Rank(urgency.Classify(a, now)), urgency.Rank(urgency.Classify(b, now))); c != 0 {
		return c
	}
	return compareDeadlines(a, b, now.Location())
}

// Unparseable deadlines sort after parseable ones.
func compareDeadlines(a, b models.Task, loc *time.Location) int {
	da, errA := a.DeadlineTime(loc)
	db, errB := b.DeadlineTime(loc)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return da.Compare(db)
}

// Sort orders tasks in place with a stable sort.
func Sort(tasks []models.Task, now time.Time) {
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		return Compare(a, b, now)
	})
}

// Sorted returns a sorted copy and leaves tasks untouched.
func Sorted(tasks []models.Task, now time.Time) []models.Task {
	out := slices.Clone(tasks)
	Sort(out, now)
	return out
}
