// Package urgency classifies tasks into urgency tiers by deadline proximity.
package urgency

import (
	"time"

	"github.com/josephgoksu/dayplan/models"
)

const day = 24 * time.Hour

const (
	// UrgentWithinDays is the inclusive upper bound for the urgent tier.
	UrgentWithinDays = 1.0
	// WarningWithinDays is the inclusive upper bound for the warning tier.
	WarningWithinDays = 3.0
)

// Classify returns the urgency tier of task at now. A recognized override
// always wins. Otherwise the fractional number of days between now and the
// start of the deadline date decides. Past deadlines are urgent. A task whose
// deadline cannot be parsed falls through to safe.
func Classify(task models.Task, now time.Time) models.Tier {
	if task.UrgencyOverride.Valid() {
		return task.UrgencyOverride
	}
	deadline, err := task.DeadlineTime(now.Location())
	if err != nil {
		return models.TierSafe
	}
	return ForDaysRemaining(DaysRemaining(deadline, now))
}

// DaysRemaining is the unfloored distance from now to deadline in days.
func DaysRemaining(deadline, now time.Time) float64 {
	return float64(deadline.Sub(now)) / float64(day)
}

// ForDaysRemaining maps a fractional day count onto a tier.
func ForDaysRemaining(days float64) models.Tier {
	switch {
	case days <= UrgentWithinDays:
		return models.TierUrgent
	case days <= WarningWithinDays:
		return models.TierWarning
	default:
		return models.TierSafe
	}
}

// Rank orders tiers: urgent before warning before safe. Unknown tiers sort last.
func Rank(t models.Tier) int {
	switch t {
	case models.TierUrgent:
		return 0
	case models.TierWarning:
		return 1
	case models.TierSafe:
		return 2
	}
	return 3
}

// Label is the display name of a tier.
func Label(t models.Tier) string {
	switch t {
	case models.TierUrgent:
		return "Rood"
	case models.TierWarning:
		return "Geel"
	case models.TierSafe:
		return "Groen"
	}
	return string(t)
}

// ParseTier accepts either a tier key or its display label, case-insensitively.
func ParseTier(s string) (models.Tier, bool) {
	switch normalize(s) {
	case "urgent", "rood", "red":
		return models.TierUrgent, true
	case "warning", "geel", "yellow":
		return models.TierWarning, true
	case "safe", "groen", "green":
		return models.TierSafe, true
	}
	return "", false
}
