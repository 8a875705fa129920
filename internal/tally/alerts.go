package tally

import (
	"fmt"
	"time"
)

// Thresholds are the cumulative absence-day counts that trigger a
// milestone alert. The first one doubles as the floor for the running
// "tiene N faltas" notice.
var Thresholds = []int{5, 10, 15, 20, 25, 28}

// MinStreak is the consecutive-day count that triggers a streak alert.
const MinStreak = 3

const dateLayout = "2006-01-02"

// Streak counts consecutive absence days ending exactly at cutoff: it walks
// backward day by day while the date is in the set. Any missing day breaks
// it; weekends never appear as keys because sessions only exist on school
// days, so they break streaks naturally.
func Streak(absenceDays map[string]bool, cutoff string) int {
	day, err := time.Parse(dateLayout, cutoff)
	if err != nil {
		return 0
	}
	streak := 0
	for absenceDays[day.Format(dateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Reasons returns the human-readable alert reasons for a student with the
// given streak and total capped absence days. A student may trigger several
// at once; an empty slice means no alert.
func Reasons(streak, total int) []string {
	var reasons []string
	if streak >= MinStreak {
		reasons = append(reasons, fmt.Sprintf("%d días consecutivos ausente", streak))
	}
	if total >= Thresholds[0] && total < 10 {
		reasons = append(reasons, fmt.Sprintf("tiene %d faltas", total))
	}
	for _, t := range Thresholds {
		if t >= 10 && total >= t {
			reasons = append(reasons, fmt.Sprintf("llegó a %d faltas", t))
		}
	}
	return reasons
}
