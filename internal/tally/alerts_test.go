package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func daySet(dates ...string) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}

func TestStreakCountsBackFromCutoff(t *testing.T) {
	set := daySet("2024-03-01", "2024-03-02", "2024-03-03")

	assert.Equal(t, 3, Streak(set, "2024-03-03"))
	// present on the cutoff day breaks the streak entirely
	assert.Equal(t, 0, Streak(set, "2024-03-04"))
	assert.Equal(t, 2, Streak(set, "2024-03-02"))
}

func TestStreakStopsAtFirstGap(t *testing.T) {
	set := daySet("2024-03-01", "2024-03-03", "2024-03-04")
	assert.Equal(t, 2, Streak(set, "2024-03-04"))
}

func TestStreakHandlesBadCutoff(t *testing.T) {
	assert.Equal(t, 0, Streak(daySet("2024-03-01"), "not-a-date"))
	assert.Equal(t, 0, Streak(nil, "2024-03-01"))
}

func TestStreakCrossesMonthBoundary(t *testing.T) {
	set := daySet("2024-02-29", "2024-03-01")
	assert.Equal(t, 2, Streak(set, "2024-03-01"))
}

func TestReasonsStreak(t *testing.T) {
	reasons := Reasons(3, 3)
	assert.Equal(t, []string{"3 días consecutivos ausente"}, reasons)
	assert.Empty(t, Reasons(2, 3))
}

func TestReasonsRunningTotal(t *testing.T) {
	assert.Equal(t, []string{"tiene 5 faltas"}, Reasons(0, 5))
	assert.Equal(t, []string{"tiene 9 faltas"}, Reasons(0, 9))
	assert.Empty(t, Reasons(0, 4))
}

func TestReasonsMilestoneAtTen(t *testing.T) {
	// exactly 10 triggers the milestone, not the running 5-9 notice
	reasons := Reasons(0, 10)
	assert.Equal(t, []string{"llegó a 10 faltas"}, reasons)
}

func TestReasonsAccumulateMilestones(t *testing.T) {
	reasons := Reasons(4, 16)
	assert.Equal(t, []string{
		"4 días consecutivos ausente",
		"llegó a 10 faltas",
		"llegó a 15 faltas",
	}, reasons)
}

func TestReasonsNone(t *testing.T) {
	assert.Empty(t, Reasons(0, 0))
	assert.Empty(t, Reasons(1, 1))
}
