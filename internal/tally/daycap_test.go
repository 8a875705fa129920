package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCappedAbsence(t *testing.T) {
	cases := []struct {
		name string
		day  DayAbsence
		want int
	}{
		{"empty day", DayAbsence{}, 0},
		{"regular only", DayAbsence{Regular: true}, 4},
		{"pe only", DayAbsence{PE: true}, 2},
		{"both contexts capped to one day", DayAbsence{Regular: true, PE: true}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.day.CappedAbsence())
		})
	}
}

func TestCappedJustifiedNeverExceedsAbsence(t *testing.T) {
	// justified in both contexts sums to 1.5 days but caps at the absence
	day := DayAbsence{Regular: true, PE: true, RegularJustified: true, PEJustified: true}
	assert.Equal(t, 4, day.CappedJustified())

	// only the PE half justified
	day = DayAbsence{Regular: true, PE: true, PEJustified: true}
	assert.Equal(t, 2, day.CappedJustified())

	// pe absence alone, justified
	day = DayAbsence{PE: true, PEJustified: true}
	assert.Equal(t, 2, day.CappedJustified())
}

func TestCapInvariantExhaustive(t *testing.T) {
	// the cap invariant holds for every combination of flags
	for mask := 0; mask < 16; mask++ {
		day := DayAbsence{
			Regular:          mask&1 != 0,
			PE:               mask&2 != 0,
			RegularJustified: mask&4 != 0,
			PEJustified:      mask&8 != 0,
		}
		a := day.CappedAbsence()
		j := day.CappedJustified()
		assert.GreaterOrEqual(t, a, 0)
		assert.LessOrEqual(t, a, quartersPerDay)
		assert.LessOrEqual(t, j, a)
	}
}
