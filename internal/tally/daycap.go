package tally

// DayAbsence accumulates one student's AUSENTE marks for one calendar day
// across both contexts, so overlapping regular/PE absences can be resolved
// into a single capped contribution.
type DayAbsence struct {
	Regular          bool
	PE               bool
	RegularJustified bool
	PEJustified      bool
}

// Observe folds one AUSENTE record into the day state.
func (d *DayAbsence) Observe(context string, justified bool) {
	if context == "ED_FISICA" {
		d.PE = true
		if justified {
			d.PEJustified = true
		}
		return
	}
	d.Regular = true
	if justified {
		d.RegularJustified = true
	}
}

// CappedAbsence resolves the day to at most one full-day absence, in
// quarter-units: absent in REGULAR counts the whole day whether or not the
// PE session was also missed; a PE absence alone counts half a day.
func (d DayAbsence) CappedAbsence() int {
	reg, pe := 0, 0
	if d.Regular {
		reg = weightRegular
	}
	if d.PE {
		pe = weightPE
	}
	if reg > pe {
		return reg
	}
	return pe
}

// CappedJustified returns the justified share of the day, never exceeding
// the capped absence.
func (d DayAbsence) CappedJustified() int {
	sum := 0
	if d.RegularJustified {
		sum += weightRegular
	}
	if d.PEJustified {
		sum += weightPE
	}
	if capped := d.CappedAbsence(); sum > capped {
		return capped
	}
	return sum
}
