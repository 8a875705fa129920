package tally

// Every weight in the domain is a multiple of a quarter day, so the engine
// accumulates in integer quarter-units (full day = 4) and converts to
// decimals only at the output boundary. That keeps intermediate sums exact;
// float accumulation was the source of the 0.30000000000000004-style
// artifacts in the legacy reports.
const (
	quartersPerDay = 4

	weightRegular = 4 // REGULAR session = 1.0 day
	weightPE      = 2 // ED_FISICA session = 0.5 day
	weightLate    = 1 // TARDE = 0.25 of an absence, per record, uncapped
)

// SessionWeight returns the fraction of a full school day one session of
// the given context represents, in quarter-units. Unknown contexts weigh as
// REGULAR.
func SessionWeight(context string) int {
	if context == "ED_FISICA" {
		return weightPE
	}
	return weightRegular
}

// AbsenceEquiv returns how much of a full-day absence one record
// contributes, in quarter-units, before any daily capping.
func AbsenceEquiv(status, context string) int {
	switch status {
	case "AUSENTE":
		return SessionWeight(context)
	case "TARDE":
		return weightLate
	default:
		return 0
	}
}

// Decimal converts quarter-units to their display value, rounded half-up at
// one decimal (0.25 → 0.3, 0.75 → 0.8).
func Decimal(quarters int) float64 {
	hundredths := quarters * 25
	tenths := (hundredths + 5) / 10
	return float64(tenths) / 10
}

// Percentage returns the attendance percentage for the given absence and
// total quarter-unit sums: 100·(1−absence/total) clamped to [0,100], with
// one decimal of precision. An empty partition (total = 0) is 0, never NaN.
func Percentage(absenceQuarters, totalQuarters int) float64 {
	if totalQuarters <= 0 {
		return 0
	}
	// tenths of a percent, rounded half-up in integer arithmetic
	tenths := (1000*(totalQuarters-absenceQuarters) + totalQuarters/2) / totalQuarters
	if tenths < 0 {
		tenths = 0
	}
	if tenths > 1000 {
		tenths = 1000
	}
	return float64(tenths) / 10
}
