package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionWeight(t *testing.T) {
	assert.Equal(t, 4, SessionWeight("REGULAR"))
	assert.Equal(t, 2, SessionWeight("ED_FISICA"))
	assert.Equal(t, 4, SessionWeight(""))
	assert.Equal(t, 4, SessionWeight("TALLER"))
}

func TestAbsenceEquiv(t *testing.T) {
	assert.Equal(t, 4, AbsenceEquiv("AUSENTE", "REGULAR"))
	assert.Equal(t, 2, AbsenceEquiv("AUSENTE", "ED_FISICA"))
	assert.Equal(t, 1, AbsenceEquiv("TARDE", "REGULAR"))
	assert.Equal(t, 1, AbsenceEquiv("TARDE", "ED_FISICA"))
	assert.Equal(t, 0, AbsenceEquiv("PRESENTE", "REGULAR"))
	assert.Equal(t, 0, AbsenceEquiv("VERIFICAR", "ED_FISICA"))
	assert.Equal(t, 0, AbsenceEquiv("", "REGULAR"))
}

func TestDecimalRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 0.0, Decimal(0))
	assert.Equal(t, 0.3, Decimal(1))
	assert.Equal(t, 0.5, Decimal(2))
	assert.Equal(t, 0.8, Decimal(3))
	assert.Equal(t, 1.0, Decimal(4))
	assert.Equal(t, 2.5, Decimal(10))
	// 12 lates: 12·0.25 = 3.0 exactly, never 3.0000000000000004
	assert.Equal(t, 3.0, Decimal(12))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 100.0, Percentage(0, 40))
	assert.Equal(t, 0.0, Percentage(40, 40))
	assert.Equal(t, 50.0, Percentage(20, 40))
	// 1 falta over 3 days = 66.7%
	assert.Equal(t, 66.7, Percentage(4, 12))
	// absence above total still clamps to zero
	assert.Equal(t, 0.0, Percentage(50, 40))
}
