package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionIDRoundTrip(t *testing.T) {
	id := SessionID("1A", "2026-03-10", ContextPE)
	assert.Equal(t, "SES|1A|2026-03-10|ED_FISICA", id)

	courseID, date, context := ParseSessionID(id)
	assert.Equal(t, "1A", courseID)
	assert.Equal(t, "2026-03-10", date)
	assert.Equal(t, ContextPE, context)
}

func TestParseSessionIDLegacyDefaultsContext(t *testing.T) {
	courseID, date, context := ParseSessionID("SES|2B|2025-11-03")
	assert.Equal(t, "2B", courseID)
	assert.Equal(t, "2025-11-03", date)
	assert.Equal(t, ContextRegular, context)
}

func TestAttendanceStatusValid(t *testing.T) {
	assert.True(t, AttendanceStatus("PRESENTE").Valid())
	assert.True(t, AttendanceStatus("VERIFICAR").Valid())
	assert.False(t, AttendanceStatus("presente").Valid())
	assert.False(t, AttendanceStatus("FERIADO").Valid())
}

func TestSessionContextValid(t *testing.T) {
	assert.True(t, ContextRegular.Valid())
	assert.True(t, ContextPE.Valid())
	// ALL is a filter wildcard, not storable
	assert.False(t, ContextAll.Valid())
}
