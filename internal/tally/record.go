// Package tally is the single implementation of the attendance
// tally/equivalence rules. Every consumer (range stats, student stats,
// course summaries, timelines, alerts, exports) goes through this package;
// none may re-derive the weight or capping rules locally.
//
// The package is pure: it operates on already-fetched records and returns
// results synchronously, with no I/O and no shared state between calls.
package tally

import "strings"

// JustifiedMarker is the legacy encoding of the "justified absence" flag: a
// fixed prefix on the free-text note. The Normalizer is the only place that
// reads or writes it.
const JustifiedMarker = "__J1__"

// RawRecord is an attendance record as it comes out of storage: status and
// context possibly empty or mis-cased, the justification either explicit or
// buried in the note prefix.
type RawRecord struct {
	StudentID string
	CourseID  string
	Date      string
	Context   string
	Status    string
	Note      string
	Justified *bool
}

// Record is the canonical form every computation in this package consumes.
type Record struct {
	StudentID string
	CourseID  string
	Date      string
	Context   string
	Status    string
	Justified bool
	Note      string
}

// Normalize converts a raw record into its canonical form. Context defaults
// to REGULAR, status is upper-cased (empty stays empty), and the note marker
// is absorbed into the Justified boolean. Justified is forced to false for
// any status other than AUSENTE, regardless of what storage says: legacy
// rows kept stale markers after a status edit.
func Normalize(raw RawRecord) Record {
	ctx := strings.ToUpper(strings.TrimSpace(raw.Context))
	if ctx == "" {
		ctx = "REGULAR"
	}
	status := strings.ToUpper(strings.TrimSpace(raw.Status))

	note := raw.Note
	marked := strings.HasPrefix(note, JustifiedMarker)
	if marked {
		note = strings.TrimPrefix(note, JustifiedMarker)
	}

	justified := false
	if status == "AUSENTE" {
		justified = marked || (raw.Justified != nil && *raw.Justified)
	}

	return Record{
		StudentID: raw.StudentID,
		CourseID:  raw.CourseID,
		Date:      raw.Date,
		Context:   ctx,
		Status:    status,
		Justified: justified,
		Note:      note,
	}
}

// EncodeNote re-applies the legacy marker for the storage boundary so the
// flag round-trips losslessly through rows the old clients still read.
func EncodeNote(justified bool, note string) string {
	note = strings.TrimPrefix(note, JustifiedMarker)
	if justified {
		return JustifiedMarker + note
	}
	return note
}
