package scheduling

import (
	"fmt"
	"time"
)

// PlaceholderText fills display fields that were stored empty.
const PlaceholderText = "-"

// RawTemplate mirrors the persisted appointment document before validation.
// Fields map 1:1 to the stored record; see the models package for the
// storage schema.
type RawTemplate struct {
	ID                  string
	DoctorName          string
	HospitalName        string
	AttendantName       string
	Note                string
	VisitTime           time.Time
	Repeat              string
	Status              string
	Rank                int
	ReminderSentForDate string
}

// ParseError reports a record that cannot be turned into a Template.
type ParseError struct {
	ID    string
	Field string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("appointment %s: field %s: %s", e.ID, e.Field, e.Msg)
}

// ParseTemplate validates a raw record and applies the documented defaults:
// empty display strings become PlaceholderText and an empty repeat becomes
// "once". Anything else invalid is rejected rather than coerced.
func ParseTemplate(raw RawTemplate) (Template, error) {
	if raw.ID == "" {
		return Template{}, &ParseError{Field: "id", Msg: "missing"}
	}
	if raw.VisitTime.IsZero() {
		return Template{}, &ParseError{ID: raw.ID, Field: "waktuVisit", Msg: "missing or unparseable"}
	}

	repeat := RecurrenceRule(raw.Repeat)
	switch repeat {
	case "":
		repeat = RepeatOnce
	case RepeatOnce, RepeatMonthly:
	default:
		return Template{}, &ParseError{ID: raw.ID, Field: "repeat", Msg: fmt.Sprintf("unknown rule %q", raw.Repeat)}
	}

	status := Status(raw.Status)
	if !ValidStatus(status) {
		return Template{}, &ParseError{ID: raw.ID, Field: "status", Msg: fmt.Sprintf("unknown status %q", raw.Status)}
	}

	if raw.Rank < 0 {
		return Template{}, &ParseError{ID: raw.ID, Field: "orderIndex", Msg: "negative"}
	}

	return Template{
		ID:                  raw.ID,
		DoctorName:          orPlaceholder(raw.DoctorName),
		HospitalName:        orPlaceholder(raw.HospitalName),
		AttendantName:       orPlaceholder(raw.AttendantName),
		Note:                orPlaceholder(raw.Note),
		VisitTime:           raw.VisitTime,
		Repeat:              repeat,
		Status:              status,
		Rank:                raw.Rank,
		ReminderSentForDate: raw.ReminderSentForDate,
	}, nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return PlaceholderText
	}
	return s
}
