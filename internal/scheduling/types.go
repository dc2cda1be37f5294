package scheduling

import (
	"fmt"
	"time"
)

// RecurrenceRule describes how an appointment repeats across dates.
type RecurrenceRule string

const (
	RepeatOnce    RecurrenceRule = "once"
	RepeatMonthly RecurrenceRule = "monthly"
)

// Status is the board column an appointment belongs to.
type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusScheduled, StatusCompleted, StatusCancelled}

// ValidStatus reports whether s is one of the known board columns.
func ValidStatus(s Status) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

const calendarDateLayout = "2006-01-02"

// CalendarDate is a zone-independent Y-M-D value. Which calendar date an
// instant falls on is only meaningful relative to a time zone, so all
// conversions from time.Time take an explicit *time.Location.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCalendarDate parses a "YYYY-MM-DD" string.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(calendarDateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf returns the calendar date the instant t falls on in loc.
func DateOf(t time.Time, loc *time.Location) CalendarDate {
	local := t.In(loc)
	return CalendarDate{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CalendarDate) Equal(o CalendarDate) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// IsZero reports whether d is the zero value.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// Next returns the calendar date one day after d.
func (d CalendarDate) Next() CalendarDate {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Template is the validated scheduling view of a persisted appointment
// record. It is produced by ParseTemplate and never written back directly.
type Template struct {
	ID                  string
	DoctorName          string
	HospitalName        string
	AttendantName       string
	Note                string
	VisitTime           time.Time
	Repeat              RecurrenceRule
	Status              Status
	Rank                int
	ReminderSentForDate string
}

// Occurrence is a concrete instance of a template on one calendar date.
// Derived, never persisted.
type Occurrence struct {
	AppointmentID string
	Start         time.Time
	Date          CalendarDate
}

// TimelineSlot is the rendering geometry assigned to one occurrence.
// End is always Start plus the synthetic display duration; it exists only
// for layout and must not be written back to the template.
type TimelineSlot struct {
	AppointmentID string
	Start         time.Time
	End           time.Time
	SlotIndex     int
	WidthPercent  float64
	OffsetPercent float64
	TopPercent    float64
}

// DayWindow is the visible portion of the day, as whole hours.
type DayWindow struct {
	StartHour int
	EndHour   int
}

// Minutes returns the total window length in minutes.
func (w DayWindow) Minutes() int {
	return (w.EndHour - w.StartHour) * 60
}
