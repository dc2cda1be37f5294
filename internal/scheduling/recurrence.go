package scheduling

import "time"

// Resolve decides whether tpl has an occurrence on target and computes its
// instant. Date matching happens in loc on both sides, never in the host's
// local zone. Pure and idempotent: no I/O, safe for concurrent use.
//
// A zero visit time means the stored timestamp was missing or unparseable;
// that template simply has no occurrences (recoverable skip, not an error).
func Resolve(tpl Template, target CalendarDate, loc *time.Location) (Occurrence, bool) {
	if tpl.VisitTime.IsZero() {
		return Occurrence{}, false
	}

	if tpl.Repeat == RepeatMonthly {
		return resolveMonthly(tpl, target, loc)
	}
	return resolveOnce(tpl, target, loc)
}

func resolveOnce(tpl Template, target CalendarDate, loc *time.Location) (Occurrence, bool) {
	if !DateOf(tpl.VisitTime, loc).Equal(target) {
		return Occurrence{}, false
	}
	// The occurrence instant is the stored instant, unchanged.
	return Occurrence{AppointmentID: tpl.ID, Start: tpl.VisitTime, Date: target}, true
}

func resolveMonthly(tpl Template, target CalendarDate, loc *time.Location) (Occurrence, bool) {
	base := tpl.VisitTime.In(loc)

	// Candidate keeps the base day-of-month, hour and minute but takes the
	// target's year and month.
	candidate := time.Date(target.Year, target.Month, base.Day(),
		base.Hour(), base.Minute(), 0, 0, loc)

	// time.Date normalizes a day-of-month that does not exist in the target
	// month (e.g. Jan 31 -> Feb) into the following month. Such a roll-over
	// is not an occurrence on target and must be rejected.
	if !DateOf(candidate, loc).Equal(target) {
		return Occurrence{}, false
	}
	return Occurrence{AppointmentID: tpl.ID, Start: candidate, Date: target}, true
}
