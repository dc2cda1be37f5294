package scheduling

// ShouldSend reports whether a reminder for target is still owed. The
// marker is an exact date-string match: any other value, including empty,
// means the reminder has not been sent for that date.
func ShouldSend(tpl Template, target CalendarDate) bool {
	return tpl.ReminderSentForDate != target.String()
}

// MarkSent returns a copy of tpl with the reminder marker set to target.
// Persisting the copy is the caller's job and should happen as close to the
// actual send as possible to keep the duplicate-send window small.
func MarkSent(tpl Template, target CalendarDate) Template {
	tpl.ReminderSentForDate = target.String()
	return tpl
}
