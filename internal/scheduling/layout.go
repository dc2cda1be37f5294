package scheduling

import (
	"sort"
	"time"
)

const (
	// SlotDuration is the synthetic display length of every occurrence.
	// It exists only for layout and is never persisted.
	SlotDuration = 60 * time.Minute

	// NearStartTolerance clusters events whose starts are closer than this
	// even when their intervals do not truly overlap, so near-simultaneous
	// visits render side-by-side instead of looking identical.
	NearStartTolerance = 30 * time.Minute

	// MaxSlots caps the number of horizontal lanes per cluster. Events past
	// the second lane collapse into lane 1; clusters of 3+ therefore
	// visually stack inside the second lane. Deliberate simplification.
	MaxSlots = 2
)

// Layout assigns rendering slots to one day's occurrences. Wall-clock
// positions are computed in loc. Occurrences starting outside the window
// are excluded from the output, not reported as errors. Pure function.
func Layout(occs []Occurrence, win DayWindow, loc *time.Location) []TimelineSlot {
	total := win.Minutes()
	if total <= 0 {
		return nil
	}

	type event struct {
		occ     Occurrence
		start   time.Time // in loc
		minutes int       // minutes since window start
	}

	events := make([]event, 0, len(occs))
	for _, occ := range occs {
		local := occ.Start.In(loc)
		mins := local.Hour()*60 + local.Minute() - win.StartHour*60
		if mins < 0 || mins > total {
			continue
		}
		events = append(events, event{occ: occ, start: local, minutes: mins})
	}
	if len(events) == 0 {
		return nil
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].start.Equal(events[j].start) {
			return events[i].start.Before(events[j].start)
		}
		return events[i].occ.AppointmentID < events[j].occ.AppointmentID
	})

	// Sweep left to right, merging an event into the open cluster when it
	// overlaps the cluster's furthest end or starts within tolerance of the
	// cluster's latest start. Events are sorted, so this yields connected
	// components over the overlap/near-start relation.
	var clusters [][]event
	var current []event
	var maxEnd, maxStart time.Time
	for _, ev := range events {
		end := ev.start.Add(SlotDuration)
		if len(current) == 0 {
			current = []event{ev}
			maxEnd, maxStart = end, ev.start
			continue
		}
		if ev.start.Before(maxEnd) || ev.start.Sub(maxStart) < NearStartTolerance {
			current = append(current, ev)
			if end.After(maxEnd) {
				maxEnd = end
			}
			maxStart = ev.start
			continue
		}
		clusters = append(clusters, current)
		current = []event{ev}
		maxEnd, maxStart = end, ev.start
	}
	clusters = append(clusters, current)

	slots := make([]TimelineSlot, 0, len(events))
	for _, cluster := range clusters {
		numSlots := len(cluster)
		if numSlots > MaxSlots {
			numSlots = MaxSlots
		}
		width := 100.0 / float64(numSlots)

		for i, ev := range cluster {
			idx := i
			if idx >= MaxSlots {
				idx = MaxSlots - 1
			}
			slots = append(slots, TimelineSlot{
				AppointmentID: ev.occ.AppointmentID,
				Start:         ev.start,
				End:           ev.start.Add(SlotDuration),
				SlotIndex:     idx,
				WidthPercent:  width,
				OffsetPercent: float64(idx) * width,
				TopPercent:    float64(ev.minutes) / float64(total) * 100,
			})
		}
	}
	return slots
}
