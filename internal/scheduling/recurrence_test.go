package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Jakarta has no DST, so a fixed offset is an exact stand-in.
var jakarta = time.FixedZone("Asia/Jakarta", 7*60*60)

func date(y int, m time.Month, d int) CalendarDate {
	return CalendarDate{Year: y, Month: m, Day: d}
}

func TestResolveOnce(t *testing.T) {
	visit := time.Date(2025, time.March, 10, 9, 0, 0, 0, jakarta)
	tpl := Template{ID: "a1", Repeat: RepeatOnce, VisitTime: visit, Status: StatusScheduled}

	tests := []struct {
		name   string
		target CalendarDate
		want   bool
	}{
		{"matching date", date(2025, time.March, 10), true},
		{"day before", date(2025, time.March, 9), false},
		{"day after", date(2025, time.March, 11), false},
		{"different month", date(2025, time.April, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ, ok := Resolve(tpl, tt.target, jakarta)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.True(t, occ.Start.Equal(visit), "occurrence instant must be the stored instant, unchanged")
				assert.Equal(t, "a1", occ.AppointmentID)
				assert.Equal(t, tt.target, occ.Date)
			}
		})
	}
}

func TestResolveOnceZoneBoundary(t *testing.T) {
	// 2025-03-09 23:30 UTC is already 2025-03-10 06:30 in Jakarta. The
	// configured zone decides the date on both sides, never UTC or host
	// local time.
	visit := time.Date(2025, time.March, 9, 23, 30, 0, 0, time.UTC)
	tpl := Template{ID: "a1", Repeat: RepeatOnce, VisitTime: visit, Status: StatusScheduled}

	_, ok := Resolve(tpl, date(2025, time.March, 9), jakarta)
	assert.False(t, ok)

	occ, ok := Resolve(tpl, date(2025, time.March, 10), jakarta)
	require.True(t, ok)
	assert.True(t, occ.Start.Equal(visit))
}

func TestResolveMonthly(t *testing.T) {
	base := time.Date(2025, time.January, 15, 9, 30, 0, 0, jakarta)
	tpl := Template{ID: "m1", Repeat: RepeatMonthly, VisitTime: base, Status: StatusScheduled}

	occ, ok := Resolve(tpl, date(2025, time.March, 15), jakarta)
	require.True(t, ok)

	local := occ.Start.In(jakarta)
	assert.Equal(t, 2025, local.Year())
	assert.Equal(t, time.March, local.Month())
	assert.Equal(t, 15, local.Day())
	assert.Equal(t, 9, local.Hour())
	assert.Equal(t, 30, local.Minute())

	_, ok = Resolve(tpl, date(2025, time.March, 16), jakarta)
	assert.False(t, ok, "monthly rule only matches the base day-of-month")
}

func TestResolveMonthlyRollOver(t *testing.T) {
	// Day 31 does not exist in February; the candidate rolls into March 3
	// and must not be reported as an occurrence on Feb 28.
	base := time.Date(2025, time.January, 31, 9, 0, 0, 0, jakarta)
	tpl := Template{ID: "m2", Repeat: RepeatMonthly, VisitTime: base, Status: StatusScheduled}

	_, ok := Resolve(tpl, date(2025, time.February, 28), jakarta)
	assert.False(t, ok)

	// The rolled-over candidate lands on March 3, but March's own day 31
	// exists, so March 3 must not match either.
	_, ok = Resolve(tpl, date(2025, time.March, 3), jakarta)
	assert.False(t, ok)

	occ, ok := Resolve(tpl, date(2025, time.March, 31), jakarta)
	require.True(t, ok)
	assert.Equal(t, 31, occ.Start.In(jakarta).Day())
}

func TestResolveIdempotent(t *testing.T) {
	base := time.Date(2025, time.May, 20, 14, 45, 0, 0, jakarta)
	tpl := Template{ID: "m3", Repeat: RepeatMonthly, VisitTime: base, Status: StatusScheduled}
	target := date(2025, time.July, 20)

	first, ok1 := Resolve(tpl, target, jakarta)
	second, ok2 := Resolve(tpl, target, jakarta)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestResolveSkipsZeroVisitTime(t *testing.T) {
	tpl := Template{ID: "bad", Repeat: RepeatOnce, Status: StatusScheduled}
	_, ok := Resolve(tpl, date(2025, time.March, 10), jakarta)
	assert.False(t, ok, "a missing base instant is a skip, not an error")
}
