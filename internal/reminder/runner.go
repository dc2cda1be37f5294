package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"visitboard-server/internal/notify"
	"visitboard-server/internal/scheduling"
)

// Mode selects the message shape of a batch run.
type Mode string

const (
	// ModeSummary sends one digest message covering every matched visit.
	ModeSummary Mode = "summary"
	// ModePerSchedule sends one message per matched visit.
	ModePerSchedule Mode = "perSchedule"
)

// ParseMode validates a mode string; empty defaults to summary.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeSummary, nil
	case ModeSummary, ModePerSchedule:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown reminder mode %q", s)
	}
}

// Report is what a batch run hands back to its caller. Individual send
// failures are counted here, never raised as errors.
type Report struct {
	TargetDate string `json:"targetDate"`
	Mode       Mode   `json:"mode"`
	DryRun     bool   `json:"dryRun"`
	Matched    int    `json:"matched"`
	Sent       int    `json:"sent"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}

// Runner executes one reminder batch: resolve occurrences for the target
// date, drop already-reminded appointments, send, and record successful
// sends. Each run is an independent unit of work; duplicate invocations
// are tolerated by the dedup gate rather than prevented upstream.
type Runner struct {
	Store  Store
	Sender notify.Sender
	Zone   *time.Location
	Log    *zap.Logger
}

type match struct {
	tpl scheduling.Template
	occ scheduling.Occurrence
}

// Run executes a batch against target. Only an unreachable store aborts
// the run; everything else degrades into report counts.
func (r *Runner) Run(ctx context.Context, target scheduling.CalendarDate, mode Mode, dryRun bool) (Report, error) {
	report := Report{TargetDate: target.String(), Mode: mode, DryRun: dryRun}

	appointments, err := r.Store.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("loading appointments: %w", err)
	}

	var eligible []match
	for i := range appointments {
		tpl, err := scheduling.ParseTemplate(appointments[i].Raw())
		if err != nil {
			// Recoverable skip: a malformed record has no occurrences.
			r.Log.Warn("skipping malformed appointment", zap.String("id", appointments[i].ID), zap.Error(err))
			continue
		}

		occ, ok := scheduling.Resolve(tpl, target, r.Zone)
		if !ok {
			continue
		}
		report.Matched++

		if !scheduling.ShouldSend(tpl, target) {
			report.Skipped++
			continue
		}
		eligible = append(eligible, match{tpl: tpl, occ: occ})
	}

	if dryRun || len(eligible) == 0 {
		return report, nil
	}

	switch mode {
	case ModePerSchedule:
		r.sendPerSchedule(ctx, target, eligible, &report)
	default:
		r.sendSummary(ctx, target, eligible, &report)
	}

	r.Log.Info("reminder batch finished",
		zap.String("targetDate", report.TargetDate),
		zap.Int("matched", report.Matched),
		zap.Int("sent", report.Sent),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (r *Runner) sendPerSchedule(ctx context.Context, target scheduling.CalendarDate, eligible []match, report *Report) {
	for _, m := range eligible {
		if err := r.Sender.Send(ctx, r.visitMessage(m)); err != nil {
			// Not marked, so the appointment stays eligible next run.
			report.Failed++
			r.Log.Error("reminder send failed", zap.String("id", m.tpl.ID), zap.Error(err))
			continue
		}
		report.Sent++
		r.mark(ctx, m.tpl, target)
	}
}

func (r *Runner) sendSummary(ctx context.Context, target scheduling.CalendarDate, eligible []match, report *Report) {
	if err := r.Sender.Send(ctx, r.digestMessage(target, eligible)); err != nil {
		report.Failed += len(eligible)
		r.Log.Error("reminder digest send failed", zap.Int("visits", len(eligible)), zap.Error(err))
		return
	}
	report.Sent += len(eligible)
	for _, m := range eligible {
		r.mark(ctx, m.tpl, target)
	}
}

// mark persists the dedup marker right after a successful send. A persist
// failure is logged and left alone: the next run will resend, which the
// design prefers over losing a reminder.
func (r *Runner) mark(ctx context.Context, tpl scheduling.Template, target scheduling.CalendarDate) {
	marked := scheduling.MarkSent(tpl, target)
	if err := r.Store.MarkReminderSent(ctx, tpl.ID, tpl.ReminderSentForDate, marked.ReminderSentForDate); err != nil {
		r.Log.Error("failed to record reminder marker", zap.String("id", tpl.ID), zap.Error(err))
	}
}

func (r *Runner) visitMessage(m match) string {
	clock := m.occ.Start.In(r.Zone).Format("15:04")
	return fmt.Sprintf("Visit reminder %s %s: %s at %s, attendant %s. Note: %s",
		m.occ.Date, clock, m.tpl.DoctorName, m.tpl.HospitalName, m.tpl.AttendantName, m.tpl.Note)
}

func (r *Runner) digestMessage(target scheduling.CalendarDate, eligible []match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Visit schedule for %s (%d visit(s)):", target, len(eligible))
	for _, m := range eligible {
		clock := m.occ.Start.In(r.Zone).Format("15:04")
		fmt.Fprintf(&b, "\n- %s %s at %s", clock, m.tpl.DoctorName, m.tpl.HospitalName)
	}
	return b.String()
}
