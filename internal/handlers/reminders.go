package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"visitboard-server/internal/config"
	"visitboard-server/internal/reminder"
	"visitboard-server/internal/scheduling"
	"visitboard-server/internal/utils"
)

// ReminderHandler exposes the reminder batch to external schedulers. The
// route is guarded by the internal-token middleware.
type ReminderHandler struct {
	Runner *reminder.Runner
	Loc    *time.Location
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(runner *reminder.Runner, cfg *config.Config) *ReminderHandler {
	return &ReminderHandler{Runner: runner, Loc: cfg.Location}
}

// Run triggers one reminder batch. Query parameters:
//
//	targetDate  YYYY-MM-DD, defaults to tomorrow in the configured zone
//	mode        "summary" (default) or "perSchedule"
//	dryRun      "true" computes matches without sending or marking
func (h *ReminderHandler) Run(c *gin.Context) {
	target := scheduling.DateOf(time.Now(), h.Loc).Next()
	if dateStr := c.Query("targetDate"); dateStr != "" {
		parsed, err := scheduling.ParseCalendarDate(dateStr)
		if err != nil {
			utils.BadRequest(c, "Invalid targetDate: "+err.Error())
			return
		}
		target = parsed
	}

	mode, err := reminder.ParseMode(c.Query("mode"))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	dryRun := c.Query("dryRun") == "true"

	report, err := h.Runner.Run(c.Request.Context(), target, mode, dryRun)
	if err != nil {
		utils.InternalServerError(c, "Reminder batch failed: "+err.Error())
		return
	}

	utils.Success(c, "Reminder batch completed", report)
}
