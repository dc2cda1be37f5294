package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"visitboard-server/internal/scheduling"
)

// Validation paths run before any database access, so a nil DB is enough
// to exercise them.
func newTestHandler() *AppointmentHandler {
	return &AppointmentHandler{
		Loc:    time.FixedZone("Asia/Jakarta", 7*60*60),
		Window: scheduling.DayWindow{StartHour: 8, EndHour: 17},
	}
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handler(c)
	return w
}

func TestReorderRejectsAmbiguousPayload(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"neither field", `{}`},
		{"both fields", `{"id":"a1","status":"Completed","orders":[{"id":"a1","rank":0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, h.Reorder, http.MethodPatch, "/api/v1/appointments/reorder", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestReorderRejectsMalformedBody(t *testing.T) {
	h := newTestHandler()
	w := performJSON(t, h.Reorder, http.MethodPatch, "/api/v1/appointments/reorder", `{"orders":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetScheduleRejectsBadDate(t *testing.T) {
	h := newTestHandler()

	for _, bad := range []string{"10-03-2025", "2025-02-30", "tomorrow"} {
		w := performJSON(t, h.GetSchedule, http.MethodGet, "/api/v1/appointments/schedule?date="+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "date %q", bad)
	}
}

func TestCreateAppointmentRejectsMissingVisitTime(t *testing.T) {
	h := newTestHandler()
	w := performJSON(t, h.CreateAppointment, http.MethodPost, "/api/v1/appointments", `{"doctorName":"dr. Ratna"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAppointmentRejectsUnknownRepeat(t *testing.T) {
	h := newTestHandler()
	body := `{"waktuVisit":"2025-03-10T09:00:00+07:00","repeat":"weekly"}`
	w := performJSON(t, h.CreateAppointment, http.MethodPost, "/api/v1/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
