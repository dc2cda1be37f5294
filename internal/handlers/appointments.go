package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"visitboard-server/internal/config"
	"visitboard-server/internal/models"
	"visitboard-server/internal/scheduling"
	"visitboard-server/internal/utils"
)

// AppointmentHandler handles appointment CRUD, the status board and the
// daily schedule view.
type AppointmentHandler struct {
	DB     *gorm.DB
	Loc    *time.Location
	Window scheduling.DayWindow
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{
		DB:     db,
		Loc:    cfg.Location,
		Window: scheduling.DayWindow{StartHour: cfg.DayStartHour, EndHour: cfg.DayEndHour},
	}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	DoctorName    string    `json:"doctorName"`
	HospitalName  string    `json:"hospitalName"`
	AttendantName string    `json:"attendantName"`
	Note          string    `json:"note"`
	VisitTime     time.Time `json:"waktuVisit" binding:"required"`
	Repeat        string    `json:"repeat" binding:"omitempty,oneof=once monthly"`
}

// CreateAppointment creates an appointment at the bottom of the Scheduled
// column (rank = current max + 1).
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	board, err := h.loadBoard(c, string(scheduling.StatusScheduled))
	if err != nil {
		utils.InternalServerError(c, "Failed to load board: "+err.Error())
		return
	}

	id := uuid.New().String()
	assignment := board.Insert(id, scheduling.StatusScheduled)

	repeat := req.Repeat
	if repeat == "" {
		repeat = string(scheduling.RepeatOnce)
	}
	appointment := models.Appointment{
		BaseModel:     models.BaseModel{ID: id},
		DoctorName:    req.DoctorName,
		HospitalName:  req.HospitalName,
		AttendantName: req.AttendantName,
		Note:          req.Note,
		VisitTime:     req.VisitTime,
		Repeat:        repeat,
		Status:        string(scheduling.StatusScheduled),
		OrderIndex:    assignment.Rank,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetBoard returns every appointment grouped by status column, ordered by
// rank. The board UI also calls this as its reconciliation fetch after a
// failed partial write.
func (h *AppointmentHandler) GetBoard(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.DB.Order("order_index asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	columns := make(map[string][]models.Appointment, len(scheduling.Statuses))
	for _, status := range scheduling.Statuses {
		columns[string(status)] = []models.Appointment{}
	}
	for _, a := range appointments {
		columns[a.Status] = append(columns[a.Status], a)
	}

	utils.Success(c, "Board fetched successfully", columns)
}

// ScheduleItem is one appointment occurrence with its timeline geometry.
type ScheduleItem struct {
	ID            string    `json:"id"`
	DoctorName    string    `json:"doctorName"`
	HospitalName  string    `json:"hospitalName"`
	AttendantName string    `json:"attendantName"`
	Note          string    `json:"note"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	SlotIndex     int       `json:"slotIndex"`
	WidthPercent  float64   `json:"slotWidthPercent"`
	OffsetPercent float64   `json:"slotOffsetPercent"`
	TopPercent    float64   `json:"topPercent"`
}

// GetSchedule resolves every appointment against the requested date (in the
// configured zone) and lays the matches out on the day timeline.
func (h *AppointmentHandler) GetSchedule(c *gin.Context) {
	target := scheduling.DateOf(time.Now(), h.Loc)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := scheduling.ParseCalendarDate(dateStr)
		if err != nil {
			utils.BadRequest(c, "Invalid date: "+err.Error())
			return
		}
		target = parsed
	}

	var appointments []models.Appointment
	if err := h.DB.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	byID := make(map[string]scheduling.Template, len(appointments))
	var occurrences []scheduling.Occurrence
	for i := range appointments {
		tpl, err := scheduling.ParseTemplate(appointments[i].Raw())
		if err != nil {
			// Malformed records have no occurrences; the schedule view
			// simply leaves them out.
			continue
		}
		if occ, ok := scheduling.Resolve(tpl, target, h.Loc); ok {
			byID[tpl.ID] = tpl
			occurrences = append(occurrences, occ)
		}
	}

	slots := scheduling.Layout(occurrences, h.Window, h.Loc)
	items := make([]ScheduleItem, 0, len(slots))
	for _, slot := range slots {
		tpl := byID[slot.AppointmentID]
		items = append(items, ScheduleItem{
			ID:            slot.AppointmentID,
			DoctorName:    tpl.DoctorName,
			HospitalName:  tpl.HospitalName,
			AttendantName: tpl.AttendantName,
			Note:          tpl.Note,
			Start:         slot.Start,
			End:           slot.End,
			SlotIndex:     slot.SlotIndex,
			WidthPercent:  slot.WidthPercent,
			OffsetPercent: slot.OffsetPercent,
			TopPercent:    slot.TopPercent,
		})
	}

	utils.Success(c, "Schedule fetched successfully", gin.H{
		"date":  target.String(),
		"items": items,
	})
}

// OrderPair is one client-supplied (id, rank) entry of a within-column
// reorder.
type OrderPair struct {
	ID   string `json:"id" binding:"required"`
	Rank int    `json:"rank"`
}

// ReorderRequest carries either a cross-column move (id + status) or a
// within-column batch (orders), never both.
type ReorderRequest struct {
	ID          string      `json:"id"`
	Status      string      `json:"status"`
	TargetIndex *int        `json:"targetIndex"`
	Orders      []OrderPair `json:"orders"`
}

// Reorder routes a board mutation. A cross-column move is persisted as two
// independent writes (the moved item, then the renumber batch); when the
// second write fails the columns are inconsistent and the client must
// refetch the full board rather than retry the patch.
func (h *AppointmentHandler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	hasStatus := req.Status != ""
	hasOrders := len(req.Orders) > 0
	if hasStatus == hasOrders {
		utils.BadRequest(c, "Request must carry either a status move or a rank list, not both or neither")
		return
	}

	if hasOrders {
		h.reorderWithinColumn(c, req.Orders)
		return
	}
	h.moveAcrossColumns(c, req)
}

func (h *AppointmentHandler) reorderWithinColumn(c *gin.Context, orders []OrderPair) {
	pairs := make([]scheduling.RankAssignment, len(orders))
	for i, o := range orders {
		pairs[i] = scheduling.RankAssignment{ID: o.ID, Rank: o.Rank}
	}
	assignments := scheduling.Renumber(pairs)

	for _, a := range assignments {
		err := h.DB.Model(&models.Appointment{}).
			Where("id = ?", a.ID).
			Update("order_index", a.Rank).Error
		if err != nil {
			utils.InternalServerError(c, "Batch rank update failed, refetch the board: "+err.Error())
			return
		}
	}

	utils.Success(c, "Ranks updated successfully", assignments)
}

func (h *AppointmentHandler) moveAcrossColumns(c *gin.Context, req ReorderRequest) {
	if req.ID == "" {
		utils.BadRequest(c, "Status move requires an appointment id")
		return
	}
	toStatus := scheduling.Status(req.Status)
	if !scheduling.ValidStatus(toStatus) {
		utils.BadRequest(c, "Unknown status: "+req.Status)
		return
	}

	var moved models.Appointment
	if err := h.DB.First(&moved, "id = ?", req.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	board, err := h.loadBoard(c, "")
	if err != nil {
		utils.InternalServerError(c, "Failed to load board: "+err.Error())
		return
	}

	assignments, err := board.MoveAcrossColumns(req.ID, scheduling.Status(moved.Status), toStatus, req.TargetIndex)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	movedRank := 0
	for _, a := range assignments {
		if a.ID == req.ID {
			movedRank = a.Rank
			break
		}
	}

	// First write: the moved item's new column and rank.
	err = h.DB.Model(&models.Appointment{}).
		Where("id = ?", req.ID).
		Updates(map[string]interface{}{
			"status":      string(toStatus),
			"order_index": movedRank,
		}).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to move appointment: "+err.Error())
		return
	}

	// Second write: renumber the rest of the target column. Deliberately
	// not a transaction with the first write; on failure the client
	// reconciles with a full board fetch.
	for _, a := range assignments {
		if a.ID == req.ID {
			continue
		}
		err := h.DB.Model(&models.Appointment{}).
			Where("id = ?", a.ID).
			Update("order_index", a.Rank).Error
		if err != nil {
			utils.InternalServerError(c, "Column renumber failed, refetch the board: "+err.Error())
			return
		}
	}

	utils.Success(c, "Appointment moved successfully", gin.H{
		"id":          req.ID,
		"status":      string(toStatus),
		"assignments": assignments,
	})
}

// UpdateAppointmentRequest represents the request body for editing an appointment.
type UpdateAppointmentRequest struct {
	DoctorName    *string    `json:"doctorName"`
	HospitalName  *string    `json:"hospitalName"`
	AttendantName *string    `json:"attendantName"`
	Note          *string    `json:"note"`
	VisitTime     *time.Time `json:"waktuVisit"`
	Repeat        *string    `json:"repeat" binding:"omitempty,oneof=once monthly"`
}

// UpdateAppointment edits the display fields, visit time or recurrence rule.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.DoctorName != nil {
		appointment.DoctorName = *req.DoctorName
	}
	if req.HospitalName != nil {
		appointment.HospitalName = *req.HospitalName
	}
	if req.AttendantName != nil {
		appointment.AttendantName = *req.AttendantName
	}
	if req.Note != nil {
		appointment.Note = *req.Note
	}
	if req.VisitTime != nil {
		appointment.VisitTime = *req.VisitTime
		// A new visit time restarts reminder eligibility.
		appointment.ReminderSentForDate = ""
	}
	if req.Repeat != nil {
		appointment.Repeat = *req.Repeat
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment updated successfully", appointment)
}

// DeleteAppointment removes an appointment and renumbers its column so
// ranks stay contiguous.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	var column []models.Appointment
	err := h.DB.Where("status = ?", appointment.Status).
		Order("order_index asc").
		Find(&column).Error
	if err != nil {
		utils.InternalServerError(c, "Column renumber failed, refetch the board: "+err.Error())
		return
	}
	for i := range column {
		if column[i].OrderIndex == i {
			continue
		}
		err := h.DB.Model(&models.Appointment{}).
			Where("id = ?", column[i].ID).
			Update("order_index", i).Error
		if err != nil {
			utils.InternalServerError(c, "Column renumber failed, refetch the board: "+err.Error())
			return
		}
	}

	utils.Success(c, "Appointment deleted successfully", gin.H{"id": appointment.ID})
}

// loadBoard builds the in-memory board, optionally restricted to one
// status column.
func (h *AppointmentHandler) loadBoard(c *gin.Context, status string) (*scheduling.Board, error) {
	query := h.DB.WithContext(c.Request.Context())
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var appointments []models.Appointment
	if err := query.Order("order_index asc").Find(&appointments).Error; err != nil {
		return nil, err
	}

	templates := make([]scheduling.Template, len(appointments))
	for i, a := range appointments {
		templates[i] = scheduling.Template{
			ID:     a.ID,
			Status: scheduling.Status(a.Status),
			Rank:   a.OrderIndex,
		}
	}
	return scheduling.NewBoard(templates), nil
}
