package models

import (
	"time"

	"visitboard-server/internal/scheduling"
)

// Appointment is the persisted visit template. Display fields are optional
// in storage; the scheduling layer substitutes placeholders when reading.
// JSON field names follow the collaborator schema consumed by the board UI.
type Appointment struct {
	BaseModel
	DoctorName          string    `gorm:"size:100" json:"doctorName"`
	HospitalName        string    `gorm:"size:150" json:"hospitalName"`
	AttendantName       string    `gorm:"size:100" json:"attendantName"`
	Note                string    `gorm:"type:text" json:"note"`
	VisitTime           time.Time `gorm:"index" json:"waktuVisit"`
	Repeat              string    `gorm:"size:10;default:'once'" json:"repeat"`
	Status              string    `gorm:"size:20;index" json:"status"`
	OrderIndex          int       `gorm:"default:0" json:"orderIndex"`
	ReminderSentForDate string    `gorm:"size:10" json:"reminderSentForDate,omitempty"`
}

// Raw adapts the stored record for scheduling.ParseTemplate.
func (a *Appointment) Raw() scheduling.RawTemplate {
	return scheduling.RawTemplate{
		ID:                  a.ID,
		DoctorName:          a.DoctorName,
		HospitalName:        a.HospitalName,
		AttendantName:       a.AttendantName,
		Note:                a.Note,
		VisitTime:           a.VisitTime,
		Repeat:              a.Repeat,
		Status:              a.Status,
		Rank:                a.OrderIndex,
		ReminderSentForDate: a.ReminderSentForDate,
	}
}
