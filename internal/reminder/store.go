package reminder

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"visitboard-server/internal/models"
	"visitboard-server/internal/scheduling"
)

// ErrMarkConflict means another run already recorded a reminder for this
// appointment since we read it. The send may have been duplicated; the
// marker is left as the other run wrote it.
var ErrMarkConflict = errors.New("reminder marker changed concurrently")

// Store is the slice of persistence the reminder batch needs.
type Store interface {
	// ListActive returns every appointment still on the Scheduled column.
	ListActive(ctx context.Context) ([]models.Appointment, error)
	// MarkReminderSent records date as the last reminded date for id, but
	// only if the marker still holds previous (conditional write).
	MarkReminderSent(ctx context.Context, id, previous, date string) error
}

// GormStore backs Store with the application database.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) ListActive(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.WithContext(ctx).
		Where("status = ?", string(scheduling.StatusScheduled)).
		Order("order_index asc").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormStore) MarkReminderSent(ctx context.Context, id, previous, date string) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND reminder_sent_for_date = ?", id, previous).
		Update("reminder_sent_for_date", date)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMarkConflict
	}
	return nil
}

var _ Store = (*GormStore)(nil)
