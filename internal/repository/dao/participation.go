package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrParticipationNotFound = errors.New("participation not found")
	ErrAlreadyRegistered     = errors.New("already registered for this event")
)

type Participation struct {
	ID uint `gorm:"primaryKey"`

	EventID    uint   `gorm:"not null;uniqueIndex:idx_participations_event_student"`
	EventTitle string `gorm:"not null"`

	StudentID    uint   `gorm:"not null;uniqueIndex:idx_participations_event_student"`
	StudentName  string `gorm:"not null"`
	StudentEmail string `gorm:"not null"`

	Status       string    `gorm:"not null;default:'Registered'"` // "Registered", "Attended", or "Absent"
	RegisteredAt time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ParticipationDAO struct {
	db *gorm.DB
}

func NewParticipationDAO(db *gorm.DB) *ParticipationDAO {
	return &ParticipationDAO{
		db: db,
	}
}

// Register inserts the participation and bumps the event counter in one
// transaction. The unique (event_id, student_id) index rejects duplicates and
// the conditional counter update rejects full events, so neither check races.
func (d *ParticipationDAO) Register(ctx context.Context, participation Participation) (Participation, error) {
	eventDAO := NewEventDAO(d.db)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&participation).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, "idx_participations_event_student") {
				return ErrAlreadyRegistered
			}

			return err
		}

		return eventDAO.incrementParticipants(tx, participation.EventID)
	})
	if err != nil {
		return Participation{}, err
	}

	return participation, nil
}

// Unregister deletes the participation and lowers the counter in one
// transaction, floored at zero.
func (d *ParticipationDAO) Unregister(ctx context.Context, id uint) error {
	eventDAO := NewEventDAO(d.db)

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participation Participation
		if err := tx.First(&participation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParticipationNotFound
			}

			return err
		}

		if err := tx.Delete(&Participation{}, id).Error; err != nil {
			return err
		}

		return eventDAO.decrementParticipants(tx, participation.EventID)
	})
}

func (d *ParticipationDAO) FindByID(ctx context.Context, id uint) (Participation, error) {
	var participation Participation

	result := d.db.WithContext(ctx).First(&participation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participation{}, ErrParticipationNotFound
		}

		return Participation{}, result.Error
	}

	return participation, nil
}

func (d *ParticipationDAO) FindByEventID(ctx context.Context, eventID uint) ([]Participation, error) {
	var participations []Participation

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at DESC").
		Find(&participations)
	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}

func (d *ParticipationDAO) FindByStudentID(ctx context.Context, studentID uint) ([]Participation, error) {
	var participations []Participation

	result := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("registered_at DESC").
		Find(&participations)
	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}

// UpdateStatus only touches rows belonging to the given event so one batch
// entry cannot reach into another event's participations.
func (d *ParticipationDAO) UpdateStatus(ctx context.Context, eventID, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Participation{}).
		Where("id = ? AND event_id = ?", id, eventID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipationNotFound
	}

	return nil
}

func (d *ParticipationDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Participation{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
