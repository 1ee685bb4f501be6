package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventFull     = errors.New("event is full")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Date        time.Time `gorm:"not null;index"`
	Time        string    `gorm:"not null"`
	Venue       string    `gorm:"not null"`

	MaxParticipants     int `gorm:"not null;default:100"`
	CurrentParticipants int `gorm:"not null;default:0"`

	Department    string `gorm:"not null;index"`
	Status        string `gorm:"not null;default:'Pending'"` // "Pending", "Approved", or "Rejected"
	CreatedBy     uint   `gorm:"not null;index"`
	CreatedByName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByDepartment(ctx context.Context, department string) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("department = ?", department).
		Order("created_at DESC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{ID: event.ID}).Updates(map[string]interface{}{
		"title":            event.Title,
		"description":      event.Description,
		"date":             event.Date,
		"time":             event.Time,
		"venue":            event.Venue,
		"max_participants": event.MaxParticipants,
	})
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Event{ID: id}).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// incrementParticipants bumps the counter only while below capacity, as one
// conditional UPDATE. Zero rows affected means the event is full (or gone).
func (d *EventDAO) incrementParticipants(tx *gorm.DB, id uint) error {
	result := tx.Model(&Event{}).
		Where("id = ? AND current_participants < max_participants", id).
		UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventFull
	}

	return nil
}

// decrementParticipants lowers the counter, floored at zero.
func (d *EventDAO) decrementParticipants(tx *gorm.DB, id uint) error {
	return tx.Model(&Event{}).
		Where("id = ?", id).
		UpdateColumn("current_participants", gorm.Expr("GREATEST(current_participants - 1, 0)")).
		Error
}

func (d *EventDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	result := d.db.WithContext(ctx).Model(&Event{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}

	return counts, nil
}

func (d *EventDAO) CountByDepartment(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Department string
		Count      int64
	}

	var rows []row
	result := d.db.WithContext(ctx).Model(&Event{}).
		Select("department, COUNT(*) AS count").
		Group("department").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Department] = r.Count
	}

	return counts, nil
}

// CountCompleted counts approved events whose date has passed. Completed is a
// derived label, so the rollup derives it in SQL the same way reads do.
func (d *EventDAO) CountCompleted(ctx context.Context, now time.Time) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("status = ? AND date < ?", "Approved", now).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
