package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

type Task struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`

	EventID    uint `gorm:"not null;index"`
	EventTitle string

	AssignedTo     uint `gorm:"not null;index"`
	AssignedToName string

	DueDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;default:'Pending'"` // "Pending", "In Progress", or "Completed"
	CreatedBy uint      `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TaskDAO struct {
	db *gorm.DB
}

func NewTaskDAO(db *gorm.DB) *TaskDAO {
	return &TaskDAO{
		db: db,
	}
}

func (d *TaskDAO) Insert(ctx context.Context, task Task) (Task, error) {
	result := d.db.WithContext(ctx).Create(&task)
	if result.Error != nil {
		return Task{}, result.Error
	}

	return task, nil
}

func (d *TaskDAO) FindByID(ctx context.Context, id uint) (Task, error) {
	var task Task

	result := d.db.WithContext(ctx).First(&task, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Task{}, ErrTaskNotFound
		}

		return Task{}, result.Error
	}

	return task, nil
}

func (d *TaskDAO) FindAll(ctx context.Context) ([]Task, error) {
	var tasks []Task

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}

	return tasks, nil
}

func (d *TaskDAO) FindByAssignee(ctx context.Context, userID uint) ([]Task, error) {
	var tasks []Task

	result := d.db.WithContext(ctx).
		Where("assigned_to = ?", userID).
		Order("created_at DESC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}

	return tasks, nil
}

func (d *TaskDAO) Update(ctx context.Context, task Task) (Task, error) {
	result := d.db.WithContext(ctx).Model(&Task{ID: task.ID}).Updates(map[string]interface{}{
		"title":       task.Title,
		"description": task.Description,
		"due_date":    task.DueDate,
		"status":      task.Status,
		"assigned_to": task.AssignedTo,
	})
	if result.Error != nil {
		return Task{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Task{}, ErrTaskNotFound
	}

	return d.FindByID(ctx, task.ID)
}

func (d *TaskDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Task{ID: id}).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (d *TaskDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
