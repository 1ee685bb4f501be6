package repository

import (
	"context"
	"fmt"

	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/repository/dao"
)

var ErrTaskNotFound = dao.ErrTaskNotFound

type TaskDAO interface {
	Insert(ctx context.Context, task dao.Task) (dao.Task, error)
	FindByID(ctx context.Context, id uint) (dao.Task, error)
	FindAll(ctx context.Context) ([]dao.Task, error)
	FindByAssignee(ctx context.Context, userID uint) ([]dao.Task, error)
	Update(ctx context.Context, task dao.Task) (dao.Task, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type TaskRepository struct {
	dao TaskDAO
}

func NewTaskRepository(dao TaskDAO) *TaskRepository {
	return &TaskRepository{
		dao: dao,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(task))
	if err != nil {
		return domain.Task{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (domain.Task, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TaskRepository) FindByAssignee(ctx context.Context, userID uint) ([]domain.Task, error) {
	found, err := r.dao.FindByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAssignee -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(task))
	if err != nil {
		return domain.Task{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id uint, status domain.TaskStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TaskRepository) domainToDao(t domain.Task) dao.Task {
	return dao.Task{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		EventID:        t.EventID,
		EventTitle:     t.EventTitle,
		AssignedTo:     t.AssignedTo,
		AssignedToName: t.AssignedToName,
		DueDate:        t.DueDate,
		Status:         string(t.Status),
		CreatedBy:      t.CreatedBy,
	}
}

func (r *TaskRepository) daoToDomain(t dao.Task) domain.Task {
	return domain.Task{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		EventID:        t.EventID,
		EventTitle:     t.EventTitle,
		AssignedTo:     t.AssignedTo,
		AssignedToName: t.AssignedToName,
		DueDate:        t.DueDate,
		Status:         domain.TaskStatus(t.Status),
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (r *TaskRepository) daosToDomain(tasks []dao.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = r.daoToDomain(t)
	}

	return out
}
