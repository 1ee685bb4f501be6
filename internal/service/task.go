package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/repository"
)

var (
	ErrTaskNotFound      = repository.ErrTaskNotFound
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	FindByID(ctx context.Context, id uint) (domain.Task, error)
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByAssignee(ctx context.Context, userID uint) ([]domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TaskStatus) error
	Delete(ctx context.Context, id uint) error
}

type TaskEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type TaskUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type TaskService struct {
	repo      TaskRepository
	eventRepo TaskEventRepository
	userRepo  TaskUserRepository
}

func NewTaskService(repo TaskRepository, eventRepo TaskEventRepository, userRepo TaskUserRepository) *TaskService {
	return &TaskService{
		repo:      repo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// CreateTask assigns a volunteer task on an event the actor manages. The
// event title and assignee name are denormalized at creation time.
func (s *TaskService) CreateTask(ctx context.Context, actor domain.User, task domain.Task) (domain.Task, error) {
	if actor.Role != domain.RoleFaculty && !actor.IsAdmin() {
		return domain.Task{}, ErrForbidden
	}

	event, err := s.eventRepo.FindByID(ctx, task.EventID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if !canManageEvent(actor, event) {
		return domain.Task{}, ErrForbidden
	}

	assignee, err := s.userRepo.FindByID(ctx, task.AssignedTo)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	task.EventTitle = event.Title
	task.AssignedToName = assignee.FullName()
	task.CreatedBy = actor.ID
	if task.Status == "" {
		task.Status = domain.TaskPending
	}
	if !domain.ValidTaskStatus(task.Status) {
		return domain.Task{}, ErrInvalidTaskStatus
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return tasks, nil
}

func (s *TaskService) ListMyTasks(ctx context.Context, actor domain.User, userID uint) ([]domain.Task, error) {
	if actor.Role == domain.RoleStudent && actor.ID != userID {
		return nil, ErrForbidden
	}

	tasks, err := s.repo.FindByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByAssignee -> %w", err)
	}

	return tasks, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, actor domain.User, task domain.Task) (domain.Task, error) {
	current, err := s.repo.FindByID(ctx, task.ID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !canManageTask(actor, current) {
		return domain.Task{}, ErrForbidden
	}
	if !domain.ValidTaskStatus(task.Status) {
		return domain.Task{}, ErrInvalidTaskStatus
	}

	if task.AssignedTo != current.AssignedTo {
		assignee, err := s.userRepo.FindByID(ctx, task.AssignedTo)
		if err != nil {
			return domain.Task{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
		}
		task.AssignedToName = assignee.FullName()
	}

	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// SetStatus is the narrow path assignees get: a student may move their own
// task between the three statuses, in any order.
func (s *TaskService) SetStatus(ctx context.Context, actor domain.User, id uint, status domain.TaskStatus) (domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !canManageTask(actor, task) && task.AssignedTo != actor.ID {
		return domain.Task{}, ErrForbidden
	}
	if !domain.ValidTaskStatus(status) {
		return domain.Task{}, ErrInvalidTaskStatus
	}

	if err = s.repo.UpdateStatus(ctx, id, status); err != nil {
		return domain.Task{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	task.Status = status

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actor domain.User, id uint) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !canManageTask(actor, task) {
		return ErrForbidden
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
