package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/repository"
)

var (
	ErrDepartmentNotFound = repository.ErrDepartmentNotFound
	ErrDepartmentExists   = repository.ErrDepartmentExists
)

type DepartmentRepository interface {
	Create(ctx context.Context, department domain.Department) (domain.Department, error)
	FindByID(ctx context.Context, id uint) (domain.Department, error)
	FindAll(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, department domain.Department) (domain.Department, error)
	Delete(ctx context.Context, id uint) error
}

type DepartmentUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	ClearDepartment(ctx context.Context, id uint) error
}

type DepartmentService struct {
	repo     DepartmentRepository
	userRepo DepartmentUserRepository
}

func NewDepartmentService(repo DepartmentRepository, userRepo DepartmentUserRepository) *DepartmentService {
	return &DepartmentService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *DepartmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return departments, nil
}

func (s *DepartmentService) GetDepartment(ctx context.Context, id uint) (domain.Department, error) {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Department{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return department, nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, actor domain.User, department domain.Department) (domain.Department, error) {
	if !actor.IsAdmin() {
		return domain.Department{}, ErrForbidden
	}

	created, err := s.repo.Create(ctx, department)
	if err != nil {
		return domain.Department{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, actor domain.User, department domain.Department) (domain.Department, error) {
	if !actor.IsAdmin() {
		return domain.Department{}, ErrForbidden
	}

	if department.HodID != nil {
		hod, err := s.userRepo.FindByID(ctx, *department.HodID)
		if err != nil {
			return domain.Department{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
		}
		if hod.Role != domain.RoleHOD {
			return domain.Department{}, ErrInvalidRole
		}
	}

	updated, err := s.repo.Update(ctx, department)
	if err != nil {
		return domain.Department{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteDepartment removes a department and clears the assigned HOD's
// department reference. The clear is best-effort, not transactional.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, actor domain.User, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	if department.HodID != nil {
		if err = s.userRepo.ClearDepartment(ctx, *department.HodID); err != nil {
			zap.L().Warn("failed to clear HOD department reference",
				zap.Uint("department_id", id),
				zap.Uint("hod_id", *department.HodID),
				zap.Error(err),
			)
		}
	}

	return nil
}
