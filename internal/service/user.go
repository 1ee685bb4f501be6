package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/collegehub/collegehub-api/internal/domain"
)

var ErrAdminUndeletable = errors.New("admin accounts cannot be deleted")

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByDepartment(ctx context.Context, department string) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hashed string) error
	Delete(ctx context.Context, id uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// CreateUser is the privileged creation path: admin creates HODs (any
// department), HOD creates faculty inside their own department. Students
// go through AuthService.SignupStudent; admins are seeded, never created.
func (s *UserService) CreateUser(ctx context.Context, actor domain.User, user domain.User) (domain.User, error) {
	if !domain.ValidRole(user.Role) || user.Role == domain.RoleAdmin {
		return domain.User{}, ErrInvalidRole
	}

	if !actor.CanCreateRole(user.Role) {
		return domain.User{}, ErrForbidden
	}

	// HODs can only staff their own department.
	if actor.Role == domain.RoleHOD {
		user.Department = actor.Department
	}

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hashed
	user.CreatedBy = actor.ID

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// ListUsers returns all users for admins and the actor's own department for
// HODs; other roles get nothing.
func (s *UserService) ListUsers(ctx context.Context, actor domain.User) ([]domain.User, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		users, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		return users, nil
	case domain.RoleHOD:
		users, err := s.repo.FindByDepartment(ctx, actor.Department)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByDepartment -> %w", err)
		}

		return users, nil
	default:
		return nil, ErrForbidden
	}
}

// UpdateProfile lets users edit their own record. Email and role are
// immutable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.User, update domain.User) (domain.User, error) {
	current, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	current.FirstName = update.FirstName
	current.LastName = update.LastName
	current.DOB = update.DOB
	if update.Department != "" && actor.Role == domain.RoleStudent {
		current.Department = update.Department
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// ChangePassword re-verifies the current password before storing the new
// hash. Strength rules for the new password live at the request layer.
func (s *UserService) ChangePassword(ctx context.Context, actor domain.User, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, actor.ID, hashed); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// DeleteUser removes an account. Only admins may delete, and accounts with
// role admin are undeletable regardless of caller.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.User, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if target.IsAdmin() {
		return ErrAdminUndeletable
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
