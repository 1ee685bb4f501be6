package repository

import (
	"context"
	"fmt"

	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/repository/dao"
)

var (
	ErrDepartmentNotFound = dao.ErrDepartmentNotFound
	ErrDepartmentExists   = dao.ErrDepartmentExists
)

type DepartmentDAO interface {
	Insert(ctx context.Context, department dao.Department) (dao.Department, error)
	FindByID(ctx context.Context, id uint) (dao.Department, error)
	FindByName(ctx context.Context, name string) (dao.Department, error)
	FindAll(ctx context.Context) ([]dao.Department, error)
	Update(ctx context.Context, department dao.Department) (dao.Department, error)
	Delete(ctx context.Context, id uint) error
}

type DepartmentRepository struct {
	dao DepartmentDAO
}

func NewDepartmentRepository(dao DepartmentDAO) *DepartmentRepository {
	return &DepartmentRepository{
		dao: dao,
	}
}

func (r *DepartmentRepository) Create(ctx context.Context, department domain.Department) (domain.Department, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(department))
	if err != nil {
		return domain.Department{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *DepartmentRepository) FindByID(ctx context.Context, id uint) (domain.Department, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Department{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *DepartmentRepository) FindByName(ctx context.Context, name string) (domain.Department, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.Department{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *DepartmentRepository) FindAll(ctx context.Context) ([]domain.Department, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	out := make([]domain.Department, len(found))
	for i, d := range found {
		out[i] = r.daoToDomain(d)
	}

	return out, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, department domain.Department) (domain.Department, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(department))
	if err != nil {
		return domain.Department{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *DepartmentRepository) domainToDao(d domain.Department) dao.Department {
	return dao.Department{
		ID:          d.ID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		HodID:       d.HodID,
	}
}

func (r *DepartmentRepository) daoToDomain(d dao.Department) domain.Department {
	return domain.Department{
		ID:          d.ID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		HodID:       d.HodID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
