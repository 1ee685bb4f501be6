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
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentExists   = errors.New("department code already exists")
)

type Department struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Code        string `gorm:"unique;not null"`
	Description string
	HodID       *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type DepartmentDAO struct {
	db *gorm.DB
}

func NewDepartmentDAO(db *gorm.DB) *DepartmentDAO {
	return &DepartmentDAO{
		db: db,
	}
}

func (d *DepartmentDAO) Insert(ctx context.Context, department Department) (Department, error) {
	result := d.db.WithContext(ctx).Create(&department)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_departments_code"`) {
			return Department{}, ErrDepartmentExists
		}

		return Department{}, result.Error
	}

	return department, nil
}

func (d *DepartmentDAO) FindByID(ctx context.Context, id uint) (Department, error) {
	var department Department

	result := d.db.WithContext(ctx).First(&department, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Department{}, ErrDepartmentNotFound
		}

		return Department{}, result.Error
	}

	return department, nil
}

func (d *DepartmentDAO) FindByName(ctx context.Context, name string) (Department, error) {
	var department Department

	result := d.db.WithContext(ctx).First(&department, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Department{}, ErrDepartmentNotFound
		}

		return Department{}, result.Error
	}

	return department, nil
}

func (d *DepartmentDAO) FindAll(ctx context.Context) ([]Department, error) {
	var departments []Department

	result := d.db.WithContext(ctx).Order("name ASC").Find(&departments)
	if result.Error != nil {
		return nil, result.Error
	}

	return departments, nil
}

func (d *DepartmentDAO) Update(ctx context.Context, department Department) (Department, error) {
	result := d.db.WithContext(ctx).Model(&Department{ID: department.ID}).Updates(map[string]interface{}{
		"name":        department.Name,
		"code":        department.Code,
		"description": department.Description,
		"hod_id":      department.HodID,
	})
	if result.Error != nil {
		return Department{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Department{}, ErrDepartmentNotFound
	}

	return d.FindByID(ctx, department.ID)
}

func (d *DepartmentDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}

	return nil
}

func (d *DepartmentDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Department{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
