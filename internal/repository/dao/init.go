package dao

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/collegehub/collegehub-api/internal/config"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Department{},
		&Event{},
		&Participation{},
		&Task{},
	)
}

// defaultDepartments is the stock directory created on an empty database.
var defaultDepartments = []Department{
	{Name: "Computer Science", Code: "CS"},
	{Name: "Electrical Engineering", Code: "EE"},
	{Name: "Mechanical Engineering", Code: "ME"},
	{Name: "Civil Engineering", Code: "CE"},
	{Name: "Information Technology", Code: "IT"},
	{Name: "Electronics & Communication", Code: "EC"},
	{Name: "Business Administration", Code: "BA"},
	{Name: "Humanities", Code: "HUM"},
}

// SeedDefaults creates the one admin account and the stock departments on
// first boot. Both are idempotent; admins are never created through the API.
func SeedDefaults(db *gorm.DB, conf *config.SeedConfig) error {
	ctx := context.Background()

	departmentDAO := NewDepartmentDAO(db)
	count, err := departmentDAO.Count(ctx)
	if err != nil {
		return fmt.Errorf("departmentDAO.Count -> %w", err)
	}
	if count == 0 {
		for _, department := range defaultDepartments {
			if _, err = departmentDAO.Insert(ctx, department); err != nil {
				return fmt.Errorf("departmentDAO.Insert -> %w", err)
			}
		}
	}

	if conf == nil || conf.AdminEmail == "" {
		return nil
	}

	userDAO := NewUserDAO(db)
	if _, err = userDAO.FindByEmail(ctx, conf.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("userDAO.FindByEmail -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(conf.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	_, err = userDAO.Insert(ctx, User{
		FirstName: conf.AdminFirstName,
		LastName:  conf.AdminLastName,
		Email:     conf.AdminEmail,
		Password:  string(hash),
		Role:      "admin",
	})
	if err != nil {
		return fmt.Errorf("userDAO.Insert -> %w", err)
	}

	return nil
}
