package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/collegehub/collegehub-api/internal/domain"
)

func TestUserService_CreateUser(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	hod := domain.User{ID: 2, Role: domain.RoleHOD, Department: "CS"}
	faculty := domain.User{ID: 3, Role: domain.RoleFaculty, Department: "CS"}

	t.Run("admin creates an HOD for any department", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		created, err := svc.CreateUser(context.Background(), admin, domain.User{
			Email:      "hod@college.edu",
			Password:   "password1",
			Role:       domain.RoleHOD,
			Department: "EE",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.RoleHOD, created.Role)
		assert.Equal(t, "EE", created.Department)
		assert.Equal(t, admin.ID, created.CreatedBy)
		assert.NotEqual(t, "password1", created.Password)
	})

	t.Run("HOD creates faculty inside their own department only", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		created, err := svc.CreateUser(context.Background(), hod, domain.User{
			Email:      "prof@college.edu",
			Password:   "password1",
			Role:       domain.RoleFaculty,
			Department: "EE", // overridden
		})
		require.NoError(t, err)

		assert.Equal(t, "CS", created.Department)
	})

	t.Run("HOD may not create another HOD", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		_, err := svc.CreateUser(context.Background(), hod, domain.User{
			Email:    "other@college.edu",
			Password: "password1",
			Role:     domain.RoleHOD,
		})

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("faculty may not create users", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		_, err := svc.CreateUser(context.Background(), faculty, domain.User{
			Email:    "kid@college.edu",
			Password: "password1",
			Role:     domain.RoleStudent,
		})

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin accounts are never created at runtime", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		_, err := svc.CreateUser(context.Background(), admin, domain.User{
			Email:    "root@college.edu",
			Password: "password1",
			Role:     domain.RoleAdmin,
		})

		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		_, err := svc.CreateUser(context.Background(), admin, domain.User{
			Email:    "x@college.edu",
			Password: "password1",
			Role:     "janitor",
		})

		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	hod := domain.User{ID: 2, Role: domain.RoleHOD, Department: "CS"}
	student := domain.User{ID: 3, Role: domain.RoleStudent, Department: "CS"}

	repo := newFakeUserRepo(
		admin,
		hod,
		student,
		domain.User{ID: 4, Role: domain.RoleStudent, Department: "EE"},
	)
	svc := NewUserService(repo)

	t.Run("admin sees everyone", func(t *testing.T) {
		users, err := svc.ListUsers(context.Background(), admin)
		require.NoError(t, err)

		assert.Len(t, users, 4)
	})

	t.Run("HOD sees their department", func(t *testing.T) {
		users, err := svc.ListUsers(context.Background(), hod)
		require.NoError(t, err)

		assert.Len(t, users, 2)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		_, err := svc.ListUsers(context.Background(), student)

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("email and role stay immutable", func(t *testing.T) {
		student := domain.User{ID: 3, Role: domain.RoleStudent, Email: "ada@college.edu", Department: "CS"}
		repo := newFakeUserRepo(student)
		svc := NewUserService(repo)

		updated, err := svc.UpdateProfile(context.Background(), student, domain.User{
			FirstName:  "Ada",
			LastName:   "Lovelace",
			Email:      "hacker@college.edu",
			Role:       domain.RoleAdmin,
			Department: "EE",
			DOB:        "2001-12-10",
		})
		require.NoError(t, err)

		assert.Equal(t, "Ada", updated.FirstName)
		assert.Equal(t, "ada@college.edu", updated.Email)
		assert.Equal(t, domain.RoleStudent, updated.Role)
		assert.Equal(t, "EE", updated.Department)
		assert.Equal(t, "2001-12-10", updated.DOB)
	})

	t.Run("staff department is not self-editable", func(t *testing.T) {
		faculty := domain.User{ID: 4, Role: domain.RoleFaculty, Email: "prof@college.edu", Department: "CS"}
		repo := newFakeUserRepo(faculty)
		svc := NewUserService(repo)

		updated, err := svc.UpdateProfile(context.Background(), faculty, domain.User{
			FirstName:  "Grace",
			Department: "EE",
		})
		require.NoError(t, err)

		assert.Equal(t, "CS", updated.Department)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	seedStudent := func(t *testing.T) (*UserService, *fakeUserRepo, domain.User) {
		t.Helper()

		hashed, err := hashPassword("password1")
		require.NoError(t, err)
		student := domain.User{ID: 3, Role: domain.RoleStudent, Email: "ada@college.edu", Password: hashed}
		repo := newFakeUserRepo(student)

		return NewUserService(repo), repo, student
	}

	t.Run("stores a hash of the new password", func(t *testing.T) {
		svc, repo, student := seedStudent(t)

		err := svc.ChangePassword(context.Background(), student, "password1", "n3wpassword")
		require.NoError(t, err)

		stored := repo.users[student.ID].Password
		assert.NotEqual(t, "n3wpassword", stored)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("n3wpassword")))
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		svc, repo, student := seedStudent(t)

		err := svc.ChangePassword(context.Background(), student, "guess1234", "n3wpassword")

		assert.ErrorIs(t, err, ErrWrongPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[student.ID].Password), []byte("password1")))
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	hod := domain.User{ID: 2, Role: domain.RoleHOD, Department: "CS"}
	student := domain.User{ID: 3, Role: domain.RoleStudent}

	t.Run("admin deletes a student", func(t *testing.T) {
		repo := newFakeUserRepo(admin, student)
		svc := NewUserService(repo)

		err := svc.DeleteUser(context.Background(), admin, student.ID)
		require.NoError(t, err)

		_, err = svc.GetUser(context.Background(), student.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("only admins may delete", func(t *testing.T) {
		repo := newFakeUserRepo(hod, student)
		svc := NewUserService(repo)

		err := svc.DeleteUser(context.Background(), hod, student.ID)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin accounts are undeletable", func(t *testing.T) {
		repo := newFakeUserRepo(admin)
		svc := NewUserService(repo)

		err := svc.DeleteUser(context.Background(), admin, admin.ID)

		assert.ErrorIs(t, err, ErrAdminUndeletable)
	})
}
