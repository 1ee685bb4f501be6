package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegehub/collegehub-api/internal/domain"
)

type fakeDepartmentRepo struct {
	nextID      uint
	departments map[uint]domain.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{
		nextID:      1,
		departments: make(map[uint]domain.Department),
	}
}

func (r *fakeDepartmentRepo) Create(_ context.Context, department domain.Department) (domain.Department, error) {
	for _, existing := range r.departments {
		if existing.Code == department.Code {
			return domain.Department{}, ErrDepartmentExists
		}
	}

	department.ID = r.nextID
	r.nextID++
	r.departments[department.ID] = department

	return department, nil
}

func (r *fakeDepartmentRepo) FindByID(_ context.Context, id uint) (domain.Department, error) {
	department, ok := r.departments[id]
	if !ok {
		return domain.Department{}, ErrDepartmentNotFound
	}

	return department, nil
}

func (r *fakeDepartmentRepo) FindByName(_ context.Context, name string) (domain.Department, error) {
	for _, department := range r.departments {
		if department.Name == name {
			return department, nil
		}
	}

	return domain.Department{}, ErrDepartmentNotFound
}

func (r *fakeDepartmentRepo) FindAll(_ context.Context) ([]domain.Department, error) {
	departments := make([]domain.Department, 0, len(r.departments))
	for _, department := range r.departments {
		departments = append(departments, department)
	}

	return departments, nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, department domain.Department) (domain.Department, error) {
	if _, ok := r.departments[department.ID]; !ok {
		return domain.Department{}, ErrDepartmentNotFound
	}

	r.departments[department.ID] = department

	return department, nil
}

func (r *fakeDepartmentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.departments[id]; !ok {
		return ErrDepartmentNotFound
	}

	delete(r.departments, id)

	return nil
}

type clearingUserRepo struct {
	*fakeUserRepo
	cleared []uint
}

func (r *clearingUserRepo) ClearDepartment(_ context.Context, id uint) error {
	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	user.Department = ""
	r.users[id] = user
	r.cleared = append(r.cleared, id)

	return nil
}

func TestDepartmentService_CreateDepartment(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	hod := domain.User{ID: 2, Role: domain.RoleHOD, Department: "CS"}

	t.Run("admin creates a department", func(t *testing.T) {
		svc := NewDepartmentService(newFakeDepartmentRepo(), &clearingUserRepo{fakeUserRepo: newFakeUserRepo()})

		created, err := svc.CreateDepartment(context.Background(), admin, domain.Department{
			Name: "Computer Science",
			Code: "CS",
		})
		require.NoError(t, err)

		assert.Equal(t, "CS", created.Code)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		svc := NewDepartmentService(newFakeDepartmentRepo(), &clearingUserRepo{fakeUserRepo: newFakeUserRepo()})

		_, err := svc.CreateDepartment(context.Background(), admin, domain.Department{Name: "Computer Science", Code: "CS"})
		require.NoError(t, err)

		_, err = svc.CreateDepartment(context.Background(), admin, domain.Department{Name: "Cyber Security", Code: "CS"})

		assert.ErrorIs(t, err, ErrDepartmentExists)
	})

	t.Run("HOD may not create departments", func(t *testing.T) {
		svc := NewDepartmentService(newFakeDepartmentRepo(), &clearingUserRepo{fakeUserRepo: newFakeUserRepo()})

		_, err := svc.CreateDepartment(context.Background(), hod, domain.Department{Name: "Robotics", Code: "RO"})

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestDepartmentService_UpdateDepartment(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	hod := domain.User{ID: 2, Role: domain.RoleHOD, Department: "CS"}
	faculty := domain.User{ID: 3, Role: domain.RoleFaculty, Department: "CS"}

	setup := func(t *testing.T) (*DepartmentService, domain.Department) {
		t.Helper()

		repo := newFakeDepartmentRepo()
		svc := NewDepartmentService(repo, &clearingUserRepo{fakeUserRepo: newFakeUserRepo(hod, faculty)})

		department, err := svc.CreateDepartment(context.Background(), admin, domain.Department{
			Name: "Computer Science",
			Code: "CS",
		})
		require.NoError(t, err)

		return svc, department
	}

	t.Run("admin assigns an HOD", func(t *testing.T) {
		svc, department := setup(t)
		department.HodID = &hod.ID

		updated, err := svc.UpdateDepartment(context.Background(), admin, department)
		require.NoError(t, err)

		require.NotNil(t, updated.HodID)
		assert.Equal(t, hod.ID, *updated.HodID)
	})

	t.Run("assignee must hold the hod role", func(t *testing.T) {
		svc, department := setup(t)
		department.HodID = &faculty.ID

		_, err := svc.UpdateDepartment(context.Background(), admin, department)

		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestDepartmentService_DeleteDepartment(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	hod := domain.User{ID: 2, Role: domain.RoleHOD, Department: "CS"}

	repo := newFakeDepartmentRepo()
	users := &clearingUserRepo{fakeUserRepo: newFakeUserRepo(hod)}
	svc := NewDepartmentService(repo, users)

	department, err := svc.CreateDepartment(context.Background(), admin, domain.Department{
		Name: "Computer Science",
		Code: "CS",
	})
	require.NoError(t, err)

	department.HodID = &hod.ID
	_, err = svc.UpdateDepartment(context.Background(), admin, department)
	require.NoError(t, err)

	err = svc.DeleteDepartment(context.Background(), admin, department.ID)
	require.NoError(t, err)

	_, err = svc.GetDepartment(context.Background(), department.ID)
	assert.ErrorIs(t, err, ErrDepartmentNotFound)

	// The assigned HOD's department reference is cleared.
	assert.Equal(t, []uint{hod.ID}, users.cleared)
	assert.Empty(t, users.users[hod.ID].Department)
}
