package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegehub/collegehub-api/internal/domain"
)

type fakeEventRepo struct {
	nextID uint
	events map[uint]domain.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		nextID: 1,
		events: make(map[uint]domain.Event),
	}
}

func (r *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = r.nextID
	r.nextID++
	r.events[event.ID] = event

	return event, nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}

	return event, nil
}

func (r *fakeEventRepo) FindAll(_ context.Context) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(r.events))
	for _, event := range r.events {
		events = append(events, event)
	}

	return events, nil
}

func (r *fakeEventRepo) FindByDepartment(_ context.Context, department string) ([]domain.Event, error) {
	var events []domain.Event
	for _, event := range r.events {
		if event.Department == department {
			events = append(events, event)
		}
	}

	return events, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	current, ok := r.events[event.ID]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}

	event.Status = current.Status
	event.CurrentParticipants = current.CurrentParticipants
	r.events[event.ID] = event

	return event, nil
}

func (r *fakeEventRepo) UpdateStatus(_ context.Context, id uint, status domain.EventStatus) error {
	event, ok := r.events[id]
	if !ok {
		return ErrEventNotFound
	}

	event.Status = status
	r.events[id] = event

	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.events[id]; !ok {
		return ErrEventNotFound
	}

	delete(r.events, id)

	return nil
}

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestEventService(repo *fakeEventRepo) *EventService {
	departments := newFakeDepartmentRepo()
	for _, name := range []string{"CS", "EE"} {
		_, _ = departments.Create(context.Background(), domain.Department{Name: name, Code: name})
	}

	svc := NewEventService(repo, departments)
	svc.now = func() time.Time { return testNow }

	return svc
}

func TestEventService_CreateEvent(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	faculty := domain.User{ID: 2, Role: domain.RoleFaculty, Department: "CS", FirstName: "Grace"}
	student := domain.User{ID: 3, Role: domain.RoleStudent, Department: "CS"}

	t.Run("faculty is bound to own department", func(t *testing.T) {
		svc := newTestEventService(newFakeEventRepo())

		created, err := svc.CreateEvent(context.Background(), faculty, domain.Event{
			Title:      "Tech Talk",
			Department: "EE",
			Date:       testNow.AddDate(0, 1, 0),
		})
		require.NoError(t, err)

		assert.Equal(t, "CS", created.Department)
		assert.Equal(t, domain.EventPending, created.Status)
		assert.Equal(t, 0, created.CurrentParticipants)
		assert.Equal(t, faculty.ID, created.CreatedBy)
		assert.Equal(t, "Grace", created.CreatedByName)
	})

	t.Run("admin may create for any department", func(t *testing.T) {
		svc := newTestEventService(newFakeEventRepo())

		created, err := svc.CreateEvent(context.Background(), admin, domain.Event{
			Title:      "Career Fair",
			Department: "EE",
			Date:       testNow.AddDate(0, 1, 0),
		})
		require.NoError(t, err)

		assert.Equal(t, "EE", created.Department)
	})

	t.Run("admin without department is rejected", func(t *testing.T) {
		svc := newTestEventService(newFakeEventRepo())

		_, err := svc.CreateEvent(context.Background(), admin, domain.Event{Title: "Career Fair"})

		assert.ErrorIs(t, err, ErrDepartmentRequired)
	})

	t.Run("unknown department is rejected", func(t *testing.T) {
		svc := newTestEventService(newFakeEventRepo())

		_, err := svc.CreateEvent(context.Background(), admin, domain.Event{
			Title:      "Career Fair",
			Department: "Astrology",
			Date:       testNow.AddDate(0, 1, 0),
		})

		assert.ErrorIs(t, err, ErrDepartmentNotFound)
	})

	t.Run("student may not create events", func(t *testing.T) {
		svc := newTestEventService(newFakeEventRepo())

		_, err := svc.CreateEvent(context.Background(), student, domain.Event{Title: "Party"})

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestEventService_ChangeStatus(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	csHOD := domain.User{ID: 2, Role: domain.RoleHOD, Department: "CS"}
	eeHOD := domain.User{ID: 3, Role: domain.RoleHOD, Department: "EE"}
	faculty := domain.User{ID: 4, Role: domain.RoleFaculty, Department: "CS"}

	seed := func(t *testing.T, repo *fakeEventRepo, status domain.EventStatus, date time.Time) domain.Event {
		t.Helper()

		event, err := repo.Create(context.Background(), domain.Event{
			Title:      "Hackathon",
			Department: "CS",
			Status:     status,
			Date:       date,
			CreatedBy:  faculty.ID,
		})
		require.NoError(t, err)

		return event
	}

	t.Run("department HOD approves a pending event", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event := seed(t, repo, domain.EventPending, testNow.AddDate(0, 1, 0))

		updated, err := svc.ChangeStatus(context.Background(), csHOD, event.ID, domain.EventApproved)
		require.NoError(t, err)

		assert.Equal(t, domain.EventApproved, updated.Status)
		assert.Equal(t, domain.EventApproved, repo.events[event.ID].Status)
	})

	t.Run("HOD of another department is forbidden", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event := seed(t, repo, domain.EventPending, testNow.AddDate(0, 1, 0))

		_, err := svc.ChangeStatus(context.Background(), eeHOD, event.ID, domain.EventApproved)

		assert.ErrorIs(t, err, ErrForbidden)
		assert.Equal(t, domain.EventPending, repo.events[event.ID].Status)
	})

	t.Run("admin bypasses the department guard", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event := seed(t, repo, domain.EventPending, testNow.AddDate(0, 1, 0))

		_, err := svc.ChangeStatus(context.Background(), admin, event.ID, domain.EventRejected)

		require.NoError(t, err)
	})

	t.Run("faculty may not review", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event := seed(t, repo, domain.EventPending, testNow.AddDate(0, 1, 0))

		_, err := svc.ChangeStatus(context.Background(), faculty, event.ID, domain.EventApproved)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("rejected event can be re-approved", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event := seed(t, repo, domain.EventRejected, testNow.AddDate(0, 1, 0))

		updated, err := svc.ChangeStatus(context.Background(), csHOD, event.ID, domain.EventApproved)
		require.NoError(t, err)

		assert.Equal(t, domain.EventApproved, updated.Status)
	})

	t.Run("approval can be revoked before the event runs", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event := seed(t, repo, domain.EventApproved, testNow.AddDate(0, 1, 0))

		updated, err := svc.ChangeStatus(context.Background(), csHOD, event.ID, domain.EventRejected)
		require.NoError(t, err)

		assert.Equal(t, domain.EventRejected, updated.Status)
	})

	t.Run("completed event is no longer actionable", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event := seed(t, repo, domain.EventApproved, testNow.AddDate(0, 0, -1))

		_, err := svc.ChangeStatus(context.Background(), csHOD, event.ID, domain.EventRejected)

		assert.ErrorIs(t, err, ErrEventCompleted)
	})

	t.Run("pending event past its date cannot be approved", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event := seed(t, repo, domain.EventPending, testNow.AddDate(0, 0, -3))

		_, err := svc.ChangeStatus(context.Background(), csHOD, event.ID, domain.EventApproved)

		assert.ErrorIs(t, err, ErrEventCompleted)
		assert.Equal(t, domain.EventPending, repo.events[event.ID].Status)
	})

	t.Run("self transition is invalid", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event := seed(t, repo, domain.EventApproved, testNow.AddDate(0, 1, 0))

		_, err := svc.ChangeStatus(context.Background(), csHOD, event.ID, domain.EventApproved)

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := newTestEventService(newFakeEventRepo())

		_, err := svc.ChangeStatus(context.Background(), admin, 42, domain.EventApproved)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	faculty := domain.User{ID: 4, Role: domain.RoleFaculty, Department: "CS"}
	other := domain.User{ID: 5, Role: domain.RoleFaculty, Department: "CS"}

	t.Run("creator edits details", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event, err := repo.Create(context.Background(), domain.Event{
			Title:      "Workshop",
			Department: "CS",
			Status:     domain.EventPending,
			Date:       testNow.AddDate(0, 1, 0),
			CreatedBy:  faculty.ID,
		})
		require.NoError(t, err)

		event.Title = "Go Workshop"
		event.MaxParticipants = 50

		updated, err := svc.UpdateEvent(context.Background(), faculty, event)
		require.NoError(t, err)

		assert.Equal(t, "Go Workshop", updated.Title)
		assert.Equal(t, 50, updated.MaxParticipants)
	})

	t.Run("non-creator is forbidden", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event, err := repo.Create(context.Background(), domain.Event{
			Title:     "Workshop",
			Status:    domain.EventPending,
			Date:      testNow.AddDate(0, 1, 0),
			CreatedBy: faculty.ID,
		})
		require.NoError(t, err)

		_, err = svc.UpdateEvent(context.Background(), other, event)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("capacity cannot shrink below the registered headcount", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo)
		event, err := repo.Create(context.Background(), domain.Event{
			Title:               "Workshop",
			Status:              domain.EventApproved,
			Date:                testNow.AddDate(0, 1, 0),
			CreatedBy:           faculty.ID,
			MaxParticipants:     100,
			CurrentParticipants: 40,
		})
		require.NoError(t, err)

		event.MaxParticipants = 10

		updated, err := svc.UpdateEvent(context.Background(), faculty, event)
		require.NoError(t, err)

		assert.Equal(t, 40, updated.MaxParticipants)
	})
}

func TestEventService_ListPendingForReview(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}
	csHOD := domain.User{ID: 2, Role: domain.RoleHOD, Department: "CS"}
	student := domain.User{ID: 3, Role: domain.RoleStudent}

	repo := newFakeEventRepo()
	svc := newTestEventService(repo)

	for _, event := range []domain.Event{
		{Title: "CS Pending", Department: "CS", Status: domain.EventPending},
		{Title: "CS Approved", Department: "CS", Status: domain.EventApproved},
		{Title: "EE Pending", Department: "EE", Status: domain.EventPending},
	} {
		_, err := repo.Create(context.Background(), event)
		require.NoError(t, err)
	}

	t.Run("HOD sees only their department's pending events", func(t *testing.T) {
		pending, err := svc.ListPendingForReview(context.Background(), csHOD)
		require.NoError(t, err)

		require.Len(t, pending, 1)
		assert.Equal(t, "CS Pending", pending[0].Title)
	})

	t.Run("admin sees every pending event", func(t *testing.T) {
		pending, err := svc.ListPendingForReview(context.Background(), admin)
		require.NoError(t, err)

		assert.Len(t, pending, 2)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		_, err := svc.ListPendingForReview(context.Background(), student)

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestEventService_GetEvent_DerivesCompleted(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestEventService(repo)

	event, err := repo.Create(context.Background(), domain.Event{
		Title:  "Past Conference",
		Status: domain.EventApproved,
		Date:   testNow.AddDate(0, 0, -2),
	})
	require.NoError(t, err)

	got, err := svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.EventCompleted, got.Status)
	// Stored status is untouched.
	assert.Equal(t, domain.EventApproved, repo.events[event.ID].Status)
}
