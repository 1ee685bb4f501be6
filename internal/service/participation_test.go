package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegehub/collegehub-api/internal/domain"
)

type fakeUserRepo struct {
	nextID uint
	users  map[uint]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{
		nextID: 1,
		users:  make(map[uint]domain.User),
	}
	for _, user := range users {
		if user.ID >= r.nextID {
			r.nextID = user.ID + 1
		}
		r.users[user.ID] = user
	}

	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.User{}, ErrUserEmailExists
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user

	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return domain.User{}, ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}

	return users, nil
}

func (r *fakeUserRepo) FindByDepartment(_ context.Context, department string) ([]domain.User, error) {
	var users []domain.User
	for _, user := range r.users {
		if user.Department == department {
			users = append(users, user)
		}
	}

	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return domain.User{}, ErrUserNotFound
	}

	r.users[user.ID] = user

	return user, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uint, hashed string) error {
	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	user.Password = hashed
	r.users[id] = user

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}

	delete(r.users, id)

	return nil
}

// fakeParticipationRepo mirrors the store's transactional semantics: the
// duplicate check fires before the capacity check, and registering bumps the
// event counter.
type fakeParticipationRepo struct {
	nextID         uint
	participations map[uint]domain.Participation
	events         *fakeEventRepo
}

func newFakeParticipationRepo(events *fakeEventRepo) *fakeParticipationRepo {
	return &fakeParticipationRepo{
		nextID:         1,
		participations: make(map[uint]domain.Participation),
		events:         events,
	}
}

func (r *fakeParticipationRepo) Register(_ context.Context, participation domain.Participation) (domain.Participation, error) {
	for _, existing := range r.participations {
		if existing.EventID == participation.EventID && existing.StudentID == participation.StudentID {
			return domain.Participation{}, ErrAlreadyRegistered
		}
	}

	event := r.events.events[participation.EventID]
	if event.IsFull() {
		return domain.Participation{}, ErrEventFull
	}
	event.CurrentParticipants++
	r.events.events[event.ID] = event

	participation.ID = r.nextID
	r.nextID++
	r.participations[participation.ID] = participation

	return participation, nil
}

func (r *fakeParticipationRepo) Unregister(_ context.Context, id uint) error {
	participation, ok := r.participations[id]
	if !ok {
		return ErrParticipationNotFound
	}

	event := r.events.events[participation.EventID]
	if event.CurrentParticipants > 0 {
		event.CurrentParticipants--
	}
	r.events.events[event.ID] = event

	delete(r.participations, id)

	return nil
}

func (r *fakeParticipationRepo) FindByID(_ context.Context, id uint) (domain.Participation, error) {
	participation, ok := r.participations[id]
	if !ok {
		return domain.Participation{}, ErrParticipationNotFound
	}

	return participation, nil
}

func (r *fakeParticipationRepo) FindByEventID(_ context.Context, eventID uint) ([]domain.Participation, error) {
	var participations []domain.Participation
	for _, participation := range r.participations {
		if participation.EventID == eventID {
			participations = append(participations, participation)
		}
	}

	return participations, nil
}

func (r *fakeParticipationRepo) FindByStudentID(_ context.Context, studentID uint) ([]domain.Participation, error) {
	var participations []domain.Participation
	for _, participation := range r.participations {
		if participation.StudentID == studentID {
			participations = append(participations, participation)
		}
	}

	return participations, nil
}

func (r *fakeParticipationRepo) UpdateStatus(_ context.Context, eventID, id uint, status domain.ParticipationStatus) error {
	participation, ok := r.participations[id]
	if !ok || participation.EventID != eventID {
		return ErrParticipationNotFound
	}

	participation.Status = status
	r.participations[id] = participation

	return nil
}

type channelMailer struct {
	sent chan string
}

func newChannelMailer() *channelMailer {
	return &channelMailer{sent: make(chan string, 1)}
}

func (m *channelMailer) Send(to, _, _ string) {
	m.sent <- to
}

type participationFixture struct {
	svc    *ParticipationService
	events *fakeEventRepo
	repo   *fakeParticipationRepo
	mailer *channelMailer
}

func newParticipationFixture(users *fakeUserRepo) participationFixture {
	events := newFakeEventRepo()
	repo := newFakeParticipationRepo(events)
	mailer := newChannelMailer()

	svc := NewParticipationService(repo, events, users, mailer)
	svc.now = func() time.Time { return testNow }

	return participationFixture{
		svc:    svc,
		events: events,
		repo:   repo,
		mailer: mailer,
	}
}

func TestParticipationService_Register(t *testing.T) {
	student := domain.User{ID: 10, Role: domain.RoleStudent, FirstName: "Ada", LastName: "Lovelace", Email: "ada@college.edu"}
	faculty := domain.User{ID: 11, Role: domain.RoleFaculty, Email: "prof@college.edu"}
	users := newFakeUserRepo(student, faculty)

	approvedEvent := domain.Event{
		Title:           "AI Summit",
		Venue:           "Main Hall",
		Status:          domain.EventApproved,
		Date:            testNow.AddDate(0, 0, 7),
		MaxParticipants: 2,
	}

	t.Run("student registers for an approved event", func(t *testing.T) {
		fx := newParticipationFixture(users)
		event, err := fx.events.Create(context.Background(), approvedEvent)
		require.NoError(t, err)

		created, err := fx.svc.Register(context.Background(), event.ID, student.ID)
		require.NoError(t, err)

		assert.Equal(t, domain.ParticipationRegistered, created.Status)
		assert.Equal(t, "AI Summit", created.EventTitle)
		assert.Equal(t, "Ada Lovelace", created.StudentName)
		assert.Equal(t, "ada@college.edu", created.StudentEmail)
		assert.Equal(t, 1, fx.events.events[event.ID].CurrentParticipants)

		select {
		case to := <-fx.mailer.sent:
			assert.Equal(t, "ada@college.edu", to)
		case <-time.After(time.Second):
			t.Fatal("expected a confirmation mail")
		}
	})

	t.Run("pending event is not open for registration", func(t *testing.T) {
		fx := newParticipationFixture(users)
		event, err := fx.events.Create(context.Background(), domain.Event{
			Status: domain.EventPending,
			Date:   testNow.AddDate(0, 0, 7),
		})
		require.NoError(t, err)

		_, err = fx.svc.Register(context.Background(), event.ID, student.ID)

		assert.ErrorIs(t, err, ErrEventNotApproved)
	})

	t.Run("completed event is not open for registration", func(t *testing.T) {
		fx := newParticipationFixture(users)
		event, err := fx.events.Create(context.Background(), domain.Event{
			Status:          domain.EventApproved,
			Date:            testNow.AddDate(0, 0, -1),
			MaxParticipants: 100,
		})
		require.NoError(t, err)

		_, err = fx.svc.Register(context.Background(), event.ID, student.ID)

		assert.ErrorIs(t, err, ErrEventNotApproved)
	})

	t.Run("only students may register", func(t *testing.T) {
		fx := newParticipationFixture(users)
		event, err := fx.events.Create(context.Background(), approvedEvent)
		require.NoError(t, err)

		_, err = fx.svc.Register(context.Background(), event.ID, faculty.ID)

		assert.ErrorIs(t, err, ErrNotAStudent)
	})

	t.Run("duplicate registration conflicts even when the event is full", func(t *testing.T) {
		fx := newParticipationFixture(users)
		full := approvedEvent
		full.MaxParticipants = 1
		event, err := fx.events.Create(context.Background(), full)
		require.NoError(t, err)

		_, err = fx.svc.Register(context.Background(), event.ID, student.ID)
		require.NoError(t, err)

		_, err = fx.svc.Register(context.Background(), event.ID, student.ID)

		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("full event rejects new students", func(t *testing.T) {
		other := domain.User{ID: 12, Role: domain.RoleStudent, Email: "bob@college.edu"}
		fx := newParticipationFixture(newFakeUserRepo(student, other))
		full := approvedEvent
		full.MaxParticipants = 1
		event, err := fx.events.Create(context.Background(), full)
		require.NoError(t, err)

		_, err = fx.svc.Register(context.Background(), event.ID, student.ID)
		require.NoError(t, err)

		_, err = fx.svc.Register(context.Background(), event.ID, other.ID)

		assert.ErrorIs(t, err, ErrEventFull)
	})
}

func TestParticipationService_Unregister(t *testing.T) {
	student := domain.User{ID: 10, Role: domain.RoleStudent, Email: "ada@college.edu"}
	other := domain.User{ID: 12, Role: domain.RoleStudent, Email: "bob@college.edu"}
	users := newFakeUserRepo(student, other)

	setup := func(t *testing.T) (participationFixture, domain.Participation, domain.Event) {
		t.Helper()

		fx := newParticipationFixture(users)
		event, err := fx.events.Create(context.Background(), domain.Event{
			Status:          domain.EventApproved,
			Date:            testNow.AddDate(0, 0, 7),
			MaxParticipants: 10,
		})
		require.NoError(t, err)

		participation, err := fx.svc.Register(context.Background(), event.ID, student.ID)
		require.NoError(t, err)

		return fx, participation, event
	}

	t.Run("student cancels own registration and the counter drops", func(t *testing.T) {
		fx, participation, event := setup(t)

		err := fx.svc.Unregister(context.Background(), student, participation.ID)
		require.NoError(t, err)

		assert.Equal(t, 0, fx.events.events[event.ID].CurrentParticipants)
	})

	t.Run("student cannot cancel someone else's registration", func(t *testing.T) {
		fx, participation, _ := setup(t)

		err := fx.svc.Unregister(context.Background(), other, participation.ID)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin cancels any registration", func(t *testing.T) {
		fx, participation, _ := setup(t)
		admin := domain.User{ID: 1, Role: domain.RoleAdmin}

		err := fx.svc.Unregister(context.Background(), admin, participation.ID)

		require.NoError(t, err)
	})

	t.Run("unknown participation", func(t *testing.T) {
		fx, _, _ := setup(t)

		err := fx.svc.Unregister(context.Background(), student, 999)

		assert.ErrorIs(t, err, ErrParticipationNotFound)
	})
}

func TestParticipationService_SetAttendance(t *testing.T) {
	creator := domain.User{ID: 11, Role: domain.RoleFaculty, Department: "CS"}
	outsider := domain.User{ID: 13, Role: domain.RoleFaculty, Department: "CS"}
	students := []domain.User{
		{ID: 10, Role: domain.RoleStudent, Email: "ada@college.edu"},
		{ID: 12, Role: domain.RoleStudent, Email: "bob@college.edu"},
	}
	users := newFakeUserRepo(append(students, creator, outsider)...)

	setup := func(t *testing.T) (participationFixture, domain.Event, []domain.Participation) {
		t.Helper()

		fx := newParticipationFixture(users)
		event, err := fx.events.Create(context.Background(), domain.Event{
			Department:      "CS",
			Status:          domain.EventApproved,
			Date:            testNow.AddDate(0, 0, 7),
			MaxParticipants: 10,
			CreatedBy:       creator.ID,
		})
		require.NoError(t, err)

		participations := make([]domain.Participation, 0, len(students))
		for _, student := range students {
			participation, err := fx.svc.Register(context.Background(), event.ID, student.ID)
			require.NoError(t, err)
			participations = append(participations, participation)
		}

		return fx, event, participations
	}

	t.Run("batch marks present and absent independently", func(t *testing.T) {
		fx, event, participations := setup(t)

		result, err := fx.svc.SetAttendance(context.Background(), creator, event.ID, map[uint]bool{
			participations[0].ID: true,
			participations[1].ID: false,
		})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Updated)
		assert.Empty(t, result.Failed)
		assert.Equal(t, domain.ParticipationAttended, fx.repo.participations[participations[0].ID].Status)
		assert.Equal(t, domain.ParticipationAbsent, fx.repo.participations[participations[1].ID].Status)
	})

	t.Run("one bad entry does not sink the batch", func(t *testing.T) {
		fx, event, participations := setup(t)

		result, err := fx.svc.SetAttendance(context.Background(), creator, event.ID, map[uint]bool{
			participations[0].ID: true,
			999:                  true,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Updated)
		assert.Contains(t, result.Failed, uint(999))
		assert.Equal(t, domain.ParticipationAttended, fx.repo.participations[participations[0].ID].Status)
	})

	t.Run("unrelated faculty is forbidden", func(t *testing.T) {
		fx, event, participations := setup(t)

		_, err := fx.svc.SetAttendance(context.Background(), outsider, event.ID, map[uint]bool{
			participations[0].ID: true,
		})

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("department HOD may capture attendance", func(t *testing.T) {
		fx, event, participations := setup(t)
		hod := domain.User{ID: 2, Role: domain.RoleHOD, Department: "CS"}

		result, err := fx.svc.SetAttendance(context.Background(), hod, event.ID, map[uint]bool{
			participations[0].ID: true,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Updated)
	})
}

func TestParticipationService_AttendanceReport(t *testing.T) {
	creator := domain.User{ID: 11, Role: domain.RoleFaculty, Department: "CS"}
	student := domain.User{ID: 10, Role: domain.RoleStudent, FirstName: "Ada", LastName: "Lovelace", Email: "ada@college.edu"}
	users := newFakeUserRepo(student, creator)

	fx := newParticipationFixture(users)
	event, err := fx.events.Create(context.Background(), domain.Event{
		Department:      "CS",
		Status:          domain.EventApproved,
		Date:            testNow.AddDate(0, 0, 7),
		MaxParticipants: 10,
		CreatedBy:       creator.ID,
	})
	require.NoError(t, err)

	_, err = fx.svc.Register(context.Background(), event.ID, student.ID)
	require.NoError(t, err)

	report, err := fx.svc.AttendanceReport(context.Background(), creator, event.ID)
	require.NoError(t, err)

	csv := string(report)
	assert.Contains(t, csv, "name,email,status,registered_at")
	assert.Contains(t, csv, "Ada Lovelace,ada@college.edu,Registered")

	t.Run("student may not pull the report", func(t *testing.T) {
		_, err := fx.svc.AttendanceReport(context.Background(), student, event.ID)

		assert.ErrorIs(t, err, ErrForbidden)
	})
}
