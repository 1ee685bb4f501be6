package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/repository"
)

var (
	ErrParticipationNotFound = repository.ErrParticipationNotFound
	ErrAlreadyRegistered     = repository.ErrAlreadyRegistered
	ErrEventFull             = repository.ErrEventFull
	ErrEventNotApproved      = errors.New("event is not open for registration")
	ErrNotAStudent           = errors.New("only students can register for events")
)

type ParticipationRepository interface {
	Register(ctx context.Context, participation domain.Participation) (domain.Participation, error)
	Unregister(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (domain.Participation, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Participation, error)
	FindByStudentID(ctx context.Context, studentID uint) ([]domain.Participation, error)
	UpdateStatus(ctx context.Context, eventID, id uint, status domain.ParticipationStatus) error
}

type ParticipationService struct {
	repo      ParticipationRepository
	eventRepo EventRepository
	userRepo  UserRepository
	mailer    Mailer
	now       func() time.Time
}

func NewParticipationService(repo ParticipationRepository, eventRepo EventRepository, userRepo UserRepository, mailer Mailer) *ParticipationService {
	return &ParticipationService{
		repo:      repo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		mailer:    mailer,
		now:       time.Now,
	}
}

// Register signs a student up for an approved event. Duplicate and capacity
// checks are enforced by the store in one transaction, so two near-full
// registrations cannot both slip past the limit.
func (s *ParticipationService) Register(ctx context.Context, eventID, studentID uint) (domain.Participation, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if event.EffectiveStatus(s.now()) != domain.EventApproved {
		return domain.Participation{}, ErrEventNotApproved
	}

	student, err := s.userRepo.FindByID(ctx, studentID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if student.Role != domain.RoleStudent {
		return domain.Participation{}, ErrNotAStudent
	}

	participation := domain.Participation{
		EventID:      event.ID,
		EventTitle:   event.Title,
		StudentID:    student.ID,
		StudentName:  student.FullName(),
		StudentEmail: student.Email,
		Status:       domain.ParticipationRegistered,
		RegisteredAt: s.now(),
	}

	created, err := s.repo.Register(ctx, participation)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	// Confirmation mail is fire-and-forget; registration never blocks on it.
	go s.mailer.Send(student.Email,
		"Registration confirmed: "+event.Title,
		fmt.Sprintf("You are registered for %v on %v at %v.", event.Title, event.Date.Format("2006-01-02"), event.Venue),
	)

	return created, nil
}

// Unregister removes a participation. Students may only cancel their own.
func (s *ParticipationService) Unregister(ctx context.Context, actor domain.User, id uint) error {
	participation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actor.Role == domain.RoleStudent && participation.StudentID != actor.ID {
		return ErrForbidden
	}

	if err = s.repo.Unregister(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Unregister -> %w", err)
	}

	return nil
}

func (s *ParticipationService) ListByEvent(ctx context.Context, eventID uint) ([]domain.Participation, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	participations, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return participations, nil
}

func (s *ParticipationService) ListByStudent(ctx context.Context, actor domain.User, studentID uint) ([]domain.Participation, error) {
	if actor.Role == domain.RoleStudent && actor.ID != studentID {
		return nil, ErrForbidden
	}

	participations, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStudentID -> %w", err)
	}

	return participations, nil
}

// AttendanceResult reports the outcome of one attendance batch.
type AttendanceResult struct {
	Updated int                                 `json:"updated"`
	Failed  map[uint]string                     `json:"failed,omitempty"`
	Applied map[uint]domain.ParticipationStatus `json:"applied"`
}

// SetAttendance applies a present/absent batch. Entries are independent
// updates issued concurrently; one failing entry does not roll back the rest.
func (s *ParticipationService) SetAttendance(ctx context.Context, actor domain.User, eventID uint, attendance map[uint]bool) (AttendanceResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return AttendanceResult{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if !canCaptureAttendance(actor, event) {
		return AttendanceResult{}, ErrForbidden
	}

	type outcome struct {
		id     uint
		status domain.ParticipationStatus
		err    error
	}

	outcomes := make([]outcome, 0, len(attendance))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for id, present := range attendance {
		wg.Add(1)
		go func(id uint, present bool) {
			defer wg.Done()

			status := domain.AttendanceStatus(present)
			err := s.repo.UpdateStatus(ctx, eventID, id, status)

			mu.Lock()
			outcomes = append(outcomes, outcome{id: id, status: status, err: err})
			mu.Unlock()
		}(id, present)
	}
	wg.Wait()

	result := AttendanceResult{
		Applied: make(map[uint]domain.ParticipationStatus),
	}
	for _, o := range outcomes {
		if o.err != nil {
			if result.Failed == nil {
				result.Failed = make(map[uint]string)
			}
			result.Failed[o.id] = o.err.Error()
			zap.L().Warn("attendance update failed",
				zap.Uint("participation_id", o.id),
				zap.Uint("event_id", eventID),
				zap.Error(o.err),
			)
			continue
		}

		result.Updated++
		result.Applied[o.id] = o.status
	}

	return result, nil
}

// AttendanceReport renders the event's participations as CSV.
func (s *ParticipationService) AttendanceReport(ctx context.Context, actor domain.User, eventID uint) ([]byte, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if !canCaptureAttendance(actor, event) {
		return nil, ErrForbidden
	}

	participations, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err = w.Write([]string{"name", "email", "status", "registered_at"}); err != nil {
		return nil, fmt.Errorf("csv header -> %w", err)
	}
	for _, p := range participations {
		row := []string{p.StudentName, p.StudentEmail, string(p.Status), p.RegisteredAt.Format(time.RFC3339)}
		if err = w.Write(row); err != nil {
			return nil, fmt.Errorf("csv row -> %w", err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush -> %w", err)
	}

	return buf.Bytes(), nil
}
