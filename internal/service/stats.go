package service

import (
	"context"
	"fmt"
	"time"

	"github.com/collegehub/collegehub-api/internal/domain"
)

type StatsEventRepository interface {
	CountByStatus(ctx context.Context) (map[domain.EventStatus]int64, error)
	CountByDepartment(ctx context.Context) (map[string]int64, error)
	CountCompleted(ctx context.Context, now time.Time) (int64, error)
}

type StatsUserRepository interface {
	CountByRole(ctx context.Context) (map[string]int64, error)
}

type StatsParticipationRepository interface {
	Count(ctx context.Context) (int64, error)
}

type StatsService struct {
	eventRepo         StatsEventRepository
	userRepo          StatsUserRepository
	participationRepo StatsParticipationRepository
	now               func() time.Time
}

func NewStatsService(eventRepo StatsEventRepository, userRepo StatsUserRepository, participationRepo StatsParticipationRepository) *StatsService {
	return &StatsService{
		eventRepo:         eventRepo,
		userRepo:          userRepo,
		participationRepo: participationRepo,
		now:               time.Now,
	}
}

// Overview assembles the dashboard rollup. Stored statuses are adjusted so
// that past approved events count as Completed rather than Approved.
func (s *StatsService) Overview(ctx context.Context, actor domain.User) (domain.Overview, error) {
	if actor.Role == domain.RoleStudent {
		return domain.Overview{}, ErrForbidden
	}

	byStatus, err := s.eventRepo.CountByStatus(ctx)
	if err != nil {
		return domain.Overview{}, fmt.Errorf("s.eventRepo.CountByStatus -> %w", err)
	}

	completed, err := s.eventRepo.CountCompleted(ctx, s.now())
	if err != nil {
		return domain.Overview{}, fmt.Errorf("s.eventRepo.CountCompleted -> %w", err)
	}
	if completed > 0 {
		byStatus[domain.EventApproved] -= completed
		byStatus[domain.EventCompleted] = completed
	}

	byDepartment, err := s.eventRepo.CountByDepartment(ctx)
	if err != nil {
		return domain.Overview{}, fmt.Errorf("s.eventRepo.CountByDepartment -> %w", err)
	}

	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return domain.Overview{}, fmt.Errorf("s.userRepo.CountByRole -> %w", err)
	}

	participations, err := s.participationRepo.Count(ctx)
	if err != nil {
		return domain.Overview{}, fmt.Errorf("s.participationRepo.Count -> %w", err)
	}

	return domain.Overview{
		EventsByStatus:      byStatus,
		EventsByDepartment:  byDepartment,
		UsersByRole:         byRole,
		TotalParticipations: participations,
	}, nil
}
