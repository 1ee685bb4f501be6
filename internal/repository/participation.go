package repository

import (
	"context"
	"fmt"

	"github.com/collegehub/collegehub-api/internal/domain"
	"github.com/collegehub/collegehub-api/internal/repository/dao"
)

var (
	ErrParticipationNotFound = dao.ErrParticipationNotFound
	ErrAlreadyRegistered     = dao.ErrAlreadyRegistered
)

type ParticipationDAO interface {
	Register(ctx context.Context, participation dao.Participation) (dao.Participation, error)
	Unregister(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (dao.Participation, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.Participation, error)
	FindByStudentID(ctx context.Context, studentID uint) ([]dao.Participation, error)
	UpdateStatus(ctx context.Context, eventID, id uint, status string) error
	Count(ctx context.Context) (int64, error)
}

type ParticipationRepository struct {
	dao ParticipationDAO
}

func NewParticipationRepository(dao ParticipationDAO) *ParticipationRepository {
	return &ParticipationRepository{
		dao: dao,
	}
}

func (r *ParticipationRepository) Register(ctx context.Context, participation domain.Participation) (domain.Participation, error) {
	created, err := r.dao.Register(ctx, r.domainToDao(participation))
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.dao.Register -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipationRepository) Unregister(ctx context.Context, id uint) error {
	if err := r.dao.Unregister(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Unregister -> %w", err)
	}

	return nil
}

func (r *ParticipationRepository) FindByID(ctx context.Context, id uint) (domain.Participation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipationRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.Participation, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipationRepository) FindByStudentID(ctx context.Context, studentID uint) ([]domain.Participation, error) {
	found, err := r.dao.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudentID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipationRepository) UpdateStatus(ctx context.Context, eventID, id uint, status domain.ParticipationStatus) error {
	if err := r.dao.UpdateStatus(ctx, eventID, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *ParticipationRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func (r *ParticipationRepository) domainToDao(p domain.Participation) dao.Participation {
	return dao.Participation{
		ID:           p.ID,
		EventID:      p.EventID,
		EventTitle:   p.EventTitle,
		StudentID:    p.StudentID,
		StudentName:  p.StudentName,
		StudentEmail: p.StudentEmail,
		Status:       string(p.Status),
		RegisteredAt: p.RegisteredAt,
	}
}

func (r *ParticipationRepository) daoToDomain(p dao.Participation) domain.Participation {
	return domain.Participation{
		ID:           p.ID,
		EventID:      p.EventID,
		EventTitle:   p.EventTitle,
		StudentID:    p.StudentID,
		StudentName:  p.StudentName,
		StudentEmail: p.StudentEmail,
		Status:       domain.ParticipationStatus(p.Status),
		RegisteredAt: p.RegisteredAt,
	}
}

func (r *ParticipationRepository) daosToDomain(participations []dao.Participation) []domain.Participation {
	out := make([]domain.Participation, len(participations))
	for i, p := range participations {
		out[i] = r.daoToDomain(p)
	}

	return out
}
