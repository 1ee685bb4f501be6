package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegehub/collegehub-api/internal/domain"
)

type fakeStatsEventRepo struct {
	byStatus     map[domain.EventStatus]int64
	byDepartment map[string]int64
	completed    int64
}

func (r *fakeStatsEventRepo) CountByStatus(_ context.Context) (map[domain.EventStatus]int64, error) {
	counts := make(map[domain.EventStatus]int64, len(r.byStatus))
	for status, n := range r.byStatus {
		counts[status] = n
	}

	return counts, nil
}

func (r *fakeStatsEventRepo) CountByDepartment(_ context.Context) (map[string]int64, error) {
	return r.byDepartment, nil
}

func (r *fakeStatsEventRepo) CountCompleted(_ context.Context, _ time.Time) (int64, error) {
	return r.completed, nil
}

type fakeStatsUserRepo struct {
	byRole map[string]int64
}

func (r *fakeStatsUserRepo) CountByRole(_ context.Context) (map[string]int64, error) {
	return r.byRole, nil
}

type fakeStatsParticipationRepo struct {
	total int64
}

func (r *fakeStatsParticipationRepo) Count(_ context.Context) (int64, error) {
	return r.total, nil
}

func TestStatsService_Overview(t *testing.T) {
	eventRepo := &fakeStatsEventRepo{
		byStatus: map[domain.EventStatus]int64{
			domain.EventPending:  3,
			domain.EventApproved: 5,
			domain.EventRejected: 1,
		},
		byDepartment: map[string]int64{"CS": 6, "EE": 3},
		completed:    2,
	}
	userRepo := &fakeStatsUserRepo{
		byRole: map[string]int64{
			domain.RoleStudent: 120,
			domain.RoleFaculty: 10,
			domain.RoleHOD:     4,
			domain.RoleAdmin:   1,
		},
	}
	participationRepo := &fakeStatsParticipationRepo{total: 250}

	svc := NewStatsService(eventRepo, userRepo, participationRepo)
	svc.now = func() time.Time { return testNow }

	t.Run("past approved events roll into completed", func(t *testing.T) {
		faculty := domain.User{ID: 11, Role: domain.RoleFaculty}

		overview, err := svc.Overview(context.Background(), faculty)
		require.NoError(t, err)

		assert.Equal(t, int64(3), overview.EventsByStatus[domain.EventPending])
		assert.Equal(t, int64(3), overview.EventsByStatus[domain.EventApproved])
		assert.Equal(t, int64(2), overview.EventsByStatus[domain.EventCompleted])
		assert.Equal(t, int64(1), overview.EventsByStatus[domain.EventRejected])
		assert.Equal(t, int64(6), overview.EventsByDepartment["CS"])
		assert.Equal(t, int64(120), overview.UsersByRole[domain.RoleStudent])
		assert.Equal(t, int64(250), overview.TotalParticipations)
	})

	t.Run("students are forbidden", func(t *testing.T) {
		student := domain.User{ID: 10, Role: domain.RoleStudent}

		_, err := svc.Overview(context.Background(), student)

		assert.ErrorIs(t, err, ErrForbidden)
	})
}
