package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekicare/ekicare-api/internal/domain"
	"github.com/ekicare/ekicare-api/internal/infra/cache"
	profileRepo "github.com/ekicare/ekicare-api/internal/infra/storage/profile"
	"github.com/ekicare/ekicare-api/internal/service/profile/models"
	"github.com/ekicare/ekicare-api/pkg/logger"
)

type mockProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
	getCalls int
	getErr   error
	saved    domain.WorkingHours
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfileRepo) UpdateWorkingHours(ctx context.Context, proID uuid.UUID, hours domain.WorkingHours) error {
	m.saved = hours
	m.profiles[proID].WorkingHours = hours
	return nil
}

var defaultDay = domain.DefaultBookingRules().DefaultDay

func newService(repo *mockProfileRepo) *Service {
	return NewService(repo, cache.NewWorkingHoursCache(time.Minute, time.Minute), defaultDay, logger.Nop())
}

func TestService_GetWorkingHours_Cached(t *testing.T) {
	proID := uuid.New()
	hours := domain.WorkingHours{"monday": {Active: true, Start: "09:00", End: "17:00"}}
	repo := &mockProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		proID: {ID: proID, Role: domain.RolePro, WorkingHours: hours},
	}}
	svc := newService(repo)

	for i := 0; i < 3; i++ {
		got, err := svc.GetWorkingHours(context.Background(), proID)
		require.NoError(t, err)
		assert.Equal(t, hours, got)
	}
	assert.Equal(t, 1, repo.getCalls)
}

func TestService_GetWorkingHours_NotAPro(t *testing.T) {
	ownerID := uuid.New()
	repo := &mockProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		ownerID: {ID: ownerID, Role: domain.RoleOwner},
	}}
	svc := newService(repo)

	_, err := svc.GetWorkingHours(context.Background(), ownerID)
	assert.ErrorIs(t, err, ErrProNotFound)

	_, err = svc.GetWorkingHours(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProNotFound)

	repo.getErr = errors.New("connection reset")
	_, err = svc.GetWorkingHours(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetSchedule_Default(t *testing.T) {
	proID := uuid.New()
	repo := &mockProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		proID: {ID: proID, Role: domain.RolePro},
	}}

	resp, err := newService(repo).GetSchedule(context.Background(), proID)
	require.NoError(t, err)

	assert.False(t, resp.Configured)
	assert.Len(t, resp.Days, 7)
	assert.Equal(t, defaultDay, resp.Days["sunday"])
}

func TestService_UpdateWorkingHours(t *testing.T) {
	proID := uuid.New()
	repo := &mockProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		proID: {ID: proID, Role: domain.RolePro},
	}}
	svc := newService(repo)

	// remplit le cache avec le planning vide
	_, err := svc.GetWorkingHours(context.Background(), proID)
	require.NoError(t, err)

	hours := domain.WorkingHours{"friday": {Active: true, Start: "08:30", End: "12:00"}}
	resp, err := svc.UpdateWorkingHours(context.Background(), &models.UpdateWorkingHoursRequest{UserID: proID, Hours: hours})
	require.NoError(t, err)

	assert.True(t, resp.Configured)
	assert.True(t, resp.Days["friday"].Active)
	assert.False(t, resp.Days["monday"].Active)
	assert.Equal(t, hours, repo.saved)

	got, err := svc.GetWorkingHours(context.Background(), proID)
	require.NoError(t, err)
	assert.Equal(t, hours, got)
}

func TestService_UpdateWorkingHours_Errors(t *testing.T) {
	proID, ownerID := uuid.New(), uuid.New()
	repo := &mockProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		proID:   {ID: proID, Role: domain.RolePro},
		ownerID: {ID: ownerID, Role: domain.RoleOwner},
	}}
	svc := newService(repo)
	valid := domain.WorkingHours{"monday": {Active: true, Start: "09:00", End: "12:00"}}

	tests := []struct {
		name    string
		req     *models.UpdateWorkingHoursRequest
		wantErr error
	}{
		{"nil schedule", &models.UpdateWorkingHoursRequest{UserID: proID}, ErrInvalidInput},
		{"unknown weekday", &models.UpdateWorkingHoursRequest{UserID: proID, Hours: domain.WorkingHours{"lundi": {}}}, ErrInvalidInput},
		{"start after end", &models.UpdateWorkingHoursRequest{UserID: proID, Hours: domain.WorkingHours{"monday": {Active: true, Start: "18:00", End: "09:00"}}}, ErrInvalidInput},
		{"owner", &models.UpdateWorkingHoursRequest{UserID: ownerID, Hours: valid}, ErrAccessDenied},
		{"no profile", &models.UpdateWorkingHoursRequest{UserID: uuid.New(), Hours: valid}, ErrProfileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateWorkingHours(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
