package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekicare/ekicare-api/internal/domain"
	appointmentRepo "github.com/ekicare/ekicare-api/internal/infra/storage/appointment"
	profileRepo "github.com/ekicare/ekicare-api/internal/infra/storage/profile"
	"github.com/ekicare/ekicare-api/internal/service/appointments/models"
	"github.com/ekicare/ekicare-api/pkg/logger"
)

type mockAppointmentRepo struct {
	stored     map[uuid.UUID]*domain.Appointment
	lastFilter domain.AppointmentsFilter
	listErr    error
	deleted    []uuid.UUID
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appt, ok := m.stored[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*domain.Appointment
	for _, a := range m.stored {
		if filter.Role == domain.RoleOwner && a.OwnerID != filter.UserID {
			continue
		}
		if filter.Role == domain.RolePro && a.ProID != filter.UserID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	delete(m.stored, id)
	return nil
}

type mockProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error) {
	result := make(map[uuid.UUID]*domain.Profile)
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

type mockEquideRepo struct {
	equides []*domain.Equide
	err     error
}

func (m *mockEquideRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Equide, error) {
	return m.equides, m.err
}

type mockTxManager struct{}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockMetrics struct{ transitions []string }

func (m *mockMetrics) ObserveTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

type fixture struct {
	ownerID, proID, strangerID uuid.UUID
	horseID, apptID            uuid.UUID

	appointments *mockAppointmentRepo
	equides      *mockEquideRepo
	metrics      *mockMetrics
	svc          *Service
}

func newFixture(status domain.AppointmentStatus) *fixture {
	f := &fixture{
		ownerID:    uuid.New(),
		proID:      uuid.New(),
		strangerID: uuid.New(),
		horseID:    uuid.New(),
		apptID:     uuid.New(),
	}

	profession := "Maréchal-ferrant"
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		f.ownerID:    {ID: f.ownerID, Role: domain.RoleOwner, FirstName: "Marie", LastName: "Dupont", Email: "marie@ekicare.test"},
		f.proID:      {ID: f.proID, Role: domain.RolePro, FirstName: "Paul", LastName: "Martin", Email: "paul@ekicare.test", Profession: &profession},
		f.strangerID: {ID: f.strangerID, Role: domain.RoleOwner},
	}}
	f.appointments = &mockAppointmentRepo{stored: map[uuid.UUID]*domain.Appointment{
		f.apptID: {
			ID:              f.apptID,
			OwnerID:         f.ownerID,
			ProID:           f.proID,
			EquideIDs:       []uuid.UUID{f.horseID},
			MainSlot:        time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			Status:          status,
			DurationMinutes: 60,
		},
	}}
	f.equides = &mockEquideRepo{equides: []*domain.Equide{{ID: f.horseID, OwnerID: f.ownerID, Name: "Tornade"}}}
	f.metrics = &mockMetrics{}

	f.svc = NewService(f.appointments, profiles, f.equides, &mockTxManager{}, f.metrics, logger.Nop())
	return f
}

func TestService_List_Owner(t *testing.T) {
	f := newFixture(domain.StatusPending)

	resp, err := f.svc.List(context.Background(), &models.ListRequest{UserID: f.ownerID})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleOwner, f.appointments.lastFilter.Role)
	require.Len(t, resp.Appointments, 1)

	item := resp.Appointments[0]
	assert.Equal(t, []models.EquideSummary{{ID: f.horseID, Name: "Tornade"}}, item.Equides)
	require.NotNil(t, item.Counterpart)
	assert.Equal(t, "Paul", item.Counterpart.FirstName)
	require.NotNil(t, item.Counterpart.Profession)
	assert.Equal(t, "Maréchal-ferrant", *item.Counterpart.Profession)
	assert.True(t, item.CanDelete)
	assert.Empty(t, item.NextStatuses)
	assert.Equal(t, []time.Time{}, item.AlternativeSlots)
}

func TestService_List_ProWithStatus(t *testing.T) {
	f := newFixture(domain.StatusPending)
	status := "pending"

	resp, err := f.svc.List(context.Background(), &models.ListRequest{UserID: f.proID, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.RolePro, f.appointments.lastFilter.Role)
	require.NotNil(t, f.appointments.lastFilter.Status)
	assert.Equal(t, domain.StatusPending, *f.appointments.lastFilter.Status)

	require.Len(t, resp.Appointments, 1)
	item := resp.Appointments[0]
	assert.Equal(t, "Marie", item.Counterpart.FirstName)
	assert.Equal(t, []string{"confirmed", "rejected", "rescheduled"}, item.NextStatuses)
	assert.False(t, item.CanDelete)
}

func TestService_List_Errors(t *testing.T) {
	f := newFixture(domain.StatusPending)

	bad := "archived"
	_, err := f.svc.List(context.Background(), &models.ListRequest{UserID: f.ownerID, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.List(context.Background(), &models.ListRequest{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	f.appointments.listErr = errors.New("connection reset")
	_, err = f.svc.List(context.Background(), &models.ListRequest{UserID: f.ownerID})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_List_Empty(t *testing.T) {
	f := newFixture(domain.StatusPending)

	resp, err := f.svc.List(context.Background(), &models.ListRequest{UserID: f.strangerID})
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)
	assert.Empty(t, resp.Appointments)
}

func TestService_Get(t *testing.T) {
	f := newFixture(domain.StatusConfirmed)

	resp, err := f.svc.Get(context.Background(), f.apptID, f.proID)
	require.NoError(t, err)
	assert.Equal(t, f.apptID, resp.ID)
	assert.Equal(t, []string{"completed"}, resp.NextStatuses)

	_, err = f.svc.Get(context.Background(), f.apptID, f.strangerID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = f.svc.Get(context.Background(), uuid.New(), f.ownerID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_Delete(t *testing.T) {
	statuses := []domain.AppointmentStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusRejected,
		domain.StatusRescheduled, domain.StatusCompleted, domain.StatusCanceled,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(status)

			err := f.svc.Delete(context.Background(), f.apptID, f.strangerID)
			assert.ErrorIs(t, err, ErrAppointmentNotFound)

			err = f.svc.Delete(context.Background(), f.apptID, f.proID)
			assert.ErrorIs(t, err, ErrCannotDelete)

			err = f.svc.Delete(context.Background(), f.apptID, f.ownerID)
			if status == domain.StatusPending {
				require.NoError(t, err)
				assert.Equal(t, []uuid.UUID{f.apptID}, f.appointments.deleted)
				assert.Equal(t, []string{"pending->deleted"}, f.metrics.transitions)
				return
			}
			assert.ErrorIs(t, err, ErrCannotDelete)
			assert.Empty(t, f.appointments.deleted)
		})
	}
}
