package get_calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekicare/ekicare-api/internal/domain"
	profileService "github.com/ekicare/ekicare-api/internal/service/profile"
	"github.com/ekicare/ekicare-api/pkg/logger"
)

type mockWorkingHours struct {
	hours domain.WorkingHours
	err   error
}

func (m *mockWorkingHours) GetWorkingHours(ctx context.Context, proID uuid.UUID) (domain.WorkingHours, error) {
	return m.hours, m.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestUseCase_Execute(t *testing.T) {
	hours := domain.WorkingHours{
		"monday":    {Active: true, Start: "09:00", End: "17:00"},
		"wednesday": {Active: true, Start: "09:00", End: "12:00"},
	}
	uc := NewUseCase(&mockWorkingHours{hours: hours}, logger.Nop())
	uc.timeProvider = fixedClock{now: time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)}

	selected := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{ProID: uuid.New(), Selected: &selected})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), resp.Month)
	assert.True(t, resp.Configured)
	require.Len(t, resp.Days, domain.CalendarGridDays)
	assert.Equal(t, time.Monday, resp.Days[0].Date.Weekday())

	working := 0
	for _, d := range resp.Days {
		if d.IsWorkingDay {
			working++
			assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday}, d.Date.Weekday())
		}
		if d.IsSelected {
			assert.Equal(t, selected, d.Date)
		}
	}
	assert.Equal(t, 12, working)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := NewUseCase(&mockWorkingHours{err: profileService.ErrProNotFound}, logger.Nop())
	_, err := uc.Execute(context.Background(), &Request{ProID: uuid.New()})
	assert.ErrorIs(t, err, ErrProNotFound)

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	uc = NewUseCase(&mockWorkingHours{err: errors.New("timeout")}, logger.Nop())
	_, err = uc.Execute(context.Background(), &Request{ProID: uuid.New()})
	assert.ErrorIs(t, err, ErrInternal)
}
