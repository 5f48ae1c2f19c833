package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ekicare/ekicare-api/internal/domain"
)

func TestWorkingHoursCache(t *testing.T) {
	c := NewWorkingHoursCache(time.Minute, time.Minute)
	pro := uuid.New()

	_, ok := c.Get(pro)
	assert.False(t, ok)

	hours := domain.WorkingHours{"monday": {Active: true, Start: "09:00", End: "12:00"}}
	c.Set(pro, hours)

	got, ok := c.Get(pro)
	assert.True(t, ok)
	assert.Equal(t, hours, got)

	c.Invalidate(pro)
	_, ok = c.Get(pro)
	assert.False(t, ok)
}

func TestWorkingHoursCache_CachesMissingSchedule(t *testing.T) {
	c := NewWorkingHoursCache(time.Minute, time.Minute)
	pro := uuid.New()

	c.Set(pro, nil)

	got, ok := c.Get(pro)
	assert.True(t, ok)
	assert.Nil(t, got)
}

func TestWorkingHoursCache_Expires(t *testing.T) {
	c := NewWorkingHoursCache(10*time.Millisecond, time.Minute)
	pro := uuid.New()

	c.Set(pro, domain.WorkingHours{})
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(pro)
	assert.False(t, ok)
}
