package cache

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ekicare/ekicare-api/internal/domain"
)

// entry enveloppe le planning pour mettre aussi en cache un pro sans horaires (map nil)
type entry struct {
	hours domain.WorkingHours
}

// WorkingHoursCache cache TTL en mémoire des plannings de pros
type WorkingHoursCache struct {
	store *gocache.Cache
}

// NewWorkingHoursCache crée le cache, les entrées expirées sont purgées tous les cleanup
func NewWorkingHoursCache(ttl, cleanup time.Duration) *WorkingHoursCache {
	return &WorkingHoursCache{store: gocache.New(ttl, cleanup)}
}

// Get planning en cache d'un pro
func (c *WorkingHoursCache) Get(proID uuid.UUID) (domain.WorkingHours, bool) {
	v, ok := c.store.Get(proID.String())
	if !ok {
		return nil, false
	}
	e, ok := v.(entry)
	if !ok {
		return nil, false
	}
	return e.hours, true
}

// Set met le planning en cache avec le TTL par défaut
func (c *WorkingHoursCache) Set(proID uuid.UUID, hours domain.WorkingHours) {
	c.store.SetDefault(proID.String(), entry{hours: hours})
}

// Invalidate supprime le planning en cache
func (c *WorkingHoursCache) Invalidate(proID uuid.UUID) {
	c.store.Delete(proID.String())
}
