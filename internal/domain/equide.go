package domain

import (
	"time"

	"github.com/google/uuid"
)

// Equide cheval ou autre équidé enregistré par un propriétaire
type Equide struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
}
