package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	"github.com/ekicare/ekicare-api/pkg/types"
)

// validateRequest vérifie la forme de la requête
func validateRequest(req *Request, now time.Time) error {
	if req.OwnerID == uuid.Nil {
		return fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if req.ProID == uuid.Nil {
		return fmt.Errorf("%w: pro_id is required", ErrInvalidInput)
	}

	if len(req.EquideIDs) == 0 {
		return fmt.Errorf("%w: at least one equide is required", ErrInvalidInput)
	}
	if len(req.EquideIDs) > domain.MaxEquidesPerVisit {
		return fmt.Errorf("%w: at most %d equides per appointment", ErrInvalidInput, domain.MaxEquidesPerVisit)
	}
	seen := make(map[uuid.UUID]struct{}, len(req.EquideIDs))
	for _, id := range req.EquideIDs {
		if id == uuid.Nil {
			return fmt.Errorf("%w: empty equide id", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: equide %s listed twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.MainSlot.IsZero() {
		return fmt.Errorf("%w: main_slot is required", ErrInvalidInput)
	}
	if req.MainSlot.Before(now) {
		return fmt.Errorf("%w: main_slot is in the past", ErrInvalidInput)
	}

	if len(req.AlternativeSlots) > domain.MaxAlternativeSlots {
		return fmt.Errorf("%w: at most %d alternative slots", ErrInvalidInput, domain.MaxAlternativeSlots)
	}
	for _, slot := range req.AlternativeSlots {
		if slot.IsZero() {
			return fmt.Errorf("%w: empty alternative slot", ErrInvalidInput)
		}
	}

	if len(req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	if req.Address != nil && len(*req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}

	return nil
}

// normalizeSlot UTC à la minute, pour que l'index unique et la recherche des créneaux réservés concordent
func normalizeSlot(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

func containsSlot(booked []types.TimeString, slot types.TimeString) bool {
	for _, b := range booked {
		if b == slot {
			return true
		}
	}
	return false
}
