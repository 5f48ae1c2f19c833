package update_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
)

// validateRequest vérifie les valeurs, pas les permissions
func validateRequest(req *Request, now time.Time) error {
	if req.UserID == uuid.Nil || req.AppointmentID == uuid.Nil {
		return fmt.Errorf("%w: user and appointment ids are required", ErrInvalidInput)
	}

	c := req.Change
	if c.Status != nil && !c.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *c.Status)
	}
	if c.MainSlot != nil {
		if c.MainSlot.IsZero() {
			return fmt.Errorf("%w: main_slot is empty", ErrInvalidInput)
		}
		if c.MainSlot.Before(now) {
			return fmt.Errorf("%w: main_slot is in the past", ErrInvalidInput)
		}
	}
	if c.AlternativeSlots != nil {
		if len(*c.AlternativeSlots) > domain.MaxAlternativeSlots {
			return fmt.Errorf("%w: at most %d alternative slots", ErrInvalidInput, domain.MaxAlternativeSlots)
		}
		for _, slot := range *c.AlternativeSlots {
			if slot.IsZero() {
				return fmt.Errorf("%w: empty alternative slot", ErrInvalidInput)
			}
		}
	}
	if c.Comment != nil && len(*c.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	if c.Address != nil && len(*c.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}
	if c.CompteRendu != nil && len(*c.CompteRendu) > domain.MaxReportLength {
		return fmt.Errorf("%w: compte_rendu exceeds %d characters", ErrInvalidInput, domain.MaxReportLength)
	}

	return nil
}

// normalize arrondit les créneaux à la minute en UTC
func normalize(c domain.AppointmentChange) domain.AppointmentChange {
	if c.MainSlot != nil {
		slot := c.MainSlot.UTC().Truncate(time.Minute)
		c.MainSlot = &slot
	}
	if c.AlternativeSlots != nil {
		slots := make([]time.Time, 0, len(*c.AlternativeSlots))
		for _, s := range *c.AlternativeSlots {
			slots = append(slots, s.UTC().Truncate(time.Minute))
		}
		c.AlternativeSlots = &slots
	}
	return c
}
