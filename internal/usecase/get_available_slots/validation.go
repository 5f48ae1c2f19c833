package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest vérifie les identifiants et la date
func validateRequest(req *Request) error {
	if req.ProID == uuid.Nil {
		return fmt.Errorf("%w: pro id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
