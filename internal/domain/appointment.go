package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/pkg/types"
)

// AppointmentStatus statut d'un rendez-vous
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "pending"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusRejected    AppointmentStatus = "rejected"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusCompleted   AppointmentStatus = "completed"
	// StatusCanceled ancien statut terminal, en lecture seule
	StatusCanceled AppointmentStatus = "canceled"
)

// ParseStatus valide un statut venant d'une requête ou d'une query string
func ParseStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// IsValid s est un statut connu
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusRescheduled, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// HoldsSlot un rendez-vous dans ce statut garde le créneau du pro indisponible
func (s AppointmentStatus) HoldsSlot() bool {
	for _, claiming := range ClaimingStatuses {
		if s == claiming {
			return true
		}
	}
	return false
}

// IsTerminal plus aucun participant ne peut faire évoluer le rendez-vous
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCanceled
}

// Role d'un participant vis-à-vis d'un rendez-vous
type Role string

const (
	RoleOwner Role = "owner"
	RolePro   Role = "pro"
)

// IsValid r est un rôle connu
func (r Role) IsValid() bool {
	return r == RoleOwner || r == RolePro
}

// Appointment consultation entre un pro et un propriétaire pour un ou plusieurs équidés
type Appointment struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	ProID            uuid.UUID
	EquideIDs        []uuid.UUID
	MainSlot         time.Time
	AlternativeSlots []time.Time
	Comment          string
	Address          *string
	Status           AppointmentStatus
	CompteRendu      *string // post-visit report
	DurationMinutes  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleOf rôle de userID dans le rendez-vous.
// ok vaut false si l'utilisateur n'est pas participant.
func (a *Appointment) RoleOf(userID uuid.UUID) (role Role, ok bool) {
	switch userID {
	case a.OwnerID:
		return RoleOwner, true
	case a.ProID:
		return RolePro, true
	}
	return "", false
}

// CounterpartOf id de l'autre participant
func (a *Appointment) CounterpartOf(role Role) uuid.UUID {
	if role == RoleOwner {
		return a.ProID
	}
	return a.OwnerID
}

// SlotStart heure de début (UTC) du créneau principal, utilisée pour comparer aux créneaux réservés
func (a *Appointment) SlotStart() types.TimeString {
	return types.NewTimeString(a.MainSlot.UTC())
}

// SlotDate date du créneau principal (UTC, minuit)
func (a *Appointment) SlotDate() time.Time {
	return TruncateToDay(a.MainSlot)
}

// EndsAt fin du créneau principal
func (a *Appointment) EndsAt() time.Time {
	return a.MainSlot.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// AppointmentsFilter sélectionne les rendez-vous visibles par un utilisateur
type AppointmentsFilter struct {
	UserID uuid.UUID
	Role   Role               // owner -> owner_id, pro -> pro_id
	Status *AppointmentStatus // optional
}

// TruncateToDay minuit UTC de la date UTC de t
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
