package domain

import (
	"fmt"
	"time"
)

// Field attribut modifiable d'un rendez-vous
type Field string

const (
	FieldStatus           Field = "status"
	FieldMainSlot         Field = "main_slot"
	FieldAlternativeSlots Field = "alternative_slots"
	FieldComment          Field = "comment"
	FieldAddress          Field = "address"
	FieldCompteRendu      Field = "compte_rendu"
)

type transitionKey struct {
	from AppointmentStatus
	role Role
}

// transitions (statut courant, rôle) -> statuts que l'acteur peut demander.
// Toute combinaison absente est refusée.
var transitions = map[transitionKey][]AppointmentStatus{
	{StatusPending, RolePro}:       {StatusConfirmed, StatusRejected, StatusRescheduled},
	{StatusRescheduled, RoleOwner}: {StatusConfirmed, StatusRejected, StatusRescheduled},
	{StatusConfirmed, RolePro}:     {StatusCompleted},
}

// fieldRule décide si role peut écrire un champ.
// next est le statut du rendez-vous après la modification.
type fieldRule func(current, next AppointmentStatus, role Role, reschedules bool) bool

var fieldRules = map[Field]fieldRule{
	FieldMainSlot:         slotRule,
	FieldAlternativeSlots: slotRule,
	FieldComment: func(_, _ AppointmentStatus, role Role, _ bool) bool {
		return role == RoleOwner
	},
	FieldAddress: func(current, _ AppointmentStatus, role Role, _ bool) bool {
		return role == RoleOwner && current == StatusPending
	},
	FieldCompteRendu: func(_, next AppointmentStatus, role Role, _ bool) bool {
		return role == RolePro && next == StatusCompleted
	},
}

// slotRule le pro tant que pending, ou celui qui propose un report
func slotRule(current, _ AppointmentStatus, role Role, reschedules bool) bool {
	if reschedules {
		return true
	}
	return role == RolePro && current == StatusPending
}

// NextStatuses statuts que role peut demander depuis current
func NextStatuses(current AppointmentStatus, role Role) []AppointmentStatus {
	allowed := transitions[transitionKey{current, role}]
	result := make([]AppointmentStatus, len(allowed))
	copy(result, allowed)
	return result
}

// CanTransition role peut-il passer le rendez-vous de current à requested
func CanTransition(current AppointmentStatus, role Role, requested AppointmentStatus) bool {
	for _, s := range transitions[transitionKey{current, role}] {
		if s == requested {
			return true
		}
	}
	return false
}

// CanDelete le propriétaire seulement, et seulement tant que pending
func CanDelete(current AppointmentStatus, role Role) bool {
	return role == RoleOwner && current == StatusPending
}

// AppointmentChange mise à jour partielle. Les champs nil restent inchangés.
type AppointmentChange struct {
	Status           *AppointmentStatus
	MainSlot         *time.Time
	AlternativeSlots *[]time.Time
	Comment          *string
	Address          *string
	CompteRendu      *string
}

// Fields champs présents dans la modification, le statut en premier
func (c AppointmentChange) Fields() []Field {
	var fields []Field
	if c.Status != nil {
		fields = append(fields, FieldStatus)
	}
	if c.MainSlot != nil {
		fields = append(fields, FieldMainSlot)
	}
	if c.AlternativeSlots != nil {
		fields = append(fields, FieldAlternativeSlots)
	}
	if c.Comment != nil {
		fields = append(fields, FieldComment)
	}
	if c.Address != nil {
		fields = append(fields, FieldAddress)
	}
	if c.CompteRendu != nil {
		fields = append(fields, FieldCompteRendu)
	}
	return fields
}

// IsEmpty la modification ne porte aucun champ
func (c AppointmentChange) IsEmpty() bool {
	return len(c.Fields()) == 0
}

// ChangesStatus la modification demande un statut
func (c AppointmentChange) ChangesStatus() bool {
	return c.Status != nil
}

// MovesSlot le créneau principal est réécrit
func (c AppointmentChange) MovesSlot() bool {
	return c.MainSlot != nil
}

// EffectiveStatus statut final du rendez-vous : celui demandé, sinon current
func (c AppointmentChange) EffectiveStatus(current AppointmentStatus) AppointmentStatus {
	if c.Status != nil {
		return *c.Status
	}
	return current
}

// AuthorizeChange vérifie toute la modification contre les tables de transitions et de champs.
// Rien ne doit être appliqué si elle ne retourne pas nil.
func AuthorizeChange(current AppointmentStatus, role Role, change AppointmentChange) error {
	reschedules := false
	if change.Status != nil {
		requested := *change.Status
		if !CanTransition(current, role, requested) {
			return fmt.Errorf("%w: %s cannot move %s to %s", ErrForbiddenTransition, role, current, requested)
		}
		reschedules = requested == StatusRescheduled
	}

	next := change.EffectiveStatus(current)
	for _, field := range change.Fields() {
		if field == FieldStatus {
			continue
		}
		rule := fieldRules[field]
		if rule == nil || !rule(current, next, role, reschedules) {
			return fmt.Errorf("%w: %s cannot write %s while %s", ErrForbiddenField, role, field, current)
		}
	}

	return nil
}

// Apply écrit la modification dans une copie du rendez-vous.
// N'autorise rien : appeler AuthorizeChange avant.
func (a *Appointment) Apply(change AppointmentChange) Appointment {
	updated := *a
	if change.Status != nil {
		updated.Status = *change.Status
	}
	if change.MainSlot != nil {
		updated.MainSlot = change.MainSlot.UTC()
	}
	if change.AlternativeSlots != nil {
		slots := make([]time.Time, 0, len(*change.AlternativeSlots))
		for _, s := range *change.AlternativeSlots {
			slots = append(slots, s.UTC())
		}
		updated.AlternativeSlots = slots
	}
	if change.Comment != nil {
		updated.Comment = *change.Comment
	}
	if change.Address != nil {
		updated.Address = change.Address
	}
	if change.CompteRendu != nil {
		updated.CompteRendu = change.CompteRendu
	}
	return updated
}
