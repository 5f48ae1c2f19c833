package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
)

// ListRequest rendez-vous de l'appelant, filtre de statut optionnel
type ListRequest struct {
	UserID uuid.UUID
	Status *string
}

// EquideSummary équidé affiché avec un rendez-vous
type EquideSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ParticipantSummary champs du profil de l'interlocuteur
type ParticipantSummary struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Profession *string   `json:"profession,omitempty"`
}

// AppointmentResponse rendez-vous tel que renvoyé par l'API
type AppointmentResponse struct {
	ID               uuid.UUID   `json:"id"`
	OwnerID          uuid.UUID   `json:"owner_id"`
	ProID            uuid.UUID   `json:"pro_id"`
	EquideIDs        []uuid.UUID `json:"equide_ids"`
	MainSlot         time.Time   `json:"main_slot"`
	AlternativeSlots []time.Time `json:"alternative_slots"`
	Comment          string      `json:"comment"`
	Address          *string     `json:"address,omitempty"`
	Status           string      `json:"status"`
	CompteRendu      *string     `json:"compte_rendu,omitempty"`
	DurationMinutes  int         `json:"duration_minutes"`

	// renseigné pour l'appelant uniquement
	Equides      []EquideSummary     `json:"equides,omitempty"`
	Counterpart  *ParticipantSummary `json:"counterpart,omitempty"`
	NextStatuses []string            `json:"next_statuses,omitempty"`
	CanDelete    bool                `json:"can_delete"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentListResponse liste de rendez-vous
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment convertit l'entité sans enrichissement
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	alternatives := a.AlternativeSlots
	if alternatives == nil {
		alternatives = []time.Time{}
	}

	return &AppointmentResponse{
		ID:               a.ID,
		OwnerID:          a.OwnerID,
		ProID:            a.ProID,
		EquideIDs:        a.EquideIDs,
		MainSlot:         a.MainSlot,
		AlternativeSlots: alternatives,
		Comment:          a.Comment,
		Address:          a.Address,
		Status:           string(a.Status),
		CompteRendu:      a.CompteRendu,
		DurationMinutes:  a.DurationMinutes,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// Enrich ajoute ce que voit l'appelant selon son rôle: noms des équidés, interlocuteur, actions permises
func (r *AppointmentResponse) Enrich(
	a *domain.Appointment,
	role domain.Role,
	equides map[uuid.UUID]*domain.Equide,
	profiles map[uuid.UUID]*domain.Profile,
) {
	for _, id := range a.EquideIDs {
		if e, ok := equides[id]; ok {
			r.Equides = append(r.Equides, EquideSummary{ID: e.ID, Name: e.Name})
		}
	}

	if p, ok := profiles[a.CounterpartOf(role)]; ok {
		r.Counterpart = &ParticipantSummary{
			ID:         p.ID,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Email:      p.Email,
			Phone:      p.Phone,
			Profession: p.Profession,
		}
	}

	for _, s := range domain.NextStatuses(a.Status, role) {
		r.NextStatuses = append(r.NextStatuses, string(s))
	}
	r.CanDelete = domain.CanDelete(a.Status, role)
}
