package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile profil utilisateur. Les propriétaires réservent, les pros reçoivent.
type Profile struct {
	ID         uuid.UUID
	Role       Role
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	Profession *string

	IsVerified           bool
	IsSubscribed         bool
	StripeCustomerID     *string
	StripeSubscriptionID *string

	WorkingHours WorkingHours

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPro vrai pour les professionnels
func (p *Profile) IsPro() bool {
	return p.Role == RolePro
}

// IsOwner vrai pour les propriétaires de chevaux
func (p *Profile) IsOwner() bool {
	return p.Role == RoleOwner
}

// FullName prénom et nom
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Subscription identifiants Stripe enregistrés sur le profil pro après le checkout
type Subscription struct {
	ProfileID      uuid.UUID
	CustomerID     string
	SubscriptionID string
}
