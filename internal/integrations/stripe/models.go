package stripe

// Statuts de session checkout et de paiement tels que renvoyés par Stripe
const (
	SessionStatusComplete = "complete"
	SessionStatusOpen     = "open"
	SessionStatusExpired  = "expired"

	PaymentStatusPaid              = "paid"
	PaymentStatusUnpaid            = "unpaid"
	PaymentStatusNoPaymentRequired = "no_payment_required"
)

// MetadataUserID clé de metadata portant l'id du profil abonné
const MetadataUserID = "user_id"

// CheckoutRequest checkout d'abonnement pour un pro
type CheckoutRequest struct {
	UserID string
	Email  string
}

// CheckoutSession sous-ensemble d'une session checkout Stripe utilisé par la facturation
type CheckoutSession struct {
	ID                string
	URL               string
	Status            string
	PaymentStatus     string
	ClientReferenceID string
	CustomerID        string
	SubscriptionID    string
	Metadata          map[string]string
}

// IsPaid vrai une fois le checkout terminé et le paiement passé
func (s *CheckoutSession) IsPaid() bool {
	if s.Status != SessionStatusComplete {
		return false
	}
	return s.PaymentStatus == PaymentStatusPaid || s.PaymentStatus == PaymentStatusNoPaymentRequired
}

// OwnerID id du profil pour lequel la session a été ouverte
func (s *CheckoutSession) OwnerID() string {
	if s.ClientReferenceID != "" {
		return s.ClientReferenceID
	}
	return s.Metadata[MetadataUserID]
}

// Event événement webhook vérifié.
// Session est rempli pour checkout.session.*, SubscriptionID pour customer.subscription.*.
type Event struct {
	ID             string
	Type           string
	Payload        []byte
	Session        *CheckoutSession
	SubscriptionID string
}
