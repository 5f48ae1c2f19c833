package mailer

import (
	"fmt"
	"time"
)

// Message notification en texte brut
type Message struct {
	To      string
	Subject string
	Body    string
}

const slotLayout = "02/01/2006 à 15:04"

// AppointmentRequested mail au pro quand un propriétaire réserve un créneau
func AppointmentRequested(to, ownerName string, slot time.Time) Message {
	return Message{
		To:      to,
		Subject: "Nouvelle demande de rendez-vous",
		Body: fmt.Sprintf("Bonjour,\n\n%s vous a envoyé une demande de rendez-vous pour le %s (UTC).\n"+
			"Connectez-vous à Ekicare pour l'accepter, la refuser ou proposer un autre créneau.\n",
			ownerName, slot.UTC().Format(slotLayout)),
	}
}

// AppointmentStatusChanged mail à l'autre participant après un changement de statut
func AppointmentStatusChanged(to, actorName, status string, slot time.Time) Message {
	return Message{
		To:      to,
		Subject: "Mise à jour de votre rendez-vous",
		Body: fmt.Sprintf("Bonjour,\n\n%s a mis à jour votre rendez-vous du %s (UTC).\nNouveau statut : %s.\n",
			actorName, slot.UTC().Format(slotLayout), statusLabel(status)),
	}
}

func statusLabel(status string) string {
	switch status {
	case "pending":
		return "en attente"
	case "confirmed":
		return "confirmé"
	case "rejected":
		return "refusé"
	case "rescheduled":
		return "nouveau créneau proposé"
	case "completed":
		return "terminé"
	case "canceled":
		return "annulé"
	}
	return status
}
