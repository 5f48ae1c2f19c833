package mailer

import "errors"

var (
	// ErrSendFailed le serveur SMTP a refusé ou n'a pas pu recevoir le mail
	ErrSendFailed = errors.New("mailer: failed to send mail")

	// ErrInvalidMessage message sans destinataire
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrQueueFull retourné par Enqueue quand la file est saturée
	ErrQueueFull = errors.New("mailer: queue is full")

	// ErrClosed retourné par Enqueue après Close
	ErrClosed = errors.New("mailer: closed")
)
