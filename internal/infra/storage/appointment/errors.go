package appointment

import "errors"

var (
	// ErrAppointmentNotFound aucun rendez-vous pour cet id
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken le pro a déjà un rendez-vous sur ce créneau
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	ErrBuildQuery = errors.New("appointment.repository: failed to build query")
	ErrExecQuery  = errors.New("appointment.repository: failed to execute query")
	ErrScanRow    = errors.New("appointment.repository: failed to scan row")
	ErrEncode     = errors.New("appointment.repository: failed to encode value")
)
