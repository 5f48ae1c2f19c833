package get_calendar

import "errors"

var (
	ErrProNotFound  = errors.New("get_calendar: professional not found")
	ErrInvalidInput = errors.New("get_calendar: invalid input data")
	ErrInternal     = errors.New("get_calendar: internal error")
)
