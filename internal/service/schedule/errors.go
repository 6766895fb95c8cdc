package schedule

import "errors"

var (
	ErrInvalidInput = errors.New("schedule.service: invalid input")
	ErrInvalidDate  = errors.New("schedule.service: invalid date")
	ErrNotBlocked   = errors.New("schedule.service: date is not blocked")
	ErrInternal     = errors.New("schedule.service: internal error")
)
