package selectionmgr

import "errors"

var (
	ErrSessionNotFound = errors.New("selection.service: session not found")
	ErrInvalidInput    = errors.New("selection.service: invalid input")
	ErrInvalidDate     = errors.New("selection.service: invalid date")
	ErrInternal        = errors.New("selection.service: internal error")
)
