package get_day_schedule

import "errors"

var (
	// ErrInvalidDate возвращается при пустой или некорректной дате запроса
	ErrInvalidDate = errors.New("invalid schedule date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
