package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе получателя webhook
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что получатель уведомлений недоступен; бронирование при этом создано
	ErrServiceDegraded = errors.New("notifier unavailable: graceful degradation applied")
)
