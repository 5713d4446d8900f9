package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("event not found")

	// ErrNoActiveEvent возвращается, когда запись сейчас закрыта
	ErrNoActiveEvent = errors.New("no active event")

	// ErrInvalidStatus возвращается для недопустимого статуса события
	ErrInvalidStatus = errors.New("invalid event status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
