package create_request

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_request: invalid input data")

	// ErrInvalidWindow возвращается для окна вне сетки учителя
	ErrInvalidWindow = errors.New("create_request: requested time window invalid")

	// ErrNoActiveEvent возвращается, когда запись сейчас закрыта
	ErrNoActiveEvent = errors.New("create_request: no active event")

	// ErrTeacherNotFound возвращается, когда учитель не найден
	ErrTeacherNotFound = errors.New("create_request: teacher not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_request: internal error")
)
