package teachers

import "errors"

var (
	// ErrTeacherNotFound возвращается, когда учитель не найден
	ErrTeacherNotFound = errors.New("teacher not found")

	// ErrInvalidEmail возвращается для email вне школьного домена
	ErrInvalidEmail = errors.New("invalid teacher email")

	// ErrInvalidSalutation возвращается для недопустимой формы обращения
	ErrInvalidSalutation = errors.New("invalid salutation")

	// ErrInvalidSystem возвращается для недопустимой формы обучения
	ErrInvalidSystem = errors.New("invalid teacher system")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDuplicateEmail возвращается, когда email уже занят другим учителем
	ErrDuplicateEmail = errors.New("teacher email already in use")

	// ErrHasBookedSlots запрещает удаление учителя с занятыми слотами
	ErrHasBookedSlots = errors.New("teacher still has booked slots")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
