package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrTeacherNotFound возвращается, когда учитель не найден
	ErrTeacherNotFound = errors.New("teacher not found")

	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("event not found")

	// ErrAccessDenied возвращается, когда слот принадлежит другому учителю
	ErrAccessDenied = errors.New("access denied")

	// ErrSlotNotBooked возвращается для операций над свободным слотом
	ErrSlotNotBooked = errors.New("slot not booked")

	// ErrSlotNotReserved возвращается, когда подтверждать нечего
	ErrSlotNotReserved = errors.New("slot not in reserved state")

	// ErrEmailNotVerified возвращается при подтверждении брони,
	// чей посетитель еще не подтвердил свой email
	ErrEmailNotVerified = errors.New("visitor email not verified")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
