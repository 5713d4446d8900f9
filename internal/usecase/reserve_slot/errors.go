package reserve_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrNoActiveEvent возвращается, когда запись сейчас закрыта
	ErrNoActiveEvent = errors.New("reserve_slot: no active event")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reserve_slot: slot not found")

	// ErrSlotOutsideEvent возвращается, когда слот не относится к
	// текущему опубликованному событию
	ErrSlotOutsideEvent = errors.New("reserve_slot: slot does not belong to the active event")

	// ErrSlotAlreadyBooked возвращается при проигранной гонке за слот
	ErrSlotAlreadyBooked = errors.New("reserve_slot: slot already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
