package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят (проигранная гонка)
	ErrSlotAlreadyBooked = errors.New("slot.repository: slot already booked")

	// ErrSlotNotBooked возвращается при попытке изменить бронь свободного слота
	ErrSlotNotBooked = errors.New("slot.repository: slot not booked")

	// ErrSlotNotReserved возвращается, когда подтверждать нечего
	ErrSlotNotReserved = errors.New("slot.repository: slot not in reserved state")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
