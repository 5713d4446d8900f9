package generate_slots

import "errors"

// Ошибки use case генерации слотов
var (
	// ErrTeacherNotFound учитель не найден
	ErrTeacherNotFound = errors.New("generate_slots: teacher not found")

	// ErrEventNotFound событие не найдено
	ErrEventNotFound = errors.New("generate_slots: event not found")

	// ErrInvalidSlotMinutes неподдерживаемая гранулярность слотов
	ErrInvalidSlotMinutes = errors.New("generate_slots: invalid slot minutes")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("generate_slots: internal error")
)
