package accept_request

import "errors"

// Ошибки use case принятия заявки
var (
	// ErrRequestNotFound заявка не найдена
	ErrRequestNotFound = errors.New("accept_request: request not found")

	// ErrAccessDenied заявка принадлежит другому учителю
	ErrAccessDenied = errors.New("accept_request: access denied")

	// ErrNotPending заявка уже принята или отклонена
	ErrNotPending = errors.New("accept_request: request is not pending anymore")

	// ErrNotVerified посетитель ещё не подтвердил email
	ErrNotVerified = errors.New("accept_request: visitor email is not verified")

	// ErrNoSlotAvailable нет свободного слота под заявку
	ErrNoSlotAvailable = errors.New("accept_request: no free slot available")

	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("accept_request: invalid input")

	// ErrSlotRace слот перехвачен конкурентной бронью
	ErrSlotRace = errors.New("accept_request: slot was claimed concurrently")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("accept_request: internal error")
)
