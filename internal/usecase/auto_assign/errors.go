package auto_assign

import "errors"

// Ошибки use case автоназначения
var (
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("auto_assign: internal error")
)
