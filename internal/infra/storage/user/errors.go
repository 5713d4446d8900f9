package user

import "errors"

var (
	// ErrUserNotFound возвращается, когда учётная запись не найдена
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrDuplicateUsername возвращается при попытке занять существующий логин
	ErrDuplicateUsername = errors.New("user.repository: username already in use")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
