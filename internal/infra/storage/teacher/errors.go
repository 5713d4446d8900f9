package teacher

import "errors"

var (
	// ErrTeacherNotFound возвращается, когда учитель не найден
	ErrTeacherNotFound = errors.New("teacher.repository: teacher not found")

	// ErrDuplicateEmail возвращается при попытке создать учителя с занятым email
	ErrDuplicateEmail = errors.New("teacher.repository: email already in use")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("teacher.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("teacher.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("teacher.repository: failed to scan row")
)
