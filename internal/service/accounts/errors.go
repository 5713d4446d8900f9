package accounts

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound возвращается, когда учётная запись не найдена
	ErrUserNotFound = errors.New("user not found")

	// ErrWeakPassword возвращается для пароля короче минимума
	ErrWeakPassword = errors.New("password too weak")

	// ErrInvalidRole возвращается для неизвестной роли
	ErrInvalidRole = errors.New("invalid role")

	// ErrSelfDemotion запрещает админу снимать роль с самого себя
	ErrSelfDemotion = errors.New("cannot change own admin role")

	// ErrDuplicateUsername возвращается при попытке занять существующий логин
	ErrDuplicateUsername = errors.New("username already in use")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
