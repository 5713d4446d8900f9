package domain

import "errors"

var (
	// ErrVisitorFieldsMissing возвращается, когда отсутствуют обязательные поля посетителя
	ErrVisitorFieldsMissing = errors.New("domain: required visitor fields missing")

	// ErrInvalidVisitorType возвращается при неизвестном типе посетителя
	ErrInvalidVisitorType = errors.New("domain: visitor type must be parent or company")
)
