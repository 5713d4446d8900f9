package domain

import "time"

// Feedback - отзыв посетителя после мероприятия
type Feedback struct {
	ID        int64
	Name      *string
	Email     *string
	Message   string
	CreatedAt time.Time
}
