package admin_teachers

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/service/accounts"
	"github.com/mph199/eduvite-backend/internal/service/teachers"
	"github.com/mph199/eduvite-backend/internal/usecase/create_teacher"
	"github.com/mph199/eduvite-backend/internal/usecase/generate_slots"
)

// TeachersService интерфейс сервиса учителей
type TeachersService interface {
	List(ctx context.Context) ([]*domain.Teacher, error)
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
	Update(ctx context.Context, id int64, input teachers.CreateInput) (*domain.Teacher, error)
	Delete(ctx context.Context, id int64) error
}

// TeacherCreator составной use case создания учителя
type TeacherCreator interface {
	Execute(ctx context.Context, req *create_teacher.Request) (*create_teacher.Response, error)
}

// SlotGenerator генерация слотов одного учителя
type SlotGenerator interface {
	ExecuteForTeacher(ctx context.Context, req *generate_slots.TeacherRequest) (*generate_slots.TeacherReport, error)
}

// AccountsService сброс логина учителя
type AccountsService interface {
	ResetTeacherLogin(ctx context.Context, teacher *domain.Teacher) (*accounts.Credentials, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
