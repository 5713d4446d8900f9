package create_teacher

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/service/accounts"
	"github.com/mph199/eduvite-backend/internal/service/teachers"
	"github.com/mph199/eduvite-backend/internal/usecase/generate_slots"
)

// TeacherCreator создает карточку учителя
type TeacherCreator interface {
	Create(ctx context.Context, input teachers.CreateInput) (*domain.Teacher, error)
}

// SlotGenerator генерирует слоты нового учителя
type SlotGenerator interface {
	ExecuteForTeacher(ctx context.Context, req *generate_slots.TeacherRequest) (*generate_slots.TeacherReport, error)
}

// AccountProvisioner заводит учетную запись учителя
type AccountProvisioner interface {
	EnsureTeacherAccount(ctx context.Context, teacher *domain.Teacher, username, password string) (*accounts.Credentials, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
