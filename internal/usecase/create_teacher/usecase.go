package create_teacher

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/service/accounts"
	"github.com/mph199/eduvite-backend/internal/service/teachers"
	"github.com/mph199/eduvite-backend/internal/usecase/generate_slots"
)

// Request входные данные создания учителя
type Request struct {
	Teacher  teachers.CreateInput
	Username string // пустая строка означает имя из фамилии учителя
	Password string // короче минимума означает сгенерированный пароль
}

// Response результат создания учителя
type Response struct {
	Teacher      *domain.Teacher
	SlotsCreated int
	Credentials  *accounts.Credentials
}

// UseCase составной use case создания учителя.
//
// Карточка учителя первична. Генерация слотов и заведение учетной
// записи идут следом как best-effort: их сбой логируется, но созданную
// карточку не откатывает, админ может докрутить обе операции вручную.
type UseCase struct {
	teacherCreator TeacherCreator
	slotGenerator  SlotGenerator
	accounts       AccountProvisioner
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	teacherCreator TeacherCreator,
	slotGenerator SlotGenerator,
	accounts AccountProvisioner,
	logger Logger,
) *UseCase {
	return &UseCase{
		teacherCreator: teacherCreator,
		slotGenerator:  slotGenerator,
		accounts:       accounts,
		logger:         logger,
	}
}

// Execute создает учителя, его слоты и учетную запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateTeacher: name=%s email=%s", req.Teacher.Name, req.Teacher.Email)

	// 1. Карточка учителя
	t, err := uc.teacherCreator.Create(ctx, req.Teacher)
	if err != nil {
		return nil, err
	}

	resp := &Response{Teacher: t}

	// 2. Слоты под активное событие (с фолбэками по дате)
	report, err := uc.slotGenerator.ExecuteForTeacher(ctx, &generate_slots.TeacherRequest{TeacherID: t.ID})
	if err != nil {
		uc.logger.Warn("CreateTeacher: slot generation for teacher=%d failed: %v", t.ID, err)
	} else {
		resp.SlotsCreated = report.Created
	}

	// 3. Учетная запись с временным паролем
	creds, err := uc.accounts.EnsureTeacherAccount(ctx, t, req.Username, req.Password)
	if err != nil {
		uc.logger.Warn("CreateTeacher: account provisioning for teacher=%d failed: %v", t.ID, err)
	} else {
		resp.Credentials = creds
	}

	uc.logger.Info("CreateTeacher: teacher=%d created (slots=%d, account=%t)",
		t.ID, resp.SlotsCreated, resp.Credentials != nil)
	return resp, nil
}
