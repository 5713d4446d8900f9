package auto_assign

import (
	"context"
	"fmt"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/usecase/accept_request"
)

// Report итог одного прохода автоназначения
type Report struct {
	Scanned  int
	Assigned int
	Failed   int
}

// UseCase use case автоназначения просроченных заявок.
//
// Заявка с подтверждённым email, ждущая решения учителя дольше льготного
// периода, назначается на первый свободный слот без предпочтений по
// времени. Ошибка одной заявки не прерывает проход.
type UseCase struct {
	requestRepo  RequestRepository
	accepter     Accepter
	grace        time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(requestRepo RequestRepository, accepter Accepter, grace time.Duration, logger Logger) *UseCase {
	if grace <= 0 {
		grace = domain.DefaultAutoAssignGraceHours * time.Hour
	}
	return &UseCase{
		requestRepo:  requestRepo,
		accepter:     accepter,
		grace:        grace,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет глобальный проход по всем учителям
func (uc *UseCase) Execute(ctx context.Context) (*Report, error) {
	return uc.run(ctx, nil)
}

// ExecuteForTeacher выполняет проход по заявкам одного учителя.
// Вызывается синхронно перед выдачей списка ожидающих заявок, чтобы
// учитель не видел заявки, которые вот-вот назначит таймер.
func (uc *UseCase) ExecuteForTeacher(ctx context.Context, teacherID int64) (*Report, error) {
	return uc.run(ctx, &teacherID)
}

func (uc *UseCase) run(ctx context.Context, teacherID *int64) (*Report, error) {
	before := uc.timeProvider.Now().Add(-uc.grace)

	overdue, err := uc.requestRepo.ListOverdue(ctx, before, teacherID)
	if err != nil {
		return nil, fmt.Errorf("%w: list overdue requests: %v", ErrInternal, err)
	}

	report := &Report{Scanned: len(overdue)}
	if len(overdue) == 0 {
		return report, nil
	}
	uc.logger.Info("AutoAssign: %d overdue request(s) to resolve", len(overdue))

	for _, req := range overdue {
		resp, err := uc.accepter.Execute(ctx, &accept_request.Request{RequestID: req.ID})
		if err != nil {
			report.Failed++
			uc.logger.Warn("AutoAssign: request=%d teacher=%d not assigned: %v", req.ID, req.TeacherID, err)
			continue
		}
		report.Assigned++
		uc.logger.Info("AutoAssign: request=%d assigned to slot=%d", req.ID, resp.AssignedSlotID)
	}

	return report, nil
}
