package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
	eventRepo "github.com/mph199/eduvite-backend/internal/infra/storage/event"
	slotRepo "github.com/mph199/eduvite-backend/internal/infra/storage/slot"
)

// UseCase use case прямой брони слота посетителем
type UseCase struct {
	slotRepo     SlotRepository
	eventRepo    EventRepository
	teacherRepo  TeacherRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	eventRepo EventRepository,
	teacherRepo TeacherRepository,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		eventRepo:    eventRepo,
		teacherRepo:  teacherRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет прямую бронь: условный UPDATE занимает слот только
// если он всё ещё свободен, проигранная гонка отвечает конфликтом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: slot=%d email=%s type=%s", req.SlotID, req.Email, req.VisitorType)

	// 1. Валидация данных посетителя
	visitor, err := buildVisitor(req)
	if err != nil {
		uc.logger.Warn("ReserveSlot: validation failed for slot=%d: %v", req.SlotID, err)
		return nil, err
	}

	// 2. Запись возможна только при открытом событии
	active, err := uc.eventRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, eventRepo.ErrNoActiveEvent) {
			uc.logger.Warn("ReserveSlot: no active event")
			return nil, ErrNoActiveEvent
		}
		return nil, fmt.Errorf("%w: active event lookup: %v", ErrInternal, err)
	}

	// 3. Слот должен существовать и относиться к активному событию
	sl, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: slot lookup: %v", ErrInternal, err)
	}
	if !sl.BelongsToEvent(active.ID) {
		uc.logger.Warn("ReserveSlot: slot=%d outside active event=%d", req.SlotID, active.ID)
		return nil, ErrSlotOutsideEvent
	}

	// 4. Выпускаем токен подтверждения; в БД хранится только хэш
	token, tokenHash, err := domain.NewVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("%w: generate token: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	verification := domain.Verification{
		TokenHash:          &tokenHash,
		VerificationSentAt: &now,
	}

	// 5. Атомарный захват слота. Слот уже несет свое событие,
	//    перепривязка не нужна
	if err := uc.slotRepo.Claim(ctx, req.SlotID, domain.SlotReserved, visitor, verification, nil); err != nil {
		if errors.Is(err, slotRepo.ErrSlotAlreadyBooked) {
			uc.logger.Warn("ReserveSlot: lost race for slot=%d", req.SlotID)
			return nil, ErrSlotAlreadyBooked
		}
		uc.logger.Error("ReserveSlot: claim failed for slot=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: claim slot: %v", ErrInternal, err)
	}

	// 6. Письмо подтверждения best-effort: бронь уже состоялась
	sent := uc.sendVerification(ctx, sl, visitor.Email, token)

	uc.logger.Info("ReserveSlot: slot=%d reserved for %s (verification sent=%t)", req.SlotID, visitor.Email, sent)
	return &Response{
		SlotID:           sl.ID,
		TeacherID:        sl.TeacherID,
		EventID:          sl.EventID,
		Date:             sl.Date,
		Time:             sl.Time,
		Status:           string(domain.SlotReserved),
		VerificationSent: sent,
	}, nil
}

func (uc *UseCase) sendVerification(ctx context.Context, sl *domain.Slot, email, token string) bool {
	if !uc.notifier.IsConfigured() {
		return false
	}

	d := mailer.Details{Date: sl.Date, Time: sl.Time}
	if t, err := uc.teacherRepo.GetByID(ctx, sl.TeacherID); err == nil {
		d.TeacherName = t.Name
		if t.Room != nil {
			d.Room = *t.Room
		}
	}

	if err := uc.notifier.SendReservationVerification(email, token, d); err != nil {
		uc.logger.Warn("ReserveSlot: verification email for slot=%d failed: %v", sl.ID, err)
		return false
	}
	return true
}

// buildVisitor нормализует и проверяет данные посетителя
func buildVisitor(req *Request) (domain.VisitorInfo, error) {
	visitor := domain.VisitorInfo{
		Type:               domain.VisitorType(strings.TrimSpace(req.VisitorType)),
		ParentName:         req.ParentName,
		StudentName:        req.StudentName,
		CompanyName:        req.CompanyName,
		TraineeName:        req.TraineeName,
		RepresentativeName: req.RepresentativeName,
		ClassName:          strings.TrimSpace(req.ClassName),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		Message:            req.Message,
	}
	if visitor.Type == "" {
		visitor.Type = domain.VisitorParent
	}

	if err := visitor.Validate(); err != nil {
		return domain.VisitorInfo{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return visitor.Normalized(), nil
}
