package verify_email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
	requestRepo "github.com/mph199/eduvite-backend/internal/infra/storage/request"
	slotRepo "github.com/mph199/eduvite-backend/internal/infra/storage/slot"
)

var (
	// ErrTokenNotFound возвращается для неизвестного или уже погашенного токена
	ErrTokenNotFound = errors.New("verify_email: token not found")

	// ErrTokenExpired возвращается, когда ссылка пережила свой TTL
	ErrTokenExpired = errors.New("verify_email: token expired")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("verify_email: internal error")
)

// Kind сообщает, к чему относился подтвержденный токен
type Kind string

const (
	KindSlot    Kind = "slot"
	KindRequest Kind = "request"
)

// Response результат подтверждения email
type Response struct {
	Kind    Kind
	Message string
}

// UseCase use case подтверждения email по ссылке из письма.
// Токен ищется и среди прямых броней, и среди заявок; подтверждение
// идемпотентно, а уже принятая заявка или подтвержденная бронь тут же
// получает отложенное письмо-подтверждение.
type UseCase struct {
	slotRepo     SlotRepository
	requestRepo  RequestRepository
	teacherRepo  TeacherRepository
	notifier     Notifier
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	requestRepo RequestRepository,
	teacherRepo TeacherRepository,
	notifier Notifier,
	ttl time.Duration,
	logger Logger,
) *UseCase {
	if ttl <= 0 {
		ttl = domain.DefaultVerificationTTLHours * time.Hour
	}
	return &UseCase{
		slotRepo:     slotRepo,
		requestRepo:  requestRepo,
		teacherRepo:  teacherRepo,
		notifier:     notifier,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute гасит токен подтверждения
func (uc *UseCase) Execute(ctx context.Context, token string) (*Response, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}
	tokenHash := domain.HashToken(token)
	now := uc.timeProvider.Now()

	// 1. Сначала прямые брони
	sl, err := uc.slotRepo.FindByTokenHash(ctx, tokenHash)
	if err == nil {
		return uc.verifySlot(ctx, sl, now)
	}
	if !errors.Is(err, slotRepo.ErrSlotNotFound) {
		return nil, fmt.Errorf("%w: slot lookup: %v", ErrInternal, err)
	}

	// 2. Потом заявки на окна
	req, err := uc.requestRepo.FindByTokenHash(ctx, tokenHash)
	if err == nil {
		return uc.verifyRequest(ctx, req, now)
	}
	if !errors.Is(err, requestRepo.ErrRequestNotFound) {
		return nil, fmt.Errorf("%w: request lookup: %v", ErrInternal, err)
	}

	uc.logger.Warn("VerifyEmail: unknown token hash")
	return nil, ErrTokenNotFound
}

func (uc *UseCase) verifySlot(ctx context.Context, sl *domain.Slot, now time.Time) (*Response, error) {
	if !sl.Verification.IsVerified() {
		if sl.Verification.IsExpiredAt(now, uc.ttl) {
			uc.logger.Warn("VerifyEmail: expired token for slot=%d", sl.ID)
			return nil, ErrTokenExpired
		}
		if err := uc.slotRepo.MarkVerified(ctx, sl.ID); err != nil {
			uc.logger.Error("VerifyEmail: mark slot=%d verified: %v", sl.ID, err)
			return nil, fmt.Errorf("%w: mark verified: %v", ErrInternal, err)
		}
		uc.logger.Info("VerifyEmail: slot=%d email verified", sl.ID)
	}

	// Учитель успел подтвердить бронь раньше, чем посетитель перешел по
	// ссылке: письмо-подтверждение отправляется сейчас, один раз.
	if sl.IsConfirmed() && sl.Verification.ConfirmationSentAt == nil && uc.notifier.IsConfigured() {
		d := uc.details(ctx, sl.TeacherID, sl.Date, sl.Time)
		if err := uc.notifier.SendBookingConfirmed(sl.Visitor.Email, d); err != nil {
			uc.logger.Warn("VerifyEmail: late confirmation email for slot=%d failed: %v", sl.ID, err)
		} else if err := uc.slotRepo.StampConfirmationSent(ctx, sl.ID); err != nil {
			uc.logger.Warn("VerifyEmail: stamp confirmation for slot=%d failed: %v", sl.ID, err)
		}
	}

	return &Response{
		Kind:    KindSlot,
		Message: "E-Mail bestätigt. Wir informieren Sie bei Bestätigung durch die Lehrkraft.",
	}, nil
}

func (uc *UseCase) verifyRequest(ctx context.Context, req *domain.BookingRequest, now time.Time) (*Response, error) {
	if !req.Verification.IsVerified() {
		if req.Verification.IsExpiredAt(now, uc.ttl) {
			uc.logger.Warn("VerifyEmail: expired token for request=%d", req.ID)
			return nil, ErrTokenExpired
		}
		if err := uc.requestRepo.MarkVerified(ctx, req.ID); err != nil {
			uc.logger.Error("VerifyEmail: mark request=%d verified: %v", req.ID, err)
			return nil, fmt.Errorf("%w: mark verified: %v", ErrInternal, err)
		}
		uc.logger.Info("VerifyEmail: request=%d email verified", req.ID)
	}

	// Заявка уже принята: добираем отложенное письмо о назначенном термине
	if req.Status == domain.RequestAccepted && req.AssignedSlotID != nil &&
		req.Verification.ConfirmationSentAt == nil && uc.notifier.IsConfigured() {
		date, slotTime := req.Date, req.RequestedTime
		if assigned, err := uc.slotRepo.GetByID(ctx, *req.AssignedSlotID); err == nil {
			date, slotTime = assigned.Date, assigned.Time
		}
		d := uc.details(ctx, req.TeacherID, date, slotTime)
		if err := uc.notifier.SendRequestAccepted(req.Visitor.Email, d, ""); err != nil {
			uc.logger.Warn("VerifyEmail: late confirmation email for request=%d failed: %v", req.ID, err)
		} else if err := uc.requestRepo.StampConfirmationSent(ctx, req.ID); err != nil {
			uc.logger.Warn("VerifyEmail: stamp confirmation for request=%d failed: %v", req.ID, err)
		}
	}

	return &Response{
		Kind:    KindRequest,
		Message: "E-Mail bestätigt. Wir informieren Sie, sobald die Lehrkraft Ihnen einen Termin zuweist.",
	}, nil
}

func (uc *UseCase) details(ctx context.Context, teacherID int64, date, slotTime string) mailer.Details {
	d := mailer.Details{Date: date, Time: slotTime}
	if t, err := uc.teacherRepo.GetByID(ctx, teacherID); err == nil {
		d.TeacherName = t.Name
		if t.Room != nil {
			d.Room = *t.Room
		}
	}
	return d
}
