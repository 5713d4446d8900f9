package create_request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
	eventRepo "github.com/mph199/eduvite-backend/internal/infra/storage/event"
	teacherRepo "github.com/mph199/eduvite-backend/internal/infra/storage/teacher"
)

// Request модель запроса на создание заявки на временное окно
type Request struct {
	TeacherID          int64
	RequestedTime      string
	VisitorType        string
	ParentName         *string
	StudentName        *string
	CompanyName        *string
	TraineeName        *string
	RepresentativeName *string
	ClassName          string
	Email              string
	Message            *string
}

// Response модель ответа: созданная заявка
type Response struct {
	RequestID        int64
	TeacherID        int64
	EventID          *int64
	Date             string
	RequestedTime    string
	Status           string
	VerificationSent bool
}

// UseCase use case создания заявки на временное окно
type UseCase struct {
	requestRepo  RequestRepository
	eventRepo    EventRepository
	teacherRepo  TeacherRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	eventRepo EventRepository,
	teacherRepo TeacherRepository,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		eventRepo:    eventRepo,
		teacherRepo:  teacherRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает заявку посетителя на получасовое окно учителя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRequest: teacher=%d window=%q email=%s", req.TeacherID, req.RequestedTime, req.Email)

	// 1. Заявки принимаются только при открытом событии
	active, err := uc.eventRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, eventRepo.ErrNoActiveEvent) {
			uc.logger.Warn("CreateRequest: no active event")
			return nil, ErrNoActiveEvent
		}
		return nil, fmt.Errorf("%w: active event lookup: %v", ErrInternal, err)
	}

	// 2. Учитель определяет сетку допустимых окон
	t, err := uc.teacherRepo.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("%w: teacher lookup: %v", ErrInternal, err)
	}

	// 3. Окно обязано совпадать с одним из канонических окон системы
	window := strings.TrimSpace(req.RequestedTime)
	if !containsWindow(t.System.RequestWindows(), window) {
		uc.logger.Warn("CreateRequest: window %q not allowed for system=%s", window, t.System)
		return nil, ErrInvalidWindow
	}

	// 4. Валидация данных посетителя
	visitor, err := buildVisitor(req)
	if err != nil {
		uc.logger.Warn("CreateRequest: validation failed: %v", err)
		return nil, err
	}

	// 5. Токен подтверждения: в БД хранится только хэш
	token, tokenHash, err := domain.NewVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("%w: generate token: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	eventID := active.ID
	created, err := uc.requestRepo.Create(ctx, &domain.BookingRequest{
		EventID:       &eventID,
		TeacherID:     req.TeacherID,
		RequestedTime: window,
		Date:          active.DateString(),
		Visitor:       visitor,
		Verification: domain.Verification{
			TokenHash:          &tokenHash,
			VerificationSentAt: &now,
		},
	})
	if err != nil {
		uc.logger.Error("CreateRequest: insert failed for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: create request: %v", ErrInternal, err)
	}

	// 6. Письмо подтверждения best-effort: заявка уже создана
	sent := false
	if uc.notifier.IsConfigured() {
		d := mailer.Details{Date: created.Date, Time: created.RequestedTime, TeacherName: t.Name}
		if t.Room != nil {
			d.Room = *t.Room
		}
		if err := uc.notifier.SendRequestVerification(visitor.Email, token, d); err != nil {
			uc.logger.Warn("CreateRequest: verification email for request=%d failed: %v", created.ID, err)
		} else {
			sent = true
		}
	}

	uc.logger.Info("CreateRequest: request=%d created for teacher=%d (verification sent=%t)", created.ID, req.TeacherID, sent)
	return &Response{
		RequestID:        created.ID,
		TeacherID:        created.TeacherID,
		EventID:          created.EventID,
		Date:             created.Date,
		RequestedTime:    created.RequestedTime,
		Status:           string(created.Status),
		VerificationSent: sent,
	}, nil
}

func containsWindow(windows []string, w string) bool {
	for _, candidate := range windows {
		if candidate == w {
			return true
		}
	}
	return false
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

	if err := visitor.Validate(); err != nil {
		return domain.VisitorInfo{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return visitor.Normalized(), nil
}
