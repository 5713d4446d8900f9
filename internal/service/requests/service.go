package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/mph199/eduvite-backend/internal/domain"
	requestRepo "github.com/mph199/eduvite-backend/internal/infra/storage/request"
)

var (
	// ErrRequestNotFound возвращается, когда запрос не найден
	ErrRequestNotFound = errors.New("booking request not found")

	// ErrAccessDenied возвращается, когда запрос адресован другому учителю
	ErrAccessDenied = errors.New("access denied")

	// ErrNotPending возвращается, когда запрос уже обработан
	ErrNotPending = errors.New("booking request already resolved")

	// ErrInvalidStatus возвращается для неизвестного фильтра статуса
	ErrInvalidStatus = errors.New("invalid request status")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// Service сервис запросов на запись: выдача учителю и отклонение.
// Принятие запроса с подбором слота живет отдельным usecase.
type Service struct {
	requestRepo RequestRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса запросов
func NewService(requestRepo RequestRepository, logger Logger) *Service {
	return &Service{requestRepo: requestRepo, logger: logger}
}

// ListForTeacher получает запросы учителя с необязательным фильтром статуса
func (s *Service) ListForTeacher(ctx context.Context, teacherID int64, status string) ([]*domain.BookingRequest, error) {
	var filter *domain.RequestStatus
	if status != "" {
		st := domain.RequestStatus(status)
		if st != domain.RequestRequested && st != domain.RequestAccepted && st != domain.RequestDeclined {
			return nil, ErrInvalidStatus
		}
		filter = &st
	}

	list, err := s.requestRepo.ListByTeacher(ctx, teacherID, filter)
	if err != nil {
		s.logger.Error("ListForTeacher: repository error for teacher id=%d: %v", teacherID, err)
		return nil, fmt.Errorf("%w: ListForTeacher - repository error: %v", ErrInternal, err)
	}

	return list, nil
}

// Decline отклоняет ожидающий запрос. Переход атомарный: если запрос
// уже принят или отклонен, возвращается конфликт.
func (s *Service) Decline(ctx context.Context, teacherID, requestID int64) (*domain.BookingRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("Decline: repository error for request id=%d: %v", requestID, err)
		return nil, fmt.Errorf("%w: Decline - repository error: %v", ErrInternal, err)
	}

	if req.TeacherID != teacherID {
		s.logger.Warn("Decline: teacher id=%d does not own request id=%d", teacherID, requestID)
		return nil, ErrAccessDenied
	}

	if err := s.requestRepo.Decline(ctx, requestID); err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotPending) {
			return nil, ErrNotPending
		}
		s.logger.Error("Decline: update failed for request id=%d: %v", requestID, err)
		return nil, fmt.Errorf("%w: Decline - repository error: %v", ErrInternal, err)
	}

	req.Status = domain.RequestDeclined
	s.logger.Info("Decline: request id=%d declined by teacher id=%d", requestID, teacherID)
	return req, nil
}
