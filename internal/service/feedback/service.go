package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mph199/eduvite-backend/internal/domain"
	feedbackRepo "github.com/mph199/eduvite-backend/internal/infra/storage/feedback"
)

var (
	// ErrFeedbackNotFound возвращается, когда отзыв не найден
	ErrFeedbackNotFound = errors.New("feedback not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// FeedbackRepository интерфейс репозитория отзывов
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	List(ctx context.Context) ([]*domain.Feedback, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service сервис отзывов посетителей
type Service struct {
	feedbackRepo FeedbackRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(feedbackRepo FeedbackRepository, logger Logger) *Service {
	return &Service{feedbackRepo: feedbackRepo, logger: logger}
}

// Create сохраняет отзыв. Имя и email необязательны, текст обязателен
// и ограничен по длине.
func (s *Service) Create(ctx context.Context, name, email *string, message string) (*domain.Feedback, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message required", ErrInvalidInput)
	}
	if len(message) > domain.MaxFeedbackMessageLength {
		return nil, fmt.Errorf("%w: message too long", ErrInvalidInput)
	}

	f := &domain.Feedback{
		Name:    trimOptional(name),
		Email:   trimOptional(email),
		Message: message,
	}

	created, err := s.feedbackRepo.Create(ctx, f)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: feedback id=%d saved", created.ID)
	return created, nil
}

// List получает последние отзывы
func (s *Service) List(ctx context.Context) ([]*domain.Feedback, error) {
	list, err := s.feedbackRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// Delete удаляет отзыв
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.feedbackRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, feedbackRepo.ErrFeedbackNotFound) {
			return ErrFeedbackNotFound
		}
		s.logger.Error("Delete: repository error for feedback id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: feedback id=%d deleted", id)
	return nil
}

func trimOptional(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
