package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	eventRepo "github.com/mph199/eduvite-backend/internal/infra/storage/event"
)

// defaultTimezone - часовой пояс школы
const defaultTimezone = "Europe/Berlin"

// upcomingLimit ограничивает публичную выдачу ближайших событий
const upcomingLimit = 3

// CreateInput входные данные для создания события
type CreateInput struct {
	Name            string
	SchoolYear      string
	StartsAt        time.Time
	EndsAt          time.Time
	Timezone        string
	Status          string
	BookingOpensAt  *time.Time
	BookingClosesAt *time.Time
}

// UpdateInput частичное обновление события: nil-поля не трогаются
type UpdateInput struct {
	Name            *string
	SchoolYear      *string
	StartsAt        *time.Time
	EndsAt          *time.Time
	Timezone        *string
	Status          *string
	BookingOpensAt  *time.Time
	BookingClosesAt *time.Time
	ClearOpensAt    bool
	ClearClosesAt   bool
}

// Service сервис для работы с событиями и глобальными настройками
type Service struct {
	eventRepo    EventRepository
	slotRepo     SlotRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(
	eventRepo EventRepository,
	slotRepo SlotRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *Service {
	return &Service{
		eventRepo:    eventRepo,
		slotRepo:     slotRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Create создает событие
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Event, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if input.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: starts_at required", ErrInvalidInput)
	}

	status := domain.EventStatus(input.Status)
	if status == "" {
		status = domain.EventDraft
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	endsAt := input.EndsAt
	if endsAt.IsZero() {
		endsAt = input.StartsAt
	}

	timezone := strings.TrimSpace(input.Timezone)
	if timezone == "" {
		timezone = defaultTimezone
	}

	e := &domain.Event{
		Name:            name,
		SchoolYear:      strings.TrimSpace(input.SchoolYear),
		StartsAt:        input.StartsAt,
		EndsAt:          endsAt,
		Timezone:        timezone,
		Status:          status,
		BookingOpensAt:  input.BookingOpensAt,
		BookingClosesAt: input.BookingClosesAt,
	}

	created, err := s.eventRepo.Create(ctx, e)
	if err != nil {
		s.logger.Error("Create: repository error for event %q: %v", name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: event id=%d %q (%s) created", created.ID, created.Name, created.Status)
	return created, nil
}

// GetByID получает событие по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("GetByID: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return e, nil
}

// GetActive получает событие с открытым окном записи
func (s *Service) GetActive(ctx context.Context) (*domain.Event, error) {
	e, err := s.eventRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, eventRepo.ErrNoActiveEvent) {
			return nil, ErrNoActiveEvent
		}
		s.logger.Error("GetActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}
	return e, nil
}

// List получает все события
func (s *Service) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return events, nil
}

// Upcoming получает ближайшие опубликованные события
func (s *Service) Upcoming(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListUpcoming(ctx, upcomingLimit)
	if err != nil {
		s.logger.Error("Upcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upcoming - repository error: %v", ErrInternal, err)
	}
	return events, nil
}

// Update частично обновляет событие
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*domain.Event, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name required", ErrInvalidInput)
		}
		e.Name = name
	}
	if input.SchoolYear != nil {
		e.SchoolYear = strings.TrimSpace(*input.SchoolYear)
	}
	if input.StartsAt != nil {
		e.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		e.EndsAt = *input.EndsAt
	}
	if input.Timezone != nil && strings.TrimSpace(*input.Timezone) != "" {
		e.Timezone = strings.TrimSpace(*input.Timezone)
	}
	if input.Status != nil {
		status := domain.EventStatus(*input.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		e.Status = status
	}
	if input.BookingOpensAt != nil {
		e.BookingOpensAt = input.BookingOpensAt
	} else if input.ClearOpensAt {
		e.BookingOpensAt = nil
	}
	if input.BookingClosesAt != nil {
		e.BookingClosesAt = input.BookingClosesAt
	} else if input.ClearClosesAt {
		e.BookingClosesAt = nil
	}

	if err := s.eventRepo.Update(ctx, e); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("Update: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: event id=%d updated (status=%s)", id, e.Status)
	return e, nil
}

// Delete удаляет событие
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("Delete: repository error for event id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: event id=%d deleted", id)
	return nil
}

// Stats считает слотовые счётчики события
func (s *Service) Stats(ctx context.Context, id int64) (*domain.EventStats, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	stats, err := s.slotRepo.CountsByEvent(ctx, id)
	if err != nil {
		s.logger.Error("Stats: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}
	return stats, nil
}

// GetSettings читает глобальные настройки
func (s *Service) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("GetSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}
	return settings, nil
}

// UpdateSettings записывает глобальные настройки
func (s *Service) UpdateSettings(ctx context.Context, conferenceDate *string, slotMinutes int) (*domain.Settings, error) {
	if conferenceDate != nil {
		trimmed := strings.TrimSpace(*conferenceDate)
		if trimmed == "" {
			conferenceDate = nil
		} else {
			if _, err := time.Parse(domain.DateFormat, trimmed); err != nil {
				return nil, fmt.Errorf("%w: conference date must be %s", ErrInvalidInput, domain.DateFormat)
			}
			conferenceDate = &trimmed
		}
	}
	if slotMinutes != 0 && !domain.IsValidSlotMinutes(slotMinutes) {
		return nil, fmt.Errorf("%w: unsupported slot duration %d", ErrInvalidInput, slotMinutes)
	}
	if slotMinutes == 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}

	settings := &domain.Settings{
		ConferenceDate: conferenceDate,
		SlotMinutes:    slotMinutes,
	}
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		s.logger.Error("UpdateSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: settings saved (slotMinutes=%d)", slotMinutes)
	return s.GetSettings(ctx)
}
