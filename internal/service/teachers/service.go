package teachers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mph199/eduvite-backend/internal/domain"
	teacherRepo "github.com/mph199/eduvite-backend/internal/infra/storage/teacher"
)

// defaultSubject подставляется, если предмет не указан
const defaultSubject = "Sprechstunde"

// CreateInput входные данные для создания или обновления учителя
type CreateInput struct {
	Name       string
	Email      string
	Salutation string
	Subject    string
	System     string
	Room       *string
}

// Service сервис для работы с карточками учителей
type Service struct {
	teacherRepo TeacherRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	emailDomain string
	logger      Logger
}

// NewService создает новый экземпляр сервиса учителей.
// emailDomain - школьный домен, на который обязаны оканчиваться адреса учителей.
func NewService(
	teacherRepo TeacherRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	emailDomain string,
	logger Logger,
) *Service {
	return &Service{
		teacherRepo: teacherRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		emailDomain: emailDomain,
		logger:      logger,
	}
}

// Create создает карточку учителя
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Teacher, error) {
	t, err := s.buildTeacher(input)
	if err != nil {
		s.logger.Warn("Create: validation failed for teacher %q: %v", input.Name, err)
		return nil, err
	}

	created, err := s.teacherRepo.Create(ctx, t)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("Create: repository error for teacher %q: %v", input.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: teacher id=%d %q created", created.ID, created.Name)
	return created, nil
}

// GetByID получает учителя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Teacher, error) {
	t, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("GetByID: repository error for teacher id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return t, nil
}

// List получает всех учителей
func (s *Service) List(ctx context.Context) ([]*domain.Teacher, error) {
	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return teachers, nil
}

// Update изменяет карточку учителя
func (s *Service) Update(ctx context.Context, id int64, input CreateInput) (*domain.Teacher, error) {
	t, err := s.buildTeacher(input)
	if err != nil {
		s.logger.Warn("Update: validation failed for teacher id=%d: %v", id, err)
		return nil, err
	}
	t.ID = id

	if err := s.teacherRepo.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, teacherRepo.ErrTeacherNotFound):
			return nil, ErrTeacherNotFound
		case errors.Is(err, teacherRepo.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		}
		s.logger.Error("Update: repository error for teacher id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: teacher id=%d updated", id)
	return s.GetByID(ctx, id)
}

// UpdateRoom изменяет кабинет учителя (личный кабинет)
func (s *Service) UpdateRoom(ctx context.Context, id int64, room *string) (*domain.Teacher, error) {
	if room != nil {
		trimmed := strings.TrimSpace(*room)
		if len(trimmed) > domain.MaxRoomLength {
			return nil, fmt.Errorf("%w: room too long", ErrInvalidInput)
		}
		if trimmed == "" {
			room = nil
		} else {
			room = &trimmed
		}
	}

	if err := s.teacherRepo.UpdateRoom(ctx, id, room); err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("UpdateRoom: repository error for teacher id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateRoom - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет учителя вместе с его свободными слотами.
// Пока у учителя есть занятые слоты, удаление запрещено.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		hasBooked, err := s.slotRepo.HasBooked(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - check booked slots: %v", ErrInternal, err)
		}
		if hasBooked {
			return ErrHasBookedSlots
		}

		removed, err := s.slotRepo.DeleteFreeAll(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - delete free slots: %v", ErrInternal, err)
		}
		s.logger.Info("Delete: removed %d free slots of teacher id=%d", removed, id)

		if err := s.teacherRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
				return ErrTeacherNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrHasBookedSlots) {
			s.logger.Warn("Delete: teacher id=%d still has booked slots", id)
		} else {
			s.logger.Error("Delete: failed for teacher id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("Delete: teacher id=%d deleted", id)
	return nil
}

// buildTeacher нормализует и валидирует входные данные карточки
func (s *Service) buildTeacher(input CreateInput) (*domain.Teacher, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidInput)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.HasSuffix(email, "@"+s.emailDomain) {
		return nil, ErrInvalidEmail
	}

	salutation := strings.TrimSpace(input.Salutation)
	if !domain.IsValidSalutation(salutation) {
		return nil, ErrInvalidSalutation
	}

	system := domain.TeacherSystem(strings.TrimSpace(input.System))
	if system == "" {
		system = domain.SystemDual
	}
	if !system.IsValid() {
		return nil, ErrInvalidSystem
	}

	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = defaultSubject
	}

	room := input.Room
	if room != nil {
		trimmed := strings.TrimSpace(*room)
		if trimmed == "" {
			room = nil
		} else if len(trimmed) > domain.MaxRoomLength {
			return nil, fmt.Errorf("%w: room too long", ErrInvalidInput)
		} else {
			room = &trimmed
		}
	}

	return &domain.Teacher{
		Name:       name,
		Email:      email,
		Salutation: salutation,
		Subject:    subject,
		System:     system,
		Room:       room,
	}, nil
}
