package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
	eventRepo "github.com/mph199/eduvite-backend/internal/infra/storage/event"
	slotRepo "github.com/mph199/eduvite-backend/internal/infra/storage/slot"
	teacherRepo "github.com/mph199/eduvite-backend/internal/infra/storage/teacher"
)

// PublicSlot - обезличенный слот публичной выдачи. Настоящие слоты и
// занятость наружу не отдаются, посетитель видит только сетку окон.
type PublicSlot struct {
	ID        int64
	EventID   *int64
	TeacherID int64
	Date      string
	Time      string
	Booked    bool
}

// SlotWithTeacher слот вместе с данными учителя для админской выдачи
type SlotWithTeacher struct {
	Slot           *domain.Slot
	TeacherName    string
	TeacherSubject string
}

// SlotInput входные данные админского создания или изменения слота
type SlotInput struct {
	TeacherID int64
	EventID   *int64
	Date      string
	Time      string
}

// Service сервис для работы со слотами
type Service struct {
	slotRepo    SlotRepository
	teacherRepo TeacherRepository
	eventRepo   EventRepository
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	teacherRepo TeacherRepository,
	eventRepo EventRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		teacherRepo: teacherRepo,
		eventRepo:   eventRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// PublicForTeacher строит публичную сетку получасовых окон учителя.
// Область видимости: явно заданное событие или активное; без события
// дата берется сегодняшней.
func (s *Service) PublicForTeacher(ctx context.Context, teacherID int64, eventID *int64) ([]*PublicSlot, error) {
	t, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("PublicForTeacher: teacher lookup id=%d: %v", teacherID, err)
		return nil, fmt.Errorf("%w: PublicForTeacher - repository error: %v", ErrInternal, err)
	}

	var resolvedEventID *int64
	date := time.Now().Format(domain.DateFormat)

	if eventID != nil {
		e, err := s.eventRepo.GetByID(ctx, *eventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return nil, ErrEventNotFound
			}
			return nil, fmt.Errorf("%w: PublicForTeacher - event lookup: %v", ErrInternal, err)
		}
		resolvedEventID = &e.ID
		date = e.DateString()
	} else if active, err := s.eventRepo.GetActive(ctx); err == nil {
		resolvedEventID = &active.ID
		date = active.DateString()
	} else if !errors.Is(err, eventRepo.ErrNoActiveEvent) {
		return nil, fmt.Errorf("%w: PublicForTeacher - active event lookup: %v", ErrInternal, err)
	}

	windows := t.System.RequestWindows()
	public := make([]*PublicSlot, len(windows))
	for i, w := range windows {
		public[i] = &PublicSlot{
			ID:        int64(i + 1),
			EventID:   resolvedEventID,
			TeacherID: teacherID,
			Date:      date,
			Time:      w,
		}
	}

	return public, nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	sl, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return sl, nil
}

// ListForTeacher получает все слоты учителя
func (s *Service) ListForTeacher(ctx context.Context, teacherID int64) ([]*domain.Slot, error) {
	list, err := s.slotRepo.List(ctx, domain.SlotFilter{TeacherID: &teacherID})
	if err != nil {
		s.logger.Error("ListForTeacher: repository error for teacher id=%d: %v", teacherID, err)
		return nil, fmt.Errorf("%w: ListForTeacher - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// TeacherBookings получает занятые слоты учителя
func (s *Service) TeacherBookings(ctx context.Context, teacherID int64) ([]*domain.Slot, error) {
	booked := true
	list, err := s.slotRepo.List(ctx, domain.SlotFilter{TeacherID: &teacherID, Booked: &booked})
	if err != nil {
		s.logger.Error("TeacherBookings: repository error for teacher id=%d: %v", teacherID, err)
		return nil, fmt.Errorf("%w: TeacherBookings - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// AdminList получает слоты по фильтру вместе с данными учителей
func (s *Service) AdminList(ctx context.Context, filter domain.SlotFilter) ([]*SlotWithTeacher, error) {
	list, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("AdminList: repository error: %v", err)
		return nil, fmt.Errorf("%w: AdminList - repository error: %v", ErrInternal, err)
	}

	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: AdminList - teacher lookup: %v", ErrInternal, err)
	}
	byID := make(map[int64]*domain.Teacher, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
	}

	out := make([]*SlotWithTeacher, 0, len(list))
	for _, sl := range list {
		item := &SlotWithTeacher{Slot: sl}
		if t, ok := byID[sl.TeacherID]; ok {
			item.TeacherName = t.Name
			item.TeacherSubject = t.Subject
		}
		out = append(out, item)
	}

	return out, nil
}

// Create создает свободный слот (админ)
func (s *Service) Create(ctx context.Context, input SlotInput) (*domain.Slot, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	created, err := s.slotRepo.Create(ctx, &domain.Slot{
		TeacherID: input.TeacherID,
		EventID:   input.EventID,
		Date:      strings.TrimSpace(input.Date),
		Time:      strings.TrimSpace(input.Time),
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: slot id=%d teacher=%d %s %s", created.ID, created.TeacherID, created.Date, created.Time)
	return created, nil
}

// Update изменяет расписание слота (админ)
func (s *Service) Update(ctx context.Context, id int64, input SlotInput) (*domain.Slot, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	sl, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sl.TeacherID = input.TeacherID
	sl.EventID = input.EventID
	sl.Date = strings.TrimSpace(input.Date)
	sl.Time = strings.TrimSpace(input.Time)

	if err := s.slotRepo.Update(ctx, sl); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: slot id=%d rescheduled to %s %s", id, sl.Date, sl.Time)
	return sl, nil
}

// Delete удаляет слот (админ)
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.slotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: slot id=%d deleted", id)
	return nil
}

// Confirm подтверждает бронь слота учителем. Бронь с неподтвержденным
// email посетителя не подтверждается; письмо-подтверждение уходит
// один раз.
func (s *Service) Confirm(ctx context.Context, teacherID, slotID int64) (*domain.Slot, error) {
	sl, err := s.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if sl.TeacherID != teacherID {
		s.logger.Warn("Confirm: teacher id=%d does not own slot id=%d", teacherID, slotID)
		return nil, ErrAccessDenied
	}
	if !sl.Booked {
		return nil, ErrSlotNotBooked
	}
	if !sl.Verification.IsVerified() {
		s.logger.Warn("Confirm: slot id=%d visitor email not verified yet", slotID)
		return nil, ErrEmailNotVerified
	}

	if sl.IsReserved() {
		if err := s.slotRepo.Confirm(ctx, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotReserved) {
				return nil, ErrSlotNotReserved
			}
			s.logger.Error("Confirm: repository error for slot id=%d: %v", slotID, err)
			return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}
		confirmed := domain.SlotConfirmed
		sl.Status = &confirmed
	}

	if sl.Verification.ConfirmationSentAt == nil {
		s.sendConfirmation(ctx, sl)
	}

	s.logger.Info("Confirm: slot id=%d confirmed by teacher id=%d", slotID, teacherID)
	return sl, nil
}

// CancelByTeacher освобождает занятый слот учителя
func (s *Service) CancelByTeacher(ctx context.Context, teacherID, slotID int64) error {
	sl, err := s.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if sl.TeacherID != teacherID {
		s.logger.Warn("CancelByTeacher: teacher id=%d does not own slot id=%d", teacherID, slotID)
		return ErrAccessDenied
	}

	return s.cancel(ctx, sl)
}

// CancelByAdmin освобождает любой занятый слот
func (s *Service) CancelByAdmin(ctx context.Context, slotID int64) error {
	sl, err := s.GetByID(ctx, slotID)
	if err != nil {
		return err
	}

	return s.cancel(ctx, sl)
}

// cancel освобождает слот и рассылает сторно-письмо, если посетитель
// подтверждал свой email. Данные посетителя берутся из состояния до
// освобождения, так как Release их очищает.
func (s *Service) cancel(ctx context.Context, sl *domain.Slot) error {
	if !sl.Booked {
		return ErrSlotNotBooked
	}

	if err := s.slotRepo.Release(ctx, sl.ID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotBooked) {
			return ErrSlotNotBooked
		}
		s.logger.Error("cancel: release failed for slot id=%d: %v", sl.ID, err)
		return fmt.Errorf("%w: cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("cancel: slot id=%d released (was %s %s)", sl.ID, sl.Date, sl.Time)

	if sl.Visitor.Email != "" && sl.Verification.IsVerified() && s.notifier.IsConfigured() {
		d := s.mailDetails(ctx, sl)
		if err := s.notifier.SendCancellation(sl.Visitor.Email, d); err != nil {
			s.logger.Warn("cancel: cancellation email for slot id=%d failed: %v", sl.ID, err)
		} else if err := s.slotRepo.StampCancellationSent(ctx, sl.ID); err != nil {
			s.logger.Warn("cancel: stamp cancellation for slot id=%d failed: %v", sl.ID, err)
		}
	}

	return nil
}

// sendConfirmation отправляет письмо-подтверждение best-effort
func (s *Service) sendConfirmation(ctx context.Context, sl *domain.Slot) {
	if sl.Visitor.Email == "" || !s.notifier.IsConfigured() {
		return
	}

	d := s.mailDetails(ctx, sl)
	if err := s.notifier.SendBookingConfirmed(sl.Visitor.Email, d); err != nil {
		s.logger.Warn("sendConfirmation: email for slot id=%d failed: %v", sl.ID, err)
		return
	}
	if err := s.slotRepo.StampConfirmationSent(ctx, sl.ID); err != nil {
		s.logger.Warn("sendConfirmation: stamp for slot id=%d failed: %v", sl.ID, err)
	}
}

func (s *Service) mailDetails(ctx context.Context, sl *domain.Slot) mailer.Details {
	d := mailer.Details{Date: sl.Date, Time: sl.Time}
	if t, err := s.teacherRepo.GetByID(ctx, sl.TeacherID); err == nil {
		d.TeacherName = t.Name
		if t.Room != nil {
			d.Room = *t.Room
		}
	}
	return d
}

// validateInput проверяет формат даты и времени админского слота
func (s *Service) validateInput(ctx context.Context, input SlotInput) error {
	if _, err := time.Parse(domain.DateFormat, strings.TrimSpace(input.Date)); err != nil {
		return fmt.Errorf("%w: date must be %s", ErrInvalidInput, domain.DateFormat)
	}
	if !domain.IsValidWindowString(strings.TrimSpace(input.Time)) {
		return fmt.Errorf("%w: time must be \"HH:MM - HH:MM\"", ErrInvalidInput)
	}

	if _, err := s.teacherRepo.GetByID(ctx, input.TeacherID); err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return ErrTeacherNotFound
		}
		return fmt.Errorf("%w: validateInput - teacher lookup: %v", ErrInternal, err)
	}
	if input.EventID != nil {
		if _, err := s.eventRepo.GetByID(ctx, *input.EventID); err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: validateInput - event lookup: %v", ErrInternal, err)
		}
	}

	return nil
}
