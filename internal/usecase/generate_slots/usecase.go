package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mph199/eduvite-backend/internal/domain"
	eventRepo "github.com/mph199/eduvite-backend/internal/infra/storage/event"
	teacherRepo "github.com/mph199/eduvite-backend/internal/infra/storage/teacher"
)

// UseCase use case генерации слотов.
//
// Слоты нарезаются из дневного окна системы учителя по выбранной
// гранулярности. Генерация идемпотентна: уже существующие времена
// пропускаются, если не запрошена замена свободных слотов.
type UseCase struct {
	slotRepo     SlotRepository
	teacherRepo  TeacherRepository
	eventRepo    EventRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	teacherRepo TeacherRepository,
	eventRepo EventRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		teacherRepo:  teacherRepo,
		eventRepo:    eventRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ExecuteForTeacher генерирует слоты одного учителя
func (uc *UseCase) ExecuteForTeacher(ctx context.Context, req *TeacherRequest) (*TeacherReport, error) {
	uc.logger.Info("GenerateSlots: teacher=%d dryRun=%t replace=%t", req.TeacherID, req.DryRun, req.ReplaceExisting)

	// 1. Учитель должен существовать
	t, err := uc.teacherRepo.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, teacherRepo.ErrTeacherNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("%w: teacher lookup: %v", ErrInternal, err)
	}

	// 2. Гранулярность и дата
	slotMinutes, err := uc.resolveSlotMinutes(ctx, req.SlotMinutes)
	if err != nil {
		return nil, err
	}
	eventID, date, err := uc.resolveTarget(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	// 3. Генерация
	return uc.generateFor(ctx, t, eventID, date, slotMinutes, req.DryRun, req.ReplaceExisting)
}

// ExecuteForEvent генерирует слоты всех учителей под событие
func (uc *UseCase) ExecuteForEvent(ctx context.Context, req *EventRequest) (*EventReport, error) {
	uc.logger.Info("GenerateSlots: event=%d dryRun=%t replace=%t", req.EventID, req.DryRun, req.ReplaceExisting)

	// 1. Событие должно существовать
	ev, err := uc.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: event lookup: %v", ErrInternal, err)
	}

	slotMinutes, err := uc.resolveSlotMinutes(ctx, req.SlotMinutes)
	if err != nil {
		return nil, err
	}

	teachers, err := uc.teacherRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: teacher listing: %v", ErrInternal, err)
	}

	// 2. Генерация по каждому учителю. Ошибка одного учителя не
	//    прерывает проход по остальным
	report := &EventReport{EventID: ev.ID, Date: ev.DateString(), DryRun: req.DryRun}
	for _, t := range teachers {
		tr, err := uc.generateFor(ctx, t, &ev.ID, ev.DateString(), slotMinutes, req.DryRun, req.ReplaceExisting)
		if err != nil {
			uc.logger.Warn("GenerateSlots: teacher=%d failed: %v", t.ID, err)
			continue
		}
		report.Created += tr.Created
		report.Skipped += tr.Skipped
		report.Deleted += tr.Deleted
		report.Teachers = append(report.Teachers, tr)
	}

	uc.logger.Info("GenerateSlots: event=%d created=%d skipped=%d deleted=%d",
		ev.ID, report.Created, report.Skipped, report.Deleted)
	return report, nil
}

// generateFor нарезает и сохраняет слоты одного учителя на дату.
// Удаление свободных слотов и вставка новых идут в одной транзакции,
// чтобы замена не оставила учителя без слотов при сбое вставки.
func (uc *UseCase) generateFor(
	ctx context.Context,
	t *domain.Teacher,
	eventID *int64,
	date string,
	slotMinutes int,
	dryRun, replaceExisting bool,
) (*TeacherReport, error) {
	report := &TeacherReport{TeacherID: t.ID, TeacherName: t.Name, Date: date}
	times := t.System.SlotTimes(slotMinutes)

	if dryRun {
		existing, err := uc.slotRepo.ExistingTimes(ctx, t.ID, date, eventID)
		if err != nil {
			return nil, fmt.Errorf("%w: existing times lookup: %v", ErrInternal, err)
		}
		if replaceExisting {
			report.Created = len(times)
			return report, nil
		}
		report.Created, report.Skipped = diffTimes(times, existing)
		return report, nil
	}

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		if replaceExisting {
			deleted, err := uc.slotRepo.DeleteFree(ctx, t.ID, eventID)
			if err != nil {
				return fmt.Errorf("delete free slots: %w", err)
			}
			report.Deleted = deleted
		}

		existing, err := uc.slotRepo.ExistingTimes(ctx, t.ID, date, eventID)
		if err != nil {
			return fmt.Errorf("existing times lookup: %w", err)
		}
		known := make(map[string]bool, len(existing))
		for _, tm := range existing {
			known[tm] = true
		}

		var slots []*domain.Slot
		for _, tm := range times {
			if known[tm] {
				report.Skipped++
				continue
			}
			slots = append(slots, &domain.Slot{
				TeacherID: t.ID,
				EventID:   eventID,
				Date:      date,
				Time:      tm,
			})
		}
		if len(slots) == 0 {
			return nil
		}

		created, err := uc.slotRepo.CreateBatch(ctx, slots)
		if err != nil {
			return fmt.Errorf("create slots: %w", err)
		}
		report.Created = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generate for teacher %d: %v", ErrInternal, t.ID, err)
	}

	uc.logger.Info("GenerateSlots: teacher=%d date=%s created=%d skipped=%d deleted=%d",
		t.ID, date, report.Created, report.Skipped, report.Deleted)
	return report, nil
}

// resolveSlotMinutes возвращает гранулярность запроса либо настройки
func (uc *UseCase) resolveSlotMinutes(ctx context.Context, requested int) (int, error) {
	if requested != 0 {
		if !domain.IsValidSlotMinutes(requested) {
			return 0, fmt.Errorf("%w: %d", ErrInvalidSlotMinutes, requested)
		}
		return requested, nil
	}

	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Warn("GenerateSlots: settings lookup failed, using default granularity: %v", err)
		return domain.DefaultSlotMinutes, nil
	}
	return settings.EffectiveSlotMinutes(), nil
}

// resolveTarget определяет событие и дату генерации. Явное событие
// задаёт и то и другое; иначе берётся активное событие, затем последнее,
// затем дата конференции из настроек, затем сегодняшний день.
func (uc *UseCase) resolveTarget(ctx context.Context, explicit *int64) (*int64, string, error) {
	if explicit != nil {
		ev, err := uc.eventRepo.GetByID(ctx, *explicit)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return nil, "", ErrEventNotFound
			}
			return nil, "", fmt.Errorf("%w: event lookup: %v", ErrInternal, err)
		}
		return &ev.ID, ev.DateString(), nil
	}

	if ev, err := uc.eventRepo.GetActive(ctx); err == nil {
		return &ev.ID, ev.DateString(), nil
	} else if !errors.Is(err, eventRepo.ErrNoActiveEvent) {
		return nil, "", fmt.Errorf("%w: active event lookup: %v", ErrInternal, err)
	}

	if ev, err := uc.eventRepo.GetLatest(ctx); err == nil {
		return &ev.ID, ev.DateString(), nil
	} else if !errors.Is(err, eventRepo.ErrEventNotFound) {
		return nil, "", fmt.Errorf("%w: latest event lookup: %v", ErrInternal, err)
	}

	if settings, err := uc.settingsRepo.Get(ctx); err == nil && settings.ConferenceDate != nil && *settings.ConferenceDate != "" {
		return nil, *settings.ConferenceDate, nil
	}

	return nil, uc.timeProvider.Now().Format(domain.DateFormat), nil
}

// diffTimes считает, сколько времён из wanted отсутствует в existing
func diffTimes(wanted, existing []string) (created, skipped int) {
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[t] = true
	}
	for _, t := range wanted {
		if known[t] {
			skipped++
		} else {
			created++
		}
	}
	return created, skipped
}
