package accept_request

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
	requestRepo "github.com/mph199/eduvite-backend/internal/infra/storage/request"
	slotRepo "github.com/mph199/eduvite-backend/internal/infra/storage/slot"
)

// UseCase use case принятия заявки с подбором свободного слота.
//
// Заявка хранит окно времени, а не конкретный слот, поэтому принятие
// проходит через резолвер: окно разбивается на кандидатов по гранулярности
// слотов, слот выбирается по порядку предпочтений и занимается условным
// UPDATE. Подбор и захват не обёрнуты в одну транзакцию, конкурентные
// захваты разруливаются на уровне строк.
type UseCase struct {
	requestRepo  RequestRepository
	slotRepo     SlotRepository
	teacherRepo  TeacherRepository
	settingsRepo SettingsRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	slotRepo SlotRepository,
	teacherRepo TeacherRepository,
	settingsRepo SettingsRepository,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		slotRepo:     slotRepo,
		teacherRepo:  teacherRepo,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute принимает заявку: подбирает свободный слот, занимает его данными
// посетителя и переводит заявку в accepted.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptRequest: request=%d times=%v", req.RequestID, req.Times)

	// 1. Валидация входных данных
	times, err := normalizeTimes(req.Times)
	if err != nil {
		return nil, err
	}
	message := strings.TrimSpace(req.TeacherMessage)
	if len(message) > domain.MaxTeacherMessageLength {
		return nil, fmt.Errorf("%w: teacher message exceeds %d characters", ErrInvalidInput, domain.MaxTeacherMessageLength)
	}

	// 2. Заявка должна существовать и принадлежать учителю
	bookReq, err := uc.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("%w: request lookup: %v", ErrInternal, err)
	}
	if req.ActorTeacherID != nil && bookReq.TeacherID != *req.ActorTeacherID {
		uc.logger.Warn("AcceptRequest: teacher=%d tried to accept request=%d of teacher=%d",
			*req.ActorTeacherID, req.RequestID, bookReq.TeacherID)
		return nil, ErrAccessDenied
	}

	// 3. Принятие возможно только из requested с подтверждённым email.
	//    Повторное принятие уже принятой заявки - no-op
	if bookReq.Status == domain.RequestAccepted {
		resp := &Response{RequestID: bookReq.ID, Date: bookReq.Date}
		if bookReq.AssignedSlotID != nil {
			resp.AssignedSlotID = *bookReq.AssignedSlotID
		}
		return resp, nil
	}
	if !bookReq.IsPending() {
		return nil, ErrNotPending
	}
	if !bookReq.CanBeAccepted() {
		uc.logger.Warn("AcceptRequest: request=%d email not verified yet", req.RequestID)
		return nil, ErrNotVerified
	}

	// 4. Строим упорядоченный список кандидатов: сначала времена,
	//    выбранные учителем, затем разбиение окна заявки
	slotMinutes := uc.slotMinutes(ctx)
	candidates := buildCandidates(times, bookReq.AssignableTimes(slotMinutes))

	// 5. Подбираем свободный слот по порядку предпочтений
	free, err := uc.listFree(ctx, bookReq, candidates)
	if err != nil {
		return nil, err
	}

	claimed := make(map[int64]bool)
	primary := pickPreferred(free, candidates, bookReq.EventID, claimed)
	if primary == nil {
		foreign := foreignEventIDs(free, bookReq.EventID)
		if len(foreign) > 0 {
			uc.logger.Warn("AcceptRequest: request=%d has free slots only for events %v", req.RequestID, foreign)
			return nil, fmt.Errorf("%w: free slots exist only for events %v", ErrNoSlotAvailable, foreign)
		}
		uc.logger.Warn("AcceptRequest: no free slot for request=%d teacher=%d date=%s", req.RequestID, bookReq.TeacherID, bookReq.Date)
		return nil, ErrNoSlotAvailable
	}

	// 6. Атомарно занимаем слот данными заявки; хэш токена на слот
	//    не переносится, подтверждение email уже состоялось. Заявка
	//    события привязывает к нему и legacy-слот без события
	verification := domain.Verification{
		VerificationSentAt: bookReq.Verification.VerificationSentAt,
		VerifiedAt:         bookReq.Verification.VerifiedAt,
	}
	if err := uc.slotRepo.Claim(ctx, primary.ID, domain.SlotConfirmed, bookReq.Visitor, verification, bookReq.EventID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotAlreadyBooked) {
			uc.logger.Warn("AcceptRequest: lost race for slot=%d", primary.ID)
			return nil, ErrSlotRace
		}
		return nil, fmt.Errorf("%w: claim slot %d: %v", ErrInternal, primary.ID, err)
	}
	claimed[primary.ID] = true
	assignedTimes := []string{primary.Time}

	// 7. Переводим заявку в accepted условным UPDATE. Если сюда успел
	//    конкурентный accept или decline, слот остаётся занятым, факт
	//    фиксируется в логе
	if err := uc.requestRepo.Accept(ctx, bookReq.ID, primary.ID); err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotPending) {
			uc.logger.Error("AcceptRequest: request=%d resolved concurrently, slot=%d stays claimed", bookReq.ID, primary.ID)
			return nil, ErrNotPending
		}
		return nil, fmt.Errorf("%w: accept request: %v", ErrInternal, err)
	}

	// 8. Дополнительные времена занимаются отдельными слотами. Неудача
	//    одного захвата не откатывает уже занятые слоты
	extraSlots := uc.claimExtras(ctx, bookReq, times, primary.Time, free, claimed, verification)
	for _, sl := range extraSlots {
		assignedTimes = append(assignedTimes, sl.Time)
	}
	sort.Strings(assignedTimes)

	// 9. Письмо посетителю best-effort: заявка уже принята
	allSlots := append([]*domain.Slot{primary}, extraSlots...)
	sent := uc.sendConfirmation(ctx, bookReq, allSlots, assignedTimes, message)

	uc.logger.Info("AcceptRequest: request=%d accepted, slot=%d times=%v (email sent=%t)",
		bookReq.ID, primary.ID, assignedTimes, sent)
	return &Response{
		RequestID:      bookReq.ID,
		AssignedSlotID: primary.ID,
		AssignedTimes:  assignedTimes,
		Date:           bookReq.Date,
		EmailSent:      sent,
	}, nil
}

// slotMinutes читает гранулярность из настроек, при ошибке возвращает
// дефолт: принятие заявки не должно падать из-за таблицы настроек.
func (uc *UseCase) slotMinutes(ctx context.Context) int {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Warn("AcceptRequest: settings lookup failed, using default granularity: %v", err)
		return domain.DefaultSlotMinutes
	}
	return settings.EffectiveSlotMinutes()
}

// listFree возвращает свободные слоты учителя под кандидатов. Пустой
// список кандидатов означает нераспознанное окно заявки, тогда берутся
// все свободные слоты дня.
func (uc *UseCase) listFree(ctx context.Context, bookReq *domain.BookingRequest, candidates []string) ([]*domain.Slot, error) {
	if len(candidates) == 0 {
		uc.logger.Warn("AcceptRequest: request=%d window %q yields no candidates, falling back to whole day",
			bookReq.ID, bookReq.RequestedTime)
		free, err := uc.slotRepo.ListFreeByDate(ctx, bookReq.TeacherID, bookReq.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: list free slots: %v", ErrInternal, err)
		}
		return free, nil
	}

	free, err := uc.slotRepo.ListFreeByTimes(ctx, bookReq.TeacherID, bookReq.Date, candidates)
	if err != nil {
		return nil, fmt.Errorf("%w: list free slots: %v", ErrInternal, err)
	}
	return free, nil
}

// claimExtras занимает слоты под дополнительные времена, выбранные
// учителем. Каждый захват независим: проигранная гонка или занятое время
// логируется и пропускается.
func (uc *UseCase) claimExtras(
	ctx context.Context,
	bookReq *domain.BookingRequest,
	times []string,
	primaryTime string,
	free []*domain.Slot,
	claimed map[int64]bool,
	verification domain.Verification,
) []*domain.Slot {
	if len(times) < 2 {
		return nil
	}

	var extra []*domain.Slot
	for _, t := range times {
		if t == primaryTime {
			continue
		}
		sl := pickPreferred(free, []string{t}, bookReq.EventID, claimed)
		if sl == nil {
			uc.logger.Warn("AcceptRequest: request=%d no free slot for extra time %s", bookReq.ID, t)
			continue
		}
		if err := uc.slotRepo.Claim(ctx, sl.ID, domain.SlotConfirmed, bookReq.Visitor, verification, bookReq.EventID); err != nil {
			uc.logger.Warn("AcceptRequest: request=%d extra claim for slot=%d failed: %v", bookReq.ID, sl.ID, err)
			continue
		}
		claimed[sl.ID] = true
		extra = append(extra, sl)
	}
	return extra
}

func (uc *UseCase) sendConfirmation(
	ctx context.Context,
	bookReq *domain.BookingRequest,
	slots []*domain.Slot,
	assignedTimes []string,
	message string,
) bool {
	if !uc.notifier.IsConfigured() || bookReq.Visitor.Email == "" {
		return false
	}

	var teacherName, room string
	if t, err := uc.teacherRepo.GetByID(ctx, bookReq.TeacherID); err == nil {
		teacherName = t.Name
		if t.Room != nil {
			room = *t.Room
		}
	}

	var sendErr error
	if len(assignedTimes) > 1 {
		sendErr = uc.notifier.SendMultiSlotAccepted(bookReq.Visitor.Email, bookReq.Date, assignedTimes, teacherName, room, message)
	} else {
		d := mailer.Details{
			Date:        bookReq.Date,
			Time:        assignedTimes[0],
			TeacherName: teacherName,
			Room:        room,
		}
		sendErr = uc.notifier.SendRequestAccepted(bookReq.Visitor.Email, d, message)
	}
	if sendErr != nil {
		uc.logger.Warn("AcceptRequest: confirmation email for request=%d failed: %v", bookReq.ID, sendErr)
		return false
	}

	if err := uc.requestRepo.StampConfirmationSent(ctx, bookReq.ID); err != nil {
		uc.logger.Warn("AcceptRequest: stamp confirmation on request=%d failed: %v", bookReq.ID, err)
	}
	for _, sl := range slots {
		if err := uc.slotRepo.StampConfirmationSent(ctx, sl.ID); err != nil {
			uc.logger.Warn("AcceptRequest: stamp confirmation on slot=%d failed: %v", sl.ID, err)
		}
	}
	return true
}

// normalizeTimes чистит список времён учителя и проверяет формат
func normalizeTimes(raw []string) ([]string, error) {
	var times []string
	seen := make(map[string]bool)
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		if !domain.IsValidWindowString(t) {
			return nil, fmt.Errorf("%w: invalid time %q", ErrInvalidInput, t)
		}
		seen[t] = true
		times = append(times, t)
	}
	return times, nil
}

// buildCandidates строит список предпочтений: явно выбранные времена
// идут первыми, затем времена из окна заявки, без дублей
func buildCandidates(chosen, derived []string) []string {
	seen := make(map[string]bool)
	var candidates []string
	for _, t := range chosen {
		if !seen[t] {
			seen[t] = true
			candidates = append(candidates, t)
		}
	}
	for _, t := range derived {
		if !seen[t] {
			seen[t] = true
			candidates = append(candidates, t)
		}
	}
	return candidates
}

// pickPreferred выбирает первый подходящий слот по порядку кандидатов.
// На каждое время слот события заявки предпочтительнее legacy-слота без
// события; слоты чужих событий не подходят. Пустой список кандидатов
// означает перебор всех слотов в порядке выдачи репозитория.
func pickPreferred(free []*domain.Slot, candidates []string, eventID *int64, claimed map[int64]bool) *domain.Slot {
	if len(candidates) == 0 {
		if sl := firstEligible(free, eventID, claimed, true); sl != nil {
			return sl
		}
		return firstEligible(free, eventID, claimed, false)
	}

	for _, t := range candidates {
		var fallback *domain.Slot
		for _, sl := range free {
			if sl.Time != t || claimed[sl.ID] {
				continue
			}
			if matchesEvent(sl, eventID) {
				return sl
			}
			if sl.EventID == nil && fallback == nil {
				fallback = sl
			}
		}
		if fallback != nil {
			return fallback
		}
	}
	return nil
}

func firstEligible(free []*domain.Slot, eventID *int64, claimed map[int64]bool, sameEventOnly bool) *domain.Slot {
	for _, sl := range free {
		if claimed[sl.ID] {
			continue
		}
		if sameEventOnly {
			if matchesEvent(sl, eventID) {
				return sl
			}
			continue
		}
		if sl.EventID == nil {
			return sl
		}
	}
	return nil
}

// matchesEvent истинно, когда слот привязан к событию заявки
func matchesEvent(sl *domain.Slot, eventID *int64) bool {
	return sl.EventID != nil && eventID != nil && *sl.EventID == *eventID
}

// foreignEventIDs собирает события, под которые есть свободные слоты,
// не подходящие заявке. Используется для диагностики NO_SLOT_AVAILABLE
func foreignEventIDs(free []*domain.Slot, eventID *int64) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, sl := range free {
		if sl.EventID == nil || matchesEvent(sl, eventID) {
			continue
		}
		if !seen[*sl.EventID] {
			seen[*sl.EventID] = true
			ids = append(ids, *sl.EventID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
