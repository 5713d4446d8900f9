package teacher_area

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/api/middleware"
	"github.com/mph199/eduvite-backend/internal/domain"
	accountsService "github.com/mph199/eduvite-backend/internal/service/accounts"
	feedbackService "github.com/mph199/eduvite-backend/internal/service/feedback"
	slotsService "github.com/mph199/eduvite-backend/internal/service/slots"
	teachersService "github.com/mph199/eduvite-backend/internal/service/teachers"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidSlotID      = "Ungültige Termin-ID"
	msgNoTeacher          = "Kein Lehrkraft-Profil verknüpft"
	msgTeacherNotFound    = "Lehrkraft nicht gefunden"
	msgSlotNotFound       = "Termin nicht gefunden"
	msgSlotNotBooked      = "Termin ist nicht gebucht"
	msgSlotNotReserved    = "Termin ist nicht mehr reserviert"
	msgSlotNotVerified    = "Die E-Mail-Adresse wurde noch nicht bestätigt"
	msgAccessDenied       = "Dieser Termin gehört einer anderen Lehrkraft"
	msgWrongPassword      = "Aktuelles Passwort ist falsch"
	msgWeakPassword       = "Das neue Passwort muss mindestens 8 Zeichen lang sein"
	msgFeedbackRequired   = "Bitte eine Nachricht eingeben"
	msgFeedbackTooLong    = "Die Nachricht ist zu lang"
	msgRoomDisabled       = "Nicht verfügbar"
)

// Handler обслуживает личный кабинет учителя
type Handler struct {
	teachers TeachersService
	slots    SlotsService
	requests RequestsService
	sweeper  Sweeper
	settings SettingsProvider
	feedback FeedbackService
	accounts AccountsService
	logger   Logger
}

func NewHandler(
	teachers TeachersService,
	slots SlotsService,
	requests RequestsService,
	sweeper Sweeper,
	settings SettingsProvider,
	feedback FeedbackService,
	accounts AccountsService,
	logger Logger,
) *Handler {
	return &Handler{
		teachers: teachers,
		slots:    slots,
		requests: requests,
		sweeper:  sweeper,
		settings: settings,
		feedback: feedback,
		accounts: accounts,
		logger:   logger,
	}
}

// Info GET /api/teacher/info
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgNoTeacher)
		return
	}

	t, err := h.teachers.GetByID(r.Context(), teacherID)
	if err != nil {
		if errors.Is(err, teachersService.ErrTeacherNotFound) {
			handlers.RespondNotFound(w, msgTeacherNotFound)
			return
		}
		h.logger.Error("GET /teacher/info - Failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, TeacherInfo{
		ID:         t.ID,
		Name:       t.Name,
		Email:      t.Email,
		Salutation: t.Salutation,
		Subject:    t.Subject,
		System:     string(t.System),
		Room:       t.Room,
	})
}

// Slots GET /api/teacher/slots
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgNoTeacher)
		return
	}

	list, err := h.slots.ListForTeacher(r.Context(), teacherID)
	if err != nil {
		h.logger.Error("GET /teacher/slots - Failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	slots := make([]SlotModel, 0, len(list))
	for _, s := range list {
		slots = append(slots, fromSlot(s))
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"slots": slots})
}

// Bookings GET /api/teacher/bookings
func (h *Handler) Bookings(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgNoTeacher)
		return
	}

	t, err := h.teachers.GetByID(r.Context(), teacherID)
	if err != nil {
		h.logger.Error("GET /teacher/bookings - Teacher lookup failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	list, err := h.slots.TeacherBookings(r.Context(), teacherID)
	if err != nil {
		h.logger.Error("GET /teacher/bookings - Failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	bookings := make([]BookingModel, 0, len(list))
	for _, s := range list {
		bookings = append(bookings, BookingModel{
			SlotModel:      fromSlot(s),
			TeacherName:    t.Name,
			TeacherSubject: t.Subject,
		})
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// Requests GET /api/teacher/requests?status=
// Перед выдачей выполняется синхронный проход автоназначения по этому
// учителю, чтобы список не показывал заявки, которые вот-вот заберет
// фоновый таймер.
func (h *Handler) Requests(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgNoTeacher)
		return
	}

	if _, err := h.sweeper.ExecuteForTeacher(r.Context(), teacherID); err != nil {
		h.logger.Warn("GET /teacher/requests - Sweep failed: teacher_id=%d, error=%v", teacherID, err)
	}

	status := r.URL.Query().Get("status")
	list, err := h.requests.ListForTeacher(r.Context(), teacherID, status)
	if err != nil {
		h.logger.Error("GET /teacher/requests - Failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	slotMinutes := h.slotMinutes(r)
	freeTimes := h.freeTimesByDate(r, teacherID)

	models := make([]RequestModel, 0, len(list))
	for _, req := range list {
		assignable := req.AssignableTimes(slotMinutes)
		available := freeTimes[req.Date]
		if available == nil {
			available = []string{}
		}
		models = append(models, fromRequest(req, assignable, available))
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"requests": models})
}

// ConfirmBooking PUT /api/teacher/bookings/{slotId}/accept
func (h *Handler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgNoTeacher)
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	sl, err := h.slots.Confirm(r.Context(), teacherID, slotID)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, slotsService.ErrSlotNotBooked):
			handlers.RespondConflict(w, msgSlotNotBooked)

		case errors.Is(err, slotsService.ErrEmailNotVerified):
			handlers.RespondConflict(w, msgSlotNotVerified)

		case errors.Is(err, slotsService.ErrSlotNotReserved):
			handlers.RespondConflict(w, msgSlotNotReserved)

		default:
			h.logger.Error("PUT /teacher/bookings/accept - Failed: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /teacher/bookings/accept - Booking confirmed: slot_id=%d, teacher_id=%d", slotID, teacherID)
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "slot": fromSlot(sl)})
}

// CancelBooking DELETE /api/teacher/bookings/{slotId}
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgNoTeacher)
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.slots.CancelByTeacher(r.Context(), teacherID, slotID); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, slotsService.ErrSlotNotBooked):
			handlers.RespondConflict(w, msgSlotNotBooked)

		default:
			h.logger.Error("DELETE /teacher/bookings - Failed: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /teacher/bookings - Booking cancelled: slot_id=%d, teacher_id=%d", slotID, teacherID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ChangePassword PUT /api/teacher/password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgNoTeacher)
		return
	}

	var req ChangePasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.accounts.ChangePassword(r.Context(), claims.Username, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, accountsService.ErrWeakPassword):
			handlers.RespondBadRequest(w, msgWeakPassword)

		case errors.Is(err, accountsService.ErrInvalidCredentials):
			handlers.RespondUnauthorized(w, msgWrongPassword)

		case errors.Is(err, accountsService.ErrUserNotFound):
			handlers.RespondNotFound(w, msgTeacherNotFound)

		default:
			h.logger.Error("PUT /teacher/password - Failed: username=%s, error=%v", claims.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /teacher/password - Password changed: username=%s", claims.Username)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Feedback POST /api/teacher/feedback
// Обратная связь анонимна: имя и email не сохраняются
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if _, err := h.feedback.Create(r.Context(), nil, nil, req.Message); err != nil {
		if errors.Is(err, feedbackService.ErrInvalidInput) {
			if len(req.Message) > domain.MaxFeedbackMessageLength {
				handlers.RespondBadRequest(w, msgFeedbackTooLong)
			} else {
				handlers.RespondBadRequest(w, msgFeedbackRequired)
			}
			return
		}
		h.logger.Error("POST /teacher/feedback - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// Room PUT /api/teacher/room
// Самостоятельная смена кабинета отключена, раздачей кабинетов
// занимается администрация
func (h *Handler) Room(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondNotFound(w, msgRoomDisabled)
}

func (h *Handler) slotMinutes(r *http.Request) int {
	settings, err := h.settings.GetSettings(r.Context())
	if err != nil {
		return domain.DefaultSlotMinutes
	}
	return settings.EffectiveSlotMinutes()
}

// freeTimesByDate группирует времена свободных слотов учителя по датам
func (h *Handler) freeTimesByDate(r *http.Request, teacherID int64) map[string][]string {
	byDate := make(map[string][]string)
	list, err := h.slots.ListForTeacher(r.Context(), teacherID)
	if err != nil {
		h.logger.Warn("GET /teacher/requests - Free slots lookup failed: teacher_id=%d, error=%v", teacherID, err)
		return byDate
	}
	for _, s := range list {
		if !s.Booked {
			byDate[s.Date] = append(byDate[s.Date], s.Time)
		}
	}
	return byDate
}
