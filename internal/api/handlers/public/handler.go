package public

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	eventsService "github.com/mph199/eduvite-backend/internal/service/events"
	slotsService "github.com/mph199/eduvite-backend/internal/service/slots"
)

const (
	msgTeacherIDRequired = "teacherId query param required"
	msgTeacherIDNumeric  = "teacherId must be a number"
	msgTeacherNotFound   = "Lehrkraft nicht gefunden"
	msgNoActiveEvent     = "Aktuell ist kein Elternsprechtag freigegeben"
	msgHealthFailed      = "Health check failed"
)

// Handler обслуживает публичные endpoint'ы без аутентификации
type Handler struct {
	teachers TeachersService
	slots    SlotsService
	events   EventsService

	teacherCounter TeacherCounter
	slotCounter    SlotCounter

	logger Logger
}

func NewHandler(
	teachers TeachersService,
	slots SlotsService,
	events EventsService,
	teacherCounter TeacherCounter,
	slotCounter SlotCounter,
	logger Logger,
) *Handler {
	return &Handler{
		teachers:       teachers,
		slots:          slots,
		events:         events,
		teacherCounter: teacherCounter,
		slotCounter:    slotCounter,
		logger:         logger,
	}
}

// Health GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	teacherCount, err := h.teacherCounter.Count(r.Context())
	if err != nil {
		h.logger.Error("GET /health - Teacher count failed: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgHealthFailed)
		return
	}

	slotCount, bookedCount, err := h.slotCounter.Counts(r.Context())
	if err != nil {
		h.logger.Error("GET /health - Slot counts failed: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgHealthFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		TeacherCount: teacherCount,
		SlotCount:    slotCount,
		BookedCount:  bookedCount,
	})
}

// Teachers GET /api/teachers
func (h *Handler) Teachers(w http.ResponseWriter, r *http.Request) {
	list, err := h.teachers.List(r.Context())
	if err != nil {
		h.logger.Error("GET /teachers - Failed to list teachers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	teachers := make([]PublicTeacher, 0, len(list))
	for _, t := range list {
		teachers = append(teachers, fromTeacher(t))
	}
	handlers.RespondJSON(w, http.StatusOK, TeachersResponse{Teachers: teachers})
}

// Slots GET /api/slots?teacherId=&eventId=
// Выдача обезличена: клиент видит сетку канонических окон учителя,
// а не реальные слоты с занятостью.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	rawTeacherID := r.URL.Query().Get("teacherId")
	if rawTeacherID == "" {
		handlers.RespondBadRequest(w, msgTeacherIDRequired)
		return
	}
	teacherID, err := strconv.ParseInt(rawTeacherID, 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgTeacherIDNumeric)
		return
	}

	var eventID *int64
	if rawEventID := r.URL.Query().Get("eventId"); rawEventID != "" {
		id, err := strconv.ParseInt(rawEventID, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, "eventId must be a number")
			return
		}
		eventID = &id
	}

	list, err := h.slots.PublicForTeacher(r.Context(), teacherID, eventID)
	if err != nil {
		if errors.Is(err, slotsService.ErrTeacherNotFound) {
			handlers.RespondNotFound(w, msgTeacherNotFound)
			return
		}
		h.logger.Error("GET /slots - Failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	slots := make([]PublicSlot, 0, len(list))
	for _, s := range list {
		slots = append(slots, fromPublicSlot(s))
	}
	handlers.RespondJSON(w, http.StatusOK, SlotsResponse{Slots: slots})
}

// ActiveEvent GET /api/events/active
func (h *Handler) ActiveEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.events.GetActive(r.Context())
	if err != nil {
		if errors.Is(err, eventsService.ErrNoActiveEvent) {
			handlers.RespondNotFound(w, msgNoActiveEvent)
			return
		}
		h.logger.Error("GET /events/active - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	model := FromEvent(e)
	handlers.RespondJSON(w, http.StatusOK, ActiveEventResponse{Event: &model})
}

// UpcomingEvents GET /api/events/upcoming
func (h *Handler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.events.Upcoming(r.Context())
	if err != nil {
		h.logger.Error("GET /events/upcoming - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	events := make([]EventModel, 0, len(list))
	for _, e := range list {
		events = append(events, FromEvent(e))
	}
	handlers.RespondJSON(w, http.StatusOK, EventsResponse{Events: events})
}
