package admin_slots

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/domain"
	slotsService "github.com/mph199/eduvite-backend/internal/service/slots"
)

const (
	defaultLimit = 2000
	maxLimit     = 10000

	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidSlotID      = "Ungültige Termin-ID"
	msgInvalidTeacherID   = "teacherId must be a number"
	msgInvalidEventID     = "eventId must be a number or \"null\""
	msgInvalidBooked      = "booked must be \"true\" or \"false\""
	msgInvalidLimit       = "limit must be between 1 and 10000"
	msgSlotNotFound       = "Termin nicht gefunden"
	msgTeacherNotFound    = "Lehrkraft nicht gefunden"
	msgEventNotFound      = "Elternsprechtag nicht gefunden"
	msgInvalidInput       = "Bitte Datum und Uhrzeit angeben"
)

// Handler админские операции над слотами
type Handler struct {
	slots  SlotsService
	logger Logger
}

func NewHandler(slots SlotsService, logger Logger) *Handler {
	return &Handler{
		slots:  slots,
		logger: logger,
	}
}

// List GET /api/admin/slots?teacherId=&eventId=&booked=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}

	list, err := h.slots.AdminList(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /admin/slots - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	models := make([]SlotModel, 0, len(list))
	for _, s := range list {
		models = append(models, fromSlotWithTeacher(s))
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"slots": models})
}

// Create POST /api/admin/slots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload SlotPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	sl, err := h.slots.Create(r.Context(), payload.ToSlotInput())
	if err != nil {
		h.respondServiceError(w, "POST /admin/slots", err)
		return
	}

	h.logger.Info("POST /admin/slots - Slot created: id=%d, teacher_id=%d, date=%s, time=%s",
		sl.ID, sl.TeacherID, sl.Date, sl.Time)
	handlers.RespondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "slot": fromSlot(sl)})
}

// Update PUT /api/admin/slots/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var payload SlotPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	sl, err := h.slots.Update(r.Context(), slotID, payload.ToSlotInput())
	if err != nil {
		h.respondServiceError(w, "PUT /admin/slots", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "slot": fromSlot(sl)})
}

// Delete DELETE /api/admin/slots/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.slots.Delete(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("DELETE /admin/slots - Failed: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/slots - Slot deleted: id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, slotsService.ErrSlotNotFound):
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, slotsService.ErrTeacherNotFound):
		handlers.RespondNotFound(w, msgTeacherNotFound)

	case errors.Is(err, slotsService.ErrEventNotFound):
		handlers.RespondNotFound(w, msgEventNotFound)

	case errors.Is(err, slotsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}

func parseFilter(w http.ResponseWriter, r *http.Request) (domain.SlotFilter, bool) {
	query := r.URL.Query()
	filter := domain.SlotFilter{Limit: defaultLimit}

	if raw := query.Get("teacherId"); raw != "" {
		teacherID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidTeacherID)
			return domain.SlotFilter{}, false
		}
		filter.TeacherID = &teacherID
	}

	if raw := query.Get("eventId"); raw != "" {
		if raw == "null" {
			filter.EventIDIsNull = true
		} else {
			eventID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				handlers.RespondBadRequest(w, msgInvalidEventID)
				return domain.SlotFilter{}, false
			}
			filter.EventID = &eventID
		}
	}

	if raw := query.Get("booked"); raw != "" {
		switch strings.ToLower(raw) {
		case "true":
			booked := true
			filter.Booked = &booked
		case "false":
			booked := false
			filter.Booked = &booked
		default:
			handlers.RespondBadRequest(w, msgInvalidBooked)
			return domain.SlotFilter{}, false
		}
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return domain.SlotFilter{}, false
		}
		filter.Limit = limit
	}

	return filter, true
}
