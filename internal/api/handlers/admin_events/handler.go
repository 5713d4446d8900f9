package admin_events

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	eventsService "github.com/mph199/eduvite-backend/internal/service/events"
	"github.com/mph199/eduvite-backend/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidEventID     = "Ungültige Veranstaltungs-ID"
	msgEventNotFound      = "Elternsprechtag nicht gefunden"
	msgInvalidInput       = "Bitte alle Pflichtfelder ausfüllen"
	msgInvalidStatus      = "Ungültiger Status"
	msgInvalidTimes       = "Ungültiges Zeitformat, erwartet RFC3339"
	msgInvalidSlotMinutes = "Ungültige Termindauer"
)

// Handler админские операции над событиями
type Handler struct {
	events    EventsService
	generator SlotGenerator
	logger    Logger
}

func NewHandler(events EventsService, generator SlotGenerator, logger Logger) *Handler {
	return &Handler{
		events:    events,
		generator: generator,
		logger:    logger,
	}
}

// List GET /api/admin/events
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.events.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/events - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	models := make([]EventModel, 0, len(list))
	for _, e := range list {
		models = append(models, fromEvent(e))
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"events": models})
}

// Create POST /api/admin/events
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreatePayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := payload.ToCreateInput()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTimes)
		return
	}

	e, err := h.events.Create(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, "POST /admin/events", err)
		return
	}

	h.logger.Info("POST /admin/events - Event created: id=%d, name=%s", e.ID, e.Name)
	handlers.RespondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "event": fromEvent(e)})
}

// Update PUT /api/admin/events/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload UpdatePayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := payload.ToUpdateInput()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTimes)
		return
	}

	e, err := h.events.Update(r.Context(), eventID, input)
	if err != nil {
		h.respondServiceError(w, "PUT /admin/events", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "event": fromEvent(e)})
}

// Delete DELETE /api/admin/events/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.events.Delete(r.Context(), eventID); err != nil {
		h.respondServiceError(w, "DELETE /admin/events", err)
		return
	}

	h.logger.Info("DELETE /admin/events - Event deleted: id=%d", eventID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Stats GET /api/admin/events/{id}/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}

	stats, err := h.events.Stats(r.Context(), eventID)
	if err != nil {
		h.respondServiceError(w, "GET /admin/events/stats", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"stats": fromStats(stats)})
}

// GenerateSlots POST /api/admin/events/{id}/generate-slots
func (h *Handler) GenerateSlots(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r)
	if !ok {
		return
	}

	// тело необязательное: пустое тело означает значения по умолчанию
	var payload GenerateSlotsPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	report, err := h.generator.ExecuteForEvent(r.Context(), &generate_slots.EventRequest{
		EventID:         eventID,
		SlotMinutes:     payload.SlotMinutes,
		DryRun:          payload.DryRun,
		ReplaceExisting: payload.ReplaceExisting,
	})
	if err != nil {
		switch {
		case errors.Is(err, generate_slots.ErrEventNotFound):
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, generate_slots.ErrInvalidSlotMinutes):
			handlers.RespondBadRequest(w, msgInvalidSlotMinutes)

		default:
			h.logger.Error("POST /admin/events/generate-slots - Failed: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/events/generate-slots - Done: event_id=%d, created=%d, skipped=%d, dry_run=%v",
		eventID, report.Created, report.Skipped, report.DryRun)
	handlers.RespondJSON(w, http.StatusOK, fromEventReport(report))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, eventsService.ErrEventNotFound):
		handlers.RespondNotFound(w, msgEventNotFound)

	case errors.Is(err, eventsService.ErrInvalidStatus):
		handlers.RespondBadRequest(w, msgInvalidStatus)

	case errors.Is(err, eventsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return 0, false
	}
	return id, true
}
