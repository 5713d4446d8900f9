package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	reserveSlot "github.com/mph199/eduvite-backend/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidInput       = "Bitte alle Pflichtfelder ausfüllen"
	msgNoActiveEvent      = "Buchungen sind aktuell nicht freigegeben"
	msgSlotNotFound       = "Termin nicht gefunden"
	msgSlotOutsideEvent   = "Dieser Termin gehört nicht zum aktuell freigegebenen Elternsprechtag"
	msgSlotAlreadyBooked  = "Dieser Termin ist bereits vergeben"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reserveSlot.ErrNoActiveEvent):
			handlers.RespondConflict(w, msgNoActiveEvent)

		case errors.Is(err, reserveSlot.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reserveSlot.ErrSlotOutsideEvent):
			handlers.RespondConflict(w, msgSlotOutsideEvent)

		case errors.Is(err, reserveSlot.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		default:
			h.logger.Error("POST /bookings - Failed to reserve slot: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Slot reserved: slot_id=%d", result.SlotID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
