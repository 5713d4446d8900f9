package admin_settings

import (
	"errors"
	"net/http"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/domain"
	eventsService "github.com/mph199/eduvite-backend/internal/service/events"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidSettings    = "Ungültige Einstellungen"
)

// SettingsModel глобальные настройки в HTTP-выдаче
type SettingsModel struct {
	ConferenceDate *string `json:"conferenceDate"`
	SlotMinutes    int     `json:"slotMinutes"`
}

// UpdatePayload HTTP-модель записи настроек
type UpdatePayload struct {
	ConferenceDate *string `json:"conferenceDate"`
	SlotMinutes    int     `json:"slotMinutes"`
}

// Handler чтение и запись глобальных настроек.
// Чтение доступно любому аутентифицированному пользователю, запись
// только администратору, это разводится на уровне маршрутов.
type Handler struct {
	settings SettingsService
	logger   Logger
}

func NewHandler(settings SettingsService, logger Logger) *Handler {
	return &Handler{
		settings: settings,
		logger:   logger,
	}
}

// Get GET /api/admin/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetSettings(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"settings": fromSettings(settings)})
}

// Update PUT /api/admin/settings
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var payload UpdatePayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	settings, err := h.settings.UpdateSettings(r.Context(), payload.ConferenceDate, payload.SlotMinutes)
	if err != nil {
		if errors.Is(err, eventsService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidSettings)
			return
		}
		h.logger.Error("PUT /admin/settings - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/settings - Settings saved: slot_minutes=%d", settings.SlotMinutes)
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "settings": fromSettings(settings)})
}

func fromSettings(s *domain.Settings) SettingsModel {
	return SettingsModel{
		ConferenceDate: s.ConferenceDate,
		SlotMinutes:    s.EffectiveSlotMinutes(),
	}
}
