package admin_teachers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	teachersService "github.com/mph199/eduvite-backend/internal/service/teachers"
	"github.com/mph199/eduvite-backend/internal/usecase/create_teacher"
	"github.com/mph199/eduvite-backend/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidTeacherID   = "Ungültige Lehrkraft-ID"
	msgTeacherNotFound    = "Lehrkraft nicht gefunden"
	msgEventNotFound      = "Elternsprechtag nicht gefunden"
	msgInvalidInput       = "Bitte alle Pflichtfelder ausfüllen"
	msgInvalidEmail       = "Die E-Mail-Adresse muss auf die Schuldomain enden"
	msgInvalidSalutation  = "Ungültige Anrede"
	msgInvalidSystem      = "Ungültige Schulform"
	msgDuplicateEmail     = "Diese E-Mail-Adresse wird bereits verwendet"
	msgHasBookedSlots     = "Lehrkraft hat bereits gebuchte Termine und kann nicht gelöscht werden"
	msgInvalidSlotMinutes = "Ungültige Termindauer"
)

// Handler админские операции над карточками учителей
type Handler struct {
	teachers  TeachersService
	creator   TeacherCreator
	generator SlotGenerator
	accounts  AccountsService
	logger    Logger
}

func NewHandler(
	teachers TeachersService,
	creator TeacherCreator,
	generator SlotGenerator,
	accounts AccountsService,
	logger Logger,
) *Handler {
	return &Handler{
		teachers:  teachers,
		creator:   creator,
		generator: generator,
		accounts:  accounts,
		logger:    logger,
	}
}

// List GET /api/admin/teachers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.teachers.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/teachers - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	models := make([]TeacherModel, 0, len(list))
	for _, t := range list {
		models = append(models, fromTeacher(t))
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"teachers": models})
}

// Create POST /api/admin/teachers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload TeacherPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.creator.Execute(r.Context(), &create_teacher.Request{
		Teacher:  payload.ToCreateInput(),
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		h.respondServiceError(w, "POST /admin/teachers", err)
		return
	}

	h.logger.Info("POST /admin/teachers - Teacher created: id=%d, slots=%d", resp.Teacher.ID, resp.SlotsCreated)

	body := map[string]interface{}{
		"success":      true,
		"teacher":      fromTeacher(resp.Teacher),
		"slotsCreated": resp.SlotsCreated,
	}
	if resp.Credentials != nil {
		body["credentials"] = CredentialsModel{
			Username:     resp.Credentials.Username,
			TempPassword: resp.Credentials.TempPassword,
		}
	}
	handlers.RespondJSON(w, http.StatusCreated, body)
}

// Update PUT /api/admin/teachers/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload TeacherPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	t, err := h.teachers.Update(r.Context(), teacherID, payload.ToCreateInput())
	if err != nil {
		h.respondServiceError(w, "PUT /admin/teachers", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "teacher": fromTeacher(t)})
}

// Delete DELETE /api/admin/teachers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.teachers.Delete(r.Context(), teacherID); err != nil {
		switch {
		case errors.Is(err, teachersService.ErrTeacherNotFound):
			handlers.RespondNotFound(w, msgTeacherNotFound)

		case errors.Is(err, teachersService.ErrHasBookedSlots):
			handlers.RespondBadRequest(w, msgHasBookedSlots)

		default:
			h.logger.Error("DELETE /admin/teachers - Failed: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/teachers - Teacher deleted: id=%d", teacherID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ResetLogin PUT /api/admin/teachers/{id}/reset-login
func (h *Handler) ResetLogin(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(w, r)
	if !ok {
		return
	}

	t, err := h.teachers.GetByID(r.Context(), teacherID)
	if err != nil {
		if errors.Is(err, teachersService.ErrTeacherNotFound) {
			handlers.RespondNotFound(w, msgTeacherNotFound)
			return
		}
		h.logger.Error("PUT /admin/teachers/reset-login - Teacher lookup failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	creds, err := h.accounts.ResetTeacherLogin(r.Context(), t)
	if err != nil {
		h.logger.Error("PUT /admin/teachers/reset-login - Failed: teacher_id=%d, error=%v", teacherID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/teachers/reset-login - Login reset: teacher_id=%d, username=%s", teacherID, creds.Username)
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": CredentialsModel{
			Username:     creds.Username,
			TempPassword: creds.TempPassword,
		},
	})
}

// GenerateSlots POST /api/admin/teachers/{id}/generate-slots
func (h *Handler) GenerateSlots(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(w, r)
	if !ok {
		return
	}

	// тело необязательное: пустое тело означает значения по умолчанию
	var payload GenerateSlotsPayload
	if err := handlers.DecodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	report, err := h.generator.ExecuteForTeacher(r.Context(), &generate_slots.TeacherRequest{
		TeacherID:       teacherID,
		EventID:         payload.EventID,
		SlotMinutes:     payload.SlotMinutes,
		DryRun:          payload.DryRun,
		ReplaceExisting: payload.ReplaceExisting,
	})
	if err != nil {
		switch {
		case errors.Is(err, generate_slots.ErrTeacherNotFound):
			handlers.RespondNotFound(w, msgTeacherNotFound)

		case errors.Is(err, generate_slots.ErrEventNotFound):
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, generate_slots.ErrInvalidSlotMinutes):
			handlers.RespondBadRequest(w, msgInvalidSlotMinutes)

		default:
			h.logger.Error("POST /admin/teachers/generate-slots - Failed: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/teachers/generate-slots - Done: teacher_id=%d, created=%d, skipped=%d",
		teacherID, report.Created, report.Skipped)
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"eventDate": report.Date,
		"created":   report.Created,
		"skipped":   report.Skipped,
		"deleted":   report.Deleted,
	})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, teachersService.ErrTeacherNotFound):
		handlers.RespondNotFound(w, msgTeacherNotFound)

	case errors.Is(err, teachersService.ErrInvalidEmail):
		handlers.RespondBadRequest(w, msgInvalidEmail)

	case errors.Is(err, teachersService.ErrInvalidSalutation):
		handlers.RespondBadRequest(w, msgInvalidSalutation)

	case errors.Is(err, teachersService.ErrInvalidSystem):
		handlers.RespondBadRequest(w, msgInvalidSystem)

	case errors.Is(err, teachersService.ErrDuplicateEmail):
		handlers.RespondConflict(w, msgDuplicateEmail)

	case errors.Is(err, teachersService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return 0, false
	}
	return id, true
}
