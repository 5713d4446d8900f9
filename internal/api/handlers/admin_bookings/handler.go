package admin_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/domain"
	slotsService "github.com/mph199/eduvite-backend/internal/service/slots"
)

const (
	listLimit = 10000

	msgInvalidSlotID = "Ungültige Termin-ID"
	msgSlotNotFound  = "Termin nicht gefunden"
	msgSlotNotBooked = "Termin ist nicht gebucht"
)

// BookingModel занятый слот с данными учителя и посетителя
type BookingModel struct {
	SlotID         int64   `json:"slotId"`
	TeacherID      int64   `json:"teacherId"`
	TeacherName    string  `json:"teacherName"`
	TeacherSubject string  `json:"teacherSubject"`
	EventID        *int64  `json:"eventId"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Status         *string `json:"status"`

	VisitorType        string  `json:"visitorType"`
	ParentName         *string `json:"parentName,omitempty"`
	StudentName        *string `json:"studentName,omitempty"`
	CompanyName        *string `json:"companyName,omitempty"`
	TraineeName        *string `json:"traineeName,omitempty"`
	RepresentativeName *string `json:"representativeName,omitempty"`
	ClassName          string  `json:"className"`
	Email              string  `json:"email"`
	Message            *string `json:"message,omitempty"`
	EmailVerified      bool    `json:"emailVerified"`
}

// Handler админский обзор и снятие броней
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

// List GET /api/admin/bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	booked := true
	list, err := h.slots.AdminList(r.Context(), domain.SlotFilter{
		Booked: &booked,
		Limit:  listLimit,
	})
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	bookings := make([]BookingModel, 0, len(list))
	for _, s := range list {
		bookings = append(bookings, fromBookedSlot(s))
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// Cancel DELETE /api/admin/bookings/{slotId}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.slots.CancelByAdmin(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrSlotNotBooked):
			handlers.RespondConflict(w, msgSlotNotBooked)

		default:
			h.logger.Error("DELETE /admin/bookings - Failed: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings - Booking cancelled: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func fromBookedSlot(s *slotsService.SlotWithTeacher) BookingModel {
	sl := s.Slot
	model := BookingModel{
		SlotID:         sl.ID,
		TeacherID:      sl.TeacherID,
		TeacherName:    s.TeacherName,
		TeacherSubject: s.TeacherSubject,
		EventID:        sl.EventID,
		Date:           sl.Date,
		Time:           sl.Time,

		VisitorType:        string(sl.Visitor.Type),
		ParentName:         sl.Visitor.ParentName,
		StudentName:        sl.Visitor.StudentName,
		CompanyName:        sl.Visitor.CompanyName,
		TraineeName:        sl.Visitor.TraineeName,
		RepresentativeName: sl.Visitor.RepresentativeName,
		ClassName:          sl.Visitor.ClassName,
		Email:              sl.Visitor.Email,
		Message:            sl.Visitor.Message,
		EmailVerified:      sl.Verification.IsVerified(),
	}
	if sl.Status != nil {
		status := string(*sl.Status)
		model.Status = &status
	}
	return model
}
