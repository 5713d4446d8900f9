package reserve_slot

import (
	reserveSlot "github.com/mph199/eduvite-backend/internal/usecase/reserve_slot"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	SlotID             int64   `json:"slotId"`
	VisitorType        string  `json:"visitorType"`
	ParentName         *string `json:"parentName,omitempty"`
	StudentName        *string `json:"studentName,omitempty"`
	CompanyName        *string `json:"companyName,omitempty"`
	TraineeName        *string `json:"traineeName,omitempty"`
	RepresentativeName *string `json:"representativeName,omitempty"`
	ClassName          string  `json:"className"`
	Email              string  `json:"email"`
	Message            *string `json:"message,omitempty"`
}

// ReserveSlotResponse HTTP response model
type ReserveSlotResponse struct {
	Success          bool         `json:"success"`
	Slot             ReservedSlot `json:"updatedSlot"`
	VerificationSent bool         `json:"verificationSent"`
}

// ReservedSlot занятый слот в публичной выдаче
type ReservedSlot struct {
	ID        int64  `json:"id"`
	TeacherID int64  `json:"teacherId"`
	EventID   *int64 `json:"eventId,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest() *reserveSlot.Request {
	return &reserveSlot.Request{
		SlotID:             r.SlotID,
		VisitorType:        r.VisitorType,
		ParentName:         r.ParentName,
		StudentName:        r.StudentName,
		CompanyName:        r.CompanyName,
		TraineeName:        r.TraineeName,
		RepresentativeName: r.RepresentativeName,
		ClassName:          r.ClassName,
		Email:              r.Email,
		Message:            r.Message,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *reserveSlot.Response) *ReserveSlotResponse {
	return &ReserveSlotResponse{
		Success: true,
		Slot: ReservedSlot{
			ID:        resp.SlotID,
			TeacherID: resp.TeacherID,
			EventID:   resp.EventID,
			Date:      resp.Date,
			Time:      resp.Time,
			Status:    resp.Status,
		},
		VerificationSent: resp.VerificationSent,
	}
}
