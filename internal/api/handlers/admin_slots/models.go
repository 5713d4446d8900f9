package admin_slots

import (
	"github.com/mph199/eduvite-backend/internal/domain"
	slotsService "github.com/mph199/eduvite-backend/internal/service/slots"
)

// SlotModel слот в админской выдаче, с данными посетителя
type SlotModel struct {
	ID             int64   `json:"id"`
	TeacherID      int64   `json:"teacherId"`
	EventID        *int64  `json:"eventId"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Booked         bool    `json:"booked"`
	Status         *string `json:"status"`
	TeacherName    string  `json:"teacherName,omitempty"`
	TeacherSubject string  `json:"teacherSubject,omitempty"`

	VisitorType        *string `json:"visitorType,omitempty"`
	ParentName         *string `json:"parentName,omitempty"`
	StudentName        *string `json:"studentName,omitempty"`
	CompanyName        *string `json:"companyName,omitempty"`
	TraineeName        *string `json:"traineeName,omitempty"`
	RepresentativeName *string `json:"representativeName,omitempty"`
	ClassName          string  `json:"className,omitempty"`
	Email              string  `json:"email,omitempty"`
	Message            *string `json:"message,omitempty"`
	EmailVerified      bool    `json:"emailVerified"`
}

// SlotPayload HTTP-модель создания и изменения слота
type SlotPayload struct {
	TeacherID int64  `json:"teacherId"`
	EventID   *int64 `json:"eventId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// ToSlotInput преобразует HTTP-модель во входные данные сервиса
func (p *SlotPayload) ToSlotInput() slotsService.SlotInput {
	return slotsService.SlotInput{
		TeacherID: p.TeacherID,
		EventID:   p.EventID,
		Date:      p.Date,
		Time:      p.Time,
	}
}

func fromSlot(s *domain.Slot) SlotModel {
	model := SlotModel{
		ID:        s.ID,
		TeacherID: s.TeacherID,
		EventID:   s.EventID,
		Date:      s.Date,
		Time:      s.Time,
		Booked:    s.Booked,
	}
	if s.Status != nil {
		status := string(*s.Status)
		model.Status = &status
	}
	if s.Booked {
		visitorType := string(s.Visitor.Type)
		model.VisitorType = &visitorType
		model.ParentName = s.Visitor.ParentName
		model.StudentName = s.Visitor.StudentName
		model.CompanyName = s.Visitor.CompanyName
		model.TraineeName = s.Visitor.TraineeName
		model.RepresentativeName = s.Visitor.RepresentativeName
		model.ClassName = s.Visitor.ClassName
		model.Email = s.Visitor.Email
		model.Message = s.Visitor.Message
		model.EmailVerified = s.Verification.IsVerified()
	}
	return model
}

func fromSlotWithTeacher(s *slotsService.SlotWithTeacher) SlotModel {
	model := fromSlot(s.Slot)
	model.TeacherName = s.TeacherName
	model.TeacherSubject = s.TeacherSubject
	return model
}
