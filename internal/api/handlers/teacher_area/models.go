package teacher_area

import (
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
)

// TeacherInfo собственные данные учителя
type TeacherInfo struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Salutation string  `json:"salutation"`
	Subject    string  `json:"subject"`
	System     string  `json:"system"`
	Room       *string `json:"room,omitempty"`
}

// SlotModel слот в выдаче личного кабинета, с данными посетителя
type SlotModel struct {
	ID        int64   `json:"id"`
	TeacherID int64   `json:"teacherId"`
	EventID   *int64  `json:"eventId,omitempty"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Booked    bool    `json:"booked"`
	Status    *string `json:"status,omitempty"`

	VisitorType        *string `json:"visitorType,omitempty"`
	ParentName         *string `json:"parentName,omitempty"`
	StudentName        *string `json:"studentName,omitempty"`
	CompanyName        *string `json:"companyName,omitempty"`
	TraineeName        *string `json:"traineeName,omitempty"`
	RepresentativeName *string `json:"representativeName,omitempty"`
	ClassName          string  `json:"className,omitempty"`
	Email              string  `json:"email,omitempty"`
	Message            *string `json:"message,omitempty"`

	EmailVerified bool `json:"emailVerified"`
}

// BookingModel занятый слот вместе с данными учителя
type BookingModel struct {
	SlotModel
	TeacherName    string `json:"teacherName"`
	TeacherSubject string `json:"teacherSubject"`
}

// RequestModel заявка в выдаче личного кабинета, обогащенная
// кандидатами на назначение
type RequestModel struct {
	ID            int64  `json:"id"`
	TeacherID     int64  `json:"teacherId"`
	EventID       *int64 `json:"eventId,omitempty"`
	Date          string `json:"date"`
	RequestedTime string `json:"requestedTime"`
	Status        string `json:"status"`

	VisitorType        *string `json:"visitorType,omitempty"`
	ParentName         *string `json:"parentName,omitempty"`
	StudentName        *string `json:"studentName,omitempty"`
	CompanyName        *string `json:"companyName,omitempty"`
	TraineeName        *string `json:"traineeName,omitempty"`
	RepresentativeName *string `json:"representativeName,omitempty"`
	ClassName          string  `json:"className,omitempty"`
	Email              string  `json:"email,omitempty"`
	Message            *string `json:"message,omitempty"`

	EmailVerified   bool     `json:"emailVerified"`
	AssignableTimes []string `json:"assignableTimes"`
	AvailableTimes  []string `json:"availableTimes"`
	CreatedAt       string   `json:"createdAt"`
}

// ChangePasswordRequest HTTP request model смены пароля
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// FeedbackRequest HTTP request model анонимной обратной связи
type FeedbackRequest struct {
	Message string `json:"message"`
}

func fromSlot(s *domain.Slot) SlotModel {
	m := SlotModel{
		ID:        s.ID,
		TeacherID: s.TeacherID,
		EventID:   s.EventID,
		Date:      s.Date,
		Time:      s.Time,
		Booked:    s.Booked,
	}
	if s.Status != nil {
		status := string(*s.Status)
		m.Status = &status
	}
	if !s.Booked {
		return m
	}

	if s.Visitor.Type != "" {
		visitorType := string(s.Visitor.Type)
		m.VisitorType = &visitorType
	}
	m.ParentName = s.Visitor.ParentName
	m.StudentName = s.Visitor.StudentName
	m.CompanyName = s.Visitor.CompanyName
	m.TraineeName = s.Visitor.TraineeName
	m.RepresentativeName = s.Visitor.RepresentativeName
	m.ClassName = s.Visitor.ClassName
	m.Email = s.Visitor.Email
	m.Message = s.Visitor.Message
	m.EmailVerified = s.Verification.IsVerified()
	return m
}

func fromRequest(r *domain.BookingRequest, assignable, available []string) RequestModel {
	m := RequestModel{
		ID:              r.ID,
		TeacherID:       r.TeacherID,
		EventID:         r.EventID,
		Date:            r.Date,
		RequestedTime:   r.RequestedTime,
		Status:          string(r.Status),
		ClassName:       r.Visitor.ClassName,
		Email:           r.Visitor.Email,
		Message:         r.Visitor.Message,
		EmailVerified:   r.Verification.IsVerified(),
		AssignableTimes: assignable,
		AvailableTimes:  available,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.Visitor.Type != "" {
		visitorType := string(r.Visitor.Type)
		m.VisitorType = &visitorType
	}
	m.ParentName = r.Visitor.ParentName
	m.StudentName = r.Visitor.StudentName
	m.CompanyName = r.Visitor.CompanyName
	m.TraineeName = r.Visitor.TraineeName
	m.RepresentativeName = r.Visitor.RepresentativeName
	return m
}
