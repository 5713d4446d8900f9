package create_request

import (
	createRequest "github.com/mph199/eduvite-backend/internal/usecase/create_request"
)

// CreateRequestRequest HTTP request model
type CreateRequestRequest struct {
	TeacherID          int64   `json:"teacherId"`
	RequestedTime      string  `json:"requestedTime"`
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

// CreateRequestResponse HTTP response model
type CreateRequestResponse struct {
	Success          bool           `json:"success"`
	Request          BookingRequest `json:"request"`
	VerificationSent bool           `json:"verificationSent"`
}

// BookingRequest созданная заявка в публичной выдаче
type BookingRequest struct {
	ID            int64  `json:"id"`
	TeacherID     int64  `json:"teacherId"`
	EventID       *int64 `json:"eventId,omitempty"`
	Date          string `json:"date"`
	RequestedTime string `json:"requestedTime"`
	Status        string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRequestRequest) ToUseCaseRequest() *createRequest.Request {
	return &createRequest.Request{
		TeacherID:          r.TeacherID,
		RequestedTime:      r.RequestedTime,
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
func FromUseCaseResponse(resp *createRequest.Response) *CreateRequestResponse {
	return &CreateRequestResponse{
		Success: true,
		Request: BookingRequest{
			ID:            resp.RequestID,
			TeacherID:     resp.TeacherID,
			EventID:       resp.EventID,
			Date:          resp.Date,
			RequestedTime: resp.RequestedTime,
			Status:        resp.Status,
		},
		VerificationSent: resp.VerificationSent,
	}
}
