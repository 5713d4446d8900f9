package reserve_slot

// Request модель запроса на прямую бронь слота
type Request struct {
	SlotID             int64
	VisitorType        string
	ParentName         *string
	StudentName        *string
	CompanyName        *string
	TraineeName        *string
	RepresentativeName *string
	ClassName          string
	Email              string
	Message            *string
}

// Response модель ответа: занятый слот и судьба письма подтверждения
type Response struct {
	SlotID           int64
	TeacherID        int64
	EventID          *int64
	Date             string
	Time             string
	Status           string
	VerificationSent bool
}
