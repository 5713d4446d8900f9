package generate_slots

// TeacherRequest входные данные генерации слотов одного учителя
type TeacherRequest struct {
	TeacherID       int64
	EventID         *int64 // nil означает активное событие с фолбэками
	SlotMinutes     int    // 0 означает значение из настроек
	DryRun          bool
	ReplaceExisting bool
}

// EventRequest входные данные генерации слотов всех учителей под событие
type EventRequest struct {
	EventID         int64
	SlotMinutes     int // 0 означает значение из настроек
	DryRun          bool
	ReplaceExisting bool
}

// TeacherReport итог генерации по одному учителю
type TeacherReport struct {
	TeacherID   int64
	TeacherName string
	Date        string
	Created     int
	Skipped     int
	Deleted     int
}

// EventReport итог генерации по событию
type EventReport struct {
	EventID  int64
	Date     string
	DryRun   bool
	Created  int
	Skipped  int
	Deleted  int
	Teachers []*TeacherReport
}
