package accept_request

// Request входные данные принятия заявки.
// ActorTeacherID равен nil для автоназначения по таймеру,
// тогда проверка принадлежности заявки не выполняется.
type Request struct {
	RequestID      int64
	ActorTeacherID *int64
	Times          []string // конкретные времена слотов, выбранные учителем
	TeacherMessage string
}

// Response результат принятия заявки
type Response struct {
	RequestID      int64
	AssignedSlotID int64
	AssignedTimes  []string
	Date           string
	EmailSent      bool
}
