package admin_teachers

import (
	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/service/teachers"
)

// TeacherModel HTTP-модель учителя в админке, с email
type TeacherModel struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Salutation string  `json:"salutation"`
	Subject    string  `json:"subject"`
	System     string  `json:"system"`
	Room       *string `json:"room"`
}

// TeacherPayload HTTP-модель создания и изменения учителя
type TeacherPayload struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Salutation string  `json:"salutation"`
	Subject    string  `json:"subject"`
	System     string  `json:"system"`
	Room       *string `json:"room"`

	// Только при создании: необязательные реквизиты учетной записи
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialsModel выданный логин и временный пароль
type CredentialsModel struct {
	Username     string `json:"username"`
	TempPassword string `json:"tempPassword"`
}

// GenerateSlotsPayload параметры генерации слотов одного учителя
type GenerateSlotsPayload struct {
	EventID         *int64 `json:"eventId"`
	SlotMinutes     int    `json:"slotMinutes"`
	DryRun          bool   `json:"dryRun"`
	ReplaceExisting bool   `json:"replaceExisting"`
}

// ToCreateInput преобразует HTTP-модель во входные данные сервиса
func (p *TeacherPayload) ToCreateInput() teachers.CreateInput {
	return teachers.CreateInput{
		Name:       p.Name,
		Email:      p.Email,
		Salutation: p.Salutation,
		Subject:    p.Subject,
		System:     p.System,
		Room:       p.Room,
	}
}

func fromTeacher(t *domain.Teacher) TeacherModel {
	return TeacherModel{
		ID:         t.ID,
		Name:       t.Name,
		Email:      t.Email,
		Salutation: t.Salutation,
		Subject:    t.Subject,
		System:     string(t.System),
		Room:       t.Room,
	}
}
