package domain

import "time"

// UserRole разграничивает доступ к разделам API
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
)

// IsValid reports whether r is a known role
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// User - учётная запись для входа. Учительские учётки связаны с
// карточкой учителя через TeacherID.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         UserRole
	TeacherID    *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTeacherAccount reports whether the account is linked to a teacher card
func (u *User) IsTeacherAccount() bool {
	return u.Role == RoleTeacher && u.TeacherID != nil
}
