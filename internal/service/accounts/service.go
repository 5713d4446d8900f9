package accounts

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mph199/eduvite-backend/internal/domain"
	userRepo "github.com/mph199/eduvite-backend/internal/infra/storage/user"
)

// tempPasswordBytes - длина случайной части временного пароля
const tempPasswordBytes = 6

// maxUsernameLength ограничивает сгенерированный из имени логин
const maxUsernameLength = 20

// LoginResult результат успешного входа
type LoginResult struct {
	Token string
	User  *domain.User
}

// Credentials выданный учителю логин и временный пароль
type Credentials struct {
	Username     string
	TempPassword string
}

// Service сервис учётных записей: вход, пароли, роли
type Service struct {
	userRepo UserRepository
	issuer   TokenIssuer
	logger   Logger

	// Бутстрап-админ из конфигурации. Работает пока логин не занят
	// записью в БД, чтобы первый вход был возможен на пустой базе.
	bootstrapUser string
	bootstrapPass string
}

// NewService создает новый экземпляр сервиса учётных записей.
// bootstrapUser и bootstrapPass могут быть пустыми, тогда вход возможен
// только по записям из БД.
func NewService(userRepo UserRepository, issuer TokenIssuer, bootstrapUser, bootstrapPass string, logger Logger) *Service {
	return &Service{
		userRepo:      userRepo,
		issuer:        issuer,
		logger:        logger,
		bootstrapUser: bootstrapUser,
		bootstrapPass: bootstrapPass,
	}
}

// Login проверяет пароль и выпускает токен доступа.
// Неизвестный логин и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			if result, ok := s.bootstrapLogin(username, password); ok {
				return result, nil
			}
			s.logger.Warn("Login: unknown username %q", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for %q: %v", username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("Login: wrong password for %q", username)
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(u)
	if err != nil {
		s.logger.Error("Login: issue token for %q: %v", username, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user %q (role=%s) logged in", u.Username, u.Role)
	return &LoginResult{Token: token, User: u}, nil
}

// bootstrapLogin сверяет логин с админом из конфигурации
func (s *Service) bootstrapLogin(username, password string) (*LoginResult, bool) {
	if s.bootstrapUser == "" || s.bootstrapPass == "" {
		return nil, false
	}
	userMatch := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.bootstrapUser)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.bootstrapPass)) == 1
	if !userMatch || !passMatch {
		return nil, false
	}

	u := &domain.User{Username: s.bootstrapUser, Role: domain.RoleAdmin}
	token, err := s.issuer.Issue(u)
	if err != nil {
		s.logger.Error("Login: issue bootstrap token: %v", err)
		return nil, false
	}

	s.logger.Info("Login: bootstrap admin %q logged in", s.bootstrapUser)
	return &LoginResult{Token: token, User: u}, true
}

// GetByUsername получает учётную запись по логину
func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: GetByUsername - repository error: %v", ErrInternal, err)
	}
	return u, nil
}

// List получает все учётные записи
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return users, nil
}

// ChangePassword меняет пароль после проверки текущего
func (s *Service) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	if len(newPassword) < domain.MinPasswordLength {
		return ErrWeakPassword
	}

	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: ChangePassword - repository error: %v", ErrInternal, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)) != nil {
		s.logger.Warn("ChangePassword: wrong current password for %q", username)
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: ChangePassword - hash password: %v", ErrInternal, err)
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		s.logger.Error("ChangePassword: update failed for %q: %v", username, err)
		return fmt.Errorf("%w: ChangePassword - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ChangePassword: password updated for %q", username)
	return nil
}

// UpdateRole меняет роль учётной записи. Админ не может снять роль с себя,
// иначе система может остаться без администраторов.
func (s *Service) UpdateRole(ctx context.Context, actorUsername string, targetID int64, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: UpdateRole - repository error: %v", ErrInternal, err)
	}

	if target.Username == actorUsername && role != domain.RoleAdmin {
		s.logger.Warn("UpdateRole: %q attempted self-demotion", actorUsername)
		return nil, ErrSelfDemotion
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		s.logger.Error("UpdateRole: update failed for id=%d: %v", targetID, err)
		return nil, fmt.Errorf("%w: UpdateRole - repository error: %v", ErrInternal, err)
	}

	target.Role = role
	s.logger.Info("UpdateRole: user id=%d is now %s", targetID, role)
	return target, nil
}

// Delete удаляет учётную запись
func (s *Service) Delete(ctx context.Context, actorUsername string, id int64) error {
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if target.Username == actorUsername {
		return ErrSelfDemotion
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Delete: failed for user id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: user id=%d deleted", id)
	return nil
}

// EnsureTeacherAccount создает или перепривязывает учётную запись учителя.
// Логин генерируется из имени, если не задан явно; слабый или пустой
// пароль заменяется случайным временным.
func (s *Service) EnsureTeacherAccount(ctx context.Context, teacher *domain.Teacher, username, password string) (*Credentials, error) {
	login := buildUsername(username, teacher)
	tempPassword := strings.TrimSpace(password)
	if len(tempPassword) < domain.MinPasswordLength {
		generated, err := randomPassword()
		if err != nil {
			return nil, fmt.Errorf("%w: EnsureTeacherAccount - generate password: %v", ErrInternal, err)
		}
		tempPassword = generated
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: EnsureTeacherAccount - hash password: %v", ErrInternal, err)
	}

	teacherID := teacher.ID
	_, err = s.userRepo.Upsert(ctx, &domain.User{
		Username:     login,
		PasswordHash: string(hash),
		Role:         domain.RoleTeacher,
		TeacherID:    &teacherID,
	})
	if err != nil {
		s.logger.Error("EnsureTeacherAccount: upsert failed for teacher id=%d: %v", teacher.ID, err)
		return nil, fmt.Errorf("%w: EnsureTeacherAccount - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureTeacherAccount: account %q linked to teacher id=%d", login, teacher.ID)
	return &Credentials{Username: login, TempPassword: tempPassword}, nil
}

// ResetTeacherLogin выдает учителю новый временный пароль
func (s *Service) ResetTeacherLogin(ctx context.Context, teacher *domain.Teacher) (*Credentials, error) {
	return s.EnsureTeacherAccount(ctx, teacher, "", "")
}

// buildUsername строит логин из имени учителя: немецкие умляуты
// транслитерируются, всё кроме латиницы и цифр выбрасывается, id
// дописывается для уникальности.
func buildUsername(requested string, teacher *domain.Teacher) string {
	base := strings.TrimSpace(requested)
	if base == "" {
		base = teacher.Name
	}
	if base == "" {
		return fmt.Sprintf("teacher%d", teacher.ID)
	}

	base = strings.ToLower(base)
	replacer := strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
	base = replacer.Replace(base)

	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	clean := b.String()
	if len(clean) > maxUsernameLength {
		clean = clean[:maxUsernameLength]
	}
	if clean == "" {
		return fmt.Sprintf("teacher%d", teacher.ID)
	}

	id := fmt.Sprintf("%d", teacher.ID)
	if strings.HasSuffix(clean, id) {
		return clean
	}
	return clean + id
}

func randomPassword() (string, error) {
	buf := make([]byte, tempPasswordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
