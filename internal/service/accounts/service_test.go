package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mph199/eduvite-backend/internal/domain"
	userRepo "github.com/mph199/eduvite-backend/internal/infra/storage/user"
)

type fakeUserRepo struct {
	users       map[string]*domain.User
	upserted    *domain.User
	newPassword string
	deletedID   *int64
	updatedRole *domain.UserRole
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	m := make(map[string]*domain.User)
	for _, u := range users {
		m[u.Username] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, u *domain.User) (*domain.User, error) {
	f.upserted = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUserRepo) GetByTeacherID(_ context.Context, teacherID int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.TeacherID != nil && *u.TeacherID == teacherID {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, _ int64, passwordHash string) error {
	f.newPassword = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, _ int64, role domain.UserRole) error {
	f.updatedRole = &role
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = &id
	return nil
}

type fakeIssuer struct {
	err    error
	issued []*domain.User
}

func (f *fakeIssuer) Issue(u *domain.User) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.issued = append(f.issued, u)
	return "token-" + u.Username, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func teacherUser(t *testing.T, id int64, username, password string) *domain.User {
	return &domain.User{ID: id, Username: username, PasswordHash: hashOf(t, password), Role: domain.RoleTeacher}
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo(teacherUser(t, 1, "weber5", "geheim123"))
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})

	result, err := svc.Login(context.Background(), "weber5", "geheim123")

	require.NoError(t, err)
	assert.Equal(t, "token-weber5", result.Token)
	assert.Equal(t, "weber5", result.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo(teacherUser(t, 1, "weber5", "geheim123"))
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})

	_, err := svc.Login(context.Background(), "weber5", "falsch")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUserAndWrongPasswordIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo(teacherUser(t, 1, "weber5", "geheim123"))
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})

	_, unknownErr := svc.Login(context.Background(), "niemand", "geheim123")
	_, wrongErr := svc.Login(context.Background(), "weber5", "falsch")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestLogin_BootstrapAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	issuer := &fakeIssuer{}
	svc := NewService(repo, issuer, "admin", "sehrgeheim", noopLogger{})

	result, err := svc.Login(context.Background(), "admin", "sehrgeheim")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
	require.Len(t, issuer.issued, 1)
}

func TestLogin_DatabaseUserShadowsBootstrap(t *testing.T) {
	// Запись в БД с тем же логином имеет приоритет над конфигурацией
	repo := newFakeUserRepo(teacherUser(t, 1, "admin", "dbpasswort"))
	svc := NewService(repo, &fakeIssuer{}, "admin", "sehrgeheim", noopLogger{})

	_, err := svc.Login(context.Background(), "admin", "sehrgeheim")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BootstrapDisabledWhenUnset(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakeIssuer{}, "", "", noopLogger{})

	_, err := svc.Login(context.Background(), "admin", "")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword_Success(t *testing.T) {
	repo := newFakeUserRepo(teacherUser(t, 1, "weber5", "geheim123"))
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})

	err := svc.ChangePassword(context.Background(), "weber5", "geheim123", "nochgeheimer")

	require.NoError(t, err)
	require.NotEmpty(t, repo.newPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.newPassword), []byte("nochgeheimer")))
}

func TestChangePassword_TooShort(t *testing.T) {
	repo := newFakeUserRepo(teacherUser(t, 1, "weber5", "geheim123"))
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})

	err := svc.ChangePassword(context.Background(), "weber5", "geheim123", "kurz")

	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, repo.newPassword)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	repo := newFakeUserRepo(teacherUser(t, 1, "weber5", "geheim123"))
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})

	err := svc.ChangePassword(context.Background(), "weber5", "falsch", "nochgeheimer")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateRole_SelfDemotionBlocked(t *testing.T) {
	admin := &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	svc := NewService(newFakeUserRepo(admin), &fakeIssuer{}, "", "", noopLogger{})

	_, err := svc.UpdateRole(context.Background(), "admin", 1, domain.RoleTeacher)

	assert.ErrorIs(t, err, ErrSelfDemotion)
}

func TestUpdateRole_PromotesTeacher(t *testing.T) {
	repo := newFakeUserRepo(teacherUser(t, 2, "weber5", "geheim123"))
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})

	updated, err := svc.UpdateRole(context.Background(), "admin", 2, domain.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	require.NotNil(t, repo.updatedRole)
	assert.Equal(t, domain.RoleAdmin, *repo.updatedRole)
}

func TestUpdateRole_InvalidRole(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakeIssuer{}, "", "", noopLogger{})

	_, err := svc.UpdateRole(context.Background(), "admin", 2, domain.UserRole("superuser"))

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestDelete_SelfDeletionBlocked(t *testing.T) {
	admin := &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	repo := newFakeUserRepo(admin)
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})

	err := svc.Delete(context.Background(), "admin", 1)

	assert.ErrorIs(t, err, ErrSelfDemotion)
	assert.Nil(t, repo.deletedID)
}

func TestEnsureTeacherAccount_GeneratesCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})
	teacher := &domain.Teacher{ID: 7, Name: "Jörg Müßig"}

	creds, err := svc.EnsureTeacherAccount(context.Background(), teacher, "", "")

	require.NoError(t, err)
	assert.Equal(t, "joergmuessig7", creds.Username)
	assert.GreaterOrEqual(t, len(creds.TempPassword), domain.MinPasswordLength)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, domain.RoleTeacher, repo.upserted.Role)
	require.NotNil(t, repo.upserted.TeacherID)
	assert.Equal(t, int64(7), *repo.upserted.TeacherID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.upserted.PasswordHash), []byte(creds.TempPassword)))
}

func TestEnsureTeacherAccount_KeepsRequestedCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeIssuer{}, "", "", noopLogger{})
	teacher := &domain.Teacher{ID: 7, Name: "Jörg Müßig"}

	creds, err := svc.EnsureTeacherAccount(context.Background(), teacher, "jmuessig", "wunschpasswort")

	require.NoError(t, err)
	assert.Equal(t, "jmuessig7", creds.Username)
	assert.Equal(t, "wunschpasswort", creds.TempPassword)
}

func TestBuildUsername(t *testing.T) {
	tests := []struct {
		name     string
		teacher  *domain.Teacher
		expected string
	}{
		{"umlauts transliterated", &domain.Teacher{ID: 3, Name: "Görünç Straße"}, "goeruenstrasse3"},
		{"punctuation stripped", &domain.Teacher{ID: 4, Name: "Dr. Anna-Lena Koch"}, "drannalenakoch4"},
		{"empty name falls back", &domain.Teacher{ID: 9}, "teacher9"},
		{"symbols only falls back", &domain.Teacher{ID: 12, Name: "!!!"}, "teacher12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildUsername("", tt.teacher))
		})
	}
}
