package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mph199/eduvite-backend/internal/domain"
)

var (
	// ErrInvalidToken возвращается для подделанных или протухших токенов
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims полезная нагрузка токена доступа
type Claims struct {
	Username  string          `json:"username"`
	Role      domain.UserRole `json:"role"`
	TeacherID *int64          `json:"teacherId,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer подписывает и проверяет токены доступа
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer создает эмитент токенов с симметричным ключом
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue выпускает подписанный токен для учётной записи
func (i *TokenIssuer) Issue(u *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username:  u.Username,
		Role:      u.Role,
		TeacherID: u.TeacherID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}

	return signed, nil
}

// Parse проверяет подпись и срок действия токена
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
