// pkg/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer пишется в claim iss каждого выданного токена.
const Issuer = "catalog-service"

// ErrInvalidToken возвращается при любой ошибке проверки токена.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager предоставляет методы для генерации и валидации JWT токенов.
type TokenManager interface {
	Generate(subject string, role string) (string, error)
	GenerateWithTTL(subject string, role string, ttl time.Duration) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// jwtManager реализует TokenManager (HS256).
type jwtManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// Claims - данные, хранимые в JWT. ID пользователя лежит в sub.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID возвращает subject токена.
func (c *Claims) UserID() string {
	return c.Subject
}

// NewTokenManager создает новый экземпляр jwtManager.
// tokenDuration <= 0 означает токены без срока действия.
func NewTokenManager(secretKey string, tokenDuration time.Duration) (TokenManager, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	return &jwtManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}, nil
}

// Generate создает токен со стандартным сроком жизни.
func (m *jwtManager) Generate(subject string, role string) (string, error) {
	return m.GenerateWithTTL(subject, role, m.tokenDuration)
}

// GenerateWithTTL создает токен с явно заданным сроком жизни.
func (m *jwtManager) GenerateWithTTL(subject string, role string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("token subject cannot be empty")
	}
	now := m.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   Issuer,
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate проверяет подпись и срок действия и возвращает Claims.
func (m *jwtManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
