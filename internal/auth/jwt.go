package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess            = "access"
	TokenTypeEmailVerification = "email_verification"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims is the payload of every token issued by the service.
// Subject carries the user id.
type Claims struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// UserID is the subject of the token.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenManager signs and verifies HS256 tokens. It holds no state besides
// its configuration, so verification never touches the database.
type TokenManager struct {
	secret          []byte
	accessTTL       time.Duration
	verificationTTL time.Duration
	now             func() time.Time
}

func NewTokenManager(secret string, accessTTL, verificationTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	if accessTTL <= 0 || verificationTTL <= 0 {
		return nil, errors.New("jwt token TTLs must be positive")
	}
	return &TokenManager{
		secret:          []byte(secret),
		accessTTL:       accessTTL,
		verificationTTL: verificationTTL,
		now:             time.Now,
	}, nil
}

// GenerateAccessToken issues the bearer token returned by register and login.
func (m *TokenManager) GenerateAccessToken(userID, username, role string) (string, error) {
	claims := m.newClaims(userID, TokenTypeAccess, m.accessTTL)
	claims.Username = username
	claims.Role = role
	return m.sign(claims)
}

// GenerateVerificationToken issues the token mailed after registration.
// The returned id is stored on the user so only the latest token is honoured.
func (m *TokenManager) GenerateVerificationToken(userID string) (token string, tokenID string, err error) {
	claims := m.newClaims(userID, TokenTypeEmailVerification, m.verificationTTL)
	token, err = m.sign(claims)
	if err != nil {
		return "", "", err
	}
	return token, claims.ID, nil
}

func (m *TokenManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, TokenTypeAccess)
}

func (m *TokenManager) ParseVerificationToken(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, TokenTypeEmailVerification)
}

func (m *TokenManager) newClaims(userID, tokenType string, ttl time.Duration) *Claims {
	now := m.now()
	return &Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func (m *TokenManager) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) parse(tokenStr, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Type != expectedType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
