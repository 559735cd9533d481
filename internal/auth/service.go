package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/inamate/drawkit/internal/typeid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const tokenTTL = 24 * time.Hour

// Service checks the editor access key and issues bearer tokens for
// editing sessions. With no key hash configured every request is let in.
type Service struct {
	jwtSecret []byte
	keyHash   []byte
}

func NewService(jwtSecret, accessKeyHash string) *Service {
	return &Service{
		jwtSecret: []byte(jwtSecret),
		keyHash:   []byte(accessKeyHash),
	}
}

// Enabled reports whether an access key is required.
func (s *Service) Enabled() bool { return len(s.keyHash) > 0 }

type AuthResult struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
}

// HashKey produces the bcrypt hash to configure as the access key hash.
func HashKey(key string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", fmt.Errorf("hash key: %w", err)
	}
	return string(hash), nil
}

// Login checks key and starts a session.
func (s *Service) Login(key string) (*AuthResult, error) {
	if s.Enabled() {
		if err := bcrypt.CompareHashAndPassword(s.keyHash, []byte(key)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	sessionID := typeid.NewSessionID()
	token, err := s.issueToken(sessionID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, SessionID: sessionID}, nil
}

// ValidateToken returns the session ID a token was issued for.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	sessionID, ok := claims["sub"].(string)
	if !ok || typeid.Validate(sessionID, typeid.PrefixSession) != nil {
		return "", fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return sessionID, nil
}

func (s *Service) issueToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
