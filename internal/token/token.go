package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	jwtIssuer = "edugather-api"

	activationTTL = 10 * time.Minute
	resetTTL      = 10 * time.Minute
	sessionTTL    = 7 * 24 * time.Hour
)

// ErrInvalid covers every verification failure: bad signature, wrong
// secret, expired, malformed. Callers never learn which.
var ErrInvalid = errors.New("expired or invalid token")

// Service signs and verifies the three token kinds, each with its own
// secret so one kind can never be replayed as another.
type Service struct {
	sessionSecret    []byte
	activationSecret []byte
	resetSecret      []byte
}

func NewService(sessionSecret, activationSecret, resetSecret string) *Service {
	return &Service{
		sessionSecret:    []byte(sessionSecret),
		activationSecret: []byte(activationSecret),
		resetSecret:      []byte(resetSecret),
	}
}

// ActivationClaims carries the pending registration. Nothing is persisted
// until the token comes back through Activate.
type ActivationClaims struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Categories []uint `json:"categories,omitempty"`
	jwt.RegisteredClaims
}

type sessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

type resetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Service) SignActivation(name, email, password string, categories []uint) (string, error) {
	claims := ActivationClaims{
		Name:             name,
		Email:            email,
		Password:         password,
		Categories:       categories,
		RegisteredClaims: registered(email, activationTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.activationSecret)
}

func (s *Service) ParseActivation(tokenString string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}
	if err := s.parse(tokenString, claims, s.activationSecret); err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}

func (s *Service) SignSession(userID uint) (string, error) {
	claims := sessionClaims{
		UserID:           userID,
		RegisteredClaims: registered(strconv.FormatUint(uint64(userID), 10), sessionTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
}

func (s *Service) ParseSession(tokenString string) (uint, error) {
	claims := &sessionClaims{}
	if err := s.parse(tokenString, claims, s.sessionSecret); err != nil {
		return 0, err
	}
	if claims.UserID == 0 {
		return 0, ErrInvalid
	}
	return claims.UserID, nil
}

func (s *Service) SignReset(email string) (string, error) {
	claims := resetClaims{
		Email:            email,
		RegisteredClaims: registered(email, resetTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.resetSecret)
}

// VerifyReset checks signature and expiry only. Single-use enforcement
// happens against the copy stored on the user row.
func (s *Service) VerifyReset(tokenString string) error {
	return s.parse(tokenString, &resetClaims{}, s.resetSecret)
}

func (s *Service) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalid
	}
	return nil
}

func registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}
