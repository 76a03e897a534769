package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

type Service interface {
	GenerateToken(subject, name string, role Role, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*ScorerClaims, error)
}

type service struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewService(secret string, defaultTTL time.Duration) Service {
	return &service{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
	}
}

func (s *service) GenerateToken(subject, name string, role Role, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now()
	claims := &ScorerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name: name,
		Role: string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (s *service) ValidateToken(tokenString string) (*ScorerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ScorerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*ScorerClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
