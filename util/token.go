package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionClaims is the payload of a session token. ID (jti) keys the server-side session.
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// IssuedToken is a freshly signed session token.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// SignSessionToken signs an HS256 token for the given identity, valid for ttl.
func SignSessionToken(userID uint, email, role, name string, ttl time.Duration) (IssuedToken, error) {
	secret := GetJWTSecretByte()
	if len(secret) == 0 {
		return IssuedToken{}, errors.New("jwt secret is not configured")
	}

	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Token: signed, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// ParseSessionToken verifies signature and expiry and returns the claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return GetJWTSecretByte(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID == "" || claims.UserID == 0 {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
