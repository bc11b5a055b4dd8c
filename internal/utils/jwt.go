package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PrincipalType distinguishes which account table a token refers to.
const (
	PrincipalUser  = "user"
	PrincipalAdmin = "admin"
)

type jwtCustomClaims struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT carrying the account ID and type.
func GenerateToken(secret string, id uuid.UUID, principalType string, ttl time.Duration) (string, error) {
	claims := &jwtCustomClaims{
		ID:   id.String(),
		Type: principalType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the embedded ID and type.
func ParseToken(secret, tokenString string) (uuid.UUID, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, "", err
	}

	if claims, ok := token.Claims.(*jwtCustomClaims); ok && token.Valid {
		id, err := uuid.Parse(claims.ID)
		if err != nil {
			return uuid.Nil, "", err
		}
		if claims.Type == "" {
			return id, PrincipalUser, nil
		}
		return id, claims.Type, nil
	}

	return uuid.Nil, "", jwt.ErrTokenInvalidClaims
}
