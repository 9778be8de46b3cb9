// Package auth implements the identity primitives: signed bearer tokens,
// the per-request identity, the authorization gate and password hashing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/taskboard/internal/common"
	"github.com/taskboard/taskboard/internal/server/models"
)

// Claims carries the identity payload inside a signed token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

// GenerateToken issues an HS256-signed token for the given user, valid for
// validityDuration.
func GenerateToken(user *models.User, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString against secretKey and returns its claims.
// Expired and malformed tokens yield common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
