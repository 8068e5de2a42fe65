package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken indicates the token failed signature or structural checks.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the signed payload carried by every access token: the account
// id plus its admin flag. Nothing is stored server-side.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
}

// GenerateToken issues an HS256 token asserting the given identity for ttl.
func GenerateToken(userID string, isAdmin bool, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  userID,
		IsAdmin: isAdmin,
	})

	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the decoded claims.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
