package stubserver

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// claims carried by stub-issued access tokens.
type claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// issueToken signs an HS256 access token for the account.
func (s *Server) issueToken(acc *account, ttl time.Duration) (string, error) {
	now := time.Now()
	c := &claims{
		UserID: acc.ID,
		Email:  acc.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "newsdesk-stub",
			Subject:   fmt.Sprintf("%d", acc.ID),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// validateToken parses and validates an access token.
func (s *Server) validateToken(tokenString string) (*claims, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return c, nil
}
