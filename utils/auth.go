package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT Secret Key
var JwtKey = []byte("your_secret_key") // This will be loaded from the environment

var (
	// ErrTokenExpired is returned by ParseJWT for a well-signed but expired token
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid covers every other verification failure
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents the JWT claims
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.StandardClaims
}

// GenerateJWT signs a token for the given identity valid for ttl. Role may be
// empty.
func GenerateJWT(id, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:    id,
		Email: email,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			Subject:   id,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// ParseJWT verifies tokenStr against JwtKey and returns its claims
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return JwtKey, nil
	})
	if err != nil {
		var verr *jwt.ValidationError
		// Only report expiry for tokens we actually signed
		if errors.As(err, &verr) &&
			verr.Errors&jwt.ValidationErrorExpired != 0 &&
			verr.Errors&jwt.ValidationErrorSignatureInvalid == 0 {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
