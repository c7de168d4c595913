package web

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims identify the frontend instance holding the token. The shell
// has no user accounts; a session simply proves the caller obtained a token
// from the local session endpoint.
type SessionClaims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(client, secret string, expire time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(expire)
	claims := SessionClaims{
		Client: client,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			Issuer:    "stockadvisors",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(secret))
	return tokenStr, expiresAt, err
}

func ValidateSessionToken(tokenStr, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
