package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecretKey []byte

// Init sets the HMAC signing key. Must be called once at startup before any
// token is issued or validated.
func Init(secret string) {
	jwtSecretKey = []byte(secret)
}

// GenerateToken creates a signed JWT for the given store ID, valid for 72h.
func GenerateToken(storeID int64) (string, error) {
	claims := jwt.MapClaims{
		"sub": storeID,
		"exp": time.Now().Add(72 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtSecretKey)
}

// ValidateToken parses a token string and returns the store ID it carries.
func ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecretKey, nil
	})
	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		// JSON numbers decode as float64.
		storeIDFloat, ok := claims["sub"].(float64)
		if !ok {
			return 0, errors.New("invalid subject claim")
		}
		return int64(storeIDFloat), nil
	}

	return 0, errors.New("invalid token")
}
