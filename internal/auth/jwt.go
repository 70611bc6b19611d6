package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Fallback secret for local development. Main overrides it from JWT_SECRET.
var jwtSecretKey = []byte("A_VERY_SECURE_SECRET_KEY_REPLACE_LATER")

// SetSecret replaces the signing key. Empty input keeps the current key.
func SetSecret(secret string) {
	if secret != "" {
		jwtSecretKey = []byte(secret)
	}
}

// Identity is what the token carries about the authenticated caller. Every
// request is served from these two fields alone; the order layer never
// looks identity up again.
type Identity struct {
	UserID int64
	Role   string
}

// GenerateToken creates a signed JWT for a user. The role rides along as a
// claim so protected routes can authorize without a user lookup.
func GenerateToken(userID int64, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour * 72).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT string and returns the identity
// it carries.
func ValidateToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecretKey, nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	userIDFloat, ok := claims["sub"].(float64)
	if !ok {
		return Identity{}, errors.New("invalid subject claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Identity{}, errors.New("invalid role claim")
	}

	return Identity{UserID: int64(userIDFloat), Role: role}, nil
}
