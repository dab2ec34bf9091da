package utils

import (
	"errors"
	"time"

	"bookiteasy/config"
	"bookiteasy/models"

	"github.com/golang-jwt/jwt"
)

const devSecret = "bookiteasy-dev-secret"

var ErrInvalidToken = errors.New("invalid token")

func secretKey() ([]byte, error) {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		if config.IsProduction() {
			return nil, errors.New("JWT_SECRET is not configured")
		}
		secret = devSecret
	}
	return []byte(secret), nil
}

// GenerateToken creates a signed token for the given identity. Tokens are
// issued by the identity provider in production; this is used by tooling and tests.
func GenerateToken(identity models.Identity, duration time.Duration) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	role := identity.Role
	if role == "" {
		role = models.RoleUser
	}
	claims := jwt.MapClaims{
		"sub":   identity.UserID,
		"email": identity.Email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
}

// ParseIdentity validates the token and extracts the caller identity from its claims.
func ParseIdentity(tokenString string) (models.Identity, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Identity{}, errors.New("token does not contain a valid 'sub' claim")
	}

	identity := models.Identity{UserID: sub, Role: models.RoleUser}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		identity.Role = role
	}
	return identity, nil
}
