package services

import (
	"fmt"
	"time"

	"bookstore-api/auth"
	"bookstore-api/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenService issues and decodes bearer tokens. The rest of the system
// treats tokens as opaque and only consumes the decoded identity.
type TokenService interface {
	Generate(user *models.User) (string, error)
	Decode(tokenStr string) (auth.Identity, error)
}

type jwtTokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(secret string, expiry time.Duration) TokenService {
	return &jwtTokenService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtTokenService) Generate(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode parses and verifies a token and maps its claims to an Identity.
// Any failure is returned as an error; the caller decides whether that
// means anonymous or rejected.
func (s *jwtTokenService) Decode(tokenStr string) (auth.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return auth.Identity{}, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Identity{}, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return auth.Identity{}, fmt.Errorf("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("sub claim is not a valid UUID")
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return auth.Identity{}, fmt.Errorf("missing role claim")
	}
	role := models.Role(roleStr)
	if !role.Valid() {
		return auth.Identity{}, fmt.Errorf("unknown role %q", roleStr)
	}

	return auth.Identity{UserID: userID, Role: role}, nil
}
