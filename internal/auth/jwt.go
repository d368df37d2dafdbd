package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ricemill-backend/internal/models"
)

type JWTCustomClaims struct {
	UserID      uint            `json:"user_id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	Permissions []string        `json:"permissions"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User) (string, error) {
	claims := &JWTCustomClaims{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Permissions: user.PermissionList(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
