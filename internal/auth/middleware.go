package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"ricemill-backend/internal/config"
	"ricemill-backend/internal/models"
)

const CtxPrincipalKey = "principal"

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "could not parse token claims")
		}

		c.Locals(CtxPrincipalKey, Principal{
			UserID:      claims.UserID,
			Name:        claims.Name,
			Role:        claims.Role,
			Permissions: claims.Permissions,
		})

		return c.Next()
	}
}

// PrincipalFromCtx returns the principal stored by JWTMiddleware.
func PrincipalFromCtx(c *fiber.Ctx) (Principal, error) {
	p, ok := c.Locals(CtxPrincipalKey).(Principal)
	if !ok {
		return Principal{}, fiber.NewError(fiber.StatusForbidden, "no principal on request")
	}
	return p, nil
}

// RequirePermission gates a mutating route. The domain services behind it do
// not re-check authorization.
func RequirePermission(code string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		if !HasPermission(p, code) {
			return fiber.NewError(fiber.StatusForbidden, "permission denied")
		}
		return c.Next()
	}
}

func RequireAnyPermission(codes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		if !HasAnyPermission(p, codes...) {
			return fiber.NewError(fiber.StatusForbidden, "permission denied")
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := PrincipalFromCtx(c)
		if err != nil {
			return err
		}
		if p.Role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin only")
		}
		return c.Next()
	}
}
