// Package middleware provides HTTP middleware components for the application.
// It resolves the calling principal from identity tokens and guards
// elevated-only routes.
package middleware

import (
	"strings"

	"marketplace/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	localsClaims    = "claims"
	localsPrincipal = "principal"
)

// AuthMiddleware verifies identity tokens issued by the identity service and
// turns their claims into a models.Principal. It never issues tokens.
type AuthMiddleware struct {
	secret []byte
	log    *zap.Logger
}

func NewAuthMiddleware(secret string, log *zap.Logger) *AuthMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthMiddleware{secret: []byte(secret), log: log.Named("auth")}
}

// Handler validates the bearer token and stores the claims and principal
// in the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := &models.AccountClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		m.log.Debug("token rejected", zap.Error(err), zap.String("request_id", RequestIDFrom(c)))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}
	if claims.Email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
	}

	c.Locals(localsClaims, claims)
	c.Locals(localsPrincipal, claims.Principal())
	return c.Next()
}

// AdminAuthMiddleware lets only elevated principals through.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	principal, ok := PrincipalFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid claims"})
	}
	if !principal.IsElevated() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
	return c.Next()
}

// PrincipalFrom returns the principal stored by AuthMiddleware.Handler.
func PrincipalFrom(c *fiber.Ctx) (models.Principal, bool) {
	p, ok := c.Locals(localsPrincipal).(models.Principal)
	return p, ok
}
