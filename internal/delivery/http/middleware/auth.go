package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/estate-backoffice/internal/config"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/pkg/utils"
)

// Auth guards the admin surface. Tokens are HMAC-signed bearer JWTs carrying a
// role claim; only back-office roles pass.
func Auth(cfg *config.AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			jwt.WithExpirationRequired(),
		}
		if cfg.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.Issuer))
		}

		token, err := jwt.Parse(
			strings.TrimPrefix(header, "Bearer "),
			func(t *jwt.Token) (interface{}, error) {
				return []byte(cfg.JWTSecret), nil
			},
			opts...,
		)
		if err != nil || !token.Valid {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, errors.ErrUnauthorized)
		}
		role, _ := claims["role"].(string)
		if role != "admin" && role != "editor" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals("subject", claims["sub"])
		c.Locals("role", role)
		return c.Next()
	}
}
