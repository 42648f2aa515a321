package middleware

import (
	"learntrack/backend/config"
	"learntrack/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SubjectKey is the c.Locals key holding the token subject.
const SubjectKey = "subject"

// AuthMiddleware requires a valid Bearer token signed with cfg.JWTSecret.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := utils.ExtractSubjectFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(SubjectKey, subject)
		return c.Next()
	}
}
