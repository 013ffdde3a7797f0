package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/tripline/travel-services/wagateway/internal/constants"
)

// CronSecret gates the scheduled-job endpoints behind a shared secret
// carried in the X-Cron-Secret header.
func CronSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get("X-Cron-Secret")
		if provided == "" {
			provided = c.Query("secret")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"code":    constants.ErrCodeInvalidCronSecret,
				"message": constants.GetErrorMessage(constants.ErrCodeInvalidCronSecret),
			})
		}

		return c.Next()
	}
}
