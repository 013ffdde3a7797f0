package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tripline/travel-services/wagateway/internal/constants"
	"github.com/tripline/travel-services/wagateway/pkg/twilio"
	"go.uber.org/zap"
)

// TwilioSignature verifies the X-Twilio-Signature header against the
// public URL of the webhook and the posted form fields. Disabled
// deployments pass every request through.
func TwilioSignature(cfg twilio.Config, basePublicURL string, logger *zap.Logger) fiber.Handler {
	validator := twilio.NewRequestValidator(cfg.AuthToken)

	return func(c *fiber.Ctx) error {
		if !cfg.VerifySignature {
			return c.Next()
		}

		signature := c.Get("X-Twilio-Signature")
		url := strings.TrimRight(basePublicURL, "/") + c.OriginalURL()

		params := make(map[string]string)
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			params[string(key)] = string(value)
		})

		if !validator.Validate(url, params, signature) {
			logger.Warn("Rejected webhook with invalid signature",
				zap.String("url", url),
				zap.Bool("signaturePresent", signature != ""))

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"code":    constants.ErrCodeInvalidSignature,
				"message": constants.GetErrorMessage(constants.ErrCodeInvalidSignature),
			})
		}

		return c.Next()
	}
}
