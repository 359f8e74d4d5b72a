package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Ensure hands every visitor a session cookie before the jwt middleware
// runs. For first-time visitors the freshly minted token is also injected
// into the request headers so the same request passes the jwt check instead
// of bouncing with a 401.
func Ensure(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := c.Cookies(CookieName); raw != "" {
			if _, err := Parse(secret, raw); err == nil {
				return c.Next()
			}
			// invalid or tampered cookie: fall through and replace it
		}

		_, token, err := Issue(secret)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not start session"})
		}
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    token,
			Expires:  time.Now().Add(30 * 24 * time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		c.Request().Header.SetCookie(CookieName, token)
		return c.Next()
	}
}
