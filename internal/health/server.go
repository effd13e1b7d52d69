// Package health exposes the keep-alive endpoint hosting platforms
// ping to keep the bot process from being put to sleep.
package health

import "github.com/gofiber/fiber/v2"

func New() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bot is alive!")
	})
	return app
}
