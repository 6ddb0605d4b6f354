package middleware

import "github.com/gofiber/fiber/v2"

func AdminOnly(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != "ADMIN" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses khusus admin"})
	}
	return c.Next()
}
