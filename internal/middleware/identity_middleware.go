package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Identity meneruskan identitas yang SUDAH diverifikasi gateway di depan
// (autentikasi bukan urusan service ini). Header kosong berarti request
// tidak lewat gateway dan ditolak.
func Identity(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Get("X-User-ID"), 10, 64)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Identitas pengguna tidak ditemukan"})
	}

	c.Locals("user_id", uint(userID))
	c.Locals("role", c.Get("X-User-Role"))
	return c.Next()
}
