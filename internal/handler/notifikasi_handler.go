package handler

import (
	"github.com/Christopher934/thesis-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type NotifikasiHandler struct {
	usecase *usecase.NotifikasiUsecase
}

func NewNotifikasiHandler(uc *usecase.NotifikasiUsecase) *NotifikasiHandler {
	return &NotifikasiHandler{usecase: uc}
}

func (h *NotifikasiHandler) GetMine(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	list, err := h.usecase.GetUserNotifications(userID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return absensiError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil notifikasi",
		"data":    list,
	})
}
