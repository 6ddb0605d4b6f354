package routes

import (
	"github.com/Christopher934/thesis-backend/internal/handler"
	"github.com/Christopher934/thesis-backend/internal/middleware"
	"github.com/Christopher934/thesis-backend/internal/notifier"
	"github.com/Christopher934/thesis-backend/internal/repository"
	"github.com/Christopher934/thesis-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupNotifikasiRoutes(app *fiber.App, db *gorm.DB, n notifier.Notifier) {
	notifikasiRepo := repository.NewNotifikasiRepository(db)
	userRepo := repository.NewUserRepository(db)
	uc := usecase.NewNotifikasiUsecase(notifikasiRepo, userRepo, n)
	hdl := handler.NewNotifikasiHandler(uc)

	api := app.Group("/api/notifikasi", middleware.Identity)
	api.Get("/", hdl.GetMine)
}
