package routes

import (
	"github.com/Christopher934/thesis-backend/internal/clock"
	"github.com/Christopher934/thesis-backend/internal/handler"
	"github.com/Christopher934/thesis-backend/internal/middleware"
	"github.com/Christopher934/thesis-backend/internal/repository"
	"github.com/Christopher934/thesis-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAbsensiRoutes(app *fiber.App, db *gorm.DB, clk clock.Clock) {
	absensiRepo := repository.NewAbsensiRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	uc := usecase.NewAbsensiUsecase(absensiRepo, shiftRepo, clk)
	hdl := handler.NewAbsensiHandler(uc)

	api := app.Group("/api/absensi", middleware.Identity)
	api.Post("/masuk", hdl.AbsenMasuk)
	api.Post("/keluar/:id", hdl.AbsenKeluar)
	api.Get("/today", hdl.GetToday)
	api.Get("/riwayat", hdl.GetRiwayat)
	api.Get("/dashboard", hdl.GetUserDashboard)

	admin := app.Group("/api/admin/absensi", middleware.Identity, middleware.AdminOnly)
	admin.Get("/", hdl.GetAll)
	admin.Get("/dashboard", hdl.GetAdminDashboard)
	admin.Get("/stats", hdl.GetStats)
	admin.Get("/laporan", hdl.GetLaporanBulanan)
	admin.Put("/verifikasi/:id", hdl.Verifikasi)
}
