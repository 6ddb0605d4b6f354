package main

import (
	"fmt"
	"log"

	"github.com/Christopher934/thesis-backend/config"
	"github.com/Christopher934/thesis-backend/internal/clock"
	"github.com/Christopher934/thesis-backend/internal/notifier"
	"github.com/Christopher934/thesis-backend/internal/repository"
	"github.com/Christopher934/thesis-backend/internal/routes"
	"github.com/Christopher934/thesis-backend/internal/scheduler"
	"github.com/Christopher934/thesis-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("1. Memulai aplikasi... Mencoba load .env...")
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	fmt.Println("2. Mencoba koneksi ke Database...")
	config.ConnectDB()
	fmt.Println("3. Database berhasil terhubung! Menyiapkan routes...")

	clk := clock.New()
	n := buildNotifier()

	app := fiber.New()

	// Middleware Global
	app.Use(cors.New())
	app.Use(logger.New())

	// Serve foto absensi yang diupload
	app.Static("/uploads", "./uploads")

	routes.SetupAbsensiRoutes(app, config.DB, clk)
	routes.SetupNotifikasiRoutes(app, config.DB, n)

	fmt.Println("4. Menjalankan scheduler notifikasi...")
	startScheduler(n, clk)

	port := config.GetEnv("APP_PORT", "3000")
	fmt.Println("5. Server siap! Menunggu request di port :" + port)
	app.Listen(":" + port)
}

func buildNotifier() notifier.Notifier {
	mc := &notifier.MultiChannel{}

	if token := config.GetEnv("TELEGRAM_BOT_TOKEN", ""); token != "" {
		mc.Telegram = notifier.NewTelegramSender(token)
	} else {
		log.Println("Warning: TELEGRAM_BOT_TOKEN kosong, channel Telegram nonaktif")
	}

	if host := config.GetEnv("SMTP_HOST", ""); host != "" {
		mc.Email = notifier.NewEmailSender(
			host,
			config.GetEnvAsInt("SMTP_PORT", 587),
			config.GetEnv("SMTP_USERNAME", ""),
			config.GetEnv("SMTP_PASSWORD", ""),
			config.GetEnv("SMTP_FROM", "no-reply@example.com"),
		)
	}

	return mc
}

func startScheduler(n notifier.Notifier, clk clock.Clock) {
	shiftRepo := repository.NewShiftRepository(config.DB)
	userRepo := repository.NewUserRepository(config.DB)
	notifikasiRepo := repository.NewNotifikasiRepository(config.DB)
	notifikasiUC := usecase.NewNotifikasiUsecase(notifikasiRepo, userRepo, n)

	tasks := scheduler.NewScheduledTasks(shiftRepo, userRepo, notifikasiRepo, notifikasiUC, clk)
	if _, err := tasks.Start(); err != nil {
		log.Fatalf("gagal menjalankan scheduler: %v", err)
	}
}
