package handler

import (
	"errors"

	"github.com/Christopher934/thesis-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AbsensiHandler struct {
	usecase  *usecase.AbsensiUsecase
	validate *validator.Validate
}

func NewAbsensiHandler(uc *usecase.AbsensiUsecase) *AbsensiHandler {
	return &AbsensiHandler{usecase: uc, validate: validator.New()}
}

func (h *AbsensiHandler) AbsenMasuk(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req usecase.CreateAbsensiInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Lokasi wajib diisi"})
	}

	absensi, err := h.usecase.AbsenMasuk(userID, &req)
	if err != nil {
		return absensiError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Absen masuk berhasil",
		"data":    absensi,
	})
}

func (h *AbsensiHandler) AbsenKeluar(c *fiber.Ctx) error {
	absensiID, err := c.ParamsInt("id")
	if err != nil || absensiID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID absensi tidak valid"})
	}

	var req usecase.UpdateAbsensiInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	absensi, err := h.usecase.AbsenKeluar(uint(absensiID), &req)
	if err != nil {
		return absensiError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Absen keluar berhasil",
		"data":    absensi,
	})
}

func (h *AbsensiHandler) GetToday(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	today, err := h.usecase.GetTodayAttendance(userID)
	if err != nil {
		return absensiError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil data hari ini",
		"data":    today,
	})
}

func (h *AbsensiHandler) GetRiwayat(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	list, err := h.usecase.GetUserAttendance(userID, queryFromCtx(c))
	if err != nil {
		return absensiError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil riwayat",
		"data":    list,
	})
}

func (h *AbsensiHandler) GetUserDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	stats, err := h.usecase.GetUserDashboardStats(userID)
	if err != nil {
		return absensiError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil statistik bulanan",
		"data":    stats,
	})
}

// --- Endpoint admin ---

func (h *AbsensiHandler) GetAll(c *fiber.Ctx) error {
	q := queryFromCtx(c)
	q.UserID = uint(c.QueryInt("userId"))

	list, err := h.usecase.GetAllAttendance(q)
	if err != nil {
		return absensiError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil data absensi",
		"data":    list,
	})
}

func (h *AbsensiHandler) GetAdminDashboard(c *fiber.Ctx) error {
	stats, err := h.usecase.GetAdminDashboardStats()
	if err != nil {
		return absensiError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil statistik dashboard",
		"data":    stats,
	})
}

func (h *AbsensiHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.usecase.GetAttendanceStats(&usecase.StatsQuery{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		UserID:    uint(c.QueryInt("userId")),
	})
	if err != nil {
		return absensiError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil statistik",
		"data":    stats,
	})
}

func (h *AbsensiHandler) GetLaporanBulanan(c *fiber.Ctx) error {
	list, err := h.usecase.GetMonthlyReport(&usecase.MonthlyReportQuery{
		Year:   c.QueryInt("year"),
		Month:  c.QueryInt("month"),
		UserID: uint(c.QueryInt("userId")),
	})
	if err != nil {
		return absensiError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil laporan bulanan",
		"data":    list,
	})
}

func (h *AbsensiHandler) Verifikasi(c *fiber.Ctx) error {
	absensiID, err := c.ParamsInt("id")
	if err != nil || absensiID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID absensi tidak valid"})
	}

	var req usecase.VerifikasiInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}

	absensi, err := h.usecase.VerifyAttendance(uint(absensiID), &req)
	if err != nil {
		return absensiError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Verifikasi absensi berhasil",
		"data":    absensi,
	})
}

func queryFromCtx(c *fiber.Ctx) *usecase.AbsensiQuery {
	return &usecase.AbsensiQuery{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Status:    c.Query("status"),
		Limit:     c.QueryInt("limit"),
		Offset:    c.QueryInt("offset"),
	}
}

// absensiError memetakan error bisnis ke status HTTP; error lain
// dianggap kesalahan server dan pesannya tidak dibocorkan.
func absensiError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInputKosong):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrTidakAdaShift),
		errors.Is(err, usecase.ErrAbsensiTidakDitemukan),
		errors.Is(err, usecase.ErrUserTidakDitemukan):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrSudahAbsenMasuk),
		errors.Is(err, usecase.ErrSudahAbsenKeluar):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan pada server"})
	}
}
