package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Christopher934/thesis-backend/internal/model"
	"github.com/Christopher934/thesis-backend/internal/notifier"
	"github.com/Christopher934/thesis-backend/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotifikasiUsecase struct {
	repo     repository.NotifikasiRepository
	userRepo repository.UserRepository
	notifier notifier.Notifier
}

func NewNotifikasiUsecase(repo repository.NotifikasiRepository, userRepo repository.UserRepository, n notifier.Notifier) *NotifikasiUsecase {
	return &NotifikasiUsecase{repo: repo, userRepo: userRepo, notifier: n}
}

// Payload notifikasi per jenis. Semua varian yang terikat shift
// menyimpan field shiftId yang stabil untuk lookup dedup.
type ShiftReminderData struct {
	ShiftID     uint   `json:"shiftId"`
	Tanggal     string `json:"tanggal"`
	JamMulai    string `json:"jammulai"`
	JamSelesai  string `json:"jamselesai"`
	LokasiShift string `json:"lokasishift"`
}

type LateAttendanceData struct {
	ShiftID         uint   `json:"shiftId"`
	Tanggal         string `json:"tanggal"`
	JamMulaiShift   string `json:"jamMulaiShift"`
	DurasiTerlambat string `json:"durasiTerlambat"`
}

type PersonalReminderData struct {
	ShiftID         uint   `json:"shiftId"`
	ShiftTime       string `json:"shiftTime"`
	Location        string `json:"location"`
	ReminderMinutes int    `json:"reminderMinutes"`
}

type DailySummaryData struct {
	Tanggal     string `json:"tanggal"`
	JumlahShift int    `json:"jumlahShift"`
}

type CreateNotifikasiInput struct {
	UserID uint
	Jenis  string
	Judul  string
	Pesan  string
	Data   interface{}
}

// CreateNotification mencoba kirim lewat channel user lalu menyimpan
// baris outbox. Gagal kirim hanya dicatat di log; baris tetap disimpan
// supaya kunci dedup berdiri dan tidak terjadi spam retry.
func (u *NotifikasiUsecase) CreateNotification(input *CreateNotifikasiInput) (*model.Notifikasi, error) {
	if input == nil || input.UserID == 0 || input.Jenis == "" {
		return nil, ErrInputKosong
	}

	user, err := u.userRepo.GetByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserTidakDitemukan
		}
		return nil, fmt.Errorf("gagal mengambil user: %w", err)
	}

	payload, err := json.Marshal(input.Data)
	if err != nil {
		return nil, fmt.Errorf("gagal serialisasi payload notifikasi: %w", err)
	}

	notifikasi := &model.Notifikasi{
		UserID: input.UserID,
		Jenis:  input.Jenis,
		Judul:  input.Judul,
		Pesan:  input.Pesan,
		Data:   datatypes.JSON(payload),
	}

	sentVia, errSend := u.notifier.Send(user, input.Judul, input.Pesan)
	notifikasi.SentVia = sentVia
	if errSend != nil {
		log.Printf("[NOTIFIKASI] gagal kirim %s ke user %d: %v", input.Jenis, input.UserID, errSend)
	}

	if err := u.repo.Create(notifikasi); err != nil {
		return nil, fmt.Errorf("gagal menyimpan notifikasi: %w", err)
	}
	return notifikasi, nil
}

func (u *NotifikasiUsecase) CreateShiftReminderNotification(userID uint, shift *model.Shift) error {
	pesan := fmt.Sprintf(
		"Shift Anda akan dimulai dalam 1 jam.\n\n📅 Tanggal: %s\n🕒 Jam: %s - %s\n📍 Lokasi: %s",
		shift.Tanggal, shift.JamMulai, shift.JamSelesai, shift.LokasiShift,
	)
	_, err := u.CreateNotification(&CreateNotifikasiInput{
		UserID: userID,
		Jenis:  model.JenisReminderShift,
		Judul:  "⏰ Reminder Shift",
		Pesan:  pesan,
		Data: ShiftReminderData{
			ShiftID:     shift.ID,
			Tanggal:     shift.Tanggal,
			JamMulai:    shift.JamMulai,
			JamSelesai:  shift.JamSelesai,
			LokasiShift: shift.LokasiShift,
		},
	})
	return err
}

func (u *NotifikasiUsecase) CreateLateAttendanceNotification(userID uint, data *LateAttendanceData) error {
	pesan := fmt.Sprintf(
		"Anda belum melakukan absen masuk.\n\n📅 Tanggal: %s\n🕒 Jam mulai shift: %s\n⏱ Terlambat: %s\n\nSegera lakukan absen masuk!",
		data.Tanggal, data.JamMulaiShift, data.DurasiTerlambat,
	)
	_, err := u.CreateNotification(&CreateNotifikasiInput{
		UserID: userID,
		Jenis:  model.JenisAbsensiTerlambat,
		Judul:  "⚠️ Absensi Terlambat",
		Pesan:  pesan,
		Data:   data,
	})
	return err
}

func (u *NotifikasiUsecase) SendPersonalAttendanceReminder(userID uint, data *PersonalReminderData) error {
	pesan := fmt.Sprintf(
		"Jangan lupa absen masuk! Shift Anda dimulai dalam %d menit.\n\n🕒 Jadwal: %s\n📍 Lokasi: %s",
		data.ReminderMinutes, data.ShiftTime, data.Location,
	)
	_, err := u.CreateNotification(&CreateNotifikasiInput{
		UserID: userID,
		Jenis:  model.JenisPersonalReminderAbsensi,
		Judul:  "🔔 Reminder Absensi",
		Pesan:  pesan,
		Data:   data,
	})
	return err
}

// CreateDailySummaryNotification merangkum jadwal shift user hari ini.
func (u *NotifikasiUsecase) CreateDailySummaryNotification(user *model.User, shifts []model.Shift, tanggal string) error {
	if len(shifts) == 0 {
		return nil
	}

	lines := make([]string, 0, len(shifts))
	for _, s := range shifts {
		lines = append(lines, fmt.Sprintf("%s - %s (%s)", s.JamMulai, s.JamSelesai, s.LokasiShift))
	}

	pesan := fmt.Sprintf(
		"Selamat pagi! Berikut jadwal shift Anda hari ini:\n\n📅 Tanggal: %s\n🕒 Jadwal Shift (%d shift):\n%s\n\nSemoga hari Anda produktif! 💪",
		tanggal, len(shifts), strings.Join(lines, "\n"),
	)

	_, err := u.CreateNotification(&CreateNotifikasiInput{
		UserID: user.ID,
		Jenis:  model.JenisKegiatanHarian,
		Judul:  "🌅 Summary Aktivitas Harian",
		Pesan:  pesan,
		Data:   DailySummaryData{Tanggal: tanggal, JumlahShift: len(shifts)},
	})
	return err
}

func (u *NotifikasiUsecase) GetUserNotifications(userID uint, limit, offset int) ([]model.Notifikasi, error) {
	if userID == 0 {
		return nil, ErrInputKosong
	}
	if limit <= 0 {
		limit = 50
	}
	list, err := u.repo.GetByUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil notifikasi: %w", err)
	}
	return list, nil
}
