package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Jenis notifikasi yang dikirim scheduler
const (
	JenisReminderShift           = "REMINDER_SHIFT"
	JenisAbsensiTerlambat        = "ABSENSI_TERLAMBAT"
	JenisKegiatanHarian          = "KEGIATAN_HARIAN"
	JenisPersonalReminderAbsensi = "PERSONAL_REMINDER_ABSENSI"
)

// Notifikasi bersifat append-only: sekaligus jadi log outbox
// dan index dedup (dicek per user + jenis + hari + shiftId di payload).
type Notifikasi struct {
	gorm.Model
	UserID  uint           `json:"user_id"`
	Jenis   string         `json:"jenis"`
	Judul   string         `json:"judul"`
	Pesan   string         `json:"pesan"`
	Data    datatypes.JSON `json:"data"`
	SentVia string         `json:"sent_via"` // TELEGRAM / EMAIL

	// Relasi
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
