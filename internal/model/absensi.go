package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusHadir     = "HADIR"
	StatusTerlambat = "TERLAMBAT"
)

// Absensi adalah catatan kehadiran untuk satu shift.
// Dibuat saat absen masuk, diupdate sekali saat absen keluar,
// dan bisa dikoreksi admin lewat verifikasi.
type Absensi struct {
	gorm.Model
	UserID  uint `json:"user_id" gorm:"uniqueIndex:idx_absensi_user_shift"`
	ShiftID uint `json:"shift_id" gorm:"uniqueIndex:idx_absensi_user_shift"`

	JamMasuk  *time.Time `json:"jam_masuk"`
	JamKeluar *time.Time `json:"jam_keluar"`
	Status    string     `json:"status"` // HADIR / TERLAMBAT
	Lokasi    string     `json:"lokasi"`
	Foto      string     `json:"foto"`
	Catatan   string     `json:"catatan"`

	// Relasi
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Shift Shift `json:"shift,omitempty" gorm:"foreignKey:ShiftID"`
}
