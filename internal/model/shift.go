package model

import "gorm.io/gorm"

// Shift adalah jadwal kerja satu user di satu tanggal.
// Dibuat oleh modul penjadwalan (roster), di sini hanya dibaca.
type Shift struct {
	gorm.Model
	UserID      uint   `json:"user_id"`
	Tanggal     string `json:"tanggal"`     // Format YYYY-MM-DD
	JamMulai    string `json:"jammulai"`    // Format "07:30"
	JamSelesai  string `json:"jamselesai"`  // Format "16:00"
	LokasiShift string `json:"lokasishift"`

	// Relasi
	User    User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Absensi *Absensi `json:"absensi,omitempty" gorm:"foreignKey:ShiftID"`
}
