package model

import "gorm.io/gorm"

type User struct {
	gorm.Model
	NamaDepan    string `json:"nama_depan"`
	NamaBelakang string `json:"nama_belakang"`
	Email        string `json:"email"`
	Role         string `json:"role" gorm:"default:PEGAWAI"` // PEGAWAI / ADMIN

	// Alamat channel notifikasi eksternal (opsional, diisi saat user daftar bot)
	TelegramChatID *string `json:"telegram_chat_id"`

	// Relasi
	Shifts  []Shift   `json:"shifts,omitempty" gorm:"foreignKey:UserID"`
	Absensi []Absensi `json:"absensi,omitempty" gorm:"foreignKey:UserID"`
}

// NamaLengkap untuk isi pesan notifikasi
func (u *User) NamaLengkap() string {
	if u.NamaBelakang == "" {
		return u.NamaDepan
	}
	return u.NamaDepan + " " + u.NamaBelakang
}
