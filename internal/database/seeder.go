package database

import (
	"log"
	"time"

	"github.com/Christopher934/thesis-backend/internal/model"

	"gorm.io/gorm"
)

// SeedAll mengisi data awal untuk development: satu admin, dua pegawai,
// dan shift hari ini + besok supaya scheduler langsung punya kandidat.
func SeedAll(db *gorm.DB) {
	chatID := "123456789"

	admin := model.User{
		NamaDepan:    "Administrator",
		NamaBelakang: "Utama",
		Email:        "admin@example.com",
		Role:         "ADMIN",
	}
	db.FirstOrCreate(&admin, model.User{Email: admin.Email})

	budi := model.User{
		NamaDepan:      "Budi",
		NamaBelakang:   "Santoso",
		Email:          "budi@example.com",
		Role:           "PEGAWAI",
		TelegramChatID: &chatID,
	}
	db.FirstOrCreate(&budi, model.User{Email: budi.Email})

	sari := model.User{
		NamaDepan:    "Sari",
		NamaBelakang: "Dewi",
		Email:        "sari@example.com",
		Role:         "PEGAWAI",
	}
	db.FirstOrCreate(&sari, model.User{Email: sari.Email})

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	shifts := []model.Shift{
		{UserID: budi.ID, Tanggal: today, JamMulai: "07:30", JamSelesai: "16:00", LokasiShift: "Gedung Utama"},
		{UserID: sari.ID, Tanggal: today, JamMulai: "14:00", JamSelesai: "22:00", LokasiShift: "Gedung Utama"},
		{UserID: budi.ID, Tanggal: tomorrow, JamMulai: "07:30", JamSelesai: "16:00", LokasiShift: "Gedung Utama"},
	}
	for _, s := range shifts {
		db.FirstOrCreate(&s, model.Shift{UserID: s.UserID, Tanggal: s.Tanggal})
	}

	log.Println("Seeding selesai!")
}
