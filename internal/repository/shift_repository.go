package repository

import (
	"github.com/Christopher934/thesis-backend/internal/model"

	"gorm.io/gorm"
)

type ShiftRepository interface {
	GetByID(id uint) (*model.Shift, error)
	GetByUserAndDate(userID uint, tanggal string) (*model.Shift, error)
	GetAllByDate(tanggal string) ([]model.Shift, error)
	Create(shift *model.Shift) error
}

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db}
}

func (r *shiftRepository) GetByID(id uint) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.First(&shift, id).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// GetByUserAndDate mengambil shift pertama user di tanggal tersebut.
// Asumsi: satu shift per (user, tanggal); kalau ada lebih, ambil yang pertama.
func (r *shiftRepository) GetByUserAndDate(userID uint, tanggal string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.Where("user_id = ? AND tanggal = ?", userID, tanggal).First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// GetAllByDate mengambil semua shift di satu tanggal beserta user
// dan absensi pasangannya (untuk dashboard dan scheduler).
func (r *shiftRepository) GetAllByDate(tanggal string) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.Where("tanggal = ?", tanggal).
		Preload("User").
		Preload("Absensi").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) Create(shift *model.Shift) error {
	return r.db.Create(shift).Error
}
