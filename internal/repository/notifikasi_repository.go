package repository

import (
	"time"

	"github.com/Christopher934/thesis-backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotifikasiRepository interface {
	Create(notifikasi *model.Notifikasi) error
	GetByUser(userID uint, limit, offset int) ([]model.Notifikasi, error)
	// HasShiftNotifSince adalah kunci dedup scheduler:
	// satu notifikasi per (user, jenis, hari, shiftId di payload).
	HasShiftNotifSince(userID uint, jenis string, shiftID uint, since time.Time) (bool, error)
}

type notifikasiRepository struct {
	db *gorm.DB
}

func NewNotifikasiRepository(db *gorm.DB) NotifikasiRepository {
	return &notifikasiRepository{db}
}

func (r *notifikasiRepository) Create(notifikasi *model.Notifikasi) error {
	return r.db.Create(notifikasi).Error
}

func (r *notifikasiRepository) GetByUser(userID uint, limit, offset int) ([]model.Notifikasi, error) {
	var list []model.Notifikasi
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *notifikasiRepository) HasShiftNotifSince(userID uint, jenis string, shiftID uint, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.Notifikasi{}).
		Where("user_id = ? AND jenis = ? AND created_at >= ?", userID, jenis, since).
		Where(datatypes.JSONQuery("data").Equals(shiftID, "shiftId")).
		Count(&count).Error
	return count > 0, err
}
