package repository

import (
	"github.com/Christopher934/thesis-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(id uint) (*model.User, error)
	// GetWithShiftsOnDate: user yang punya shift di tanggal tersebut
	// DAN punya alamat channel notifikasi (untuk summary harian).
	GetWithShiftsOnDate(tanggal string) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetWithShiftsOnDate(tanggal string) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Joins("JOIN shifts ON shifts.user_id = users.id AND shifts.tanggal = ? AND shifts.deleted_at IS NULL", tanggal).
		Where("users.telegram_chat_id IS NOT NULL").
		Distinct("users.*").
		Preload("Shifts", "tanggal = ?", tanggal).
		Find(&users).Error
	return users, err
}
