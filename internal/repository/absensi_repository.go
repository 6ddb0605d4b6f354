package repository

import (
	"time"

	"github.com/Christopher934/thesis-backend/internal/model"

	"gorm.io/gorm"
)

// AbsensiFilter dipakai query riwayat (user maupun admin).
// UserID 0 berarti tanpa scope user.
type AbsensiFilter struct {
	UserID    uint
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
	Limit     int
	Offset    int
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type AbsensiRepository interface {
	Create(absensi *model.Absensi) error
	Update(absensi *model.Absensi) error
	GetByID(id uint) (*model.Absensi, error)
	GetByUserAndShift(userID, shiftID uint) (*model.Absensi, error)
	Find(filter AbsensiFilter) ([]model.Absensi, error)
	FindForReport(start, end time.Time, userID uint) ([]model.Absensi, error)
	CountByStatus(start, end *time.Time, userID uint) ([]StatusCount, error)
}

type absensiRepository struct {
	db *gorm.DB
}

func NewAbsensiRepository(db *gorm.DB) AbsensiRepository {
	return &absensiRepository{db}
}

func (r *absensiRepository) Create(absensi *model.Absensi) error {
	return r.db.Create(absensi).Error
}

func (r *absensiRepository) Update(absensi *model.Absensi) error {
	return r.db.Save(absensi).Error
}

func (r *absensiRepository) GetByID(id uint) (*model.Absensi, error) {
	var absensi model.Absensi
	err := r.db.Preload("Shift").First(&absensi, id).Error
	if err != nil {
		return nil, err
	}
	return &absensi, nil
}

func (r *absensiRepository) GetByUserAndShift(userID, shiftID uint) (*model.Absensi, error) {
	var absensi model.Absensi
	err := r.db.Where("user_id = ? AND shift_id = ?", userID, shiftID).First(&absensi).Error
	if err != nil {
		return nil, err
	}
	return &absensi, nil
}

func (r *absensiRepository) Find(filter AbsensiFilter) ([]model.Absensi, error) {
	q := r.db.Preload("User").Preload("Shift")

	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var list []model.Absensi
	err := q.Order("created_at desc").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&list).Error
	return list, err
}

// FindForReport mengambil absensi dalam rentang waktu, diurutkan
// nama depan user lalu waktu dibuat (format laporan bulanan).
func (r *absensiRepository) FindForReport(start, end time.Time, userID uint) ([]model.Absensi, error) {
	q := r.db.
		Joins("JOIN users ON users.id = absensis.user_id").
		Where("absensis.created_at BETWEEN ? AND ?", start, end)

	if userID != 0 {
		q = q.Where("absensis.user_id = ?", userID)
	}

	var list []model.Absensi
	err := q.Order("users.nama_depan asc, absensis.created_at asc").
		Preload("User").
		Preload("Shift").
		Find(&list).Error
	return list, err
}

func (r *absensiRepository) CountByStatus(start, end *time.Time, userID uint) ([]StatusCount, error) {
	q := r.db.Model(&model.Absensi{}).
		Select("status, count(*) as count").
		Group("status")

	if start != nil && end != nil {
		q = q.Where("created_at >= ? AND created_at <= ?", start, end)
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	var counts []StatusCount
	err := q.Scan(&counts).Error
	return counts, err
}
