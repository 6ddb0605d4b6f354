package usecase

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Christopher934/thesis-backend/internal/clock"
	"github.com/Christopher934/thesis-backend/internal/model"
	"github.com/Christopher934/thesis-backend/internal/repository"

	"gorm.io/gorm"
)

// Batas toleransi keterlambatan absen masuk (menit).
const toleransiTerlambatMenit = 15

type AbsensiUsecase struct {
	absensiRepo repository.AbsensiRepository
	shiftRepo   repository.ShiftRepository
	clock       clock.Clock
}

func NewAbsensiUsecase(absensiRepo repository.AbsensiRepository, shiftRepo repository.ShiftRepository, clk clock.Clock) *AbsensiUsecase {
	return &AbsensiUsecase{absensiRepo: absensiRepo, shiftRepo: shiftRepo, clock: clk}
}

type CreateAbsensiInput struct {
	Lokasi  string `json:"lokasi" validate:"required"`
	Foto    string `json:"foto"`
	Catatan string `json:"catatan"`
}

// UpdateAbsensiInput: field koreksi yang boleh ditimpa saat absen keluar.
// Pointer nil berarti field tidak disentuh.
type UpdateAbsensiInput struct {
	Lokasi  *string `json:"lokasi"`
	Foto    *string `json:"foto"`
	Catatan *string `json:"catatan"`
}

// VerifikasiInput: patch koreksi admin. Field Verified tidak disimpan;
// kalau true, status dipaksa HADIR dan catatan ditandai.
type VerifikasiInput struct {
	Verified bool    `json:"verified"`
	Status   *string `json:"status"`
	Lokasi   *string `json:"lokasi"`
	Foto     *string `json:"foto"`
	Catatan  *string `json:"catatan"`
}

type AbsensiQuery struct {
	UserID    uint
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Status    string
	Limit     int
	Offset    int
}

type TodayAttendance struct {
	Shift   *model.Shift   `json:"shift"`
	Absensi *model.Absensi `json:"absensi"`
}

type StatusPercentage struct {
	Status     string `json:"status"`
	Count      int64  `json:"count"`
	Percentage string `json:"percentage"`
}

type AttendanceStats struct {
	Stats      []repository.StatusCount `json:"stats"`
	Total      int64                    `json:"total"`
	Percentage []StatusPercentage       `json:"percentage"`
}

type DashboardUser struct {
	ID           uint   `json:"id"`
	NamaDepan    string `json:"nama_depan"`
	NamaBelakang string `json:"nama_belakang"`
}

type AdminDashboardStats struct {
	TodayStats        []repository.StatusCount `json:"today_stats"`
	UsersNotCheckedIn []DashboardUser          `json:"users_not_checked_in"`
	TotalShiftsToday  int                      `json:"total_shifts_today"`
}

type UserDashboardStats struct {
	MonthlyStats []repository.StatusCount `json:"monthly_stats"`
}

type MonthlyReportQuery struct {
	Year   int
	Month  int
	UserID uint
}

type StatsQuery struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	UserID    uint
}

// AbsenMasuk mencatat check-in terhadap shift user hari ini.
func (u *AbsensiUsecase) AbsenMasuk(userID uint, input *CreateAbsensiInput) (*model.Absensi, error) {
	if userID == 0 || input == nil {
		return nil, ErrInputKosong
	}

	now := u.clock.Now()
	today := now.Format("2006-01-02")

	// 1. Cari shift user untuk hari ini
	shift, err := u.shiftRepo.GetByUserAndDate(userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTidakAdaShift
		}
		return nil, fmt.Errorf("gagal mengambil shift: %w", err)
	}

	// 2. Cek double check-in untuk shift yang sama
	existing, err := u.absensiRepo.GetByUserAndShift(userID, shift.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("gagal cek absensi: %w", err)
	}
	if existing != nil {
		return nil, ErrSudahAbsenMasuk
	}

	// 3. Tentukan status dari jam mulai shift
	jamMasuk := now
	absensi := &model.Absensi{
		UserID:   userID,
		ShiftID:  shift.ID,
		JamMasuk: &jamMasuk,
		Status:   determineStatus(shift.JamMulai, now),
		Lokasi:   input.Lokasi,
		Foto:     input.Foto,
		Catatan:  input.Catatan,
	}

	if err := u.absensiRepo.Create(absensi); err != nil {
		return nil, fmt.Errorf("gagal menyimpan absensi: %w", err)
	}

	absensi.Shift = *shift
	return absensi, nil
}

// AbsenKeluar menutup absensi: set jam keluar + merge field koreksi.
func (u *AbsensiUsecase) AbsenKeluar(absensiID uint, input *UpdateAbsensiInput) (*model.Absensi, error) {
	if absensiID == 0 || input == nil {
		return nil, ErrInputKosong
	}

	absensi, err := u.absensiRepo.GetByID(absensiID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAbsensiTidakDitemukan
		}
		return nil, fmt.Errorf("gagal mengambil absensi: %w", err)
	}

	if absensi.JamKeluar != nil {
		return nil, ErrSudahAbsenKeluar
	}

	now := u.clock.Now()
	absensi.JamKeluar = &now
	if input.Lokasi != nil {
		absensi.Lokasi = *input.Lokasi
	}
	if input.Foto != nil {
		absensi.Foto = *input.Foto
	}
	if input.Catatan != nil {
		absensi.Catatan = *input.Catatan
	}

	if err := u.absensiRepo.Update(absensi); err != nil {
		return nil, fmt.Errorf("gagal menyimpan absen keluar: %w", err)
	}
	return absensi, nil
}

func (u *AbsensiUsecase) GetUserAttendance(userID uint, q *AbsensiQuery) ([]model.Absensi, error) {
	if userID == 0 {
		return nil, ErrInputKosong
	}
	filter := u.buildFilter(q)
	filter.UserID = userID
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	list, err := u.absensiRepo.Find(filter)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil riwayat absensi: %w", err)
	}
	return list, nil
}

func (u *AbsensiUsecase) GetAllAttendance(q *AbsensiQuery) ([]model.Absensi, error) {
	filter := u.buildFilter(q)
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	list, err := u.absensiRepo.Find(filter)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil data absensi: %w", err)
	}
	return list, nil
}

// GetTodayAttendance mengembalikan pasangan (shift, absensi) hari ini.
// Kalau tidak ada shift, dua-duanya nil tanpa error.
func (u *AbsensiUsecase) GetTodayAttendance(userID uint) (*TodayAttendance, error) {
	if userID == 0 {
		return nil, ErrInputKosong
	}

	today := u.clock.Now().Format("2006-01-02")
	shift, err := u.shiftRepo.GetByUserAndDate(userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &TodayAttendance{}, nil
		}
		return nil, fmt.Errorf("gagal mengambil shift: %w", err)
	}

	absensi, err := u.absensiRepo.GetByUserAndShift(userID, shift.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("gagal mengambil absensi: %w", err)
	}

	return &TodayAttendance{Shift: shift, Absensi: absensi}, nil
}

func (u *AbsensiUsecase) GetAttendanceStats(q *StatsQuery) (*AttendanceStats, error) {
	var start, end *time.Time
	if q != nil && q.StartDate != "" && q.EndDate != "" {
		s, errS := parseTanggal(q.StartDate, u.clock.Now().Location())
		e, errE := parseTanggal(q.EndDate, u.clock.Now().Location())
		if errS != nil || errE != nil {
			return nil, ErrInputKosong
		}
		start, end = &s, &e
	}

	var userID uint
	if q != nil {
		userID = q.UserID
	}

	counts, err := u.absensiRepo.CountByStatus(start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("gagal menghitung statistik: %w", err)
	}

	return buildStats(counts), nil
}

// buildStats menghitung total dan persentase per status (2 desimal).
// Total nol tidak boleh menghasilkan NaN: persentase jadi "0.00".
func buildStats(counts []repository.StatusCount) *AttendanceStats {
	var total int64
	for _, c := range counts {
		total += c.Count
	}

	percentage := make([]StatusPercentage, 0, len(counts))
	for _, c := range counts {
		p := "0.00"
		if total > 0 {
			p = fmt.Sprintf("%.2f", float64(c.Count)*100/float64(total))
		}
		percentage = append(percentage, StatusPercentage{
			Status:     c.Status,
			Count:      c.Count,
			Percentage: p,
		})
	}

	return &AttendanceStats{Stats: counts, Total: total, Percentage: percentage}
}

// GetAdminDashboardStats: statistik hari ini + daftar user yang punya
// shift hari ini tapi belum absen (anti-join, dideduplikasi per user).
func (u *AbsensiUsecase) GetAdminDashboardStats() (*AdminDashboardStats, error) {
	now := u.clock.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1).Add(-time.Second)

	todayStats, err := u.absensiRepo.CountByStatus(&todayStart, &todayEnd, 0)
	if err != nil {
		return nil, fmt.Errorf("gagal menghitung statistik hari ini: %w", err)
	}

	shifts, err := u.shiftRepo.GetAllByDate(now.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil shift hari ini: %w", err)
	}

	seen := make(map[uint]bool)
	notCheckedIn := []DashboardUser{}
	for i := range shifts {
		shift := &shifts[i]
		if shift.Absensi != nil {
			continue
		}
		if seen[shift.UserID] {
			continue
		}
		seen[shift.UserID] = true
		notCheckedIn = append(notCheckedIn, DashboardUser{
			ID:           shift.UserID,
			NamaDepan:    shift.User.NamaDepan,
			NamaBelakang: shift.User.NamaBelakang,
		})
	}

	return &AdminDashboardStats{
		TodayStats:        todayStats,
		UsersNotCheckedIn: notCheckedIn,
		TotalShiftsToday:  len(shifts),
	}, nil
}

func (u *AbsensiUsecase) GetUserDashboardStats(userID uint) (*UserDashboardStats, error) {
	if userID == 0 {
		return nil, ErrInputKosong
	}

	now := u.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	counts, err := u.absensiRepo.CountByStatus(&monthStart, &monthEnd, userID)
	if err != nil {
		return nil, fmt.Errorf("gagal menghitung statistik bulanan: %w", err)
	}
	return &UserDashboardStats{MonthlyStats: counts}, nil
}

// VerifyAttendance: jalur koreksi manual admin, melewati aturan
// keterlambatan secara sengaja.
func (u *AbsensiUsecase) VerifyAttendance(absensiID uint, patch *VerifikasiInput) (*model.Absensi, error) {
	if absensiID == 0 || patch == nil {
		return nil, ErrInputKosong
	}

	absensi, err := u.absensiRepo.GetByID(absensiID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAbsensiTidakDitemukan
		}
		return nil, fmt.Errorf("gagal mengambil absensi: %w", err)
	}

	if patch.Status != nil {
		absensi.Status = *patch.Status
	}
	if patch.Lokasi != nil {
		absensi.Lokasi = *patch.Lokasi
	}
	if patch.Foto != nil {
		absensi.Foto = *patch.Foto
	}
	if patch.Catatan != nil {
		absensi.Catatan = *patch.Catatan
	}

	if patch.Verified {
		absensi.Status = model.StatusHadir
		if patch.Catatan != nil && *patch.Catatan != "" {
			absensi.Catatan = *patch.Catatan + " - Verified by admin"
		} else {
			absensi.Catatan = "Verified by admin"
		}
	}

	if err := u.absensiRepo.Update(absensi); err != nil {
		return nil, fmt.Errorf("gagal menyimpan verifikasi: %w", err)
	}
	return absensi, nil
}

// GetMonthlyReport mengambil semua absensi dalam rentang
// [tanggal 1 00:00:00, tanggal terakhir 23:59:59] bulan tersebut.
func (u *AbsensiUsecase) GetMonthlyReport(q *MonthlyReportQuery) ([]model.Absensi, error) {
	now := u.clock.Now()

	year, month := now.Year(), int(now.Month())
	var userID uint
	if q != nil {
		if q.Year != 0 {
			year = q.Year
		}
		if q.Month != 0 {
			month = q.Month
		}
		userID = q.UserID
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	list, err := u.absensiRepo.FindForReport(start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil laporan bulanan: %w", err)
	}
	return list, nil
}

func (u *AbsensiUsecase) buildFilter(q *AbsensiQuery) repository.AbsensiFilter {
	filter := repository.AbsensiFilter{}
	if q == nil {
		return filter
	}

	filter.UserID = q.UserID
	filter.Status = q.Status
	filter.Limit = q.Limit
	filter.Offset = q.Offset

	if q.StartDate != "" && q.EndDate != "" {
		loc := u.clock.Now().Location()
		if start, err := parseTanggal(q.StartDate, loc); err == nil {
			if end, err := parseTanggal(q.EndDate, loc); err == nil {
				filter.StartDate = &start
				filter.EndDate = &end
			}
		}
	}
	return filter
}

func parseTanggal(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}

// determineStatus menerapkan aturan keterlambatan: selisih menit
// (dibulatkan ke bawah) dari jam mulai shift, <= 15 masih HADIR.
// Absen sebelum jam mulai menghasilkan selisih negatif dan tetap HADIR.
func determineStatus(jamMulai string, actual time.Time) string {
	mulai, err := time.Parse("15:04", jamMulai)
	if err != nil {
		return model.StatusHadir
	}

	shiftStart := time.Date(actual.Year(), actual.Month(), actual.Day(), mulai.Hour(), mulai.Minute(), 0, 0, actual.Location())
	minutesLate := int(math.Floor(actual.Sub(shiftStart).Minutes()))

	if minutesLate <= toleransiTerlambatMenit {
		return model.StatusHadir
	}
	return model.StatusTerlambat
}
