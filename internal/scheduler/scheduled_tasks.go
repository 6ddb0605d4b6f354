package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/Christopher934/thesis-backend/internal/clock"
	"github.com/Christopher934/thesis-backend/internal/model"
	"github.com/Christopher934/thesis-backend/internal/repository"
	"github.com/Christopher934/thesis-backend/internal/usecase"

	"github.com/robfig/cron/v3"
)

// ScheduledTasks berisi job periodik pengiriman notifikasi.
// Pola semua job sama: scan shift hari ini -> filter jendela waktu ->
// buang yang sudah pernah dinotifikasi (per jenis + hari + shift) ->
// kirim dan catat. Error per shift hanya dicatat, batch jalan terus.
type ScheduledTasks struct {
	shiftRepo      repository.ShiftRepository
	userRepo       repository.UserRepository
	notifikasiRepo repository.NotifikasiRepository
	notifikasi     *usecase.NotifikasiUsecase
	clock          clock.Clock
}

func NewScheduledTasks(
	shiftRepo repository.ShiftRepository,
	userRepo repository.UserRepository,
	notifikasiRepo repository.NotifikasiRepository,
	notifikasi *usecase.NotifikasiUsecase,
	clk clock.Clock,
) *ScheduledTasks {
	return &ScheduledTasks{
		shiftRepo:      shiftRepo,
		userRepo:       userRepo,
		notifikasiRepo: notifikasiRepo,
		notifikasi:     notifikasi,
		clock:          clk,
	}
}

// Start mendaftarkan semua job ke cron dan menjalankannya.
// Firing yang overlap tidak saling mengunci; dedup mengandalkan
// query-before-insert di masing-masing job.
func (s *ScheduledTasks) Start() (*cron.Cron, error) {
	c := cron.New()

	jobs := []struct {
		spec string
		fn   func()
	}{
		{"*/15 * * * *", s.SendShiftReminders},          // reminder shift H-1 jam
		{"0 8 * * *", s.CheckLateAttendance},            // cek absensi terlambat
		{"0 6 * * *", s.SendDailyActivitySummary},       // summary harian
		{"*/10 * * * *", s.SendAttendanceReminders},     // reminder absen H-30 menit (toleransi 10)
		{"*/15 * * * *", s.SendAttendanceReminders30Min}, // reminder absen H-30 menit (toleransi 15)
	}
	for _, j := range jobs {
		if _, err := c.AddFunc(j.spec, j.fn); err != nil {
			return nil, fmt.Errorf("gagal mendaftarkan job %q: %w", j.spec, err)
		}
	}

	c.Start()
	log.Printf("[SCHEDULER] %d job notifikasi berjalan", len(jobs))
	return c, nil
}

// SendShiftReminders: shift yang mulai sekitar 1 jam lagi (toleransi 15 menit).
func (s *ScheduledTasks) SendShiftReminders() {
	log.Printf("[SCHEDULER] cek shift yang akan dimulai dalam 1 jam...")

	now := s.clock.Now()
	shifts, err := s.shiftRepo.GetAllByDate(now.Format("2006-01-02"))
	if err != nil {
		log.Printf("[SCHEDULER] gagal mengambil shift hari ini: %v", err)
		return
	}

	target := now.Add(time.Hour)
	processed := 0
	for i := range shifts {
		shift := &shifts[i]
		if !withinWindow(shift.JamMulai, target, 15) {
			continue
		}
		processed++

		if s.alreadyNotified(shift, model.JenisReminderShift, now) {
			continue
		}
		if err := s.notifikasi.CreateShiftReminderNotification(shift.UserID, shift); err != nil {
			log.Printf("[SCHEDULER] gagal kirim reminder shift %d: %v", shift.ID, err)
			continue
		}
		log.Printf("[SCHEDULER] reminder shift terkirim ke %s untuk shift jam %s",
			shift.User.NamaLengkap(), shift.JamMulai)
	}
	log.Printf("[SCHEDULER] selesai memproses %d shift mendatang", processed)
}

// CheckLateAttendance: shift yang sudah lewat jam mulai tapi belum ada
// absen masuk, dengan keterlambatan lebih dari 15 menit.
func (s *ScheduledTasks) CheckLateAttendance() {
	log.Printf("[SCHEDULER] cek absensi terlambat...")

	now := s.clock.Now()
	shifts, err := s.shiftRepo.GetAllByDate(now.Format("2006-01-02"))
	if err != nil {
		log.Printf("[SCHEDULER] gagal mengambil shift hari ini: %v", err)
		return
	}

	nowMinutes := minutesOfDay(now)
	processed := 0
	for i := range shifts {
		shift := &shifts[i]

		shiftMinutes, ok := parseMinutesOfDay(shift.JamMulai)
		if !ok || shiftMinutes >= nowMinutes {
			continue
		}
		if hasCheckedIn(shift) {
			continue
		}
		processed++

		shiftStart := combineWithDate(now, shift.JamMulai)
		lateDuration := int(now.Sub(shiftStart).Minutes())
		if lateDuration <= 15 {
			continue
		}

		if s.alreadyNotified(shift, model.JenisAbsensiTerlambat, now) {
			continue
		}
		err := s.notifikasi.CreateLateAttendanceNotification(shift.UserID, &usecase.LateAttendanceData{
			ShiftID:         shift.ID,
			Tanggal:         shift.Tanggal,
			JamMulaiShift:   shift.JamMulai,
			DurasiTerlambat: fmt.Sprintf("%d menit", lateDuration),
		})
		if err != nil {
			log.Printf("[SCHEDULER] gagal kirim notifikasi terlambat shift %d: %v", shift.ID, err)
			continue
		}
		log.Printf("[SCHEDULER] notifikasi terlambat terkirim ke %s (terlambat %d menit)",
			shift.User.NamaLengkap(), lateDuration)
	}
	log.Printf("[SCHEDULER] selesai memproses %d kasus terlambat", processed)
}

// SendDailyActivitySummary: summary jadwal ke semua user yang punya
// shift hari ini dan punya channel notifikasi. Tidak ada query dedup;
// idempotensinya bergantung pada trigger sekali sehari.
func (s *ScheduledTasks) SendDailyActivitySummary() {
	log.Printf("[SCHEDULER] kirim summary aktivitas harian...")

	now := s.clock.Now()
	today := now.Format("2006-01-02")
	users, err := s.userRepo.GetWithShiftsOnDate(today)
	if err != nil {
		log.Printf("[SCHEDULER] gagal mengambil user dengan shift hari ini: %v", err)
		return
	}

	for i := range users {
		user := &users[i]
		if err := s.notifikasi.CreateDailySummaryNotification(user, user.Shifts, today); err != nil {
			log.Printf("[SCHEDULER] gagal kirim summary ke user %d: %v", user.ID, err)
			continue
		}
		log.Printf("[SCHEDULER] summary harian terkirim ke %s", user.NamaLengkap())
	}
	log.Printf("[SCHEDULER] summary harian selesai untuk %d user", len(users))
}

// SendAttendanceReminders: reminder absen 30 menit sebelum shift,
// toleransi 10 menit, hanya untuk yang belum absen masuk.
func (s *ScheduledTasks) SendAttendanceReminders() {
	s.sendAttendanceReminders(10)
}

// SendAttendanceReminders30Min: jendela yang sama dengan toleransi 15
// menit sebagai jaring lebar; jenis notifikasinya sama sehingga kunci
// dedup mencegah kiriman ganda antar kedua job.
func (s *ScheduledTasks) SendAttendanceReminders30Min() {
	s.sendAttendanceReminders(15)
}

func (s *ScheduledTasks) sendAttendanceReminders(toleransi int) {
	log.Printf("[SCHEDULER] cek reminder absensi (toleransi %d menit)...", toleransi)

	now := s.clock.Now()
	shifts, err := s.shiftRepo.GetAllByDate(now.Format("2006-01-02"))
	if err != nil {
		log.Printf("[SCHEDULER] gagal mengambil shift hari ini: %v", err)
		return
	}

	target := now.Add(30 * time.Minute)
	processed := 0
	for i := range shifts {
		shift := &shifts[i]
		if !withinWindow(shift.JamMulai, target, toleransi) {
			continue
		}
		if hasCheckedIn(shift) {
			continue
		}
		processed++

		if s.alreadyNotified(shift, model.JenisPersonalReminderAbsensi, now) {
			continue
		}
		err := s.notifikasi.SendPersonalAttendanceReminder(shift.UserID, &usecase.PersonalReminderData{
			ShiftID:         shift.ID,
			ShiftTime:       shift.JamMulai + " - " + shift.JamSelesai,
			Location:        shift.LokasiShift,
			ReminderMinutes: 30,
		})
		if err != nil {
			log.Printf("[SCHEDULER] gagal kirim reminder absensi shift %d: %v", shift.ID, err)
			continue
		}
		log.Printf("[SCHEDULER] reminder absensi terkirim ke %s untuk shift jam %s",
			shift.User.NamaLengkap(), shift.JamMulai)
	}
	log.Printf("[SCHEDULER] selesai memproses %d shift untuk reminder absensi", processed)
}

// alreadyNotified cek kunci dedup (user, jenis, hari ini, shiftId).
// Error query diperlakukan seperti "sudah ada" supaya job tidak
// mengirim ganda saat store bermasalah.
func (s *ScheduledTasks) alreadyNotified(shift *model.Shift, jenis string, now time.Time) bool {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	exists, err := s.notifikasiRepo.HasShiftNotifSince(shift.UserID, jenis, shift.ID, todayStart)
	if err != nil {
		log.Printf("[SCHEDULER] gagal cek dedup %s shift %d: %v", jenis, shift.ID, err)
		return true
	}
	return exists
}

func hasCheckedIn(shift *model.Shift) bool {
	return shift.Absensi != nil && shift.Absensi.JamMasuk != nil
}

// withinWindow membandingkan menit-sejak-tengah-malam jam mulai shift
// dengan waktu target. Selisih absolut, jadi jendelanya simetris:
// shift yang baru saja lewat di tepi jendela juga ikut cocok.
func withinWindow(jamMulai string, target time.Time, toleransi int) bool {
	shiftMinutes, ok := parseMinutesOfDay(jamMulai)
	if !ok {
		return false
	}
	diff := shiftMinutes - minutesOfDay(target)
	if diff < 0 {
		diff = -diff
	}
	return diff <= toleransi
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func parseMinutesOfDay(jam string) (int, bool) {
	t, err := time.Parse("15:04", jam)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func combineWithDate(date time.Time, jam string) time.Time {
	t, err := time.Parse("15:04", jam)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
