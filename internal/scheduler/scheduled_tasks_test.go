package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/Christopher934/thesis-backend/internal/model"
	"github.com/Christopher934/thesis-backend/internal/usecase"

	"gorm.io/gorm"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

type fakeShiftRepo struct {
	shifts []model.Shift
	err    error
}

func (f *fakeShiftRepo) GetByID(id uint) (*model.Shift, error) { return nil, gorm.ErrRecordNotFound }

func (f *fakeShiftRepo) GetByUserAndDate(userID uint, tanggal string) (*model.Shift, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeShiftRepo) GetAllByDate(tanggal string) ([]model.Shift, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Shift
	for _, s := range f.shifts {
		if s.Tanggal == tanggal {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) Create(shift *model.Shift) error {
	f.shifts = append(f.shifts, *shift)
	return nil
}

type dedupKey struct {
	userID  uint
	jenis   string
	shiftID uint
}

type fakeNotifikasiRepo struct {
	created    []model.Notifikasi
	existing   map[dedupKey]bool
	createErrs map[uint]error // per user id
}

func (f *fakeNotifikasiRepo) Create(n *model.Notifikasi) error {
	if err := f.createErrs[n.UserID]; err != nil {
		return err
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotifikasiRepo) GetByUser(userID uint, limit, offset int) ([]model.Notifikasi, error) {
	return f.created, nil
}

func (f *fakeNotifikasiRepo) HasShiftNotifSince(userID uint, jenis string, shiftID uint, since time.Time) (bool, error) {
	return f.existing[dedupKey{userID, jenis, shiftID}], nil
}

type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) GetByID(id uint) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetWithShiftsOnDate(tanggal string) ([]model.User, error) {
	return f.users, nil
}

type fakeNotifier struct{}

func (fakeNotifier) Send(user *model.User, judul, pesan string) (string, error) {
	return "TELEGRAM", nil
}

func shiftAt(id, userID uint, tanggal, jamMulai string) model.Shift {
	return model.Shift{
		Model:       gorm.Model{ID: id},
		UserID:      userID,
		Tanggal:     tanggal,
		JamMulai:    jamMulai,
		JamSelesai:  "16:00",
		LokasiShift: "Gedung A",
	}
}

func newTasks(shiftRepo *fakeShiftRepo, userRepo *fakeUserRepo, notifRepo *fakeNotifikasiRepo, now time.Time) *ScheduledTasks {
	uc := usecase.NewNotifikasiUsecase(notifRepo, userRepo, fakeNotifier{})
	return NewScheduledTasks(shiftRepo, userRepo, notifRepo, uc, fixedClock{now})
}

func chatUser(id uint, nama string) model.User {
	chatID := "12345"
	return model.User{Model: gorm.Model{ID: id}, NamaDepan: nama, TelegramChatID: &chatID}
}

// Jam 07:00: target reminder shift = 08:00 (now + 1 jam, toleransi 15 menit).
func TestSendShiftRemindersWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	shiftRepo := &fakeShiftRepo{shifts: []model.Shift{
		shiftAt(1, 1, "2026-03-10", "08:00"), // tepat di target
		shiftAt(2, 2, "2026-03-10", "08:15"), // tepi jendela, masih masuk
		shiftAt(3, 3, "2026-03-10", "08:16"), // di luar jendela
		shiftAt(4, 4, "2026-03-10", "07:45"), // tepi simetris (sudah lewat target)
		shiftAt(5, 5, "2026-03-10", "12:00"), // jauh di luar
	}}
	userRepo := &fakeUserRepo{users: []model.User{
		chatUser(1, "A"), chatUser(2, "B"), chatUser(3, "C"), chatUser(4, "D"), chatUser(5, "E"),
	}}
	notifRepo := &fakeNotifikasiRepo{existing: map[dedupKey]bool{}}

	newTasks(shiftRepo, userRepo, notifRepo, now).SendShiftReminders()

	if len(notifRepo.created) != 3 {
		t.Fatalf("harus 3 reminder (shift 1, 2, dan 4), got %d", len(notifRepo.created))
	}
	for _, n := range notifRepo.created {
		if n.Jenis != model.JenisReminderShift {
			t.Fatalf("jenis salah: %s", n.Jenis)
		}
	}
}

func TestSendShiftRemindersDedup(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	shiftRepo := &fakeShiftRepo{shifts: []model.Shift{shiftAt(1, 1, "2026-03-10", "08:00")}}
	userRepo := &fakeUserRepo{users: []model.User{chatUser(1, "A")}}
	notifRepo := &fakeNotifikasiRepo{existing: map[dedupKey]bool{
		{1, model.JenisReminderShift, 1}: true,
	}}

	newTasks(shiftRepo, userRepo, notifRepo, now).SendShiftReminders()

	if len(notifRepo.created) != 0 {
		t.Fatalf("notifikasi sudah ada hari ini, tidak boleh kirim lagi, got %d", len(notifRepo.created))
	}
}

func TestCheckLateAttendance(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	jamMasuk := time.Date(2026, 3, 10, 7, 35, 0, 0, time.Local)

	telat := shiftAt(1, 1, "2026-03-10", "07:30") // 30 menit, belum absen
	baruMulai := shiftAt(2, 2, "2026-03-10", "07:50") // 10 menit, masih toleransi
	sudahAbsen := shiftAt(3, 3, "2026-03-10", "07:00")
	sudahAbsen.Absensi = &model.Absensi{UserID: 3, ShiftID: 3, JamMasuk: &jamMasuk}
	belumMulai := shiftAt(4, 4, "2026-03-10", "09:00")

	shiftRepo := &fakeShiftRepo{shifts: []model.Shift{telat, baruMulai, sudahAbsen, belumMulai}}
	userRepo := &fakeUserRepo{users: []model.User{
		chatUser(1, "A"), chatUser(2, "B"), chatUser(3, "C"), chatUser(4, "D"),
	}}
	notifRepo := &fakeNotifikasiRepo{existing: map[dedupKey]bool{}}

	newTasks(shiftRepo, userRepo, notifRepo, now).CheckLateAttendance()

	if len(notifRepo.created) != 1 {
		t.Fatalf("hanya shift 1 yang terlambat >15 menit, got %d notifikasi", len(notifRepo.created))
	}
	n := notifRepo.created[0]
	if n.UserID != 1 || n.Jenis != model.JenisAbsensiTerlambat {
		t.Fatalf("notifikasi salah sasaran: user %d jenis %s", n.UserID, n.Jenis)
	}
}

func TestAttendanceRemindersSkipSudahAbsen(t *testing.T) {
	// Jam 07:30: target = 08:00 (now + 30 menit).
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.Local)
	jamMasuk := time.Date(2026, 3, 10, 7, 25, 0, 0, time.Local)

	belumAbsen := shiftAt(1, 1, "2026-03-10", "08:00")
	sudahAbsen := shiftAt(2, 2, "2026-03-10", "08:00")
	sudahAbsen.Absensi = &model.Absensi{UserID: 2, ShiftID: 2, JamMasuk: &jamMasuk}

	shiftRepo := &fakeShiftRepo{shifts: []model.Shift{belumAbsen, sudahAbsen}}
	userRepo := &fakeUserRepo{users: []model.User{chatUser(1, "A"), chatUser(2, "B")}}
	notifRepo := &fakeNotifikasiRepo{existing: map[dedupKey]bool{}}

	newTasks(shiftRepo, userRepo, notifRepo, now).SendAttendanceReminders()

	if len(notifRepo.created) != 1 {
		t.Fatalf("hanya user yang belum absen yang diingatkan, got %d", len(notifRepo.created))
	}
	if notifRepo.created[0].UserID != 1 {
		t.Fatalf("reminder salah sasaran: user %d", notifRepo.created[0].UserID)
	}
}

// Kedua job reminder 30 menit memakai jenis yang sama, jadi kunci dedup
// harus mencegah job toleransi-15 mengirim ulang kiriman job toleransi-10.
func TestAttendanceRemindersSharedDedupKey(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.Local)
	shiftRepo := &fakeShiftRepo{shifts: []model.Shift{shiftAt(1, 1, "2026-03-10", "08:00")}}
	userRepo := &fakeUserRepo{users: []model.User{chatUser(1, "A")}}
	notifRepo := &fakeNotifikasiRepo{existing: map[dedupKey]bool{}}

	tasks := newTasks(shiftRepo, userRepo, notifRepo, now)
	tasks.SendAttendanceReminders()
	if len(notifRepo.created) != 1 {
		t.Fatalf("job pertama harus mengirim, got %d", len(notifRepo.created))
	}

	// Simulasikan kunci dedup yang sudah berdiri, lalu job kedua jalan.
	notifRepo.existing[dedupKey{1, model.JenisPersonalReminderAbsensi, 1}] = true
	tasks.SendAttendanceReminders30Min()
	if len(notifRepo.created) != 1 {
		t.Fatalf("job kedua tidak boleh mengirim ulang, got %d", len(notifRepo.created))
	}
}

func TestDailySummary(t *testing.T) {
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.Local)

	budi := chatUser(1, "Budi")
	budi.Shifts = []model.Shift{shiftAt(1, 1, "2026-03-10", "07:30")}
	tanpaShift := chatUser(2, "Sari")

	userRepo := &fakeUserRepo{users: []model.User{budi, tanpaShift}}
	notifRepo := &fakeNotifikasiRepo{existing: map[dedupKey]bool{}}

	newTasks(&fakeShiftRepo{}, userRepo, notifRepo, now).SendDailyActivitySummary()

	if len(notifRepo.created) != 1 {
		t.Fatalf("summary hanya untuk user dengan shift, got %d", len(notifRepo.created))
	}
	if notifRepo.created[0].Jenis != model.JenisKegiatanHarian {
		t.Fatalf("jenis salah: %s", notifRepo.created[0].Jenis)
	}
}

// Gagal kirim untuk satu shift tidak boleh menghentikan shift berikutnya.
func TestJobLanjutSaatSatuShiftGagal(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	shiftRepo := &fakeShiftRepo{shifts: []model.Shift{
		shiftAt(1, 1, "2026-03-10", "08:00"),
		shiftAt(2, 2, "2026-03-10", "08:00"),
	}}
	userRepo := &fakeUserRepo{users: []model.User{chatUser(1, "A"), chatUser(2, "B")}}
	notifRepo := &fakeNotifikasiRepo{
		existing:   map[dedupKey]bool{},
		createErrs: map[uint]error{1: errors.New("store down")},
	}

	newTasks(shiftRepo, userRepo, notifRepo, now).SendShiftReminders()

	if len(notifRepo.created) != 1 {
		t.Fatalf("shift kedua harus tetap diproses, got %d", len(notifRepo.created))
	}
	if notifRepo.created[0].UserID != 2 {
		t.Fatalf("notifikasi yang berhasil harus untuk user 2, got %d", notifRepo.created[0].UserID)
	}
}
