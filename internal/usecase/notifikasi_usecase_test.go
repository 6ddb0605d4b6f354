package usecase

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Christopher934/thesis-backend/internal/model"

	"gorm.io/gorm"
)

type fakeNotifikasiRepo struct {
	created   []model.Notifikasi
	createErr error
	existing  map[string]bool // key: jenis
}

func (f *fakeNotifikasiRepo) Create(n *model.Notifikasi) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotifikasiRepo) GetByUser(userID uint, limit, offset int) ([]model.Notifikasi, error) {
	return f.created, nil
}

func (f *fakeNotifikasiRepo) HasShiftNotifSince(userID uint, jenis string, shiftID uint, since time.Time) (bool, error) {
	return f.existing[jenis], nil
}

type fakeUserRepo struct {
	users map[uint]*model.User
}

func (f *fakeUserRepo) GetByID(id uint) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetWithShiftsOnDate(tanggal string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeNotifier struct {
	sent    []string // judul yang terkirim
	sendErr error
}

func (f *fakeNotifier) Send(user *model.User, judul, pesan string) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, judul)
	return "TELEGRAM", nil
}

func chatUser(id uint) *model.User {
	chatID := "12345"
	return &model.User{
		Model:          gorm.Model{ID: id},
		NamaDepan:      "Budi",
		NamaBelakang:   "Santoso",
		TelegramChatID: &chatID,
	}
}

func TestCreateNotificationMenyimpanPayloadShiftID(t *testing.T) {
	repo := &fakeNotifikasiRepo{}
	users := &fakeUserRepo{users: map[uint]*model.User{1: chatUser(1)}}
	sender := &fakeNotifier{}
	uc := NewNotifikasiUsecase(repo, users, sender)

	shift := &model.Shift{
		Model:       gorm.Model{ID: 42},
		UserID:      1,
		Tanggal:     "2026-03-10",
		JamMulai:    "08:00",
		JamSelesai:  "16:00",
		LokasiShift: "Gedung A",
	}
	if err := uc.CreateShiftReminderNotification(1, shift); err != nil {
		t.Fatalf("reminder gagal: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("harus ada satu notifikasi, got %d", len(repo.created))
	}
	n := repo.created[0]
	if n.Jenis != model.JenisReminderShift {
		t.Fatalf("jenis salah: %s", n.Jenis)
	}
	if n.SentVia != "TELEGRAM" {
		t.Fatalf("sent_via salah: %s", n.SentVia)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(n.Data, &payload); err != nil {
		t.Fatalf("payload bukan JSON valid: %v", err)
	}
	if payload["shiftId"] != float64(42) {
		t.Fatalf("payload harus punya shiftId 42, got %v", payload["shiftId"])
	}
}

func TestCreateNotificationGagalKirimTetapTersimpan(t *testing.T) {
	repo := &fakeNotifikasiRepo{}
	users := &fakeUserRepo{users: map[uint]*model.User{1: chatUser(1)}}
	sender := &fakeNotifier{sendErr: errors.New("channel unavailable")}
	uc := NewNotifikasiUsecase(repo, users, sender)

	_, err := uc.CreateNotification(&CreateNotifikasiInput{
		UserID: 1,
		Jenis:  model.JenisReminderShift,
		Judul:  "test",
		Pesan:  "test",
		Data:   ShiftReminderData{ShiftID: 42},
	})
	if err != nil {
		t.Fatalf("gagal kirim tidak boleh menggagalkan operasi: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("baris outbox harus tetap tersimpan, got %d", len(repo.created))
	}
}

func TestCreateNotificationUserTidakDitemukan(t *testing.T) {
	uc := NewNotifikasiUsecase(&fakeNotifikasiRepo{}, &fakeUserRepo{users: map[uint]*model.User{}}, &fakeNotifier{})

	_, err := uc.CreateNotification(&CreateNotifikasiInput{UserID: 9, Jenis: model.JenisReminderShift})
	if !errors.Is(err, ErrUserTidakDitemukan) {
		t.Fatalf("expected ErrUserTidakDitemukan, got %v", err)
	}
}

func TestDailySummaryPesan(t *testing.T) {
	repo := &fakeNotifikasiRepo{}
	user := chatUser(1)
	users := &fakeUserRepo{users: map[uint]*model.User{1: user}}
	uc := NewNotifikasiUsecase(repo, users, &fakeNotifier{})

	shifts := []model.Shift{
		{Model: gorm.Model{ID: 1}, JamMulai: "07:30", JamSelesai: "16:00", LokasiShift: "Gedung A"},
		{Model: gorm.Model{ID: 2}, JamMulai: "17:00", JamSelesai: "22:00", LokasiShift: "Gedung B"},
	}
	if err := uc.CreateDailySummaryNotification(user, shifts, "2026-03-10"); err != nil {
		t.Fatalf("summary gagal: %v", err)
	}

	n := repo.created[0]
	if n.Jenis != model.JenisKegiatanHarian {
		t.Fatalf("jenis salah: %s", n.Jenis)
	}
	if !strings.Contains(n.Pesan, "07:30 - 16:00 (Gedung A)") ||
		!strings.Contains(n.Pesan, "17:00 - 22:00 (Gedung B)") {
		t.Fatalf("pesan summary tidak memuat jadwal: %q", n.Pesan)
	}
	if !strings.Contains(n.Pesan, "(2 shift)") {
		t.Fatalf("pesan summary tidak memuat jumlah shift: %q", n.Pesan)
	}
}

func TestDailySummaryTanpaShift(t *testing.T) {
	repo := &fakeNotifikasiRepo{}
	user := chatUser(1)
	uc := NewNotifikasiUsecase(repo, &fakeUserRepo{users: map[uint]*model.User{1: user}}, &fakeNotifier{})

	if err := uc.CreateDailySummaryNotification(user, nil, "2026-03-10"); err != nil {
		t.Fatalf("summary tanpa shift tidak boleh error: %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("tidak boleh ada notifikasi tanpa shift, got %d", len(repo.created))
	}
}
