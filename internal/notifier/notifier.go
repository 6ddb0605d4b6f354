package notifier

import (
	"errors"

	"github.com/Christopher934/thesis-backend/internal/model"
)

// Channel pengiriman yang dicatat di kolom sent_via.
const (
	ChannelTelegram = "TELEGRAM"
	ChannelEmail    = "EMAIL"
)

var ErrTidakAdaChannel = errors.New("user tidak memiliki channel notifikasi")

// Notifier mengirim satu pesan ke satu user lewat channel eksternal.
// Pengiriman boleh gagal tanpa menggagalkan batch pemanggil.
type Notifier interface {
	Send(user *model.User, judul, pesan string) (sentVia string, err error)
}

// MultiChannel memilih channel dari data user: Telegram kalau chat id
// terdaftar, fallback ke email.
type MultiChannel struct {
	Telegram TelegramAPI
	Email    EmailAPI
}

type TelegramAPI interface {
	Send(chatID, judul, pesan string) error
}

type EmailAPI interface {
	Send(to, judul, pesan string) error
}

func (m *MultiChannel) Send(user *model.User, judul, pesan string) (string, error) {
	if user == nil {
		return "", ErrTidakAdaChannel
	}
	if m.Telegram != nil && user.TelegramChatID != nil && *user.TelegramChatID != "" {
		return ChannelTelegram, m.Telegram.Send(*user.TelegramChatID, judul, pesan)
	}
	if m.Email != nil && user.Email != "" {
		return ChannelEmail, m.Email.Send(user.Email, judul, pesan)
	}
	return "", ErrTidakAdaChannel
}
