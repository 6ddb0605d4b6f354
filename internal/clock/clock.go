package clock

import "time"

// Clock dipisah sebagai dependency agar logika "hari ini" bisa diuji
// dengan waktu tetap, bukan jam sistem.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func New() Clock { return realClock{} }
