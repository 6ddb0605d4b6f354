package usecase

import "errors"

// Error bisnis yang dipetakan handler ke status HTTP.
var (
	ErrInputKosong           = errors.New("data yang dibutuhkan belum lengkap")
	ErrTidakAdaShift         = errors.New("tidak ada shift untuk hari ini")
	ErrSudahAbsenMasuk       = errors.New("sudah melakukan absen masuk untuk shift ini")
	ErrSudahAbsenKeluar      = errors.New("sudah melakukan absen keluar")
	ErrAbsensiTidakDitemukan = errors.New("data absensi tidak ditemukan")
	ErrUserTidakDitemukan    = errors.New("data user tidak ditemukan")
)
