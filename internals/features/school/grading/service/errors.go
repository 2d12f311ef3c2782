// file: internals/features/school/grading/service/errors.go
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Set error tertutup supaya pemanggil bisa branch per jenis, bukan parsing
// string pesan.
var (
	ErrMissingIdentifier = errors.New("identitas siswa/kelas/term/jadwal wajib diisi")
	ErrScoreRequired     = errors.New("nilai angka wajib diisi")
	ErrScoreOutOfRange   = errors.New("nilai angka harus di rentang 0-100")
	ErrRecordLocked      = errors.New("nilai sudah dikunci dan tidak bisa diubah lewat input nilai")
	ErrNothingToLock     = errors.New("belum ada nilai yang bisa dikunci untuk jadwal ini")
	ErrNothingToPublish  = errors.New("tidak ada nilai berstatus terkunci untuk diterbitkan")
	ErrAlreadyPublished  = errors.New("seluruh nilai class-term ini sudah diterbitkan")
	ErrRecordNotFound    = errors.New("data tidak ditemukan")
	ErrTermLocked        = errors.New("term sudah dikunci secara administratif; hapus nilai ditolak")
)

// AttendanceBelowThresholdError: kehadiran di bawah ambang input nilai.
// Membawa persentase aktual supaya pesan ke user bisa presisi.
type AttendanceBelowThresholdError struct {
	Percent float64
}

func (e *AttendanceBelowThresholdError) Error() string {
	return fmt.Sprintf("kehadiran %.0f%% di bawah minimum %.0f%% untuk input nilai", e.Percent, MinAttendanceForEntry)
}

// NotAllLockedError: publish class-term ditolak; membawa daftar mapel yang
// masih terbuka.
type NotAllLockedError struct {
	OpenSubjects []string
}

func (e *NotAllLockedError) Error() string {
	return "masih ada mapel yang belum dikunci: " + strings.Join(e.OpenSubjects, ", ")
}

// HTTPStatus memetakan error service ke status code untuk controller.
func HTTPStatus(err error) int {
	var attErr *AttendanceBelowThresholdError
	var openErr *NotAllLockedError
	switch {
	case errors.Is(err, ErrMissingIdentifier),
		errors.Is(err, ErrScoreRequired),
		errors.Is(err, ErrScoreOutOfRange):
		return fiber.StatusBadRequest
	case errors.As(err, &attErr),
		errors.As(err, &openErr),
		errors.Is(err, ErrRecordLocked),
		errors.Is(err, ErrNothingToLock),
		errors.Is(err, ErrNothingToPublish),
		errors.Is(err, ErrAlreadyPublished),
		errors.Is(err, ErrTermLocked):
		return fiber.StatusConflict
	case errors.Is(err, ErrRecordNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
