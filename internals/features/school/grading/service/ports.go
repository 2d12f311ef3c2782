// file: internals/features/school/grading/service/ports.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	attendanceService "schoolku_backend/internals/features/school/attendance/service"
	model "schoolku_backend/internals/features/school/grading/model"
)

// ScheduleSlot = proyeksi ringan satu slot jadwal (mapel) untuk grading.
type ScheduleSlot struct {
	ID          uuid.UUID `json:"id"`
	SubjectName string    `json:"subject_name"`
}

/* ============================================
   Collaborator interfaces (supaya gampang di-mock)
============================================ */

// RosterProvider: roster resmi siswa ber-status enrolment Active.
type RosterProvider interface {
	ActiveStudentIDs(ctx context.Context, schoolID, classID, termID uuid.UUID) ([]uuid.UUID, error)
}

// ScheduleProvider: slot jadwal aktif satu class-term.
type ScheduleProvider interface {
	ActiveSlots(ctx context.Context, schoolID, classID, termID uuid.UUID) ([]ScheduleSlot, error)
}

// AttendanceSource: rekap kehadiran on-demand (tidak di-cache di sini).
type AttendanceSource interface {
	Summarize(ctx context.Context, schoolID, studentID, classID, termID uuid.UUID) (attendanceService.AttendanceSummary, error)
}

// TermGuard: kunci administratif level term (kolaborator eksternal;
// dicek sebelum hapus GradeRecord).
type TermGuard interface {
	IsTermLocked(ctx context.Context, schoolID, termID uuid.UUID) (bool, error)
}

// GradeStore: persistence GradeRecord. Get mengembalikan (nil, nil) saat
// record tidak ada.
type GradeStore interface {
	Get(ctx context.Context, schoolID, studentID, classID, termID, scheduleID uuid.UUID) (*model.GradeRecordModel, error)
	GetByID(ctx context.Context, schoolID, recordID uuid.UUID) (*model.GradeRecordModel, error)
	Upsert(ctx context.Context, rec *model.GradeRecordModel) error
	CountBySlot(ctx context.Context, schoolID, classID, termID, scheduleID uuid.UUID) (int64, error)
	ListBySlots(ctx context.Context, schoolID, classID, termID uuid.UUID, scheduleIDs []uuid.UUID) ([]model.GradeRecordModel, error)
	ListByStudent(ctx context.Context, schoolID, studentID, classID, termID uuid.UUID) ([]model.GradeRecordModel, error)
	// MarkLocked: draft → locked untuk satu slot; mengembalikan jumlah baris.
	MarkLocked(ctx context.Context, schoolID, classID, termID, scheduleID uuid.UUID, at time.Time, by *uuid.UUID) (int64, error)
	// MarkPublished: locked → published untuk slot-slot yang diberikan.
	MarkPublished(ctx context.Context, schoolID, classID, termID uuid.UUID, scheduleIDs []uuid.UUID, at time.Time, by *uuid.UUID) (int64, error)
	SoftDelete(ctx context.Context, schoolID, recordID uuid.UUID) (bool, error)
}

// ReportCardStore: persistence ReportCard (upsert keyed student+class+term).
type ReportCardStore interface {
	GetByKey(ctx context.Context, schoolID, studentID, classID, termID uuid.UUID) (*model.ReportCardModel, error)
	GetByID(ctx context.Context, schoolID, cardID uuid.UUID) (*model.ReportCardModel, error)
	Upsert(ctx context.Context, card *model.ReportCardModel) error
	Save(ctx context.Context, card *model.ReportCardModel) error
	ListPublishedByStudent(ctx context.Context, schoolID, studentID uuid.UUID) ([]model.ReportCardModel, error)
	Delete(ctx context.Context, schoolID, cardID uuid.UUID) (bool, error)
}

/* ============================================
   Service object
============================================ */

// GradingService = mesin lifecycle nilai + rapor. Semua kolaborator
// di-inject supaya test bisa pakai fake tanpa state global.
type GradingService struct {
	Roster     RosterProvider
	Schedule   ScheduleProvider
	Attendance AttendanceSource
	Terms      TermGuard
	Grades     GradeStore
	Reports    ReportCardStore

	// Jumlah worker fan-out remediasi saat lock; <=0 berarti default.
	LockWorkers int
}

const defaultLockWorkers = 8

func NewGradingService(
	roster RosterProvider,
	schedule ScheduleProvider,
	attendance AttendanceSource,
	terms TermGuard,
	grades GradeStore,
	reports ReportCardStore,
) *GradingService {
	return &GradingService{
		Roster:      roster,
		Schedule:    schedule,
		Attendance:  attendance,
		Terms:       terms,
		Grades:      grades,
		Reports:     reports,
		LockWorkers: defaultLockWorkers,
	}
}

func (s *GradingService) lockWorkers() int {
	if s.LockWorkers > 0 {
		return s.LockWorkers
	}
	return defaultLockWorkers
}
