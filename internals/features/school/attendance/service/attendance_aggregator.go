// file: internals/features/school/attendance/service/attendance_aggregator.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolku_backend/internals/features/school/attendance/model"
)

// AttendanceSummary = rekap kehadiran satu siswa untuk satu class-term.
// Nilai turunan, tidak pernah disimpan (pemanggil boleh cache sendiri).
type AttendanceSummary struct {
	TotalSessions     int     `json:"total_sessions"`
	TotalPresent      int     `json:"total_present"`
	TotalExcused      int     `json:"total_excused"`
	TotalSick         int     `json:"total_sick"`
	TotalAbsent       int     `json:"total_absent"`
	AttendancePercent float64 `json:"attendance_percent"`
}

// Aggregator menghitung AttendanceSummary langsung dari store pertemuan.
// Query murni; tanpa side effect.
type Aggregator struct {
	DB *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{DB: db}
}

func (a *Aggregator) Summarize(ctx context.Context, schoolID, studentID, classID, termID uuid.UUID) (AttendanceSummary, error) {
	var total int64
	if err := a.DB.WithContext(ctx).
		Model(&model.ClassAttendanceSessionModel{}).
		Where("class_attendance_session_school_id = ? AND class_attendance_session_class_id = ? AND class_attendance_session_term_id = ?",
			schoolID, classID, termID).
		Count(&total).Error; err != nil {
		return AttendanceSummary{}, err
	}

	type statusCount struct {
		Status model.StudentAttendanceStatus
		N      int
	}
	var rows []statusCount
	if err := a.DB.WithContext(ctx).
		Model(&model.StudentAttendanceModel{}).
		Select("student_attendance_status AS status, COUNT(*) AS n").
		Joins("JOIN class_attendance_sessions s ON s.class_attendance_session_id = student_attendances.student_attendance_session_id").
		Where("s.class_attendance_session_school_id = ? AND s.class_attendance_session_class_id = ? AND s.class_attendance_session_term_id = ?",
			schoolID, classID, termID).
		Where("s.class_attendance_session_deleted_at IS NULL").
		Where("student_attendance_student_id = ?", studentID).
		Group("student_attendance_status").
		Scan(&rows).Error; err != nil {
		return AttendanceSummary{}, err
	}

	byStatus := make(map[model.StudentAttendanceStatus]int, len(rows))
	for _, r := range rows {
		byStatus[r.Status] = r.N
	}
	return summarize(int(total), byStatus), nil
}

// summarize murni supaya gampang di-test tanpa DB.
// Persen kehadiran = present / total pertemuan; 0 kalau belum ada pertemuan.
func summarize(totalSessions int, byStatus map[model.StudentAttendanceStatus]int) AttendanceSummary {
	s := AttendanceSummary{
		TotalSessions: totalSessions,
		TotalPresent:  byStatus[model.StudentAttendancePresent],
		TotalExcused:  byStatus[model.StudentAttendanceExcused],
		TotalSick:     byStatus[model.StudentAttendanceSick],
		TotalAbsent:   byStatus[model.StudentAttendanceAbsent],
	}
	if totalSessions > 0 {
		s.AttendancePercent = float64(s.TotalPresent) * 100 / float64(totalSessions)
	}
	return s
}
