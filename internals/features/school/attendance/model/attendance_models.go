// file: internals/features/school/attendance/model/attendance_models.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ========================= ENUMS (app-level) =========================

type StudentAttendanceStatus string

const (
	// Status (harus cocok dengan CHECK di SQL)
	StudentAttendancePresent StudentAttendanceStatus = "present"
	StudentAttendanceExcused StudentAttendanceStatus = "excused"
	StudentAttendanceSick    StudentAttendanceStatus = "sick"
	StudentAttendanceAbsent  StudentAttendanceStatus = "absent"
)

// ========================= MODELS =========================

// ClassAttendanceSessionModel = satu pertemuan terjadwal dari satu class-term.
type ClassAttendanceSessionModel struct {
	ClassAttendanceSessionID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_attendance_session_id" json:"class_attendance_session_id"`
	ClassAttendanceSessionSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:class_attendance_session_school_id" json:"class_attendance_session_school_id"`
	ClassAttendanceSessionClassID  uuid.UUID `gorm:"type:uuid;not null;index;column:class_attendance_session_class_id" json:"class_attendance_session_class_id"`
	ClassAttendanceSessionTermID   uuid.UUID `gorm:"type:uuid;not null;index;column:class_attendance_session_term_id" json:"class_attendance_session_term_id"`

	ClassAttendanceSessionDate  time.Time `gorm:"type:date;not null;column:class_attendance_session_date" json:"class_attendance_session_date"`
	ClassAttendanceSessionTitle *string   `gorm:"type:varchar(120);column:class_attendance_session_title" json:"class_attendance_session_title,omitempty"`

	ClassAttendanceSessionCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:class_attendance_session_created_at" json:"class_attendance_session_created_at"`
	ClassAttendanceSessionUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:class_attendance_session_updated_at" json:"class_attendance_session_updated_at"`
	ClassAttendanceSessionDeletedAt gorm.DeletedAt `gorm:"index;column:class_attendance_session_deleted_at" json:"class_attendance_session_deleted_at,omitempty"`
}

func (ClassAttendanceSessionModel) TableName() string { return "class_attendance_sessions" }

// StudentAttendanceModel = hasil kehadiran satu siswa pada satu pertemuan.
type StudentAttendanceModel struct {
	StudentAttendanceID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_attendance_id" json:"student_attendance_id"`
	StudentAttendanceSessionID uuid.UUID `gorm:"type:uuid;not null;column:student_attendance_session_id;uniqueIndex:uq_student_attendance_session" json:"student_attendance_session_id"`
	StudentAttendanceStudentID uuid.UUID `gorm:"type:uuid;not null;column:student_attendance_student_id;uniqueIndex:uq_student_attendance_session" json:"student_attendance_student_id"`

	StudentAttendanceStatus StudentAttendanceStatus `gorm:"type:text;not null;default:'absent';column:student_attendance_status" json:"student_attendance_status"`
	StudentAttendanceNote   *string                 `gorm:"type:text;column:student_attendance_note" json:"student_attendance_note,omitempty"`

	StudentAttendanceCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:student_attendance_created_at" json:"student_attendance_created_at"`
	StudentAttendanceUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:student_attendance_updated_at" json:"student_attendance_updated_at"`
	StudentAttendanceDeletedAt gorm.DeletedAt `gorm:"index;column:student_attendance_deleted_at" json:"student_attendance_deleted_at,omitempty"`
}

func (StudentAttendanceModel) TableName() string { return "student_attendances" }
