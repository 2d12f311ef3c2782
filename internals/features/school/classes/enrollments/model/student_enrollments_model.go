// file: internals/features/school/classes/enrollments/model/student_enrollments_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ========================= ENUMS (app-level) =========================

type StudentEnrollmentStatus string

const (
	// Status (harus cocok dengan CHECK di SQL)
	StudentEnrollmentActive    StudentEnrollmentStatus = "active"
	StudentEnrollmentInactive  StudentEnrollmentStatus = "inactive"
	StudentEnrollmentCompleted StudentEnrollmentStatus = "completed"
)

// ========================= MODEL =========================

// StudentEnrollmentModel = keanggotaan formal satu siswa di satu class-term.
// Roster resmi untuk lock nilai diambil dari sini, bukan dari siapa saja yang
// sudah punya nilai.
type StudentEnrollmentModel struct {
	StudentEnrollmentID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_enrollment_id" json:"student_enrollment_id"`
	StudentEnrollmentSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:student_enrollment_school_id" json:"student_enrollment_school_id"`

	StudentEnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;column:student_enrollment_student_id;uniqueIndex:uq_student_enrollment_term" json:"student_enrollment_student_id"`
	StudentEnrollmentClassID   uuid.UUID `gorm:"type:uuid;not null;column:student_enrollment_class_id;uniqueIndex:uq_student_enrollment_term" json:"student_enrollment_class_id"`
	StudentEnrollmentTermID    uuid.UUID `gorm:"type:uuid;not null;column:student_enrollment_term_id;uniqueIndex:uq_student_enrollment_term" json:"student_enrollment_term_id"`

	StudentEnrollmentStatus StudentEnrollmentStatus `gorm:"type:text;not null;default:'active';column:student_enrollment_status" json:"student_enrollment_status"`

	// Snapshot users_profile (per siswa saat enrol)
	StudentEnrollmentStudentNameSnapshot *string `gorm:"type:varchar(80);column:student_enrollment_student_name_snapshot" json:"student_enrollment_student_name_snapshot,omitempty"`

	StudentEnrollmentCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:student_enrollment_created_at" json:"student_enrollment_created_at"`
	StudentEnrollmentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:student_enrollment_updated_at" json:"student_enrollment_updated_at"`
	StudentEnrollmentDeletedAt gorm.DeletedAt `gorm:"index;column:student_enrollment_deleted_at" json:"student_enrollment_deleted_at,omitempty"`
}

func (StudentEnrollmentModel) TableName() string { return "student_enrollments" }
