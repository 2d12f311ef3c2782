// file: internals/features/school/grading/model/grade_records_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ========================= ENUMS (app-level) =========================

type GradeRecordStatus string
type GradeRecordPass string

const (
	// Lifecycle status (harus cocok dengan CHECK di SQL)
	GradeRecordStatusDraft     GradeRecordStatus = "draft"
	GradeRecordStatusLocked    GradeRecordStatus = "locked"
	GradeRecordStatusPublished GradeRecordStatus = "published"

	// Kelulusan per mapel (harus cocok dengan CHECK di SQL)
	GradeRecordPassNotGraded GradeRecordPass = "not_graded"
	GradeRecordPassPassed    GradeRecordPass = "passed"
	GradeRecordPassFailed    GradeRecordPass = "failed"
)

// ========================= MODEL =========================

// GradeRecordModel = satu nilai mapel untuk satu siswa di satu class-term.
// Kunci unik: (student, class, term, schedule). Mutasi hanya lewat
// GradeEntryGate (selama draft) atau transisi lock/publish.
type GradeRecordModel struct {
	GradeRecordID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_record_id" json:"grade_record_id"`
	GradeRecordSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:grade_record_school_id" json:"grade_record_school_id"`

	// Identitas (empat kolom ini unik bersama)
	GradeRecordStudentID  uuid.UUID `gorm:"type:uuid;not null;column:grade_record_student_id;uniqueIndex:uq_grade_record_quad" json:"grade_record_student_id"`
	GradeRecordClassID    uuid.UUID `gorm:"type:uuid;not null;column:grade_record_class_id;uniqueIndex:uq_grade_record_quad" json:"grade_record_class_id"`
	GradeRecordTermID     uuid.UUID `gorm:"type:uuid;not null;column:grade_record_term_id;uniqueIndex:uq_grade_record_quad" json:"grade_record_term_id"`
	GradeRecordScheduleID uuid.UUID `gorm:"type:uuid;not null;column:grade_record_schedule_id;uniqueIndex:uq_grade_record_quad" json:"grade_record_schedule_id"`

	// Snapshot nama mapel saat nilai ditulis
	GradeRecordSubjectNameSnapshot string `gorm:"type:varchar(120);not null;default:'';column:grade_record_subject_name_snapshot" json:"grade_record_subject_name_snapshot"`

	// Nilai
	GradeRecordScore  *float64 `gorm:"type:numeric(5,2);column:grade_record_score" json:"grade_record_score,omitempty"`
	GradeRecordLetter *string  `gorm:"type:varchar(2);column:grade_record_letter" json:"grade_record_letter,omitempty"`
	GradeRecordLabel  *string  `gorm:"type:varchar(20);column:grade_record_label" json:"grade_record_label,omitempty"`
	GradeRecordNote   *string  `gorm:"type:text;column:grade_record_note" json:"grade_record_note,omitempty"`

	// Snapshot kehadiran saat nilai ditulis (per-term, sama untuk semua mapel
	// siswa tsb dalam satu term)
	GradeRecordSessionsSnapshot          int     `gorm:"not null;default:0;column:grade_record_sessions_snapshot" json:"grade_record_sessions_snapshot"`
	GradeRecordPresentSnapshot           int     `gorm:"not null;default:0;column:grade_record_present_snapshot" json:"grade_record_present_snapshot"`
	GradeRecordExcusedSnapshot           int     `gorm:"not null;default:0;column:grade_record_excused_snapshot" json:"grade_record_excused_snapshot"`
	GradeRecordSickSnapshot              int     `gorm:"not null;default:0;column:grade_record_sick_snapshot" json:"grade_record_sick_snapshot"`
	GradeRecordAbsentSnapshot            int     `gorm:"not null;default:0;column:grade_record_absent_snapshot" json:"grade_record_absent_snapshot"`
	GradeRecordAttendancePercentSnapshot float64 `gorm:"type:numeric(5,2);not null;default:0;column:grade_record_attendance_percent_snapshot" json:"grade_record_attendance_percent_snapshot"`

	// Kelulusan per mapel
	GradeRecordPass GradeRecordPass `gorm:"type:text;not null;default:'not_graded';column:grade_record_pass" json:"grade_record_pass"`

	// Diisi remediasi saat lock (nilai ambang 60/D), bukan oleh guru
	GradeRecordIsRemediated bool `gorm:"not null;default:false;column:grade_record_is_remediated" json:"grade_record_is_remediated"`

	// Lifecycle
	GradeRecordStatus      GradeRecordStatus `gorm:"type:text;not null;default:'draft';column:grade_record_status" json:"grade_record_status"`
	GradeRecordLockedAt    *time.Time        `gorm:"type:timestamptz;column:grade_record_locked_at" json:"grade_record_locked_at,omitempty"`
	GradeRecordLockedBy    *uuid.UUID        `gorm:"type:uuid;column:grade_record_locked_by" json:"grade_record_locked_by,omitempty"`
	GradeRecordPublishedAt *time.Time        `gorm:"type:timestamptz;column:grade_record_published_at" json:"grade_record_published_at,omitempty"`
	GradeRecordPublishedBy *uuid.UUID        `gorm:"type:uuid;column:grade_record_published_by" json:"grade_record_published_by,omitempty"`

	// Audit
	GradeRecordCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:grade_record_created_at" json:"grade_record_created_at"`
	GradeRecordUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:grade_record_updated_at" json:"grade_record_updated_at"`
	GradeRecordDeletedAt gorm.DeletedAt `gorm:"index;column:grade_record_deleted_at" json:"grade_record_deleted_at,omitempty"`
}

func (GradeRecordModel) TableName() string { return "grade_records" }

// ========================= Hooks (mirror CHECK constraints) =========================

func (g *GradeRecordModel) ensureConsistency() error {
	// chk_grade_record_score_range
	if g.GradeRecordScore != nil && (*g.GradeRecordScore < 0 || *g.GradeRecordScore > 100) {
		return errors.New("grade_record_score must be between 0 and 100")
	}
	// chk_grade_record_locked_needs_score: locked/published wajib punya skor
	// (remediasi mengisi skor 60 sebelum lock, jadi rule ini tetap berlaku)
	if g.GradeRecordStatus != GradeRecordStatusDraft {
		if g.GradeRecordScore == nil {
			return errors.New("grade_record_score is required when status is not 'draft'")
		}
		if g.GradeRecordLockedAt == nil {
			return errors.New("grade_record_locked_at is required when status is not 'draft'")
		}
	}
	// chk_grade_record_published_meta
	if g.GradeRecordStatus == GradeRecordStatusPublished && g.GradeRecordPublishedAt == nil {
		return errors.New("grade_record_published_at is required when status is 'published'")
	}
	return nil
}

func (g *GradeRecordModel) BeforeCreate(tx *gorm.DB) error { return g.ensureConsistency() }
func (g *GradeRecordModel) BeforeUpdate(tx *gorm.DB) error { return g.ensureConsistency() }

// ========================= Helper =========================

func (g *GradeRecordModel) IsDraft() bool { return g.GradeRecordStatus == GradeRecordStatusDraft }
