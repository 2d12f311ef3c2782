// file: internals/features/school/grading/model/report_cards_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ========================= ENUMS (app-level) =========================

type ReportCardPass string

const (
	ReportCardPassNotGraded ReportCardPass = "not_graded"
	ReportCardPassPassed    ReportCardPass = "passed"
	ReportCardPassFailed    ReportCardPass = "failed"
)

// ========================= MODEL =========================

// ReportCardModel = rapor satu siswa untuk satu class-term. Snapshot turunan:
// regenerasi selalu menimpa isi dan mengembalikan is_published ke false.
// Kunci unik: (student, class, term).
type ReportCardModel struct {
	ReportCardID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:report_card_id" json:"report_card_id"`
	ReportCardSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:report_card_school_id" json:"report_card_school_id"`

	ReportCardStudentID uuid.UUID `gorm:"type:uuid;not null;column:report_card_student_id;uniqueIndex:uq_report_card_term" json:"report_card_student_id"`
	ReportCardClassID   uuid.UUID `gorm:"type:uuid;not null;column:report_card_class_id;uniqueIndex:uq_report_card_term" json:"report_card_class_id"`
	ReportCardTermID    uuid.UUID `gorm:"type:uuid;not null;column:report_card_term_id;uniqueIndex:uq_report_card_term" json:"report_card_term_id"`

	// Agregat nilai
	ReportCardSubjectCount int     `gorm:"not null;default:0;column:report_card_subject_count" json:"report_card_subject_count"`
	ReportCardPassCount    int     `gorm:"not null;default:0;column:report_card_pass_count" json:"report_card_pass_count"`
	ReportCardFailCount    int     `gorm:"not null;default:0;column:report_card_fail_count" json:"report_card_fail_count"`
	ReportCardAverageScore float64 `gorm:"type:numeric(5,2);not null;default:0;column:report_card_average_score" json:"report_card_average_score"`

	// Agregat kehadiran (disalin dari snapshot GradeRecord; properti per-term)
	ReportCardSessions          int     `gorm:"not null;default:0;column:report_card_sessions" json:"report_card_sessions"`
	ReportCardPresent           int     `gorm:"not null;default:0;column:report_card_present" json:"report_card_present"`
	ReportCardExcused           int     `gorm:"not null;default:0;column:report_card_excused" json:"report_card_excused"`
	ReportCardSick              int     `gorm:"not null;default:0;column:report_card_sick" json:"report_card_sick"`
	ReportCardAbsent            int     `gorm:"not null;default:0;column:report_card_absent" json:"report_card_absent"`
	ReportCardAttendancePercent float64 `gorm:"type:numeric(5,2);not null;default:0;column:report_card_attendance_percent" json:"report_card_attendance_percent"`

	// Hasil term
	ReportCardPass       ReportCardPass `gorm:"type:text;not null;default:'not_graded';column:report_card_pass" json:"report_card_pass"`
	ReportCardPassReason *string        `gorm:"type:text;column:report_card_pass_reason" json:"report_card_pass_reason,omitempty"`
	ReportCardPredicate  *string        `gorm:"type:varchar(20);column:report_card_predicate" json:"report_card_predicate,omitempty"`

	// Catatan dua peran + tanggal cetak
	ReportCardHomeroomNote  *string    `gorm:"type:text;column:report_card_homeroom_note" json:"report_card_homeroom_note,omitempty"`
	ReportCardPrincipalNote *string    `gorm:"type:text;column:report_card_principal_note" json:"report_card_principal_note,omitempty"`
	ReportCardPrintDate     *time.Time `gorm:"type:date;column:report_card_print_date" json:"report_card_print_date,omitempty"`

	// Snapshot baris per-mapel (JSONB) untuk render rapor tanpa join ulang
	ReportCardSubjectsSnapshot datatypes.JSON `gorm:"type:jsonb;column:report_card_subjects_snapshot" json:"report_card_subjects_snapshot,omitempty"`

	// Lifecycle publish rapor (independen dari status per-mapel)
	ReportCardIsPublished bool       `gorm:"not null;default:false;column:report_card_is_published" json:"report_card_is_published"`
	ReportCardPublishedAt *time.Time `gorm:"type:timestamptz;column:report_card_published_at" json:"report_card_published_at,omitempty"`
	ReportCardPublishedBy *uuid.UUID `gorm:"type:uuid;column:report_card_published_by" json:"report_card_published_by,omitempty"`

	// Audit
	ReportCardCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:report_card_created_at" json:"report_card_created_at"`
	ReportCardUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:report_card_updated_at" json:"report_card_updated_at"`
	ReportCardDeletedAt gorm.DeletedAt `gorm:"index;column:report_card_deleted_at" json:"report_card_deleted_at,omitempty"`
}

func (ReportCardModel) TableName() string { return "report_cards" }

// ReportCardSubjectLine = satu baris snapshot per-mapel di dalam JSONB.
type ReportCardSubjectLine struct {
	SubjectName string          `json:"subject_name"`
	Score       *float64        `json:"score,omitempty"`
	Letter      *string         `json:"letter,omitempty"`
	Pass        GradeRecordPass `json:"pass"`
}

// ========================= Hooks (mirror CHECK constraints) =========================

func (r *ReportCardModel) ensureConsistency() error {
	// chk_report_card_published_meta
	if r.ReportCardIsPublished {
		if r.ReportCardPublishedAt == nil {
			return errors.New("report_card_published_at is required when report card is published")
		}
	} else {
		if r.ReportCardPublishedAt != nil {
			return errors.New("report_card_published_at must be NULL when report card is not published")
		}
	}
	// chk_report_card_counts
	if r.ReportCardPassCount+r.ReportCardFailCount > r.ReportCardSubjectCount {
		return errors.New("report_card pass+fail counts cannot exceed subject count")
	}
	return nil
}

func (r *ReportCardModel) BeforeCreate(tx *gorm.DB) error { return r.ensureConsistency() }
func (r *ReportCardModel) BeforeUpdate(tx *gorm.DB) error { return r.ensureConsistency() }

// ========================= Helper =========================

// MarkPublished menandai rapor terbit.
func (r *ReportCardModel) MarkPublished(by *uuid.UUID, when time.Time) {
	r.ReportCardIsPublished = true
	r.ReportCardPublishedAt = &when
	r.ReportCardPublishedBy = by
}

// ClearPublication mengembalikan rapor ke draft (dipakai unpublish & regenerasi).
func (r *ReportCardModel) ClearPublication() {
	r.ReportCardIsPublished = false
	r.ReportCardPublishedAt = nil
	r.ReportCardPublishedBy = nil
}
