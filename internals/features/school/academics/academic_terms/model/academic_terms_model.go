// file: internals/features/school/academics/academic_terms/model/academic_terms_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ========================= MODEL =========================

type AcademicTermModel struct {
	AcademicTermsID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_terms_id" json:"academic_terms_id"`
	AcademicTermsSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:academic_terms_school_id" json:"academic_terms_school_id"`

	AcademicTermsAcademicYear string    `gorm:"type:varchar(20);not null;column:academic_terms_academic_year" json:"academic_terms_academic_year"`
	AcademicTermsName         string    `gorm:"type:varchar(20);not null;column:academic_terms_name" json:"academic_terms_name"`
	AcademicTermsStartDate    time.Time `gorm:"type:date;not null;column:academic_terms_start_date" json:"academic_terms_start_date"`
	AcademicTermsEndDate      time.Time `gorm:"type:date;not null;column:academic_terms_end_date" json:"academic_terms_end_date"`
	AcademicTermsIsActive     bool      `gorm:"not null;default:true;column:academic_terms_is_active" json:"academic_terms_is_active"`

	// Kunci administratif level term: saat terkunci, GradeRecord di term ini
	// tidak boleh dihapus.
	AcademicTermsIsLocked bool       `gorm:"not null;default:false;column:academic_terms_is_locked" json:"academic_terms_is_locked"`
	AcademicTermsLockedAt *time.Time `gorm:"type:timestamptz;column:academic_terms_locked_at" json:"academic_terms_locked_at,omitempty"`
	AcademicTermsLockedBy *uuid.UUID `gorm:"type:uuid;column:academic_terms_locked_by" json:"academic_terms_locked_by,omitempty"`

	AcademicTermsCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:academic_terms_created_at" json:"academic_terms_created_at"`
	AcademicTermsUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:academic_terms_updated_at" json:"academic_terms_updated_at"`
	AcademicTermsDeletedAt gorm.DeletedAt `gorm:"index;column:academic_terms_deleted_at" json:"academic_terms_deleted_at,omitempty"`
}

func (AcademicTermModel) TableName() string { return "academic_terms" }

// ========================= Hooks (mirror CHECK constraints) =========================

func (m *AcademicTermModel) ensureConsistency() error {
	// chk_terms_dates: end_date >= start_date
	if m.AcademicTermsEndDate.Before(m.AcademicTermsStartDate) {
		return errors.New("academic_terms_end_date must be >= academic_terms_start_date")
	}
	// chk_terms_locked_meta
	if m.AcademicTermsIsLocked && m.AcademicTermsLockedAt == nil {
		return errors.New("academic_terms_locked_at is required when term is locked")
	}
	if !m.AcademicTermsIsLocked && m.AcademicTermsLockedAt != nil {
		return errors.New("academic_terms_locked_at must be NULL when term is not locked")
	}
	return nil
}

func (m *AcademicTermModel) BeforeCreate(tx *gorm.DB) error { return m.ensureConsistency() }
func (m *AcademicTermModel) BeforeUpdate(tx *gorm.DB) error { return m.ensureConsistency() }

// ========================= Helper =========================

// MarkLocked menutup term secara administratif.
func (m *AcademicTermModel) MarkLocked(by *uuid.UUID, when time.Time) {
	m.AcademicTermsIsLocked = true
	m.AcademicTermsLockedAt = &when
	m.AcademicTermsLockedBy = by
}

// ClearLock membuka kembali term.
func (m *AcademicTermModel) ClearLock() {
	m.AcademicTermsIsLocked = false
	m.AcademicTermsLockedAt = nil
	m.AcademicTermsLockedBy = nil
}
