// file: internals/features/school/academics/academic_terms/dto/academic_terms_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/academics/academic_terms/model"
)

// =======================
// Request DTO
// =======================

type AcademicTermCreateDTO struct {
	AcademicTermsAcademicYear string    `json:"academic_terms_academic_year" validate:"required,min=4"`
	AcademicTermsName         string    `json:"academic_terms_name"          validate:"required,oneof=Ganjil Genap Pendek Khusus"`
	AcademicTermsStartDate    time.Time `json:"academic_terms_start_date"    validate:"required"`
	// gtefield agar sejalan dg DB CHECK (end >= start)
	AcademicTermsEndDate time.Time `json:"academic_terms_end_date" validate:"required,gtefield=AcademicTermsStartDate"`
	// pointer: bedakan "tidak dikirim" vs "false"
	AcademicTermsIsActive *bool `json:"academic_terms_is_active,omitempty"`
}

type AcademicTermUpdateDTO struct {
	AcademicTermsAcademicYear *string    `json:"academic_terms_academic_year,omitempty" validate:"omitempty,min=4"`
	AcademicTermsName         *string    `json:"academic_terms_name,omitempty"          validate:"omitempty,oneof=Ganjil Genap Pendek Khusus"`
	AcademicTermsStartDate    *time.Time `json:"academic_terms_start_date,omitempty"`
	AcademicTermsEndDate      *time.Time `json:"academic_terms_end_date,omitempty"`
	AcademicTermsIsActive     *bool      `json:"academic_terms_is_active,omitempty"`
}

// =======================
// Response DTO
// =======================

type AcademicTermResponseDTO struct {
	AcademicTermsID           uuid.UUID `json:"academic_terms_id"`
	AcademicTermsSchoolID     uuid.UUID `json:"academic_terms_school_id"`
	AcademicTermsAcademicYear string    `json:"academic_terms_academic_year"`
	AcademicTermsName         string    `json:"academic_terms_name"`
	AcademicTermsStartDate    time.Time `json:"academic_terms_start_date"`
	AcademicTermsEndDate      time.Time `json:"academic_terms_end_date"`
	AcademicTermsIsActive     bool      `json:"academic_terms_is_active"`

	AcademicTermsIsLocked bool       `json:"academic_terms_is_locked"`
	AcademicTermsLockedAt *time.Time `json:"academic_terms_locked_at,omitempty"`

	AcademicTermsCreatedAt time.Time `json:"academic_terms_created_at"`
	AcademicTermsUpdatedAt time.Time `json:"academic_terms_updated_at"`
}

// =======================
// Helpers
// =======================

func (p *AcademicTermCreateDTO) Normalize() {
	p.AcademicTermsAcademicYear = strings.TrimSpace(p.AcademicTermsAcademicYear)
	p.AcademicTermsName = strings.TrimSpace(p.AcademicTermsName)
}

func (p *AcademicTermCreateDTO) ToModel(schoolID uuid.UUID) model.AcademicTermModel {
	isActive := true
	if p.AcademicTermsIsActive != nil {
		isActive = *p.AcademicTermsIsActive // hormati input eksplisit
	}
	return model.AcademicTermModel{
		AcademicTermsSchoolID:     schoolID,
		AcademicTermsAcademicYear: p.AcademicTermsAcademicYear,
		AcademicTermsName:         p.AcademicTermsName,
		AcademicTermsStartDate:    p.AcademicTermsStartDate,
		AcademicTermsEndDate:      p.AcademicTermsEndDate,
		AcademicTermsIsActive:     isActive,
	}
}

func (u *AcademicTermUpdateDTO) ApplyUpdates(ent *model.AcademicTermModel) {
	if u.AcademicTermsAcademicYear != nil {
		ent.AcademicTermsAcademicYear = strings.TrimSpace(*u.AcademicTermsAcademicYear)
	}
	if u.AcademicTermsName != nil {
		ent.AcademicTermsName = strings.TrimSpace(*u.AcademicTermsName)
	}
	if u.AcademicTermsStartDate != nil {
		ent.AcademicTermsStartDate = *u.AcademicTermsStartDate
	}
	if u.AcademicTermsEndDate != nil {
		ent.AcademicTermsEndDate = *u.AcademicTermsEndDate
	}
	if u.AcademicTermsIsActive != nil {
		ent.AcademicTermsIsActive = *u.AcademicTermsIsActive
	}
}

// Mapper entity -> response
func FromModel(ent model.AcademicTermModel) AcademicTermResponseDTO {
	return AcademicTermResponseDTO{
		AcademicTermsID:           ent.AcademicTermsID,
		AcademicTermsSchoolID:     ent.AcademicTermsSchoolID,
		AcademicTermsAcademicYear: ent.AcademicTermsAcademicYear,
		AcademicTermsName:         ent.AcademicTermsName,
		AcademicTermsStartDate:    ent.AcademicTermsStartDate,
		AcademicTermsEndDate:      ent.AcademicTermsEndDate,
		AcademicTermsIsActive:     ent.AcademicTermsIsActive,
		AcademicTermsIsLocked:     ent.AcademicTermsIsLocked,
		AcademicTermsLockedAt:     ent.AcademicTermsLockedAt,
		AcademicTermsCreatedAt:    ent.AcademicTermsCreatedAt,
		AcademicTermsUpdatedAt:    ent.AcademicTermsUpdatedAt,
	}
}

func FromModels(list []model.AcademicTermModel) []AcademicTermResponseDTO {
	out := make([]AcademicTermResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
