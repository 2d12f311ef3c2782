// file: internals/features/school/classes/enrollments/service/roster_provider.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolku_backend/internals/features/school/classes/enrollments/model"
)

// RosterProvider membaca roster resmi (enrolment aktif) satu class-term.
type RosterProvider struct {
	DB *gorm.DB
}

func NewRosterProvider(db *gorm.DB) *RosterProvider {
	return &RosterProvider{DB: db}
}

func (p *RosterProvider) ActiveStudentIDs(ctx context.Context, schoolID, classID, termID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.DB.WithContext(ctx).
		Model(&model.StudentEnrollmentModel{}).
		Where("student_enrollment_school_id = ? AND student_enrollment_class_id = ? AND student_enrollment_term_id = ?",
			schoolID, classID, termID).
		Where("student_enrollment_status = ?", model.StudentEnrollmentActive).
		Pluck("student_enrollment_student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
