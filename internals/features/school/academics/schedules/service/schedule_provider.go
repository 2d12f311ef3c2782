// file: internals/features/school/academics/schedules/service/schedule_provider.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolku_backend/internals/features/school/academics/schedules/model"
)

// ScheduleProvider membaca slot jadwal aktif (mapel per class-term).
type ScheduleProvider struct {
	DB *gorm.DB
}

func NewScheduleProvider(db *gorm.DB) *ScheduleProvider {
	return &ScheduleProvider{DB: db}
}

func (p *ScheduleProvider) ActiveSlotModels(ctx context.Context, schoolID, classID, termID uuid.UUID) ([]model.ClassScheduleModel, error) {
	var rows []model.ClassScheduleModel
	err := p.DB.WithContext(ctx).
		Where("class_schedule_school_id = ? AND class_schedule_class_id = ? AND class_schedule_term_id = ?",
			schoolID, classID, termID).
		Where("class_schedule_is_active = TRUE").
		Order("class_schedule_subject_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
