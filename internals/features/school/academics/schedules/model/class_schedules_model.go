// file: internals/features/school/academics/schedules/model/class_schedules_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassScheduleModel = satu mata pelajaran yang diajar di satu class-term
// ("agenda"). Dari sisi grading ini read-only: hanya direferensikan lewat id.
type ClassScheduleModel struct {
	ClassScheduleID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_schedule_id" json:"class_schedule_id"`
	ClassScheduleSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:class_schedule_school_id" json:"class_schedule_school_id"`
	ClassScheduleClassID  uuid.UUID `gorm:"type:uuid;not null;index;column:class_schedule_class_id" json:"class_schedule_class_id"`
	ClassScheduleTermID   uuid.UUID `gorm:"type:uuid;not null;index;column:class_schedule_term_id" json:"class_schedule_term_id"`

	ClassScheduleSubjectName         string  `gorm:"type:varchar(120);not null;column:class_schedule_subject_name" json:"class_schedule_subject_name"`
	ClassScheduleTeacherNameSnapshot *string `gorm:"type:varchar(80);column:class_schedule_teacher_name_snapshot" json:"class_schedule_teacher_name_snapshot,omitempty"`

	ClassScheduleIsActive bool `gorm:"not null;default:true;column:class_schedule_is_active" json:"class_schedule_is_active"`

	ClassScheduleCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:class_schedule_created_at" json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:class_schedule_updated_at" json:"class_schedule_updated_at"`
	ClassScheduleDeletedAt gorm.DeletedAt `gorm:"index;column:class_schedule_deleted_at" json:"class_schedule_deleted_at,omitempty"`
}

func (ClassScheduleModel) TableName() string { return "class_schedules" }
