// file: internals/features/school/grading/dto/grade_records_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/grading/model"
	"schoolku_backend/internals/features/school/grading/service"
)

// =======================
// Request DTO
// =======================

// GradeSubmitDTO dipakai untuk create DAN edit: operasi yang sama, validasi
// diulang penuh di service.
type GradeSubmitDTO struct {
	GradeRecordStudentID  string `json:"grade_record_student_id"  validate:"required,uuid4"`
	GradeRecordClassID    string `json:"grade_record_class_id"    validate:"required,uuid4"`
	GradeRecordTermID     string `json:"grade_record_term_id"     validate:"required,uuid4"`
	GradeRecordScheduleID string `json:"grade_record_schedule_id" validate:"required,uuid4"`

	GradeRecordScore *float64 `json:"grade_record_score"           validate:"required,gte=0,lte=100"`
	// huruf/label opsional; kalau kosong diderivasi dari skor
	GradeRecordLetter *string `json:"grade_record_letter,omitempty" validate:"omitempty,max=2"`
	GradeRecordLabel  *string `json:"grade_record_label,omitempty"  validate:"omitempty,max=20"`
	GradeRecordNote   *string `json:"grade_record_note,omitempty"`
}

func (p *GradeSubmitDTO) Normalize() {
	if p.GradeRecordLetter != nil {
		s := strings.ToUpper(strings.TrimSpace(*p.GradeRecordLetter))
		p.GradeRecordLetter = &s
	}
	if p.GradeRecordLabel != nil {
		s := strings.TrimSpace(*p.GradeRecordLabel)
		p.GradeRecordLabel = &s
	}
	if p.GradeRecordNote != nil {
		s := strings.TrimSpace(*p.GradeRecordNote)
		p.GradeRecordNote = &s
	}
}

// ToInput merakit input service; UUID sudah lolos validator, error parse
// di sini praktis tidak terjadi.
func (p *GradeSubmitDTO) ToInput(schoolID uuid.UUID) (service.SubmitGradeInput, error) {
	studentID, err := uuid.Parse(p.GradeRecordStudentID)
	if err != nil {
		return service.SubmitGradeInput{}, err
	}
	classID, err := uuid.Parse(p.GradeRecordClassID)
	if err != nil {
		return service.SubmitGradeInput{}, err
	}
	termID, err := uuid.Parse(p.GradeRecordTermID)
	if err != nil {
		return service.SubmitGradeInput{}, err
	}
	scheduleID, err := uuid.Parse(p.GradeRecordScheduleID)
	if err != nil {
		return service.SubmitGradeInput{}, err
	}
	return service.SubmitGradeInput{
		SchoolID:       schoolID,
		StudentID:      studentID,
		ClassID:        classID,
		TermID:         termID,
		ScheduleSlotID: scheduleID,
		Score:          p.GradeRecordScore,
		Letter:         p.GradeRecordLetter,
		Label:          p.GradeRecordLabel,
		Note:           p.GradeRecordNote,
	}, nil
}

// Identitas slot untuk operasi lifecycle (lock/publish per mapel).
type GradeSlotDTO struct {
	GradeRecordClassID    string `json:"grade_record_class_id"    validate:"required,uuid4"`
	GradeRecordTermID     string `json:"grade_record_term_id"     validate:"required,uuid4"`
	GradeRecordScheduleID string `json:"grade_record_schedule_id" validate:"required,uuid4"`
}

func (p *GradeSlotDTO) ParseIDs() (classID, termID, scheduleID uuid.UUID, err error) {
	if classID, err = uuid.Parse(p.GradeRecordClassID); err != nil {
		return
	}
	if termID, err = uuid.Parse(p.GradeRecordTermID); err != nil {
		return
	}
	scheduleID, err = uuid.Parse(p.GradeRecordScheduleID)
	return
}

// Identitas class-term untuk status agregat + publish serentak.
type ClassTermDTO struct {
	ClassID string `json:"class_id" query:"class_id" validate:"required,uuid4"`
	TermID  string `json:"term_id"  query:"term_id"  validate:"required,uuid4"`
}

func (p *ClassTermDTO) ParseIDs() (classID, termID uuid.UUID, err error) {
	if classID, err = uuid.Parse(p.ClassID); err != nil {
		return
	}
	termID, err = uuid.Parse(p.TermID)
	return
}

// =======================
// Response DTO
// =======================

type GradeRecordResponseDTO struct {
	GradeRecordID         uuid.UUID `json:"grade_record_id"`
	GradeRecordStudentID  uuid.UUID `json:"grade_record_student_id"`
	GradeRecordClassID    uuid.UUID `json:"grade_record_class_id"`
	GradeRecordTermID     uuid.UUID `json:"grade_record_term_id"`
	GradeRecordScheduleID uuid.UUID `json:"grade_record_schedule_id"`

	GradeRecordSubjectNameSnapshot string `json:"grade_record_subject_name_snapshot"`

	GradeRecordScore  *float64 `json:"grade_record_score,omitempty"`
	GradeRecordLetter *string  `json:"grade_record_letter,omitempty"`
	GradeRecordLabel  *string  `json:"grade_record_label,omitempty"`
	GradeRecordNote   *string  `json:"grade_record_note,omitempty"`

	GradeRecordSessionsSnapshot          int     `json:"grade_record_sessions_snapshot"`
	GradeRecordPresentSnapshot           int     `json:"grade_record_present_snapshot"`
	GradeRecordExcusedSnapshot           int     `json:"grade_record_excused_snapshot"`
	GradeRecordSickSnapshot              int     `json:"grade_record_sick_snapshot"`
	GradeRecordAbsentSnapshot            int     `json:"grade_record_absent_snapshot"`
	GradeRecordAttendancePercentSnapshot float64 `json:"grade_record_attendance_percent_snapshot"`

	GradeRecordPass         model.GradeRecordPass   `json:"grade_record_pass"`
	GradeRecordIsRemediated bool                    `json:"grade_record_is_remediated"`
	GradeRecordStatus       model.GradeRecordStatus `json:"grade_record_status"`
	GradeRecordLockedAt     *time.Time              `json:"grade_record_locked_at,omitempty"`
	GradeRecordPublishedAt  *time.Time              `json:"grade_record_published_at,omitempty"`

	GradeRecordCreatedAt time.Time `json:"grade_record_created_at"`
	GradeRecordUpdatedAt time.Time `json:"grade_record_updated_at"`
}

func FromGradeRecordModel(ent model.GradeRecordModel) GradeRecordResponseDTO {
	return GradeRecordResponseDTO{
		GradeRecordID:                        ent.GradeRecordID,
		GradeRecordStudentID:                 ent.GradeRecordStudentID,
		GradeRecordClassID:                   ent.GradeRecordClassID,
		GradeRecordTermID:                    ent.GradeRecordTermID,
		GradeRecordScheduleID:                ent.GradeRecordScheduleID,
		GradeRecordSubjectNameSnapshot:       ent.GradeRecordSubjectNameSnapshot,
		GradeRecordScore:                     ent.GradeRecordScore,
		GradeRecordLetter:                    ent.GradeRecordLetter,
		GradeRecordLabel:                     ent.GradeRecordLabel,
		GradeRecordNote:                      ent.GradeRecordNote,
		GradeRecordSessionsSnapshot:          ent.GradeRecordSessionsSnapshot,
		GradeRecordPresentSnapshot:           ent.GradeRecordPresentSnapshot,
		GradeRecordExcusedSnapshot:           ent.GradeRecordExcusedSnapshot,
		GradeRecordSickSnapshot:              ent.GradeRecordSickSnapshot,
		GradeRecordAbsentSnapshot:            ent.GradeRecordAbsentSnapshot,
		GradeRecordAttendancePercentSnapshot: ent.GradeRecordAttendancePercentSnapshot,
		GradeRecordPass:                      ent.GradeRecordPass,
		GradeRecordIsRemediated:              ent.GradeRecordIsRemediated,
		GradeRecordStatus:                    ent.GradeRecordStatus,
		GradeRecordLockedAt:                  ent.GradeRecordLockedAt,
		GradeRecordPublishedAt:               ent.GradeRecordPublishedAt,
		GradeRecordCreatedAt:                 ent.GradeRecordCreatedAt,
		GradeRecordUpdatedAt:                 ent.GradeRecordUpdatedAt,
	}
}

func FromGradeRecordModels(list []model.GradeRecordModel) []GradeRecordResponseDTO {
	out := make([]GradeRecordResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromGradeRecordModel(it))
	}
	return out
}
