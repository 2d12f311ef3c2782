// file: internals/features/school/grading/dto/report_cards_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schoolku_backend/internals/features/school/grading/model"
	"schoolku_backend/internals/features/school/grading/service"
)

// =======================
// Request DTO
// =======================

type ReportCardGenerateDTO struct {
	ReportCardStudentID string `json:"report_card_student_id" validate:"required,uuid4"`
	ReportCardClassID   string `json:"report_card_class_id"   validate:"required,uuid4"`
	ReportCardTermID    string `json:"report_card_term_id"    validate:"required,uuid4"`

	ReportCardHomeroomNote  *string    `json:"report_card_homeroom_note,omitempty"`
	ReportCardPrincipalNote *string    `json:"report_card_principal_note,omitempty"`
	ReportCardPrintDate     *time.Time `json:"report_card_print_date,omitempty"`
}

func (p *ReportCardGenerateDTO) Normalize() {
	if p.ReportCardHomeroomNote != nil {
		s := strings.TrimSpace(*p.ReportCardHomeroomNote)
		p.ReportCardHomeroomNote = &s
	}
	if p.ReportCardPrincipalNote != nil {
		s := strings.TrimSpace(*p.ReportCardPrincipalNote)
		p.ReportCardPrincipalNote = &s
	}
}

func (p *ReportCardGenerateDTO) ToInput(schoolID uuid.UUID) (service.GenerateReportCardInput, error) {
	studentID, err := uuid.Parse(p.ReportCardStudentID)
	if err != nil {
		return service.GenerateReportCardInput{}, err
	}
	classID, err := uuid.Parse(p.ReportCardClassID)
	if err != nil {
		return service.GenerateReportCardInput{}, err
	}
	termID, err := uuid.Parse(p.ReportCardTermID)
	if err != nil {
		return service.GenerateReportCardInput{}, err
	}
	return service.GenerateReportCardInput{
		SchoolID:      schoolID,
		StudentID:     studentID,
		ClassID:       classID,
		TermID:        termID,
		HomeroomNote:  p.ReportCardHomeroomNote,
		PrincipalNote: p.ReportCardPrincipalNote,
		PrintDate:     p.ReportCardPrintDate,
	}, nil
}

// =======================
// Response DTO
// =======================

type ReportCardResponseDTO struct {
	ReportCardID        uuid.UUID `json:"report_card_id"`
	ReportCardStudentID uuid.UUID `json:"report_card_student_id"`
	ReportCardClassID   uuid.UUID `json:"report_card_class_id"`
	ReportCardTermID    uuid.UUID `json:"report_card_term_id"`

	ReportCardSubjectCount int     `json:"report_card_subject_count"`
	ReportCardPassCount    int     `json:"report_card_pass_count"`
	ReportCardFailCount    int     `json:"report_card_fail_count"`
	ReportCardAverageScore float64 `json:"report_card_average_score"`

	ReportCardSessions          int     `json:"report_card_sessions"`
	ReportCardPresent           int     `json:"report_card_present"`
	ReportCardExcused           int     `json:"report_card_excused"`
	ReportCardSick              int     `json:"report_card_sick"`
	ReportCardAbsent            int     `json:"report_card_absent"`
	ReportCardAttendancePercent float64 `json:"report_card_attendance_percent"`

	ReportCardPass       model.ReportCardPass `json:"report_card_pass"`
	ReportCardPassReason *string              `json:"report_card_pass_reason,omitempty"`
	ReportCardPredicate  *string              `json:"report_card_predicate,omitempty"`

	ReportCardHomeroomNote  *string    `json:"report_card_homeroom_note,omitempty"`
	ReportCardPrincipalNote *string    `json:"report_card_principal_note,omitempty"`
	ReportCardPrintDate     *time.Time `json:"report_card_print_date,omitempty"`

	ReportCardSubjectsSnapshot datatypes.JSON `json:"report_card_subjects_snapshot,omitempty"`

	ReportCardIsPublished bool       `json:"report_card_is_published"`
	ReportCardPublishedAt *time.Time `json:"report_card_published_at,omitempty"`

	ReportCardCreatedAt time.Time `json:"report_card_created_at"`
	ReportCardUpdatedAt time.Time `json:"report_card_updated_at"`
}

func FromReportCardModel(ent model.ReportCardModel) ReportCardResponseDTO {
	return ReportCardResponseDTO{
		ReportCardID:                ent.ReportCardID,
		ReportCardStudentID:         ent.ReportCardStudentID,
		ReportCardClassID:           ent.ReportCardClassID,
		ReportCardTermID:            ent.ReportCardTermID,
		ReportCardSubjectCount:      ent.ReportCardSubjectCount,
		ReportCardPassCount:         ent.ReportCardPassCount,
		ReportCardFailCount:         ent.ReportCardFailCount,
		ReportCardAverageScore:      ent.ReportCardAverageScore,
		ReportCardSessions:          ent.ReportCardSessions,
		ReportCardPresent:           ent.ReportCardPresent,
		ReportCardExcused:           ent.ReportCardExcused,
		ReportCardSick:              ent.ReportCardSick,
		ReportCardAbsent:            ent.ReportCardAbsent,
		ReportCardAttendancePercent: ent.ReportCardAttendancePercent,
		ReportCardPass:              ent.ReportCardPass,
		ReportCardPassReason:        ent.ReportCardPassReason,
		ReportCardPredicate:         ent.ReportCardPredicate,
		ReportCardHomeroomNote:      ent.ReportCardHomeroomNote,
		ReportCardPrincipalNote:     ent.ReportCardPrincipalNote,
		ReportCardPrintDate:         ent.ReportCardPrintDate,
		ReportCardSubjectsSnapshot:  ent.ReportCardSubjectsSnapshot,
		ReportCardIsPublished:       ent.ReportCardIsPublished,
		ReportCardPublishedAt:       ent.ReportCardPublishedAt,
		ReportCardCreatedAt:         ent.ReportCardCreatedAt,
		ReportCardUpdatedAt:         ent.ReportCardUpdatedAt,
	}
}

func FromReportCardModels(list []model.ReportCardModel) []ReportCardResponseDTO {
	out := make([]ReportCardResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromReportCardModel(it))
	}
	return out
}
