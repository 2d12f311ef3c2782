// file: internals/features/school/grading/service/report_card.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "schoolku_backend/internals/features/school/grading/model"
)

// GenerateReportCardInput: parameter regenerasi rapor satu siswa.
type GenerateReportCardInput struct {
	SchoolID  uuid.UUID
	StudentID uuid.UUID
	ClassID   uuid.UUID
	TermID    uuid.UUID

	HomeroomNote  *string
	PrincipalNote *string
	PrintDate     *time.Time
}

// GenerateReportCard meroll-up seluruh GradeRecord siswa dalam satu
// class-term menjadi satu rapor. Regenerasi SELALU mengembalikan
// is_published ke false: rapor adalah snapshot turunan, bukan dokumen yang
// diedit manual.
func (s *GradingService) GenerateReportCard(ctx context.Context, in GenerateReportCardInput) (*model.ReportCardModel, error) {
	if in.SchoolID == uuid.Nil || in.StudentID == uuid.Nil || in.ClassID == uuid.Nil || in.TermID == uuid.Nil {
		return nil, ErrMissingIdentifier
	}

	// 1) Ambil nilai siswa lalu saring ke slot yang masih aktif
	// (mapel basi/terhapus tidak ikut roll-up).
	slots, err := s.Schedule.ActiveSlots(ctx, in.SchoolID, in.ClassID, in.TermID)
	if err != nil {
		return nil, err
	}
	activeSlots := make(map[uuid.UUID]struct{}, len(slots))
	for _, slot := range slots {
		activeSlots[slot.ID] = struct{}{}
	}

	all, err := s.Grades.ListByStudent(ctx, in.SchoolID, in.StudentID, in.ClassID, in.TermID)
	if err != nil {
		return nil, err
	}
	records := make([]model.GradeRecordModel, 0, len(all))
	for _, rec := range all {
		if _, ok := activeSlots[rec.GradeRecordScheduleID]; ok {
			records = append(records, rec)
		}
	}

	// 2) Agregat
	passCount, failCount, gradedCount := 0, 0, 0
	var scoreSum float64
	lines := make([]model.ReportCardSubjectLine, 0, len(records))
	for _, rec := range records {
		switch rec.GradeRecordPass {
		case model.GradeRecordPassPassed:
			passCount++
		case model.GradeRecordPassFailed:
			failCount++
		}
		if rec.GradeRecordScore != nil {
			gradedCount++
			scoreSum += *rec.GradeRecordScore
		}
		lines = append(lines, model.ReportCardSubjectLine{
			SubjectName: rec.GradeRecordSubjectNameSnapshot,
			Score:       rec.GradeRecordScore,
			Letter:      rec.GradeRecordLetter,
			Pass:        rec.GradeRecordPass,
		})
	}
	average := 0.0
	if gradedCount > 0 {
		average = scoreSum / float64(gradedCount)
	}

	// Kehadiran: properti per-term, snapshot-nya sama di semua record satu
	// siswa; cukup salin dari record pertama.
	card := model.ReportCardModel{
		ReportCardSchoolID:     in.SchoolID,
		ReportCardStudentID:    in.StudentID,
		ReportCardClassID:      in.ClassID,
		ReportCardTermID:       in.TermID,
		ReportCardSubjectCount: len(records),
		ReportCardPassCount:    passCount,
		ReportCardFailCount:    failCount,
		ReportCardAverageScore: average,
	}
	if len(records) > 0 {
		first := records[0]
		card.ReportCardSessions = first.GradeRecordSessionsSnapshot
		card.ReportCardPresent = first.GradeRecordPresentSnapshot
		card.ReportCardExcused = first.GradeRecordExcusedSnapshot
		card.ReportCardSick = first.GradeRecordSickSnapshot
		card.ReportCardAbsent = first.GradeRecordAbsentSnapshot
		card.ReportCardAttendancePercent = first.GradeRecordAttendancePercentSnapshot
	}

	// 3) Lulus/tidak level term (ambang kehadiran 60%, bukan 75% — memang beda)
	card.ReportCardPass, card.ReportCardPassReason = termPassOf(len(records), failCount, card.ReportCardAttendancePercent)

	// 4) Predikat dari rata-rata
	card.ReportCardPredicate = PredicateForAverage(average)

	card.ReportCardHomeroomNote = in.HomeroomNote
	card.ReportCardPrincipalNote = in.PrincipalNote
	card.ReportCardPrintDate = in.PrintDate

	if raw, err := json.Marshal(lines); err == nil {
		card.ReportCardSubjectsSnapshot = datatypes.JSON(raw)
	}

	// 5) Upsert keyed (student, class, term); regenerasi = kembali ke draft
	existing, err := s.Reports.GetByKey(ctx, in.SchoolID, in.StudentID, in.ClassID, in.TermID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		card.ReportCardID = existing.ReportCardID
		card.ReportCardCreatedAt = existing.ReportCardCreatedAt
	}
	card.ClearPublication()

	if err := s.Reports.Upsert(ctx, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func termPassOf(subjectCount, failCount int, attendancePercent float64) (model.ReportCardPass, *string) {
	if subjectCount == 0 {
		return model.ReportCardPassNotGraded, nil
	}
	reasons := make([]string, 0, 2)
	if failCount > 0 {
		reasons = append(reasons, fmt.Sprintf("tidak tuntas pada %d mapel", failCount))
	}
	if attendancePercent < MinAttendanceForTermPass {
		reasons = append(reasons, fmt.Sprintf("kehadiran %.0f%% di bawah minimum %.0f%%", attendancePercent, MinAttendanceForTermPass))
	}
	if len(reasons) > 0 {
		reason := strings.Join(reasons, "; ")
		return model.ReportCardPassFailed, &reason
	}
	return model.ReportCardPassPassed, nil
}

// PublishReportCard: flip flag publish + audit. Tidak memvalidasi ulang
// nilai di bawahnya — regenerasi dulu kalau data mungkin basi.
func (s *GradingService) PublishReportCard(ctx context.Context, schoolID, cardID uuid.UUID, actorID *uuid.UUID) (*model.ReportCardModel, error) {
	card, err := s.Reports.GetByID(ctx, schoolID, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrRecordNotFound
	}
	card.MarkPublished(actorID, time.Now())
	if err := s.Reports.Save(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// UnpublishReportCard: kebalikan PublishReportCard.
func (s *GradingService) UnpublishReportCard(ctx context.Context, schoolID, cardID uuid.UUID, actorID *uuid.UUID) (*model.ReportCardModel, error) {
	card, err := s.Reports.GetByID(ctx, schoolID, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrRecordNotFound
	}
	card.ClearPublication()
	if err := s.Reports.Save(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// ListPublishedReportCards: read path untuk tampilan siswa; hanya rapor
// terbit, terbaru dulu.
func (s *GradingService) ListPublishedReportCards(ctx context.Context, schoolID, studentID uuid.UUID) ([]model.ReportCardModel, error) {
	if schoolID == uuid.Nil || studentID == uuid.Nil {
		return nil, ErrMissingIdentifier
	}
	return s.Reports.ListPublishedByStudent(ctx, schoolID, studentID)
}

// DeleteReportCard: hapus eksplisit, independen dari GradeRecord.
func (s *GradingService) DeleteReportCard(ctx context.Context, schoolID, cardID uuid.UUID) error {
	ok, err := s.Reports.Delete(ctx, schoolID, cardID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRecordNotFound
	}
	return nil
}
