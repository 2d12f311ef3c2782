// file: internals/features/school/grading/service/grade_entry.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/school/grading/model"
)

// SubmitGradeInput: input nilai satu mapel untuk satu siswa. Operasi yang
// sama dipakai untuk create dan edit; validasi diulang penuh setiap kali.
type SubmitGradeInput struct {
	SchoolID       uuid.UUID
	StudentID      uuid.UUID
	ClassID        uuid.UUID
	TermID         uuid.UUID
	ScheduleSlotID uuid.UUID

	Score  *float64
	Letter *string
	Label  *string
	Note   *string
}

// SubmitGrade menulis/menimpa satu GradeRecord (status tetap draft).
// Gerbang kehadiran 75% dicek lebih dulu: kalau gagal, tidak ada tulisan
// sama sekali.
func (s *GradingService) SubmitGrade(ctx context.Context, in SubmitGradeInput) (*model.GradeRecordModel, error) {
	if in.SchoolID == uuid.Nil || in.StudentID == uuid.Nil || in.ClassID == uuid.Nil ||
		in.TermID == uuid.Nil || in.ScheduleSlotID == uuid.Nil {
		return nil, ErrMissingIdentifier
	}

	// 1) Gerbang kehadiran (snapshot diambil pada panggilan ini)
	summary, err := s.Attendance.Summarize(ctx, in.SchoolID, in.StudentID, in.ClassID, in.TermID)
	if err != nil {
		return nil, err
	}
	if summary.AttendancePercent < MinAttendanceForEntry {
		return nil, &AttendanceBelowThresholdError{Percent: summary.AttendancePercent}
	}

	// 2) Validasi skor
	if in.Score == nil {
		return nil, ErrScoreRequired
	}
	score := *in.Score
	if score < 0 || score > 100 {
		return nil, ErrScoreOutOfRange
	}

	// 3) Derivasi huruf/label kalau tidak dikirim
	letter, label := LetterForScore(score)
	if in.Letter != nil && strings.TrimSpace(*in.Letter) != "" {
		letter = strings.TrimSpace(*in.Letter)
	}
	if in.Label != nil && strings.TrimSpace(*in.Label) != "" {
		label = strings.TrimSpace(*in.Label)
	}

	// 4) Upsert keyed (student, class, term, schedule)
	existing, err := s.Grades.Get(ctx, in.SchoolID, in.StudentID, in.ClassID, in.TermID, in.ScheduleSlotID)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.IsDraft() {
		return nil, ErrRecordLocked
	}

	rec := model.GradeRecordModel{
		GradeRecordSchoolID:   in.SchoolID,
		GradeRecordStudentID:  in.StudentID,
		GradeRecordClassID:    in.ClassID,
		GradeRecordTermID:     in.TermID,
		GradeRecordScheduleID: in.ScheduleSlotID,
		GradeRecordStatus:     model.GradeRecordStatusDraft,
	}
	if existing != nil {
		rec = *existing
	}

	rec.GradeRecordScore = &score
	rec.GradeRecordLetter = &letter
	rec.GradeRecordLabel = &label
	rec.GradeRecordNote = in.Note
	rec.GradeRecordPass = passForScore(score)
	rec.GradeRecordIsRemediated = false
	applyAttendanceSnapshot(&rec, summary)

	if name, err := s.subjectNameOf(ctx, in.SchoolID, in.ClassID, in.TermID, in.ScheduleSlotID); err == nil && name != "" {
		rec.GradeRecordSubjectNameSnapshot = name
	}

	if err := s.Grades.Upsert(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteGradeRecord menghapus satu nilai. Ditolak fatal (bukan retry) kalau
// term-nya sudah dikunci administratif.
func (s *GradingService) DeleteGradeRecord(ctx context.Context, schoolID, recordID uuid.UUID) error {
	if schoolID == uuid.Nil || recordID == uuid.Nil {
		return ErrMissingIdentifier
	}
	rec, err := s.Grades.GetByID(ctx, schoolID, recordID)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrRecordNotFound
	}

	locked, err := s.Terms.IsTermLocked(ctx, schoolID, rec.GradeRecordTermID)
	if err != nil {
		return err
	}
	if locked {
		return ErrTermLocked
	}

	ok, err := s.Grades.SoftDelete(ctx, schoolID, recordID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRecordNotFound
	}
	return nil
}

func (s *GradingService) subjectNameOf(ctx context.Context, schoolID, classID, termID, scheduleID uuid.UUID) (string, error) {
	slots, err := s.Schedule.ActiveSlots(ctx, schoolID, classID, termID)
	if err != nil {
		return "", err
	}
	for _, slot := range slots {
		if slot.ID == scheduleID {
			return slot.SubjectName, nil
		}
	}
	return "", nil
}
