package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolku_backend/internals/features/school/grading/model"
)

func TestSubmitGrade_MissingIdentifier(t *testing.T) {
	r := newTestRig()
	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{})
	assert.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestSubmitGrade_AttendanceGateBlocksWrite(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(50, 100, 50)

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(95),
	})

	var attErr *AttendanceBelowThresholdError
	require.True(t, errors.As(err, &attErr))
	assert.Equal(t, 50.0, attErr.Percent)
	// gerbang gagal = tidak ada tulisan sama sekali
	assert.Equal(t, 0, r.grades.len())
}

func TestSubmitGrade_ScoreValidation(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)
	base := SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
	}

	_, err := r.svc.SubmitGrade(context.Background(), base)
	assert.ErrorIs(t, err, ErrScoreRequired)

	in := base
	in.Score = f64(-1)
	_, err = r.svc.SubmitGrade(context.Background(), in)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)

	in.Score = f64(100.5)
	_, err = r.svc.SubmitGrade(context.Background(), in)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)

	// batas inklusif: 0 dan 100 sah
	in.Score = f64(0)
	rec, err := r.svc.SubmitGrade(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "E", *rec.GradeRecordLetter)
	assert.Equal(t, model.GradeRecordPassFailed, rec.GradeRecordPass)

	in.Score = f64(100)
	rec, err = r.svc.SubmitGrade(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "A", *rec.GradeRecordLetter)
	assert.Equal(t, model.GradeRecordPassPassed, rec.GradeRecordPass)
}

func TestSubmitGrade_DerivesLetterLabelAndSnapshot(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)

	rec, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	assert.Equal(t, model.GradeRecordStatusDraft, rec.GradeRecordStatus)
	assert.Equal(t, "B", *rec.GradeRecordLetter)
	assert.Equal(t, "Good", *rec.GradeRecordLabel)
	assert.Equal(t, model.GradeRecordPassPassed, rec.GradeRecordPass)
	assert.False(t, rec.GradeRecordIsRemediated)
	assert.Equal(t, "Matematika", rec.GradeRecordSubjectNameSnapshot)
	assert.Equal(t, 100, rec.GradeRecordSessionsSnapshot)
	assert.Equal(t, 80, rec.GradeRecordPresentSnapshot)
	assert.Equal(t, 80.0, rec.GradeRecordAttendancePercentSnapshot)
	assert.Equal(t, 1, r.grades.len())
}

func TestSubmitGrade_EditRevalidatesGate(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)
	in := SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	}
	first, err := r.svc.SubmitGrade(context.Background(), in)
	require.NoError(t, err)

	// kehadiran turun di bawah ambang → edit ditolak, record lama utuh
	summary := r.attendance.byStudent[student]
	summary.AttendancePercent = 50
	r.attendance.byStudent[student] = summary

	in.Score = f64(90)
	_, err = r.svc.SubmitGrade(context.Background(), in)
	var attErr *AttendanceBelowThresholdError
	require.True(t, errors.As(err, &attErr))

	cur, err := r.grades.Get(context.Background(), r.schoolID, student, r.classID, r.termID, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, *first.GradeRecordScore, *cur.GradeRecordScore)
}

func TestSubmitGrade_EditKeepsSameRecord(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)
	in := SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(55),
	}
	first, err := r.svc.SubmitGrade(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, model.GradeRecordPassFailed, first.GradeRecordPass)

	in.Score = f64(72)
	second, err := r.svc.SubmitGrade(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.GradeRecordID, second.GradeRecordID)
	assert.Equal(t, "C", *second.GradeRecordLetter)
	assert.Equal(t, model.GradeRecordPassPassed, second.GradeRecordPass)
	assert.Equal(t, 1, r.grades.len())
}

func TestSubmitGrade_LockedRecordRejected(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)
	in := SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	}
	_, err := r.svc.SubmitGrade(context.Background(), in)
	require.NoError(t, err)

	_, err = r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	require.NoError(t, err)

	in.Score = f64(90)
	_, err = r.svc.SubmitGrade(context.Background(), in)
	assert.ErrorIs(t, err, ErrRecordLocked)
}

func TestDeleteGradeRecord(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)
	rec, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	// term dikunci administratif → hapus ditolak fatal
	r.terms.locked = true
	err = r.svc.DeleteGradeRecord(context.Background(), r.schoolID, rec.GradeRecordID)
	assert.ErrorIs(t, err, ErrTermLocked)
	assert.Equal(t, 1, r.grades.len())

	r.terms.locked = false
	require.NoError(t, r.svc.DeleteGradeRecord(context.Background(), r.schoolID, rec.GradeRecordID))
	assert.Equal(t, 0, r.grades.len())

	err = r.svc.DeleteGradeRecord(context.Background(), r.schoolID, rec.GradeRecordID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
