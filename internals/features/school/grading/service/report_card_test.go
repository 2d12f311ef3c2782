package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolku_backend/internals/features/school/grading/model"
)

func TestGenerateReportCard_EmptyTerm(t *testing.T) {
	r := newTestRig()
	student := r.addStudent(80, 100, 80)

	card, err := r.svc.GenerateReportCard(context.Background(), GenerateReportCardInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID, TermID: r.termID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, card.ReportCardSubjectCount)
	assert.Equal(t, model.ReportCardPassNotGraded, card.ReportCardPass)
	assert.Nil(t, card.ReportCardPassReason)
	assert.Nil(t, card.ReportCardPredicate)
}

// Siswa rajin: satu mapel 85, kehadiran 80% → lulus term, predikat Good.
func TestGenerateReportCard_PassingStudent(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	card, err := r.svc.GenerateReportCard(context.Background(), GenerateReportCardInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID, TermID: r.termID,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, card.ReportCardSubjectCount)
	assert.Equal(t, 1, card.ReportCardPassCount)
	assert.Equal(t, 0, card.ReportCardFailCount)
	assert.Equal(t, 85.0, card.ReportCardAverageScore)
	assert.Equal(t, 80.0, card.ReportCardAttendancePercent)
	assert.Equal(t, model.ReportCardPassPassed, card.ReportCardPass)
	assert.Nil(t, card.ReportCardPassReason)
	require.NotNil(t, card.ReportCardPredicate)
	assert.Equal(t, "Good", *card.ReportCardPredicate)
	assert.False(t, card.ReportCardIsPublished)

	var lines []model.ReportCardSubjectLine
	require.NoError(t, json.Unmarshal(card.ReportCardSubjectsSnapshot, &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, "Matematika", lines[0].SubjectName)
	assert.Equal(t, 85.0, *lines[0].Score)
}

// Siswa bolos yang diremediasi saat lock: nilai mapelnya lulus (60, dipaksa),
// tapi kehadiran 50% < 60% membuat term-nya tetap gagal.
func TestGenerateReportCard_RemediatedStudentFailsTermOnAttendance(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	rajin := r.addStudent(80, 100, 80)
	bolos := r.addStudent(50, 100, 50)

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: rajin, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)
	_, err = r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	require.NoError(t, err)

	card, err := r.svc.GenerateReportCard(context.Background(), GenerateReportCardInput{
		SchoolID: r.schoolID, StudentID: bolos, ClassID: r.classID, TermID: r.termID,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, card.ReportCardSubjectCount)
	assert.Equal(t, 1, card.ReportCardPassCount)
	assert.Equal(t, 0, card.ReportCardFailCount)
	assert.Equal(t, 60.0, card.ReportCardAverageScore)
	assert.Equal(t, 50.0, card.ReportCardAttendancePercent)
	assert.Equal(t, model.ReportCardPassFailed, card.ReportCardPass)
	require.NotNil(t, card.ReportCardPassReason)
	assert.Contains(t, *card.ReportCardPassReason, "kehadiran")
}

func TestGenerateReportCard_FailedSubjectInReason(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(45),
	})
	require.NoError(t, err)

	card, err := r.svc.GenerateReportCard(context.Background(), GenerateReportCardInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID, TermID: r.termID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, card.ReportCardFailCount)
	assert.Equal(t, model.ReportCardPassFailed, card.ReportCardPass)
	require.NotNil(t, card.ReportCardPassReason)
	assert.Contains(t, *card.ReportCardPassReason, "tidak tuntas pada 1 mapel")
}

func TestGenerateReportCard_IgnoresInactiveSlots(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	// mapel dinonaktifkan setelah nilai masuk → tidak ikut roll-up
	r.schedule.slots = nil

	card, err := r.svc.GenerateReportCard(context.Background(), GenerateReportCardInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID, TermID: r.termID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, card.ReportCardSubjectCount)
	assert.Equal(t, model.ReportCardPassNotGraded, card.ReportCardPass)
}

func TestGenerateReportCard_RegenerationResetsPublish(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	in := GenerateReportCardInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID, TermID: r.termID,
	}
	card, err := r.svc.GenerateReportCard(context.Background(), in)
	require.NoError(t, err)

	published, err := r.svc.PublishReportCard(context.Background(), r.schoolID, card.ReportCardID, nil)
	require.NoError(t, err)
	assert.True(t, published.ReportCardIsPublished)
	assert.NotNil(t, published.ReportCardPublishedAt)

	list, err := r.svc.ListPublishedReportCards(context.Background(), r.schoolID, student)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// regenerasi = snapshot baru = kembali draft, ID tetap
	regen, err := r.svc.GenerateReportCard(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, card.ReportCardID, regen.ReportCardID)
	assert.False(t, regen.ReportCardIsPublished)
	assert.Nil(t, regen.ReportCardPublishedAt)

	list, err = r.svc.ListPublishedReportCards(context.Background(), r.schoolID, student)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPublishReportCard_NotFound(t *testing.T) {
	r := newTestRig()
	_, err := r.svc.PublishReportCard(context.Background(), r.schoolID, r.classID, nil)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteReportCard(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	card, err := r.svc.GenerateReportCard(context.Background(), GenerateReportCardInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID, TermID: r.termID,
	})
	require.NoError(t, err)

	require.NoError(t, r.svc.DeleteReportCard(context.Background(), r.schoolID, card.ReportCardID))
	err = r.svc.DeleteReportCard(context.Background(), r.schoolID, card.ReportCardID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
