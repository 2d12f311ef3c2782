package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolku_backend/internals/features/school/grading/model"
)

func TestLock_NothingToLock(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	r.addStudent(80, 100, 80)

	_, err := r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	assert.ErrorIs(t, err, ErrNothingToLock)
}

func TestLock_RemediatesMissingAndLocksAll(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	rajin := r.addStudent(80, 100, 80) // sudah punya nilai, kehadiran cukup
	bolos := r.addStudent(50, 100, 50) // tanpa nilai, kehadiran kurang

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: rajin, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	res, err := r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remediated)
	assert.Equal(t, int64(2), res.Locked)

	// nilai asli tidak tersentuh
	got, err := r.grades.Get(context.Background(), r.schoolID, rajin, r.classID, r.termID, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 85.0, *got.GradeRecordScore)
	assert.False(t, got.GradeRecordIsRemediated)
	assert.Equal(t, model.GradeRecordStatusLocked, got.GradeRecordStatus)
	assert.NotNil(t, got.GradeRecordLockedAt)

	// siswa tanpa nilai diremediasi: 60 / D / Poor, pass dipaksa lulus
	got, err = r.grades.Get(context.Background(), r.schoolID, bolos, r.classID, r.termID, slot.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 60.0, *got.GradeRecordScore)
	assert.Equal(t, "D", *got.GradeRecordLetter)
	assert.Equal(t, "Poor", *got.GradeRecordLabel)
	assert.Equal(t, model.GradeRecordPassPassed, got.GradeRecordPass)
	assert.True(t, got.GradeRecordIsRemediated)
	assert.Equal(t, model.GradeRecordStatusLocked, got.GradeRecordStatus)
	assert.Equal(t, 50.0, got.GradeRecordAttendancePercentSnapshot)
	assert.Equal(t, "Matematika", got.GradeRecordSubjectNameSnapshot)
}

func TestLock_Idempotent(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	rajin := r.addStudent(80, 100, 80)
	r.addStudent(50, 100, 50)

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: rajin, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	_, err = r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	require.NoError(t, err)

	// pengulangan: record terkunci dilewati, tidak ada remediasi ulang
	res, err := r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remediated)
	assert.Equal(t, int64(0), res.Locked)
	assert.Equal(t, 2, r.grades.len())
}

func TestLock_ManyStudentsFanOut(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	penulis := r.addStudent(80, 100, 80)
	for i := 0; i < 40; i++ {
		r.addStudent(50, 100, 50)
	}

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: penulis, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	res, err := r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 40, res.Remediated)
	assert.Equal(t, int64(41), res.Locked)
	assert.Equal(t, 41, r.grades.len())
}

func TestPublish_RequiresLockedRecords(t *testing.T) {
	r := newTestRig()
	slot := r.addSlot("Matematika")
	student := r.addStudent(80, 100, 80)

	_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
		SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
		TermID: r.termID, ScheduleSlotID: slot.ID,
		Score: f64(85),
	})
	require.NoError(t, err)

	// masih draft → tidak ada yang bisa diterbitkan
	_, err = r.svc.Publish(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	assert.ErrorIs(t, err, ErrNothingToPublish)

	_, err = r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	require.NoError(t, err)

	n, err := r.svc.Publish(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := r.grades.Get(context.Background(), r.schoolID, student, r.classID, r.termID, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GradeRecordStatusPublished, got.GradeRecordStatus)
	assert.NotNil(t, got.GradeRecordPublishedAt)

	// ulang publish → sudah tidak ada record locked
	_, err = r.svc.Publish(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
	assert.ErrorIs(t, err, ErrNothingToPublish)
}
