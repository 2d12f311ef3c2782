package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "schoolku_backend/internals/features/school/grading/model"
)

func TestStatusOf_NoSlots(t *testing.T) {
	r := newTestRig()
	status, detail, err := r.svc.StatusOf(context.Background(), r.schoolID, r.classID, r.termID)
	require.NoError(t, err)
	assert.Equal(t, ClassTermStatusDraft, status)
	assert.Empty(t, detail)
}

func TestStatusOf_Lifecycle(t *testing.T) {
	r := newTestRig()
	mtk := r.addSlot("Matematika")
	ipa := r.addSlot("IPA")
	student := r.addStudent(80, 100, 80)

	for _, slot := range []ScheduleSlot{mtk, ipa} {
		_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
			SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
			TermID: r.termID, ScheduleSlotID: slot.ID,
			Score: f64(85),
		})
		require.NoError(t, err)
	}

	status, detail, err := r.svc.StatusOf(context.Background(), r.schoolID, r.classID, r.termID)
	require.NoError(t, err)
	assert.Equal(t, ClassTermStatusDraft, status)
	require.Len(t, detail, 2)
	assert.Equal(t, 1, detail[0].RecordCount)

	// satu slot dikunci, satu masih draft → partial
	_, err = r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, mtk.ID, nil)
	require.NoError(t, err)

	status, _, err = r.svc.StatusOf(context.Background(), r.schoolID, r.classID, r.termID)
	require.NoError(t, err)
	assert.Equal(t, ClassTermStatusPartial, status)

	// keduanya terkunci → locked
	_, err = r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, ipa.ID, nil)
	require.NoError(t, err)

	status, _, err = r.svc.StatusOf(context.Background(), r.schoolID, r.classID, r.termID)
	require.NoError(t, err)
	assert.Equal(t, ClassTermStatusLocked, status)
}

func TestStatusOf_MixedRecordsInSlotCountAsDraft(t *testing.T) {
	recs := []model.GradeRecordModel{
		{GradeRecordStatus: model.GradeRecordStatusLocked},
		{GradeRecordStatus: model.GradeRecordStatusDraft},
	}
	assert.Equal(t, ClassTermStatusDraft, slotStatusOf(recs))

	recs = []model.GradeRecordModel{
		{GradeRecordStatus: model.GradeRecordStatusPublished},
		{GradeRecordStatus: model.GradeRecordStatusLocked},
	}
	assert.Equal(t, ClassTermStatusDraft, slotStatusOf(recs))
}

func TestPublishClassTerm_NotAllLocked(t *testing.T) {
	r := newTestRig()
	mtk := r.addSlot("Matematika")
	ipa := r.addSlot("IPA")
	student := r.addStudent(80, 100, 80)

	for _, slot := range []ScheduleSlot{mtk, ipa} {
		_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
			SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
			TermID: r.termID, ScheduleSlotID: slot.ID,
			Score: f64(85),
		})
		require.NoError(t, err)
	}
	_, err := r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, mtk.ID, nil)
	require.NoError(t, err)

	_, err = r.svc.PublishClassTerm(context.Background(), r.schoolID, r.classID, r.termID, nil)
	var openErr *NotAllLockedError
	require.True(t, errors.As(err, &openErr))
	// error menyebut mapel yang masih terbuka
	assert.Equal(t, []string{"IPA"}, openErr.OpenSubjects)
	assert.Contains(t, openErr.Error(), "IPA")
}

func TestPublishClassTerm_Success(t *testing.T) {
	r := newTestRig()
	mtk := r.addSlot("Matematika")
	ipa := r.addSlot("IPA")
	student := r.addStudent(80, 100, 80)

	for _, slot := range []ScheduleSlot{mtk, ipa} {
		_, err := r.svc.SubmitGrade(context.Background(), SubmitGradeInput{
			SchoolID: r.schoolID, StudentID: student, ClassID: r.classID,
			TermID: r.termID, ScheduleSlotID: slot.ID,
			Score: f64(85),
		})
		require.NoError(t, err)
		_, err = r.svc.Lock(context.Background(), r.schoolID, r.classID, r.termID, slot.ID, nil)
		require.NoError(t, err)
	}

	n, err := r.svc.PublishClassTerm(context.Background(), r.schoolID, r.classID, r.termID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	status, _, err := r.svc.StatusOf(context.Background(), r.schoolID, r.classID, r.termID)
	require.NoError(t, err)
	assert.Equal(t, ClassTermStatusPublished, status)

	// ulang publish → sudah terbit semua
	_, err = r.svc.PublishClassTerm(context.Background(), r.schoolID, r.classID, r.termID, nil)
	assert.ErrorIs(t, err, ErrAlreadyPublished)
}
