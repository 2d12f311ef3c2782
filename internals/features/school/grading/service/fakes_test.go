package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	attendanceService "schoolku_backend/internals/features/school/attendance/service"
	model "schoolku_backend/internals/features/school/grading/model"
)

/* ============================================
   In-memory fakes untuk kolaborator yang di-inject
============================================ */

type fakeRoster struct {
	students []uuid.UUID
}

func (f *fakeRoster) ActiveStudentIDs(ctx context.Context, schoolID, classID, termID uuid.UUID) ([]uuid.UUID, error) {
	return f.students, nil
}

type fakeSchedule struct {
	slots []ScheduleSlot
}

func (f *fakeSchedule) ActiveSlots(ctx context.Context, schoolID, classID, termID uuid.UUID) ([]ScheduleSlot, error) {
	return f.slots, nil
}

type fakeAttendance struct {
	byStudent map[uuid.UUID]attendanceService.AttendanceSummary
}

func (f *fakeAttendance) Summarize(ctx context.Context, schoolID, studentID, classID, termID uuid.UUID) (attendanceService.AttendanceSummary, error) {
	return f.byStudent[studentID], nil
}

type fakeTermGuard struct {
	locked bool
}

func (f *fakeTermGuard) IsTermLocked(ctx context.Context, schoolID, termID uuid.UUID) (bool, error) {
	return f.locked, nil
}

/* ============================================
   fakeGradeStore
============================================ */

type fakeGradeStore struct {
	mu   sync.Mutex
	recs map[string]*model.GradeRecordModel
}

func newFakeGradeStore() *fakeGradeStore {
	return &fakeGradeStore{recs: map[string]*model.GradeRecordModel{}}
}

func quadKey(studentID, classID, termID, scheduleID uuid.UUID) string {
	return fmt.Sprintf("%s|%s|%s|%s", studentID, classID, termID, scheduleID)
}

func (f *fakeGradeStore) Get(ctx context.Context, schoolID, studentID, classID, termID, scheduleID uuid.UUID) (*model.GradeRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[quadKey(studentID, classID, termID, scheduleID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeGradeStore) GetByID(ctx context.Context, schoolID, recordID uuid.UUID) (*model.GradeRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.recs {
		if rec.GradeRecordID == recordID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeGradeStore) Upsert(ctx context.Context, rec *model.GradeRecordModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := quadKey(rec.GradeRecordStudentID, rec.GradeRecordClassID, rec.GradeRecordTermID, rec.GradeRecordScheduleID)
	if existing, ok := f.recs[key]; ok {
		rec.GradeRecordID = existing.GradeRecordID
	} else if rec.GradeRecordID == uuid.Nil {
		rec.GradeRecordID = uuid.New()
	}
	cp := *rec
	f.recs[key] = &cp
	return nil
}

func (f *fakeGradeStore) CountBySlot(ctx context.Context, schoolID, classID, termID, scheduleID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, rec := range f.recs {
		if rec.GradeRecordScheduleID == scheduleID && rec.GradeRecordClassID == classID && rec.GradeRecordTermID == termID {
			n++
		}
	}
	return n, nil
}

func (f *fakeGradeStore) ListBySlots(ctx context.Context, schoolID, classID, termID uuid.UUID, scheduleIDs []uuid.UUID) ([]model.GradeRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range scheduleIDs {
		wanted[id] = struct{}{}
	}
	var out []model.GradeRecordModel
	for _, rec := range f.recs {
		if rec.GradeRecordClassID != classID || rec.GradeRecordTermID != termID {
			continue
		}
		if _, ok := wanted[rec.GradeRecordScheduleID]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeGradeStore) ListByStudent(ctx context.Context, schoolID, studentID, classID, termID uuid.UUID) ([]model.GradeRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.GradeRecordModel
	for _, rec := range f.recs {
		if rec.GradeRecordStudentID == studentID && rec.GradeRecordClassID == classID && rec.GradeRecordTermID == termID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GradeRecordSubjectNameSnapshot < out[j].GradeRecordSubjectNameSnapshot
	})
	return out, nil
}

func (f *fakeGradeStore) MarkLocked(ctx context.Context, schoolID, classID, termID, scheduleID uuid.UUID, at time.Time, by *uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, rec := range f.recs {
		if rec.GradeRecordScheduleID == scheduleID && rec.GradeRecordClassID == classID &&
			rec.GradeRecordTermID == termID && rec.GradeRecordStatus == model.GradeRecordStatusDraft {
			rec.GradeRecordStatus = model.GradeRecordStatusLocked
			rec.GradeRecordLockedAt = &at
			rec.GradeRecordLockedBy = by
			n++
		}
	}
	return n, nil
}

func (f *fakeGradeStore) MarkPublished(ctx context.Context, schoolID, classID, termID uuid.UUID, scheduleIDs []uuid.UUID, at time.Time, by *uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range scheduleIDs {
		wanted[id] = struct{}{}
	}
	var n int64
	for _, rec := range f.recs {
		if rec.GradeRecordClassID != classID || rec.GradeRecordTermID != termID {
			continue
		}
		if _, ok := wanted[rec.GradeRecordScheduleID]; !ok {
			continue
		}
		if rec.GradeRecordStatus != model.GradeRecordStatusLocked {
			continue
		}
		rec.GradeRecordStatus = model.GradeRecordStatusPublished
		rec.GradeRecordPublishedAt = &at
		rec.GradeRecordPublishedBy = by
		n++
	}
	return n, nil
}

func (f *fakeGradeStore) SoftDelete(ctx context.Context, schoolID, recordID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, rec := range f.recs {
		if rec.GradeRecordID == recordID {
			delete(f.recs, key)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGradeStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recs)
}

/* ============================================
   fakeReportCardStore
============================================ */

type fakeReportCardStore struct {
	mu    sync.Mutex
	cards map[uuid.UUID]*model.ReportCardModel
}

func newFakeReportCardStore() *fakeReportCardStore {
	return &fakeReportCardStore{cards: map[uuid.UUID]*model.ReportCardModel{}}
}

func (f *fakeReportCardStore) GetByKey(ctx context.Context, schoolID, studentID, classID, termID uuid.UUID) (*model.ReportCardModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, card := range f.cards {
		if card.ReportCardStudentID == studentID && card.ReportCardClassID == classID && card.ReportCardTermID == termID {
			cp := *card
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReportCardStore) GetByID(ctx context.Context, schoolID, cardID uuid.UUID) (*model.ReportCardModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	card, ok := f.cards[cardID]
	if !ok {
		return nil, nil
	}
	cp := *card
	return &cp, nil
}

func (f *fakeReportCardStore) Upsert(ctx context.Context, card *model.ReportCardModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if card.ReportCardID == uuid.Nil {
		card.ReportCardID = uuid.New()
		card.ReportCardCreatedAt = time.Now()
	}
	cp := *card
	f.cards[card.ReportCardID] = &cp
	return nil
}

func (f *fakeReportCardStore) Save(ctx context.Context, card *model.ReportCardModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *card
	f.cards[card.ReportCardID] = &cp
	return nil
}

func (f *fakeReportCardStore) ListPublishedByStudent(ctx context.Context, schoolID, studentID uuid.UUID) ([]model.ReportCardModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ReportCardModel
	for _, card := range f.cards {
		if card.ReportCardStudentID == studentID && card.ReportCardIsPublished {
			out = append(out, *card)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReportCardCreatedAt.After(out[j].ReportCardCreatedAt)
	})
	return out, nil
}

func (f *fakeReportCardStore) Delete(ctx context.Context, schoolID, cardID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cards[cardID]; !ok {
		return false, nil
	}
	delete(f.cards, cardID)
	return true, nil
}

/* ============================================
   Test rig
============================================ */

type testRig struct {
	svc        *GradingService
	roster     *fakeRoster
	schedule   *fakeSchedule
	attendance *fakeAttendance
	terms      *fakeTermGuard
	grades     *fakeGradeStore
	reports    *fakeReportCardStore

	schoolID uuid.UUID
	classID  uuid.UUID
	termID   uuid.UUID
}

func newTestRig() *testRig {
	r := &testRig{
		roster:     &fakeRoster{},
		schedule:   &fakeSchedule{},
		attendance: &fakeAttendance{byStudent: map[uuid.UUID]attendanceService.AttendanceSummary{}},
		terms:      &fakeTermGuard{},
		grades:     newFakeGradeStore(),
		reports:    newFakeReportCardStore(),
		schoolID:   uuid.New(),
		classID:    uuid.New(),
		termID:     uuid.New(),
	}
	r.svc = NewGradingService(r.roster, r.schedule, r.attendance, r.terms, r.grades, r.reports)
	return r
}

func (r *testRig) addSlot(name string) ScheduleSlot {
	slot := ScheduleSlot{ID: uuid.New(), SubjectName: name}
	r.schedule.slots = append(r.schedule.slots, slot)
	return slot
}

func (r *testRig) addStudent(percent float64, sessions, present int) uuid.UUID {
	id := uuid.New()
	r.roster.students = append(r.roster.students, id)
	r.attendance.byStudent[id] = attendanceService.AttendanceSummary{
		TotalSessions:     sessions,
		TotalPresent:      present,
		TotalAbsent:       sessions - present,
		AttendancePercent: percent,
	}
	return id
}

func f64(v float64) *float64 { return &v }
