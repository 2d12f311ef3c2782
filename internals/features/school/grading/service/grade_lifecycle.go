// file: internals/features/school/grading/service/grade_lifecycle.go
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	attendanceService "schoolku_backend/internals/features/school/attendance/service"
	model "schoolku_backend/internals/features/school/grading/model"
)

// LockResult: ringkasan hasil lock satu slot.
type LockResult struct {
	Remediated int   `json:"remediated"`
	Locked     int64 `json:"locked"`
}

// Lock mengunci seluruh nilai satu slot jadwal: Draft → Locked.
//
// Roster resmi (enrolment Active) yang jadi acuan, bukan siapa yang sudah
// punya nilai. Siswa tanpa nilai atau dengan snapshot kehadiran < 75%
// diremediasi: nilai 60/D/"Poor" dengan pass dipaksa lulus (kebijakan:
// gerbang ketat hanya berlaku saat input, bukan saat lock).
//
// Fan-out per siswa TIDAK dibungkus satu transaksi; operasi ini idempoten
// dan aman diulang — siswa yang sudah Locked dilewati.
func (s *GradingService) Lock(ctx context.Context, schoolID, classID, termID, scheduleID uuid.UUID, actorID *uuid.UUID) (LockResult, error) {
	if schoolID == uuid.Nil || classID == uuid.Nil || termID == uuid.Nil || scheduleID == uuid.Nil {
		return LockResult{}, ErrMissingIdentifier
	}

	n, err := s.Grades.CountBySlot(ctx, schoolID, classID, termID, scheduleID)
	if err != nil {
		return LockResult{}, err
	}
	if n == 0 {
		return LockResult{}, ErrNothingToLock
	}

	students, err := s.Roster.ActiveStudentIDs(ctx, schoolID, classID, termID)
	if err != nil {
		return LockResult{}, err
	}
	subjectName, _ := s.subjectNameOf(ctx, schoolID, classID, termID, scheduleID)

	// Fan-out remediasi: tiap siswa independen, last-writer-wins di level
	// record (kunci unik per student+slot membuat penulis paralel konvergen).
	var (
		wg         sync.WaitGroup
		sem        = make(chan struct{}, s.lockWorkers())
		mu         sync.Mutex
		remediated int
		firstErr   error
	)
	for _, studentID := range students {
		studentID := studentID
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			did, err := s.remediateStudent(ctx, schoolID, studentID, classID, termID, scheduleID, subjectName)
			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			if did {
				remediated++
			}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		// Sebagian siswa bisa saja sudah tertulis; pemanggil cukup
		// mengulang Lock, sisanya akan dilengkapi.
		log.Printf("[GRADING] lock fan-out partial schedule=%s err=%v", scheduleID, firstErr)
		return LockResult{Remediated: remediated}, firstErr
	}

	locked, err := s.Grades.MarkLocked(ctx, schoolID, classID, termID, scheduleID, time.Now(), actorID)
	if err != nil {
		return LockResult{Remediated: remediated}, err
	}
	log.Printf("[GRADING] lock schedule=%s remediated=%d locked=%d", scheduleID, remediated, locked)
	return LockResult{Remediated: remediated, Locked: locked}, nil
}

// remediateStudent: cek-lalu-tulis satu siswa. Re-check state record persis
// sebelum menulis (balapan dengan input nilai diselesaikan last-writer-wins).
func (s *GradingService) remediateStudent(ctx context.Context, schoolID, studentID, classID, termID, scheduleID uuid.UUID, subjectName string) (bool, error) {
	rec, err := s.Grades.Get(ctx, schoolID, studentID, classID, termID, scheduleID)
	if err != nil {
		return false, err
	}
	// Sudah dikunci/terbit pada run sebelumnya → jangan disentuh.
	if rec != nil && !rec.IsDraft() {
		return false, nil
	}
	// Nilai valid dan kehadiran cukup → biarkan apa adanya.
	if rec != nil && rec.GradeRecordScore != nil &&
		rec.GradeRecordAttendancePercentSnapshot >= MinAttendanceForEntry {
		return false, nil
	}

	summary, err := s.Attendance.Summarize(ctx, schoolID, studentID, classID, termID)
	if err != nil {
		return false, err
	}

	out := model.GradeRecordModel{
		GradeRecordSchoolID:   schoolID,
		GradeRecordStudentID:  studentID,
		GradeRecordClassID:    classID,
		GradeRecordTermID:     termID,
		GradeRecordScheduleID: scheduleID,
		GradeRecordStatus:     model.GradeRecordStatusDraft,
	}
	if rec != nil {
		out = *rec
	}
	if subjectName != "" {
		out.GradeRecordSubjectNameSnapshot = subjectName
	}

	score := RemediationScore
	letter, label := LetterForScore(score) // 60 → D / "Poor"
	out.GradeRecordScore = &score
	out.GradeRecordLetter = &letter
	out.GradeRecordLabel = &label
	// Kebijakan remediasi: pass dipaksa lulus, berapapun kehadirannya.
	out.GradeRecordPass = model.GradeRecordPassPassed
	out.GradeRecordIsRemediated = true
	applyAttendanceSnapshot(&out, summary)

	if err := s.Grades.Upsert(ctx, &out); err != nil {
		return false, err
	}
	return true, nil
}

// Publish menerbitkan nilai satu slot: Locked → Published. Record yang masih
// Draft dibiarkan dan akan memblokir publish level class-term.
func (s *GradingService) Publish(ctx context.Context, schoolID, classID, termID, scheduleID uuid.UUID, actorID *uuid.UUID) (int64, error) {
	if schoolID == uuid.Nil || classID == uuid.Nil || termID == uuid.Nil || scheduleID == uuid.Nil {
		return 0, ErrMissingIdentifier
	}
	published, err := s.Grades.MarkPublished(ctx, schoolID, classID, termID, []uuid.UUID{scheduleID}, time.Now(), actorID)
	if err != nil {
		return 0, err
	}
	if published == 0 {
		return 0, ErrNothingToPublish
	}
	log.Printf("[GRADING] publish schedule=%s records=%d", scheduleID, published)
	return published, nil
}

func applyAttendanceSnapshot(rec *model.GradeRecordModel, s attendanceService.AttendanceSummary) {
	rec.GradeRecordSessionsSnapshot = s.TotalSessions
	rec.GradeRecordPresentSnapshot = s.TotalPresent
	rec.GradeRecordExcusedSnapshot = s.TotalExcused
	rec.GradeRecordSickSnapshot = s.TotalSick
	rec.GradeRecordAbsentSnapshot = s.TotalAbsent
	rec.GradeRecordAttendancePercentSnapshot = s.AttendancePercent
}
