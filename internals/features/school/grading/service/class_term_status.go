// file: internals/features/school/grading/service/class_term_status.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/school/grading/model"
)

// ClassTermStatus = hasil reduksi status seluruh slot satu class-term.
type ClassTermStatus string

const (
	ClassTermStatusDraft     ClassTermStatus = "draft"
	ClassTermStatusLocked    ClassTermStatus = "locked"
	ClassTermStatusPublished ClassTermStatus = "published"
	ClassTermStatusPartial   ClassTermStatus = "partial"
)

// SlotStatus = status lifecycle satu slot beserta identitasnya.
type SlotStatus struct {
	Slot        ScheduleSlot    `json:"slot"`
	Status      ClassTermStatus `json:"status"`
	RecordCount int             `json:"record_count"`
}

// StatusOf mereduksi status semua slot aktif satu class-term menjadi satu
// dari draft/locked/published/partial. Dipakai sebagai precondition oracle
// untuk PublishClassTerm.
func (s *GradingService) StatusOf(ctx context.Context, schoolID, classID, termID uuid.UUID) (ClassTermStatus, []SlotStatus, error) {
	if schoolID == uuid.Nil || classID == uuid.Nil || termID == uuid.Nil {
		return "", nil, ErrMissingIdentifier
	}

	slots, err := s.Schedule.ActiveSlots(ctx, schoolID, classID, termID)
	if err != nil {
		return "", nil, err
	}
	if len(slots) == 0 {
		return ClassTermStatusDraft, nil, nil
	}

	slotIDs := make([]uuid.UUID, 0, len(slots))
	for _, slot := range slots {
		slotIDs = append(slotIDs, slot.ID)
	}
	records, err := s.Grades.ListBySlots(ctx, schoolID, classID, termID, slotIDs)
	if err != nil {
		return "", nil, err
	}

	bySlot := make(map[uuid.UUID][]model.GradeRecordModel, len(slots))
	for _, rec := range records {
		bySlot[rec.GradeRecordScheduleID] = append(bySlot[rec.GradeRecordScheduleID], rec)
	}

	detail := make([]SlotStatus, 0, len(slots))
	for _, slot := range slots {
		recs := bySlot[slot.ID]
		detail = append(detail, SlotStatus{
			Slot:        slot,
			Status:      slotStatusOf(recs),
			RecordCount: len(recs),
		})
	}
	return reduceSlotStatuses(detail), detail, nil
}

// slotStatusOf: slot tanpa record = draft; semua published = published;
// semua locked = locked; campuran apapun dihitung belum-terkunci (draft).
func slotStatusOf(recs []model.GradeRecordModel) ClassTermStatus {
	if len(recs) == 0 {
		return ClassTermStatusDraft
	}
	allPublished, allLocked := true, true
	for _, r := range recs {
		if r.GradeRecordStatus != model.GradeRecordStatusPublished {
			allPublished = false
		}
		if r.GradeRecordStatus != model.GradeRecordStatusLocked {
			allLocked = false
		}
	}
	switch {
	case allPublished:
		return ClassTermStatusPublished
	case allLocked:
		return ClassTermStatusLocked
	default:
		return ClassTermStatusDraft
	}
}

func reduceSlotStatuses(detail []SlotStatus) ClassTermStatus {
	nDraft, nLocked, nPublished := 0, 0, 0
	for _, d := range detail {
		switch d.Status {
		case ClassTermStatusDraft:
			nDraft++
		case ClassTermStatusLocked:
			nLocked++
		case ClassTermStatusPublished:
			nPublished++
		}
	}
	total := len(detail)
	switch {
	case nDraft == total:
		return ClassTermStatusDraft
	case nLocked == total:
		return ClassTermStatusLocked
	case nPublished == total:
		return ClassTermStatusPublished
	default:
		return ClassTermStatusPartial
	}
}

// PublishClassTerm menerbitkan seluruh nilai satu class-term sekaligus.
// Hanya boleh saat status agregat persis Locked; kalau tidak, error membawa
// daftar mapel yang masih terbuka.
func (s *GradingService) PublishClassTerm(ctx context.Context, schoolID, classID, termID uuid.UUID, actorID *uuid.UUID) (int64, error) {
	status, detail, err := s.StatusOf(ctx, schoolID, classID, termID)
	if err != nil {
		return 0, err
	}
	if status == ClassTermStatusPublished {
		return 0, ErrAlreadyPublished
	}
	if status != ClassTermStatusLocked {
		open := make([]string, 0, len(detail))
		for _, d := range detail {
			if d.Status == ClassTermStatusDraft {
				open = append(open, d.Slot.SubjectName)
			}
		}
		return 0, &NotAllLockedError{OpenSubjects: open}
	}

	slotIDs := make([]uuid.UUID, 0, len(detail))
	for _, d := range detail {
		slotIDs = append(slotIDs, d.Slot.ID)
	}
	published, err := s.Grades.MarkPublished(ctx, schoolID, classID, termID, slotIDs, time.Now(), actorID)
	if err != nil {
		return 0, err
	}
	log.Printf("[GRADING] publish class-term class=%s term=%s records=%d", classID, termID, published)
	return published, nil
}
