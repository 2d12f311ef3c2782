// file: internals/features/school/grading/service/store_gorm.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	termsModel "schoolku_backend/internals/features/school/academics/academic_terms/model"
	schedulesService "schoolku_backend/internals/features/school/academics/schedules/service"
	attendanceService "schoolku_backend/internals/features/school/attendance/service"
	enrollmentsService "schoolku_backend/internals/features/school/classes/enrollments/service"
	model "schoolku_backend/internals/features/school/grading/model"
)

// NewGormGradingService merakit service dengan seluruh kolaborator berbasis
// gorm (dipakai controller; test pakai fake lewat NewGradingService).
func NewGormGradingService(db *gorm.DB) *GradingService {
	return NewGradingService(
		enrollmentsService.NewRosterProvider(db),
		&gormScheduleProvider{inner: schedulesService.NewScheduleProvider(db)},
		attendanceService.NewAggregator(db),
		&gormTermGuard{db: db},
		&gormGradeStore{db: db},
		&gormReportCardStore{db: db},
	)
}

/* ============================================
   ScheduleProvider adapter
============================================ */

type gormScheduleProvider struct {
	inner *schedulesService.ScheduleProvider
}

func (p *gormScheduleProvider) ActiveSlots(ctx context.Context, schoolID, classID, termID uuid.UUID) ([]ScheduleSlot, error) {
	rows, err := p.inner.ActiveSlotModels(ctx, schoolID, classID, termID)
	if err != nil {
		return nil, err
	}
	slots := make([]ScheduleSlot, 0, len(rows))
	for _, r := range rows {
		slots = append(slots, ScheduleSlot{
			ID:          r.ClassScheduleID,
			SubjectName: r.ClassScheduleSubjectName,
		})
	}
	return slots, nil
}

/* ============================================
   TermGuard
============================================ */

type gormTermGuard struct {
	db *gorm.DB
}

func (g *gormTermGuard) IsTermLocked(ctx context.Context, schoolID, termID uuid.UUID) (bool, error) {
	var term termsModel.AcademicTermModel
	err := g.db.WithContext(ctx).
		Where("academic_terms_id = ? AND academic_terms_school_id = ?", termID, schoolID).
		First(&term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrRecordNotFound
	}
	if err != nil {
		return false, err
	}
	return term.AcademicTermsIsLocked, nil
}

/* ============================================
   GradeStore
============================================ */

type gormGradeStore struct {
	db *gorm.DB
}

func (s *gormGradeStore) Get(ctx context.Context, schoolID, studentID, classID, termID, scheduleID uuid.UUID) (*model.GradeRecordModel, error) {
	var rec model.GradeRecordModel
	err := s.db.WithContext(ctx).
		Where("grade_record_school_id = ? AND grade_record_student_id = ? AND grade_record_class_id = ? AND grade_record_term_id = ? AND grade_record_schedule_id = ?",
			schoolID, studentID, classID, termID, scheduleID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *gormGradeStore) GetByID(ctx context.Context, schoolID, recordID uuid.UUID) (*model.GradeRecordModel, error) {
	var rec model.GradeRecordModel
	err := s.db.WithContext(ctx).
		Where("grade_record_id = ? AND grade_record_school_id = ?", recordID, schoolID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert: create kalau belum ber-ID; kalau balapan dengan penulis lain kena
// unique index quad, fallback jadi update (last-writer-wins).
func (s *gormGradeStore) Upsert(ctx context.Context, rec *model.GradeRecordModel) error {
	if rec.GradeRecordID != uuid.Nil {
		return s.db.WithContext(ctx).Save(rec).Error
	}
	err := s.db.WithContext(ctx).Create(rec).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	existing, getErr := s.Get(ctx, rec.GradeRecordSchoolID, rec.GradeRecordStudentID,
		rec.GradeRecordClassID, rec.GradeRecordTermID, rec.GradeRecordScheduleID)
	if getErr != nil {
		return getErr
	}
	if existing == nil {
		return err
	}
	rec.GradeRecordID = existing.GradeRecordID
	rec.GradeRecordCreatedAt = existing.GradeRecordCreatedAt
	return s.db.WithContext(ctx).Save(rec).Error
}

func (s *gormGradeStore) CountBySlot(ctx context.Context, schoolID, classID, termID, scheduleID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.GradeRecordModel{}).
		Where("grade_record_school_id = ? AND grade_record_class_id = ? AND grade_record_term_id = ? AND grade_record_schedule_id = ?",
			schoolID, classID, termID, scheduleID).
		Count(&n).Error
	return n, err
}

func (s *gormGradeStore) ListBySlots(ctx context.Context, schoolID, classID, termID uuid.UUID, scheduleIDs []uuid.UUID) ([]model.GradeRecordModel, error) {
	if len(scheduleIDs) == 0 {
		return nil, nil
	}
	var rows []model.GradeRecordModel
	err := s.db.WithContext(ctx).
		Where("grade_record_school_id = ? AND grade_record_class_id = ? AND grade_record_term_id = ?",
			schoolID, classID, termID).
		Where("grade_record_schedule_id = ANY(?)", pq.Array(scheduleIDs)).
		Find(&rows).Error
	return rows, err
}

func (s *gormGradeStore) ListByStudent(ctx context.Context, schoolID, studentID, classID, termID uuid.UUID) ([]model.GradeRecordModel, error) {
	var rows []model.GradeRecordModel
	err := s.db.WithContext(ctx).
		Where("grade_record_school_id = ? AND grade_record_student_id = ? AND grade_record_class_id = ? AND grade_record_term_id = ?",
			schoolID, studentID, classID, termID).
		Order("grade_record_subject_name_snapshot ASC").
		Find(&rows).Error
	return rows, err
}

func (s *gormGradeStore) MarkLocked(ctx context.Context, schoolID, classID, termID, scheduleID uuid.UUID, at time.Time, by *uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&model.GradeRecordModel{}).
		Where("grade_record_school_id = ? AND grade_record_class_id = ? AND grade_record_term_id = ? AND grade_record_schedule_id = ?",
			schoolID, classID, termID, scheduleID).
		Where("grade_record_status = ?", model.GradeRecordStatusDraft).
		Updates(map[string]any{
			"grade_record_status":     model.GradeRecordStatusLocked,
			"grade_record_locked_at":  at,
			"grade_record_locked_by":  by,
			"grade_record_updated_at": at,
		})
	return res.RowsAffected, res.Error
}

func (s *gormGradeStore) MarkPublished(ctx context.Context, schoolID, classID, termID uuid.UUID, scheduleIDs []uuid.UUID, at time.Time, by *uuid.UUID) (int64, error) {
	if len(scheduleIDs) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&model.GradeRecordModel{}).
		Where("grade_record_school_id = ? AND grade_record_class_id = ? AND grade_record_term_id = ?",
			schoolID, classID, termID).
		Where("grade_record_schedule_id = ANY(?)", pq.Array(scheduleIDs)).
		Where("grade_record_status = ?", model.GradeRecordStatusLocked).
		Updates(map[string]any{
			"grade_record_status":       model.GradeRecordStatusPublished,
			"grade_record_published_at": at,
			"grade_record_published_by": by,
			"grade_record_updated_at":   at,
		})
	return res.RowsAffected, res.Error
}

func (s *gormGradeStore) SoftDelete(ctx context.Context, schoolID, recordID uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("grade_record_id = ? AND grade_record_school_id = ?", recordID, schoolID).
		Delete(&model.GradeRecordModel{})
	return res.RowsAffected > 0, res.Error
}

/* ============================================
   ReportCardStore
============================================ */

type gormReportCardStore struct {
	db *gorm.DB
}

func (s *gormReportCardStore) GetByKey(ctx context.Context, schoolID, studentID, classID, termID uuid.UUID) (*model.ReportCardModel, error) {
	var card model.ReportCardModel
	err := s.db.WithContext(ctx).
		Where("report_card_school_id = ? AND report_card_student_id = ? AND report_card_class_id = ? AND report_card_term_id = ?",
			schoolID, studentID, classID, termID).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *gormReportCardStore) GetByID(ctx context.Context, schoolID, cardID uuid.UUID) (*model.ReportCardModel, error) {
	var card model.ReportCardModel
	err := s.db.WithContext(ctx).
		Where("report_card_id = ? AND report_card_school_id = ?", cardID, schoolID).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *gormReportCardStore) Upsert(ctx context.Context, card *model.ReportCardModel) error {
	if card.ReportCardID != uuid.Nil {
		return s.db.WithContext(ctx).Save(card).Error
	}
	err := s.db.WithContext(ctx).Create(card).Error
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	existing, getErr := s.GetByKey(ctx, card.ReportCardSchoolID, card.ReportCardStudentID,
		card.ReportCardClassID, card.ReportCardTermID)
	if getErr != nil {
		return getErr
	}
	if existing == nil {
		return err
	}
	card.ReportCardID = existing.ReportCardID
	card.ReportCardCreatedAt = existing.ReportCardCreatedAt
	return s.db.WithContext(ctx).Save(card).Error
}

func (s *gormReportCardStore) Save(ctx context.Context, card *model.ReportCardModel) error {
	return s.db.WithContext(ctx).Save(card).Error
}

func (s *gormReportCardStore) ListPublishedByStudent(ctx context.Context, schoolID, studentID uuid.UUID) ([]model.ReportCardModel, error) {
	var rows []model.ReportCardModel
	err := s.db.WithContext(ctx).
		Where("report_card_school_id = ? AND report_card_student_id = ?", schoolID, studentID).
		Where("report_card_is_published = TRUE").
		Order("report_card_created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *gormReportCardStore) Delete(ctx context.Context, schoolID, cardID uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("report_card_id = ? AND report_card_school_id = ?", cardID, schoolID).
		Delete(&model.ReportCardModel{})
	return res.RowsAffected > 0, res.Error
}
