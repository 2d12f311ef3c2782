// file: internals/features/school/academics/academic_terms/controller/academic_terms_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/school/academics/academic_terms/dto"
	model "schoolku_backend/internals/features/school/academics/academic_terms/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type AcademicTermController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAcademicTermController(db *gorm.DB, v *validator.Validate) *AcademicTermController {
	if v == nil {
		v = validator.New()
	}
	return &AcademicTermController{DB: db, Validator: v}
}

/* ============================================
   RESP/ERR helpers
============================================ */

func httpErr(c *fiber.Ctx, code int, msg string) error {
	return helper.JsonError(c, code, msg)
}

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

func (ctl *AcademicTermController) findOwned(c *fiber.Ctx) (*model.AcademicTermModel, uuid.UUID, error) {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	termID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, uuid.Nil, err
	}
	var term model.AcademicTermModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("academic_terms_id = ? AND academic_terms_school_id = ?", termID, schoolID).
		First(&term).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Term tidak ditemukan")
		}
		return nil, uuid.Nil, err
	}
	return &term, schoolID, nil
}

/* ============================================
   CREATE
   POST /admin/academic-terms
============================================ */

func (ctl *AcademicTermController) Create(c *fiber.Ctx) error {
	var p dto.AcademicTermCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if p.AcademicTermsEndDate.Before(p.AcademicTermsStartDate) {
		return httpErr(c, fiber.StatusBadRequest, "Tanggal akhir harus >= tanggal mulai")
	}

	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}

	ent := p.ToModel(schoolID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Term dibuat", dto.FromModel(ent))
}

/* ============================================
   PATCH
   PATCH /admin/academic-terms/:id
============================================ */

func (ctl *AcademicTermController) Patch(c *fiber.Ctx) error {
	term, _, err := ctl.findOwned(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}

	var p dto.AcademicTermUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.ApplyUpdates(term)

	if term.AcademicTermsEndDate.Before(term.AcademicTermsStartDate) {
		return httpErr(c, fiber.StatusBadRequest, "Tanggal akhir harus >= tanggal mulai")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(term).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Term diperbarui", dto.FromModel(*term))
}

/* ============================================
   DELETE (soft)
   DELETE /admin/academic-terms/:id
============================================ */

func (ctl *AcademicTermController) Delete(c *fiber.Ctx) error {
	term, schoolID, err := ctl.findOwned(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}
	if term.AcademicTermsIsLocked {
		return httpErr(c, fiber.StatusConflict, "Term terkunci tidak bisa dihapus")
	}

	if err := ctl.DB.WithContext(c.UserContext()).
		Where("academic_terms_school_id = ?", schoolID).
		Delete(term).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Term dihapus", fiber.Map{"academic_terms_id": term.AcademicTermsID})
}

/* ============================================
   LIST
   GET /admin/academic-terms  (atau /u, read-only)
============================================ */

func (ctl *AcademicTermController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.WithContext(c.UserContext()).
		Model(&model.AcademicTermModel{}).
		Where("academic_terms_school_id = ?", schoolID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.AcademicTermModel
	if err := q.Order("academic_terms_start_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}

	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar term", dto.FromModels(rows), &pg)
}

/* ============================================
   LOCK / UNLOCK administratif
   POST /admin/academic-terms/:id/lock
   POST /admin/academic-terms/:id/unlock
============================================ */

func (ctl *AcademicTermController) Lock(c *fiber.Ctx) error {
	term, _, err := ctl.findOwned(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}

	term.MarkLocked(helperAuth.GetActorID(c), time.Now())
	if err := ctl.DB.WithContext(c.UserContext()).Save(term).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Term dikunci", dto.FromModel(*term))
}

func (ctl *AcademicTermController) Unlock(c *fiber.Ctx) error {
	term, _, err := ctl.findOwned(c)
	if err != nil {
		fe := &fiber.Error{}
		if errors.As(err, &fe) {
			return httpErr(c, fe.Code, fe.Message)
		}
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}

	term.ClearLock()
	if err := ctl.DB.WithContext(c.UserContext()).Save(term).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Term dibuka kembali", dto.FromModel(*term))
}
