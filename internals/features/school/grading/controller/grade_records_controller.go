// file: internals/features/school/grading/controller/grade_records_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/school/grading/dto"
	service "schoolku_backend/internals/features/school/grading/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type GradeRecordController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.GradingService
}

func NewGradeRecordController(db *gorm.DB, v *validator.Validate) *GradeRecordController {
	if v == nil {
		v = validator.New()
	}
	return &GradeRecordController{
		DB:        db,
		Validator: v,
		Service:   service.NewGormGradingService(db),
	}
}

/* ============================================
   RESP/ERR helpers
============================================ */

func httpErr(c *fiber.Ctx, code int, msg string) error {
	return helper.JsonError(c, code, msg)
}

// svcErr memetakan error service ke status lewat set error tertutup.
func svcErr(c *fiber.Ctx, err error) error {
	return helper.JsonError(c, service.HTTPStatus(err), err.Error())
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

/* ============================================
   SUBMIT (create + edit, satu operasi)
   POST /admin/grade-records
============================================ */

func (ctl *GradeRecordController) Submit(c *fiber.Ctx) error {
	var p dto.GradeSubmitDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	in, err := p.ToInput(schoolID)
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID bukan UUID yang valid")
	}

	rec, err := ctl.Service.SubmitGrade(c.UserContext(), in)
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonOK(c, "Nilai tersimpan", dto.FromGradeRecordModel(*rec))
}

/* ============================================
   LIST nilai satu siswa dalam satu class-term
   GET /admin/grade-records?student_id=&class_id=&term_id=
============================================ */

func (ctl *GradeRecordController) ListByStudent(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	studentID, err := helper.ParseUUIDQuery(c, "student_id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}
	classID, err := helper.ParseUUIDQuery(c, "class_id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}
	termID, err := helper.ParseUUIDQuery(c, "term_id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}

	rows, err := ctl.Service.Grades.ListByStudent(c.UserContext(), schoolID, studentID, classID, termID)
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonList(c, "Daftar nilai", dto.FromGradeRecordModels(rows), nil)
}

/* ============================================
   DELETE
   DELETE /admin/grade-records/:id
============================================ */

func (ctl *GradeRecordController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	recordID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.Service.DeleteGradeRecord(c.UserContext(), schoolID, recordID); err != nil {
		return svcErr(c, err)
	}
	return helper.JsonDeleted(c, "Nilai dihapus", fiber.Map{"grade_record_id": recordID})
}
