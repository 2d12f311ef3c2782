// file: internals/features/school/grading/controller/grade_lifecycle_controller.go
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
   Controller lifecycle: lock & publish per slot,
   status + publish serentak level class-term
============================================ */

type GradeLifecycleController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.GradingService
}

func NewGradeLifecycleController(db *gorm.DB, v *validator.Validate) *GradeLifecycleController {
	if v == nil {
		v = validator.New()
	}
	return &GradeLifecycleController{
		DB:        db,
		Validator: v,
		Service:   service.NewGormGradingService(db),
	}
}

/* ============================================
   LOCK satu slot jadwal (mapel)
   POST /admin/grade-records/lock
============================================ */

func (ctl *GradeLifecycleController) Lock(c *fiber.Ctx) error {
	var p dto.GradeSlotDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, termID, scheduleID, err := p.ParseIDs()
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID bukan UUID yang valid")
	}

	res, err := ctl.Service.Lock(c.UserContext(), schoolID, classID, termID, scheduleID, helperAuth.GetActorID(c))
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonOK(c, "Nilai dikunci", res)
}

/* ============================================
   PUBLISH satu slot jadwal (mapel)
   POST /admin/grade-records/publish
============================================ */

func (ctl *GradeLifecycleController) Publish(c *fiber.Ctx) error {
	var p dto.GradeSlotDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, termID, scheduleID, err := p.ParseIDs()
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID bukan UUID yang valid")
	}

	n, err := ctl.Service.Publish(c.UserContext(), schoolID, classID, termID, scheduleID, helperAuth.GetActorID(c))
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonOK(c, "Nilai diterbitkan", fiber.Map{"published": n})
}

/* ============================================
   STATUS agregat class-term
   GET /admin/class-terms/status?class_id=&term_id=
============================================ */

func (ctl *GradeLifecycleController) ClassTermStatus(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := helper.ParseUUIDQuery(c, "class_id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}
	termID, err := helper.ParseUUIDQuery(c, "term_id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}

	status, detail, err := ctl.Service.StatusOf(c.UserContext(), schoolID, classID, termID)
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonOK(c, "Status class-term", fiber.Map{
		"status": status,
		"slots":  detail,
	})
}

/* ============================================
   PUBLISH serentak seluruh class-term
   POST /admin/class-terms/publish
============================================ */

func (ctl *GradeLifecycleController) PublishClassTerm(c *fiber.Ctx) error {
	var p dto.ClassTermDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, termID, err := p.ParseIDs()
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID bukan UUID yang valid")
	}

	n, err := ctl.Service.PublishClassTerm(c.UserContext(), schoolID, classID, termID, helperAuth.GetActorID(c))
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonOK(c, "Class-term diterbitkan", fiber.Map{"published": n})
}
