// file: internals/features/school/grading/controller/report_cards_controller.go
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

type ReportCardController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.GradingService
}

func NewReportCardController(db *gorm.DB, v *validator.Validate) *ReportCardController {
	if v == nil {
		v = validator.New()
	}
	return &ReportCardController{
		DB:        db,
		Validator: v,
		Service:   service.NewGormGradingService(db),
	}
}

/* ============================================
   GENERATE (regenerasi selalu reset publish)
   POST /admin/report-cards/generate
============================================ */

func (ctl *ReportCardController) Generate(c *fiber.Ctx) error {
	var p dto.ReportCardGenerateDTO
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

	card, err := ctl.Service.GenerateReportCard(c.UserContext(), in)
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonOK(c, "Rapor digenerate", dto.FromReportCardModel(*card))
}

/* ============================================
   PUBLISH / UNPUBLISH
   POST /admin/report-cards/:id/publish
   POST /admin/report-cards/:id/unpublish
============================================ */

func (ctl *ReportCardController) Publish(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	cardID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}

	card, err := ctl.Service.PublishReportCard(c.UserContext(), schoolID, cardID, helperAuth.GetActorID(c))
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonUpdated(c, "Rapor diterbitkan", dto.FromReportCardModel(*card))
}

func (ctl *ReportCardController) Unpublish(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	cardID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}

	card, err := ctl.Service.UnpublishReportCard(c.UserContext(), schoolID, cardID, helperAuth.GetActorID(c))
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonUpdated(c, "Rapor ditarik dari publikasi", dto.FromReportCardModel(*card))
}

/* ============================================
   DELETE
   DELETE /admin/report-cards/:id
============================================ */

func (ctl *ReportCardController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	cardID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.Service.DeleteReportCard(c.UserContext(), schoolID, cardID); err != nil {
		return svcErr(c, err)
	}
	return helper.JsonDeleted(c, "Rapor dihapus", fiber.Map{"report_card_id": cardID})
}

/* ============================================
   LIST rapor terbit milik siswa login
   GET /u/report-cards
============================================ */

func (ctl *ReportCardController) ListMine(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetActiveSchoolID(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return httpErr(c, fiber.StatusUnauthorized, err.Error())
	}

	rows, err := ctl.Service.ListPublishedReportCards(c.UserContext(), schoolID, studentID)
	if err != nil {
		return svcErr(c, err)
	}
	return helper.JsonList(c, "Daftar rapor", dto.FromReportCardModels(rows), nil)
}
