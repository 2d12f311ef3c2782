// file: internals/features/school/grading/controller/grade_export_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	export "schoolku_backend/internals/features/school/grading/export"
	model "schoolku_backend/internals/features/school/grading/model"
	service "schoolku_backend/internals/features/school/grading/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

/* ============================================
   Export XLSX: rekap nilai per mapel & rekap rapor per kelas
============================================ */

type GradeExportController struct {
	DB      *gorm.DB
	Service *service.GradingService
}

func NewGradeExportController(db *gorm.DB) *GradeExportController {
	return &GradeExportController{
		DB:      db,
		Service: service.NewGormGradingService(db),
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

/* ============================================
   GET /admin/grade-records/export?class_id=&term_id=&schedule_id=
============================================ */

func (ctl *GradeExportController) ExportGradeSheet(c *fiber.Ctx) error {
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
	scheduleID, err := helper.ParseUUIDQuery(c, "schedule_id")
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, err.Error())
	}

	records, err := ctl.Service.Grades.ListBySlots(c.UserContext(), schoolID, classID, termID, []uuid.UUID{scheduleID})
	if err != nil {
		return svcErr(c, err)
	}
	subjectName := ""
	if len(records) > 0 {
		subjectName = records[0].GradeRecordSubjectNameSnapshot
	}

	f, err := export.BuildGradeSheet(subjectName, records)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="rekap-nilai.xlsx"`)
	return c.Send(buf.Bytes())
}

/* ============================================
   GET /admin/report-cards/export?class_id=&term_id=
============================================ */

func (ctl *GradeExportController) ExportReportCardRecap(c *fiber.Ctx) error {
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

	var cards []model.ReportCardModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("report_card_school_id = ? AND report_card_class_id = ? AND report_card_term_id = ?",
			schoolID, classID, termID).
		Order("report_card_student_id ASC").
		Find(&cards).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}

	f, err := export.BuildReportCardRecap(cards)
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return httpErr(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="rekap-rapor.xlsx"`)
	return c.Send(buf.Bytes())
}
