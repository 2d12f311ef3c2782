// file: internals/features/school/grading/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	gradingCtl "schoolku_backend/internals/features/school/grading/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// GradingTeacherRoutes: seluruh mutasi grading (input nilai, lock, publish,
// rapor, export) — guru ke atas.
func GradingTeacherRoutes(api fiber.Router, db *gorm.DB) {
	recordCtl := gradingCtl.NewGradeRecordController(db, nil)
	lifecycleCtl := gradingCtl.NewGradeLifecycleController(db, nil)
	reportCtl := gradingCtl.NewReportCardController(db, nil)
	exportCtl := gradingCtl.NewGradeExportController(db)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorTeacher("mengelola nilai"),
			constants.TeacherAndAbove,
		),
	)

	// GradeRecord: input (create+edit satu operasi), list, hapus
	base.Post("/grade-records", recordCtl.Submit)
	base.Get("/grade-records", recordCtl.ListByStudent)
	base.Delete("/grade-records/:id", recordCtl.Delete)

	// Lifecycle per slot jadwal
	base.Post("/grade-records/lock", lifecycleCtl.Lock)
	base.Post("/grade-records/publish", lifecycleCtl.Publish)

	// Level class-term
	base.Get("/class-terms/status", lifecycleCtl.ClassTermStatus)
	base.Post("/class-terms/publish", lifecycleCtl.PublishClassTerm)

	// Rapor
	base.Post("/report-cards/generate", reportCtl.Generate)
	base.Post("/report-cards/:id/publish", reportCtl.Publish)
	base.Post("/report-cards/:id/unpublish", reportCtl.Unpublish)
	base.Delete("/report-cards/:id", reportCtl.Delete)

	// Export XLSX
	base.Get("/grade-records/export", exportCtl.ExportGradeSheet)
	base.Get("/report-cards/export", exportCtl.ExportReportCardRecap)
}
