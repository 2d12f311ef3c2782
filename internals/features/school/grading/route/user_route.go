// file: internals/features/school/grading/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradingCtl "schoolku_backend/internals/features/school/grading/controller"
)

// ================================
// User routes (read-only) — siswa login
// Base: /api/u
// ================================
func GradingUserRoutes(user fiber.Router, db *gorm.DB) {
	reportCtl := gradingCtl.NewReportCardController(db, nil)

	// hanya rapor yang sudah terbit
	user.Get("/report-cards", reportCtl.ListMine)
}
