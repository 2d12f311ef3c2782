// file: internals/route/details/school_routes.go
package details

import (
	AcademicTermsRoutes "schoolku_backend/internals/features/school/academics/academic_terms/route"
	GradingRoutes "schoolku_backend/internals/features/school/grading/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== ADMIN / TEACHER ===================== */
// Base: /api/a — token wajib, role dicek per fitur
func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	AcademicTermsRoutes.AcademicTermsAdminRoutes(r, db)
	GradingRoutes.GradingTeacherRoutes(r, db)
}

/* ===================== USER (PRIVATE) ===================== */
// Base: /api/u — siswa login, read-only
func SchoolUserRoutes(r fiber.Router, db *gorm.DB) {
	GradingRoutes.GradingUserRoutes(r, db)
}
