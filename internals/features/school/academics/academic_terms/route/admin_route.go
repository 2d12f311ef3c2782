// file: internals/features/school/academics/academic_terms/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	academicTermCtl "schoolku_backend/internals/features/school/academics/academic_terms/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func AcademicTermsAdminRoutes(api fiber.Router, db *gorm.DB) {
	termCtl := academicTermCtl.NewAcademicTermController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("mengelola academic terms"),
			constants.AdminAndAbove,
		),
	)

	base.Post("/academic-terms", termCtl.Create)
	base.Get("/academic-terms", termCtl.List)
	base.Patch("/academic-terms/:id", termCtl.Patch)
	base.Delete("/academic-terms/:id", termCtl.Delete)

	// Kunci administratif (precondition hapus nilai)
	base.Post("/academic-terms/:id/lock", termCtl.Lock)
	base.Post("/academic-terms/:id/unlock", termCtl.Unlock)
}
