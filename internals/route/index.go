// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "schoolku_backend/internals/middlewares/auth"
	routeDetails "schoolku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	jwtOpts := authMiddleware.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
	}

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	user := app.Group("/api/u", authMiddleware.AuthJWT(jwtOpts))
	routeDetails.SchoolUserRoutes(user, db)

	// ===================== ADMIN / TEACHER (per school) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck per fitur)...")
	admin := app.Group("/api/a", authMiddleware.AuthJWT(jwtOpts))
	routeDetails.SchoolAdminRoutes(admin, db)

	// ===================== UTILS =====================
	app.Get("/api/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"uptime": time.Since(startTime).String(),
		})
	})
}
