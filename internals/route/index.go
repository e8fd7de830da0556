// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	programRoute "lmsku_backend/internals/features/lms/programs/route"
	quizRoute "lmsku_backend/internals/features/lms/quizzes/route"
	"lmsku_backend/internals/helpers/storage"
	authMiddleware "lmsku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, store storage.AssetStore) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT, read-only
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/p")

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMiddleware.IsTrainingAdmin(),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Program routes...")
	programRoute.ProgramPublicRoutes(public, db, store)
	programRoute.ProgramAdminRoutes(admin, db, store)

	log.Println("[INFO] Mounting Quiz routes...")
	quizRoute.QuizPublicRoutes(public, db)
}
