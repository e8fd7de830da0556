package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	programController "lmsku_backend/internals/features/lms/programs/controller"
	storage "lmsku_backend/internals/helpers/storage"
	middlewares "lmsku_backend/internals/middlewares"
)

// ProgramAdminRoutes = tulis: rakit program, hapus program, staging upload.
func ProgramAdminRoutes(r fiber.Router, db *gorm.DB, store storage.AssetStore) {
	programCtrl := programController.NewProgramController(db, store)
	uploadCtrl := programController.NewUploadController(store)

	r.Post("/programs", middlewares.AssemblyRateLimiter(), programCtrl.Assemble)
	r.Delete("/programs/:id", programCtrl.Delete)
	r.Post("/uploads/temp", uploadCtrl.UploadTemp)
}
