package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	programController "lmsku_backend/internals/features/lms/programs/controller"
	storage "lmsku_backend/internals/helpers/storage"
)

// ProgramPublicRoutes = baca: katalog program + detail graph.
func ProgramPublicRoutes(r fiber.Router, db *gorm.DB, store storage.AssetStore) {
	ctrl := programController.NewProgramController(db, store)

	r.Get("/programs", ctrl.List)
	r.Get("/programs/:id", ctrl.GetByID)
}
