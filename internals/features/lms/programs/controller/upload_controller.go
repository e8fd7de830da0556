package controller

import (
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "lmsku_backend/internals/helpers"
	storage "lmsku_backend/internals/helpers/storage"
)

// UploadController menerima staging upload untuk form multi-step:
// file masuk temp/ dulu, baru dipindah permanen saat assembly di-commit.
// Temp yang tidak pernah dipakai dibersihkan reaper.
type UploadController struct {
	Store storage.AssetStore
}

func NewUploadController(store storage.AssetStore) *UploadController {
	return &UploadController{Store: store}
}

// POST /api/a/uploads/temp
func (ctrl *UploadController) UploadTemp(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gunakan multipart/form-data")
	}

	fh := helper.PickFile(form, "file", "upload", "attachment")
	if fh == nil || fh.Size == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak ditemukan")
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}

	ext := storage.ExtFromFilename(fh.Filename)
	if ext == "" {
		ext = storage.ExtForMIME(fh.Header.Get("Content-Type"), data)
	}

	path := storage.ObjectPath(storage.DirTemp, ext)
	if err := ctrl.Store.Write(c.UserContext(), path, data); err != nil {
		log.Printf("[UPLOADS][TEMP] gagal tulis: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal menyimpan file")
	}

	return helper.JsonCreated(c, "File staging tersimpan", fiber.Map{
		"temp_path":     path,
		"original_name": fh.Filename,
		"size":          len(data),
	})
}
