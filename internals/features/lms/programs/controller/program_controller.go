package controller

import (
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/features/lms/programs/dto"
	"lmsku_backend/internals/features/lms/programs/model"
	"lmsku_backend/internals/features/lms/programs/service"
	quizDto "lmsku_backend/internals/features/lms/quizzes/dto"
	quizModel "lmsku_backend/internals/features/lms/quizzes/model"
	helper "lmsku_backend/internals/helpers"
	storage "lmsku_backend/internals/helpers/storage"
)

type ProgramController struct {
	DB        *gorm.DB
	Store     storage.AssetStore
	Assembler *service.AssemblyService
}

func NewProgramController(db *gorm.DB, store storage.AssetStore) *ProgramController {
	return &ProgramController{
		DB:        db,
		Store:     store,
		Assembler: service.NewAssemblyService(db, store),
	}
}

// =============================
// 🏗️ Assemble (create program + materials + quizzes + questions, all-or-nothing)
// =============================

// POST /api/a/programs
func (ctrl *ProgramController) Assemble(c *fiber.Ctx) error {
	var req dto.AssembleProgramRequest

	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	if strings.HasPrefix(ct, "multipart/form-data") {
		// Bagian non-file dikirim sebagai JSON di field "payload";
		// file dikirim out-of-band ber-index, direkonsiliasi di sini.
		raw := c.FormValue("payload")
		if strings.TrimSpace(raw) == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Field payload wajib diisi (JSON)")
		}
		if err := sonic.Unmarshal([]byte(raw), &req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload JSON tidak valid")
		}

		form, err := c.MultipartForm()
		if err != nil || form == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Multipart form tidak valid")
		}
		attachFormFiles(&req, form)
	} else {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}

	program, err := ctrl.Assembler.Assemble(c.UserContext(), &req)
	if err != nil {
		return assemblyErrorResponse(c, err)
	}

	return helper.JsonCreated(c, "Program training berhasil dibuat", dto.ToProgramResponse(program))
}

// attachFormFiles merekonsiliasi file multipart ber-index dengan entry JSON
// pada index yang sama (struktur paralel out-of-band).
func attachFormFiles(req *dto.AssembleProgramRequest, form *multipart.Form) {
	req.ProgramCoverFile = helper.PickFile(form, "program_cover", "cover", "image")

	for idx, fh := range helper.CollectIndexedFiles(form, "material_file") {
		if idx >= 0 && idx < len(req.Materials) {
			req.Materials[idx].MaterialFile = fh
		}
	}
	for idx, fh := range helper.CollectIndexedFiles(form, "question_image") {
		if idx >= 0 && idx < len(req.Questions) {
			req.Questions[idx].QuestionImageFile = fh
		}
	}
	for idx, fh := range helper.CollectIndexedFiles(form, "pretest_question_image") {
		if idx >= 0 && idx < len(req.PretestQuestions) {
			req.PretestQuestions[idx].QuestionImageFile = fh
		}
	}
	for idx, fh := range helper.CollectIndexedFiles(form, "posttest_question_image") {
		if idx >= 0 && idx < len(req.PosttestQuestions) {
			req.PosttestQuestions[idx].QuestionImageFile = fh
		}
	}
}

// assemblyErrorResponse memetakan taxonomy pipeline ke HTTP response.
func assemblyErrorResponse(c *fiber.Ctx, err error) error {
	ae, ok := service.AsAssemblyError(err)
	if !ok {
		log.Printf("[PROGRAMS][ASSEMBLE] error tak terduga: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan program")
	}

	log.Printf("[PROGRAMS][ASSEMBLE] gagal: %v", ae)

	// Error validator.v10 → envelope field errors standar
	var ve validator.ValidationErrors
	if ae.Kind == service.KindValidationFailed && errors.As(ae.Err, &ve) {
		return helper.JsonValidationError(c, ve)
	}
	return helper.JsonErrorWithCode(c, ae.HTTPStatus(), string(ae.Kind), ae.Message())
}

// =============================
// 🔍 Get By ID (program + graph hasil rakitan)
// =============================

// GET /api/p/programs/:id
func (ctrl *ProgramController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "program_id tidak valid")
	}

	var program model.ProgramModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&program, "program_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Program tidak ditemukan")
	}

	var materials []model.MaterialModel
	if err := ctrl.DB.Order("material_order ASC").
		Find(&materials, "material_program_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materials")
	}

	var quizzes []quizModel.QuizModel
	if err := ctrl.DB.Order("quiz_type ASC").
		Find(&quizzes, "quiz_program_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil quizzes")
	}

	matResp := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		matResp = append(matResp, dto.ToMaterialResponse(&materials[i]))
	}
	quizResp := make([]quizDto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		quizResp = append(quizResp, quizDto.ToQuizResponse(&quizzes[i]))
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"program":   dto.ToProgramResponse(&program),
		"materials": matResp,
		"quizzes":   quizResp,
	})
}

// =============================
// 📄 List (paginated)
// =============================

// GET /api/p/programs
func (ctrl *ProgramController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ProgramModel{})
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("program_category = ?", cat)
	}
	if c.QueryBool("active_only", false) {
		q = q.Where("program_is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung program")
	}

	var programs []model.ProgramModel
	if err := q.Order("program_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&programs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil program")
	}

	resp := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		resp = append(resp, dto.ToProgramResponse(&programs[i]))
	}

	return helper.JsonList(c, "ok", resp, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =============================
// 🗑️ Delete (program + children + file pendukung)
// =============================

// DELETE /api/a/programs/:id
func (ctrl *ProgramController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "program_id tidak valid")
	}

	var program model.ProgramModel
	if err := ctrl.DB.First(&program, "program_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Program tidak ditemukan")
	}

	// Kumpulkan path file SEBELUM row-nya hilang
	var paths []string
	if program.ProgramCoverPath != nil {
		paths = append(paths, *program.ProgramCoverPath)
	}
	var materials []model.MaterialModel
	if err := ctrl.DB.Find(&materials, "material_program_id = ?", id).Error; err == nil {
		for i := range materials {
			if materials[i].MaterialFilePath != nil {
				paths = append(paths, *materials[i].MaterialFilePath)
			}
		}
	}
	var questions []quizModel.QuestionModel
	if err := ctrl.DB.Find(&questions, "question_program_id = ?", id).Error; err == nil {
		for i := range questions {
			if questions[i].QuestionImagePath != nil {
				paths = append(paths, *questions[i].QuestionImagePath)
			}
		}
	}

	// Hapus seluruh graph dalam satu transaksi
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&quizModel.QuestionModel{}, "question_program_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&quizModel.QuizModel{}, "quiz_program_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.MaterialModel{}, "material_program_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ProgramModel{}, "program_id = ?", id).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus program")
	}

	// File dihapus SETELAH commit (row yang menunjuknya sudah tidak ada);
	// kegagalan di sini = drift yang harus kelihatan di log, bukan ditelan.
	for _, p := range paths {
		if err := ctrl.Store.Delete(c.UserContext(), p); err != nil {
			log.Printf("[PROGRAMS][DELETE] ❌ gagal hapus file: path=%s err=%v", p, err)
		}
	}

	return helper.JsonDeleted(c, "Program berhasil dihapus", fiber.Map{"program_id": id})
}
