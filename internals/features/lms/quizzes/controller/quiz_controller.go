package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lmsku_backend/internals/features/lms/quizzes/dto"
	"lmsku_backend/internals/features/lms/quizzes/model"
	helper "lmsku_backend/internals/helpers"
)

// Read-side untuk graph hasil assembly (dipakai dashboard & exporter).
type QuizController struct {
	DB *gorm.DB
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{DB: db}
}

// GET /api/p/programs/:id/quizzes
func (ctrl *QuizController) GetProgramQuizzes(c *fiber.Ctx) error {
	programID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "program_id tidak valid")
	}

	var quizzes []model.QuizModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("quiz_type ASC").
		Find(&quizzes, "quiz_program_id = ?", programID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil quiz")
	}

	resp := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		resp = append(resp, dto.ToQuizResponse(&quizzes[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}

// GET /api/p/programs/:id/quizzes/:type/questions
func (ctrl *QuizController) GetQuizQuestions(c *fiber.Ctx) error {
	programID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "program_id tidak valid")
	}
	qType := c.Params("type")
	if !model.IsValidQuizType(qType) {
		return helper.JsonError(c, fiber.StatusBadRequest, "quiz_type harus pretest/posttest")
	}

	var quiz model.QuizModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&quiz, "quiz_program_id = ? AND quiz_type = ?", programID, qType).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
	}

	var questions []model.QuestionModel
	if err := ctrl.DB.Order("question_order ASC").
		Find(&questions, "question_quiz_id = ?", quiz.QuizID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}

	resp := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, dto.ToQuestionResponse(&questions[i]))
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"quiz":      dto.ToQuizResponse(&quiz),
		"questions": resp,
	})
}
