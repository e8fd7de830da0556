package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizController "lmsku_backend/internals/features/lms/quizzes/controller"
)

// QuizPublicRoutes = baca quiz header + soal per program.
func QuizPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := quizController.NewQuizController(db)

	r.Get("/programs/:id/quizzes", ctrl.GetProgramQuizzes)
	r.Get("/programs/:id/quizzes/:type/questions", ctrl.GetQuizQuestions)
}
