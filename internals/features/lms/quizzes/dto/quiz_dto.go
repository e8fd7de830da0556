package dto

import (
	"time"

	"github.com/google/uuid"

	"lmsku_backend/internals/features/lms/quizzes/model"
)

// ============================
// Response DTO
// ============================

type QuizResponse struct {
	QuizID               uuid.UUID `json:"quiz_id"`
	QuizProgramID        uuid.UUID `json:"quiz_program_id"`
	QuizType             string    `json:"quiz_type"`
	QuizTitle            string    `json:"quiz_title"`
	QuizTimeLimitMinutes int       `json:"quiz_time_limit_minutes"`
	QuizPassingScore     int       `json:"quiz_passing_score"`
	QuizQuestionCount    int       `json:"quiz_question_count"`
	QuizCreatedAt        time.Time `json:"quiz_created_at"`
}

func ToQuizResponse(m *model.QuizModel) QuizResponse {
	return QuizResponse{
		QuizID:               m.QuizID,
		QuizProgramID:        m.QuizProgramID,
		QuizType:             m.QuizType,
		QuizTitle:            m.QuizTitle,
		QuizTimeLimitMinutes: m.QuizTimeLimitMinutes,
		QuizPassingScore:     m.QuizPassingScore,
		QuizQuestionCount:    m.QuizQuestionCount,
		QuizCreatedAt:        m.QuizCreatedAt,
	}
}

type QuestionResponse struct {
	QuestionID          uuid.UUID              `json:"question_id"`
	QuestionQuizID      uuid.UUID              `json:"question_quiz_id"`
	QuestionText        string                 `json:"question_text"`
	QuestionOptions     []model.QuestionOption `json:"question_options"`
	QuestionCorrect     string                 `json:"question_correct"`
	QuestionExplanation string                 `json:"question_explanation,omitempty"`
	QuestionImageURL    *string                `json:"question_image_url,omitempty"`
	QuestionDifficulty  string                 `json:"question_difficulty"`
	QuestionOrder       int                    `json:"question_order"`
}

func ToQuestionResponse(m *model.QuestionModel) QuestionResponse {
	opts, err := m.Options()
	var list []model.QuestionOption
	if err == nil {
		list = opts[:]
	}
	return QuestionResponse{
		QuestionID:          m.QuestionID,
		QuestionQuizID:      m.QuestionQuizID,
		QuestionText:        m.QuestionText,
		QuestionOptions:     list,
		QuestionCorrect:     m.QuestionCorrect,
		QuestionExplanation: m.QuestionExplanation,
		QuestionImageURL:    m.QuestionImageURL,
		QuestionDifficulty:  m.QuestionDifficulty,
		QuestionOrder:       m.QuestionOrder,
	}
}
