package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuizTypePretest  = "pretest"
	QuizTypePosttest = "posttest"
)

func IsValidQuizType(t string) bool {
	return t == QuizTypePretest || t == QuizTypePosttest
}

// QuizModel = quiz header per (program, type). Uniqueness pasangan itu
// load-bearing: backstop terakhir kalau dua assembly balapan membuat header.
type QuizModel struct {
	QuizID               uuid.UUID `gorm:"column:quiz_id;type:uuid;primaryKey" json:"quiz_id"`
	QuizProgramID        uuid.UUID `gorm:"column:quiz_program_id;type:uuid;not null;uniqueIndex:uq_quizzes_program_type" json:"quiz_program_id"`
	QuizType             string    `gorm:"column:quiz_type;type:varchar(10);not null;uniqueIndex:uq_quizzes_program_type" json:"quiz_type"`
	QuizTitle            string    `gorm:"column:quiz_title;type:varchar(255);not null" json:"quiz_title"`
	QuizTimeLimitMinutes int       `gorm:"column:quiz_time_limit_minutes;not null" json:"quiz_time_limit_minutes"`
	QuizPassingScore     int       `gorm:"column:quiz_passing_score;not null;default:0" json:"quiz_passing_score"`

	// Cache dari count(questions where quiz_id = this); dihitung ulang setelah
	// bulk insert, jangan dipercaya sebagai ground truth di jalur lain.
	QuizQuestionCount int `gorm:"column:quiz_question_count;not null;default:0" json:"quiz_question_count"`

	QuizCreatedAt time.Time `gorm:"column:quiz_created_at;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time `gorm:"column:quiz_updated_at;autoUpdateTime" json:"quiz_updated_at"`
}

func (QuizModel) TableName() string {
	return "quizzes"
}

func (m *QuizModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuizID == uuid.Nil {
		m.QuizID = uuid.New()
	}
	return nil
}
