package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	programModel "lmsku_backend/internals/features/lms/programs/model"
	quizModel "lmsku_backend/internals/features/lms/quizzes/model"
)

// Default header quiz saat create (caller boleh override lewat payload).
const (
	defaultPretestTimeLimit  = 30 // menit; pretest diagnostik, singkat
	defaultPosttestTimeLimit = 60
)

type quizDefaults struct {
	TimeLimitMinutes *int
	PassingScore     *int
}

// getOrCreateQuiz = find-by-(program,type) lalu create-if-absent.
// Unique index (quiz_program_id, quiz_type) adalah backstop kalau dua
// assembly balapan: create yang kalah jatuh ke find ulang, bukan crash.
func getOrCreateQuiz(tx *gorm.DB, program *programModel.ProgramModel, qType string, d quizDefaults) (*quizModel.QuizModel, error) {
	var existing quizModel.QuizModel
	err := tx.First(&existing, "quiz_program_id = ? AND quiz_type = ?", program.ProgramID, qType).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	quiz := quizModel.QuizModel{
		QuizProgramID:        program.ProgramID,
		QuizType:             qType,
		QuizTitle:            quizTitleFor(program.ProgramTitle, qType),
		QuizTimeLimitMinutes: defaultPosttestTimeLimit,
		QuizPassingScore:     program.ProgramPassingGrade,
		QuizQuestionCount:    0,
	}
	if qType == quizModel.QuizTypePretest {
		quiz.QuizTimeLimitMinutes = defaultPretestTimeLimit
		quiz.QuizPassingScore = 0 // pretest diagnostik, tidak gating
	}
	if d.TimeLimitMinutes != nil {
		quiz.QuizTimeLimitMinutes = *d.TimeLimitMinutes
	}
	if d.PassingScore != nil {
		quiz.QuizPassingScore = *d.PassingScore
	}

	if err := tx.Create(&quiz).Error; err != nil {
		if isDuplicateKey(err) {
			var again quizModel.QuizModel
			if ferr := tx.First(&again, "quiz_program_id = ? AND quiz_type = ?", program.ProgramID, qType).Error; ferr == nil {
				return &again, nil
			}
		}
		return nil, err
	}
	return &quiz, nil
}

func quizTitleFor(programTitle, qType string) string {
	if qType == quizModel.QuizTypePretest {
		return programTitle + " - Pre-Test"
	}
	return programTitle + " - Post-Test"
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// finalizeQuizCounts menghitung ulang cache quiz_question_count dari soal
// yang benar-benar tersimpan. Idempotent — aman dijalankan berulang.
func finalizeQuizCounts(tx *gorm.DB, programID uuid.UUID) error {
	var quizzes []quizModel.QuizModel
	if err := tx.Find(&quizzes, "quiz_program_id = ?", programID).Error; err != nil {
		return err
	}
	for i := range quizzes {
		var count int64
		if err := tx.Model(&quizModel.QuestionModel{}).
			Where("question_quiz_id = ?", quizzes[i].QuizID).
			Count(&count).Error; err != nil {
			return err
		}
		if err := tx.Model(&quizModel.QuizModel{}).
			Where("quiz_id = ?", quizzes[i].QuizID).
			Update("quiz_question_count", int(count)).Error; err != nil {
			return err
		}
	}
	return nil
}
