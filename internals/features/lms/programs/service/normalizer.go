package service

import (
	"fmt"

	"lmsku_backend/internals/features/lms/programs/dto"
	quizModel "lmsku_backend/internals/features/lms/quizzes/model"
)

// ============================
// Submission union + shape
// ============================

type SubmissionShape int

const (
	ShapeEmpty SubmissionShape = iota
	ShapeUnified
	ShapeSeparated
	ShapeConflict
)

// QuestionSubmission = tagged union dua format pengiriman soal.
// Format (a): Unified — tiap entry bawa question_type sendiri.
// Format (b): Separated — dua list, implisit pretest & posttest.
type QuestionSubmission struct {
	Unified  []dto.QuestionEntry
	Pretest  []dto.QuestionEntry
	Posttest []dto.QuestionEntry
}

func (s QuestionSubmission) Shape() SubmissionShape {
	hasUnified := len(s.Unified) > 0
	hasSeparated := len(s.Pretest) > 0 || len(s.Posttest) > 0
	switch {
	case hasUnified && hasSeparated:
		return ShapeConflict
	case hasUnified:
		return ShapeUnified
	case hasSeparated:
		return ShapeSeparated
	default:
		return ShapeEmpty
	}
}

// ============================
// Canonical question
// ============================

// CanonicalQuestion = hasil normalisasi: bertipe, berurutan, siap dipersist.
type CanonicalQuestion struct {
	Type        string // pretest | posttest
	Order       int    // 1-based per type, stabil sesuai urutan submit
	Text        string
	OptionTexts [4]string
	Correct     string
	Explanation string
	Difficulty  string
	Image       AssetInput
}

// ============================
// Normalizer
// ============================

// NormalizeQuestions meleburkan kedua format ke satu list kanonik.
// Dua format terisi bersamaan = error caller (ConflictingFormat), bukan
// ambiguitas yang coba ditebak. Entry dengan teks kosong = baris placeholder
// dari sparse form, dilewati diam-diam.
func NormalizeQuestions(sub QuestionSubmission) ([]CanonicalQuestion, error) {
	switch sub.Shape() {
	case ShapeEmpty:
		return nil, nil

	case ShapeConflict:
		return nil, conflictingFormatErr()

	case ShapeUnified:
		var out []CanonicalQuestion
		counter := map[string]int{}
		for i, e := range sub.Unified {
			if e.IsPlaceholder() {
				continue
			}
			if !quizModel.IsValidQuizType(e.QuestionType) {
				return nil, validationErr(
					fmt.Sprintf("questions[%d].question_type", i),
					fmt.Errorf("question_type harus pretest/posttest, dapat %q", e.QuestionType),
				)
			}
			counter[e.QuestionType]++
			cq, err := toCanonical(e, e.QuestionType, counter[e.QuestionType], fmt.Sprintf("questions[%d]", i))
			if err != nil {
				return nil, err
			}
			out = append(out, cq)
		}
		return out, nil

	case ShapeSeparated:
		pre, err := normalizeList(sub.Pretest, quizModel.QuizTypePretest, "pretest_questions")
		if err != nil {
			return nil, err
		}
		post, err := normalizeList(sub.Posttest, quizModel.QuizTypePosttest, "posttest_questions")
		if err != nil {
			return nil, err
		}
		return append(pre, post...), nil
	}
	return nil, nil
}

func normalizeList(entries []dto.QuestionEntry, qType, fieldBase string) ([]CanonicalQuestion, error) {
	var out []CanonicalQuestion
	order := 0
	for i, e := range entries {
		if e.IsPlaceholder() {
			continue
		}
		order++
		cq, err := toCanonical(e, qType, order, fmt.Sprintf("%s[%d]", fieldBase, i))
		if err != nil {
			return nil, err
		}
		out = append(out, cq)
	}
	return out, nil
}

func toCanonical(e dto.QuestionEntry, qType string, order int, field string) (CanonicalQuestion, error) {
	var cq CanonicalQuestion

	if len(e.QuestionOptions) != 4 {
		return cq, validationErr(field+".question_options",
			fmt.Errorf("harus tepat 4 opsi, dapat %d", len(e.QuestionOptions)))
	}
	var opts [4]string
	for i, o := range e.QuestionOptions {
		if o == "" {
			return cq, validationErr(fmt.Sprintf("%s.question_options[%d]", field, i),
				fmt.Errorf("opsi tidak boleh kosong"))
		}
		opts[i] = o
	}
	if !quizModel.IsValidOptionLabel(e.QuestionCorrect) {
		return cq, validationErr(field+".question_correct",
			fmt.Errorf("jawaban benar harus a-d, dapat %q", e.QuestionCorrect))
	}

	difficulty := e.QuestionDifficulty
	if difficulty == "" {
		difficulty = quizModel.DifficultyMedium
	}

	cq = CanonicalQuestion{
		Type:        qType,
		Order:       order,
		Text:        e.QuestionText,
		OptionTexts: opts,
		Correct:     e.QuestionCorrect,
		Explanation: e.QuestionExplanation,
		Difficulty:  difficulty,
		Image: AssetInput{
			File:     e.QuestionImageFile,
			TempPath: e.QuestionImageTemp,
			DataURI:  e.QuestionImageData,
		},
	}
	return cq, nil
}
