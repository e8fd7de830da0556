package dto

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"lmsku_backend/internals/features/lms/programs/model"
)

// ============================
// Create (assemble) Request DTO
// ============================

// AssembleProgramRequest = payload gabungan satu kali rakit program:
// metadata + cover opsional + materials + soal dalam salah satu dari dua
// format yang diterima (unified `questions` ATAU pasangan
// `pretest_questions`/`posttest_questions`, tidak boleh dua-duanya).
type AssembleProgramRequest struct {
	ProgramTitle           string     `json:"program_title" validate:"required,max=255"`
	ProgramDescription     string     `json:"program_description"`
	ProgramDurationMinutes int        `json:"program_duration_minutes" validate:"gte=0"`
	ProgramPassingGrade    int        `json:"program_passing_grade" validate:"gte=0,lte=100"`
	ProgramCategory        string     `json:"program_category" validate:"max=100"`
	ProgramIsActive        *bool      `json:"program_is_active"`
	ProgramRetakeAllowed   bool       `json:"program_retake_allowed"`
	ProgramMaxRetake       int        `json:"program_max_retake" validate:"gte=0"`
	ProgramExpiredAt       *time.Time `json:"program_expired_at"`
	ProgramPrerequisiteID  *uuid.UUID `json:"program_prerequisite_id"`

	// Cover opsional: native upload (multipart "program_cover"), path staging
	// temp, atau data URI — diselesaikan Asset Resolver.
	ProgramCoverTempPath string                `json:"program_cover_temp_path"`
	ProgramCoverDataURI  string                `json:"program_cover_data_uri"`
	ProgramCoverFile     *multipart.FileHeader `json:"-"`

	Materials []MaterialEntry `json:"materials" validate:"dive"`

	// Format (a): satu list, tiap entry bawa question_type sendiri
	Questions []QuestionEntry `json:"questions" validate:"dive"`
	// Format (b): dua list terpisah, implisit pretest / posttest
	PretestQuestions  []QuestionEntry `json:"pretest_questions" validate:"dive"`
	PosttestQuestions []QuestionEntry `json:"posttest_questions" validate:"dive"`

	// Setting quiz header (dipakai saat create saja)
	PretestTimeLimitMinutes  *int `json:"pretest_time_limit_minutes" validate:"omitempty,gt=0"`
	PretestPassingScore      *int `json:"pretest_passing_score" validate:"omitempty,gte=0,lte=100"`
	PosttestTimeLimitMinutes *int `json:"posttest_time_limit_minutes" validate:"omitempty,gt=0"`
	PosttestPassingScore     *int `json:"posttest_passing_score" validate:"omitempty,gte=0,lte=100"`
}

func (r *AssembleProgramRequest) Normalize() {
	r.ProgramTitle = strings.TrimSpace(r.ProgramTitle)
	r.ProgramDescription = strings.TrimSpace(r.ProgramDescription)
	r.ProgramCategory = strings.TrimSpace(r.ProgramCategory)
	r.ProgramCoverTempPath = strings.TrimSpace(r.ProgramCoverTempPath)
	for i := range r.Materials {
		r.Materials[i].Normalize()
	}
	for i := range r.Questions {
		r.Questions[i].Normalize()
	}
	for i := range r.PretestQuestions {
		r.PretestQuestions[i].Normalize()
	}
	for i := range r.PosttestQuestions {
		r.PosttestQuestions[i].Normalize()
	}
}

func (r *AssembleProgramRequest) ToModel() *model.ProgramModel {
	active := true
	if r.ProgramIsActive != nil {
		active = *r.ProgramIsActive
	}
	return &model.ProgramModel{
		ProgramTitle:           r.ProgramTitle,
		ProgramDescription:     r.ProgramDescription,
		ProgramDurationMinutes: r.ProgramDurationMinutes,
		ProgramPassingGrade:    r.ProgramPassingGrade,
		ProgramCategory:        r.ProgramCategory,
		ProgramIsActive:        active,
		ProgramRetakeAllowed:   r.ProgramRetakeAllowed,
		ProgramMaxRetake:       r.ProgramMaxRetake,
		ProgramExpiredAt:       r.ProgramExpiredAt,
		ProgramPrerequisiteID:  r.ProgramPrerequisiteID,
	}
}

// ============================
// Material entry
// ============================

type MaterialEntry struct {
	MaterialTitle           string `json:"material_title" validate:"required,max=255"`
	MaterialDescription     string `json:"material_description"`
	MaterialExternalURL     string `json:"material_external_url" validate:"omitempty,url"`
	MaterialTempPath        string `json:"material_temp_path"`
	MaterialDataURI         string `json:"material_data_uri"`
	MaterialOrder           int    `json:"material_order" validate:"gte=0"`
	MaterialDurationMinutes int    `json:"material_duration_minutes" validate:"gte=0"`

	// Di-attach controller dari multipart "material_file[i]"
	MaterialFile *multipart.FileHeader `json:"-"`
}

func (e *MaterialEntry) Normalize() {
	e.MaterialTitle = strings.TrimSpace(e.MaterialTitle)
	e.MaterialDescription = strings.TrimSpace(e.MaterialDescription)
	e.MaterialExternalURL = strings.TrimSpace(e.MaterialExternalURL)
	e.MaterialTempPath = strings.TrimSpace(e.MaterialTempPath)
}

// HasFileRef true kalau entry membawa referensi file (bukan link eksternal).
func (e *MaterialEntry) HasFileRef() bool {
	return e.MaterialFile != nil || e.MaterialTempPath != "" || e.MaterialDataURI != ""
}

// ============================
// Question entry (input mentah, belum kanonik)
// ============================

type QuestionEntry struct {
	QuestionType        string   `json:"question_type" validate:"omitempty,oneof=pretest posttest"`
	QuestionText        string   `json:"question_text"`
	QuestionOptions     []string `json:"question_options"`
	QuestionCorrect     string   `json:"question_correct"`
	QuestionExplanation string   `json:"question_explanation"`
	QuestionDifficulty  string   `json:"question_difficulty" validate:"omitempty,oneof=easy medium hard"`
	QuestionImageTemp   string   `json:"question_image_temp_path"`
	QuestionImageData   string   `json:"question_image_data_uri"`

	// Di-attach controller dari multipart "question_image[i]" dkk.
	QuestionImageFile *multipart.FileHeader `json:"-"`
}

func (e *QuestionEntry) Normalize() {
	e.QuestionType = strings.ToLower(strings.TrimSpace(e.QuestionType))
	e.QuestionText = strings.TrimSpace(e.QuestionText)
	e.QuestionCorrect = strings.ToLower(strings.TrimSpace(e.QuestionCorrect))
	e.QuestionDifficulty = strings.ToLower(strings.TrimSpace(e.QuestionDifficulty))
	e.QuestionImageTemp = strings.TrimSpace(e.QuestionImageTemp)
	for i := range e.QuestionOptions {
		e.QuestionOptions[i] = strings.TrimSpace(e.QuestionOptions[i])
	}
}

// IsPlaceholder: baris kosong dari sparse form, dilewati tanpa error.
func (e *QuestionEntry) IsPlaceholder() bool {
	return e.QuestionText == ""
}

// ============================
// Response DTO
// ============================

type ProgramResponse struct {
	ProgramID              uuid.UUID  `json:"program_id"`
	ProgramTitle           string     `json:"program_title"`
	ProgramDescription     string     `json:"program_description"`
	ProgramDurationMinutes int        `json:"program_duration_minutes"`
	ProgramPassingGrade    int        `json:"program_passing_grade"`
	ProgramCategory        string     `json:"program_category"`
	ProgramIsActive        bool       `json:"program_is_active"`
	ProgramRetakeAllowed   bool       `json:"program_retake_allowed"`
	ProgramMaxRetake       int        `json:"program_max_retake"`
	ProgramExpiredAt       *time.Time `json:"program_expired_at,omitempty"`
	ProgramPrerequisiteID  *uuid.UUID `json:"program_prerequisite_id,omitempty"`
	ProgramHasPretest      bool       `json:"program_has_pretest"`
	ProgramHasPosttest     bool       `json:"program_has_posttest"`
	ProgramCoverURL        *string    `json:"program_cover_url,omitempty"`
	ProgramCreatedAt       time.Time  `json:"program_created_at"`
}

func ToProgramResponse(m *model.ProgramModel) ProgramResponse {
	return ProgramResponse{
		ProgramID:              m.ProgramID,
		ProgramTitle:           m.ProgramTitle,
		ProgramDescription:     m.ProgramDescription,
		ProgramDurationMinutes: m.ProgramDurationMinutes,
		ProgramPassingGrade:    m.ProgramPassingGrade,
		ProgramCategory:        m.ProgramCategory,
		ProgramIsActive:        m.ProgramIsActive,
		ProgramRetakeAllowed:   m.ProgramRetakeAllowed,
		ProgramMaxRetake:       m.ProgramMaxRetake,
		ProgramExpiredAt:       m.ProgramExpiredAt,
		ProgramPrerequisiteID:  m.ProgramPrerequisiteID,
		ProgramHasPretest:      m.ProgramHasPretest,
		ProgramHasPosttest:     m.ProgramHasPosttest,
		ProgramCoverURL:        m.ProgramCoverURL,
		ProgramCreatedAt:       m.ProgramCreatedAt,
	}
}

type MaterialResponse struct {
	MaterialID              uuid.UUID `json:"material_id"`
	MaterialProgramID       uuid.UUID `json:"material_program_id"`
	MaterialTitle           string    `json:"material_title"`
	MaterialDescription     string    `json:"material_description"`
	MaterialFileURL         *string   `json:"material_file_url,omitempty"`
	MaterialOriginalName    *string   `json:"material_original_name,omitempty"`
	MaterialFileExt         *string   `json:"material_file_ext,omitempty"`
	MaterialFileSize        *int64    `json:"material_file_size,omitempty"`
	MaterialExternalURL     *string   `json:"material_external_url,omitempty"`
	MaterialOrder           int       `json:"material_order"`
	MaterialDurationMinutes int       `json:"material_duration_minutes"`
}

func ToMaterialResponse(m *model.MaterialModel) MaterialResponse {
	return MaterialResponse{
		MaterialID:              m.MaterialID,
		MaterialProgramID:       m.MaterialProgramID,
		MaterialTitle:           m.MaterialTitle,
		MaterialDescription:     m.MaterialDescription,
		MaterialFileURL:         m.MaterialFileURL,
		MaterialOriginalName:    m.MaterialOriginalName,
		MaterialFileExt:         m.MaterialFileExt,
		MaterialFileSize:        m.MaterialFileSize,
		MaterialExternalURL:     m.MaterialExternalURL,
		MaterialOrder:           m.MaterialOrder,
		MaterialDurationMinutes: m.MaterialDurationMinutes,
	}
}
