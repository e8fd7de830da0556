package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// OptionLabels urutan label jawaban yang diterima.
var OptionLabels = [4]string{"a", "b", "c", "d"}

func IsValidOptionLabel(l string) bool {
	for _, v := range OptionLabels {
		if l == v {
			return true
		}
	}
	return false
}

// QuestionOption = satu opsi jawaban pada representasi kanonik.
type QuestionOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// QuestionModel menyimpan opsi dalam DUA bentuk: question_options (JSON,
// kanonik, satu-satunya yang boleh ditulis) dan kolom flat option_a..option_d
// (mirror legacy untuk reader lama). Mirror SELALU diturunkan dari kanonik di
// BeforeSave, jadi keduanya tidak mungkin beda di jalur tulis mana pun.
type QuestionModel struct {
	QuestionID        uuid.UUID      `gorm:"column:question_id;type:uuid;primaryKey" json:"question_id"`
	QuestionProgramID uuid.UUID      `gorm:"column:question_program_id;type:uuid;not null;index" json:"question_program_id"`
	QuestionQuizID    uuid.UUID      `gorm:"column:question_quiz_id;type:uuid;not null;index" json:"question_quiz_id"`
	QuestionText      string         `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionOptions   datatypes.JSON `gorm:"column:question_options;not null" json:"question_options"`

	// Legacy mirror (derived, jangan ditulis langsung)
	QuestionOptionA string `gorm:"column:question_option_a;type:text;not null" json:"question_option_a"`
	QuestionOptionB string `gorm:"column:question_option_b;type:text;not null" json:"question_option_b"`
	QuestionOptionC string `gorm:"column:question_option_c;type:text;not null" json:"question_option_c"`
	QuestionOptionD string `gorm:"column:question_option_d;type:text;not null" json:"question_option_d"`

	QuestionCorrect     string  `gorm:"column:question_correct;type:varchar(1);not null" json:"question_correct"`
	QuestionExplanation string  `gorm:"column:question_explanation;type:text" json:"question_explanation"`
	QuestionImageURL    *string `gorm:"column:question_image_url;type:text" json:"question_image_url,omitempty"`
	QuestionImagePath   *string `gorm:"column:question_image_path;type:text" json:"question_image_path,omitempty"`
	QuestionDifficulty  string  `gorm:"column:question_difficulty;type:varchar(10);not null;default:medium" json:"question_difficulty"`
	QuestionOrder       int     `gorm:"column:question_order;not null" json:"question_order"`

	QuestionCreatedAt time.Time `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`
}

func (QuestionModel) TableName() string {
	return "questions"
}

// SetOptions menulis representasi kanonik; mirror menyusul di BeforeSave.
func (m *QuestionModel) SetOptions(opts [4]QuestionOption) error {
	for i := range opts {
		opts[i].Label = OptionLabels[i]
	}
	raw, err := json.Marshal(opts[:])
	if err != nil {
		return err
	}
	m.QuestionOptions = datatypes.JSON(raw)
	return nil
}

// Options membaca kembali representasi kanonik.
func (m *QuestionModel) Options() ([4]QuestionOption, error) {
	var out [4]QuestionOption
	var list []QuestionOption
	if err := json.Unmarshal(m.QuestionOptions, &list); err != nil {
		return out, err
	}
	if len(list) != 4 {
		return out, fmt.Errorf("question_options harus 4 opsi, dapat %d", len(list))
	}
	copy(out[:], list)
	return out, nil
}

func (m *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionID == uuid.Nil {
		m.QuestionID = uuid.New()
	}
	return nil
}

// BeforeSave menjaga invariant mirror: kolom flat selalu sama dengan kanonik.
func (m *QuestionModel) BeforeSave(tx *gorm.DB) error {
	opts, err := m.Options()
	if err != nil {
		return fmt.Errorf("question_options tidak valid: %w", err)
	}
	m.QuestionOptionA = opts[0].Text
	m.QuestionOptionB = opts[1].Text
	m.QuestionOptionC = opts[2].Text
	m.QuestionOptionD = opts[3].Text

	if !IsValidOptionLabel(m.QuestionCorrect) {
		return fmt.Errorf("question_correct harus a-d, dapat %q", m.QuestionCorrect)
	}
	if m.QuestionDifficulty == "" {
		m.QuestionDifficulty = DifficultyMedium
	}
	return nil
}
