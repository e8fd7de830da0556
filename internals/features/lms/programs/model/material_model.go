package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialModel = satu konten milik satu program: file tersimpan ATAU link
// eksternal (mutually exclusive). Program yang dihapus ikut menghapus
// material + file pendukungnya.
type MaterialModel struct {
	MaterialID        uuid.UUID `gorm:"column:material_id;type:uuid;primaryKey" json:"material_id"`
	MaterialProgramID uuid.UUID `gorm:"column:material_program_id;type:uuid;not null;index" json:"material_program_id"`

	MaterialTitle       string `gorm:"column:material_title;type:varchar(255);not null" json:"material_title"`
	MaterialDescription string `gorm:"column:material_description;type:text" json:"material_description"`

	// Diisi kalau materialnya file tersimpan
	MaterialFilePath     *string `gorm:"column:material_file_path;type:text" json:"material_file_path,omitempty"`
	MaterialFileURL      *string `gorm:"column:material_file_url;type:text" json:"material_file_url,omitempty"`
	MaterialOriginalName *string `gorm:"column:material_original_name;type:varchar(255)" json:"material_original_name,omitempty"`
	MaterialFileExt      *string `gorm:"column:material_file_ext;type:varchar(16)" json:"material_file_ext,omitempty"`
	MaterialFileSize     *int64  `gorm:"column:material_file_size" json:"material_file_size,omitempty"`

	// Diisi kalau materialnya link eksternal
	MaterialExternalURL *string `gorm:"column:material_external_url;type:text" json:"material_external_url,omitempty"`

	MaterialOrder           int `gorm:"column:material_order;not null;default:1" json:"material_order"`
	MaterialDurationMinutes int `gorm:"column:material_duration_minutes;not null;default:0" json:"material_duration_minutes"`

	MaterialCreatedAt time.Time `gorm:"column:material_created_at;autoCreateTime" json:"material_created_at"`
	MaterialUpdatedAt time.Time `gorm:"column:material_updated_at;autoUpdateTime" json:"material_updated_at"`
}

func (MaterialModel) TableName() string {
	return "materials"
}

func (m *MaterialModel) BeforeCreate(tx *gorm.DB) error {
	if m.MaterialID == uuid.Nil {
		m.MaterialID = uuid.New()
	}
	return nil
}
