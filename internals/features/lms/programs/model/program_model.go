package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgramModel = unit training top-level yang di-enroll peserta.
// has_pretest/has_posttest itu DERIVED (dihitung ulang di akhir assembly dari
// soal yang benar-benar tersimpan), bukan input caller.
type ProgramModel struct {
	ProgramID              uuid.UUID  `gorm:"column:program_id;type:uuid;primaryKey" json:"program_id"`
	ProgramTitle           string     `gorm:"column:program_title;type:varchar(255);not null" json:"program_title"`
	ProgramDescription     string     `gorm:"column:program_description;type:text" json:"program_description"`
	ProgramDurationMinutes int        `gorm:"column:program_duration_minutes;not null;default:0" json:"program_duration_minutes"`
	ProgramPassingGrade    int        `gorm:"column:program_passing_grade;not null;default:0" json:"program_passing_grade"`
	ProgramCategory        string     `gorm:"column:program_category;type:varchar(100)" json:"program_category"`
	ProgramIsActive        bool       `gorm:"column:program_is_active;not null;default:true" json:"program_is_active"`
	ProgramRetakeAllowed   bool       `gorm:"column:program_retake_allowed;not null;default:false" json:"program_retake_allowed"`
	ProgramMaxRetake       int        `gorm:"column:program_max_retake;not null;default:0" json:"program_max_retake"`
	ProgramExpiredAt       *time.Time `gorm:"column:program_expired_at" json:"program_expired_at,omitempty"`
	ProgramPrerequisiteID  *uuid.UUID `gorm:"column:program_prerequisite_id;type:uuid" json:"program_prerequisite_id,omitempty"`

	ProgramHasPretest  bool `gorm:"column:program_has_pretest;not null;default:false" json:"program_has_pretest"`
	ProgramHasPosttest bool `gorm:"column:program_has_posttest;not null;default:false" json:"program_has_posttest"`

	ProgramCoverURL  *string `gorm:"column:program_cover_url;type:text" json:"program_cover_url,omitempty"`
	ProgramCoverPath *string `gorm:"column:program_cover_path;type:text" json:"program_cover_path,omitempty"`

	ProgramCreatedAt time.Time `gorm:"column:program_created_at;autoCreateTime" json:"program_created_at"`
	ProgramUpdatedAt time.Time `gorm:"column:program_updated_at;autoUpdateTime" json:"program_updated_at"`
}

func (ProgramModel) TableName() string {
	return "programs"
}

func (m *ProgramModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProgramID == uuid.Nil {
		m.ProgramID = uuid.New()
	}
	return nil
}
