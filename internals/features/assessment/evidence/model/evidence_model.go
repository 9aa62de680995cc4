package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvidenceModel struct {
	EvidenceID       uuid.UUID `json:"evidence_id" gorm:"column:evidence_id;type:uuid;primaryKey"`
	EvidenceSchoolID uuid.UUID `json:"evidence_school_id" gorm:"column:evidence_school_id;type:uuid;not null;index:idx_evidence_school"`

	EvidenceTaskID    uuid.UUID `json:"evidence_task_id" gorm:"column:evidence_task_id;type:uuid;not null;index:idx_evidence_task"`
	EvidenceLearnerID uuid.UUID `json:"evidence_learner_id" gorm:"column:evidence_learner_id;type:uuid;not null;index:idx_evidence_learner"`

	// One of the four CBC bands; score must fall inside the band's range.
	EvidenceProficiency string `json:"evidence_proficiency" gorm:"column:evidence_proficiency;type:varchar(20);not null"`
	EvidenceScore       int    `json:"evidence_score" gorm:"column:evidence_score;not null"`

	EvidenceType    string  `json:"evidence_type" gorm:"column:evidence_type;type:varchar(20);not null;default:observation"`
	EvidenceComment *string `json:"evidence_comment,omitempty" gorm:"column:evidence_comment;type:text"`

	// Path of the normalized (webp) attachment, when one was uploaded.
	EvidenceAttachment *string `json:"evidence_attachment,omitempty" gorm:"column:evidence_attachment;type:varchar(255)"`

	EvidenceCreatedAt time.Time      `json:"evidence_created_at" gorm:"column:evidence_created_at;not null;autoCreateTime"`
	EvidenceUpdatedAt time.Time      `json:"evidence_updated_at" gorm:"column:evidence_updated_at;not null;autoUpdateTime"`
	EvidenceDeletedAt gorm.DeletedAt `json:"evidence_deleted_at,omitempty" gorm:"column:evidence_deleted_at;index"`
}

func (EvidenceModel) TableName() string { return "assessment_evidence" }

func (m *EvidenceModel) BeforeCreate(tx *gorm.DB) error {
	if m.EvidenceID == uuid.Nil {
		m.EvidenceID = uuid.New()
	}
	return nil
}
