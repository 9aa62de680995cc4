package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WelfareCaseModel struct {
	WelfareID       uuid.UUID `json:"welfare_id" gorm:"column:welfare_id;type:uuid;primaryKey"`
	WelfareSchoolID uuid.UUID `json:"welfare_school_id" gorm:"column:welfare_school_id;type:uuid;not null;index:idx_welfare_school"`

	WelfareLearnerID uuid.UUID `json:"welfare_learner_id" gorm:"column:welfare_learner_id;type:uuid;not null;index:idx_welfare_learner"`

	WelfareCategory   string     `json:"welfare_category" gorm:"column:welfare_category;type:varchar(40);not null"`
	WelfareNote       string     `json:"welfare_note" gorm:"column:welfare_note;type:text"`
	WelfareStatus     string     `json:"welfare_status" gorm:"column:welfare_status;type:varchar(20);not null;default:open"`
	WelfareFollowUpAt *time.Time `json:"welfare_follow_up_at,omitempty" gorm:"column:welfare_follow_up_at"`

	WelfareCreatedAt time.Time      `json:"welfare_created_at" gorm:"column:welfare_created_at;not null;autoCreateTime"`
	WelfareUpdatedAt time.Time      `json:"welfare_updated_at" gorm:"column:welfare_updated_at;not null;autoUpdateTime"`
	WelfareDeletedAt gorm.DeletedAt `json:"welfare_deleted_at,omitempty" gorm:"column:welfare_deleted_at;index"`
}

func (WelfareCaseModel) TableName() string { return "welfare_cases" }

func (m *WelfareCaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.WelfareID == uuid.Nil {
		m.WelfareID = uuid.New()
	}
	return nil
}
