package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolModel is the tenant root; every other row carries its id.
type SchoolModel struct {
	SchoolID uuid.UUID `json:"school_id" gorm:"column:school_id;type:uuid;primaryKey"`

	SchoolName   string  `json:"school_name" gorm:"column:school_name;type:varchar(160);not null"`
	SchoolCode   string  `json:"school_code" gorm:"column:school_code;type:varchar(40);not null;uniqueIndex:uq_schools_code"`
	SchoolCounty *string `json:"school_county,omitempty" gorm:"column:school_county;type:varchar(60)"`
	SchoolPhone  *string `json:"school_phone,omitempty" gorm:"column:school_phone;type:varchar(20)"`
	SchoolEmail  *string `json:"school_email,omitempty" gorm:"column:school_email;type:varchar(160)"`

	SchoolIsActive bool `json:"school_is_active" gorm:"column:school_is_active;not null;default:true"`

	SchoolCreatedAt time.Time      `json:"school_created_at" gorm:"column:school_created_at;not null;autoCreateTime"`
	SchoolUpdatedAt time.Time      `json:"school_updated_at" gorm:"column:school_updated_at;not null;autoUpdateTime"`
	SchoolDeletedAt gorm.DeletedAt `json:"school_deleted_at,omitempty" gorm:"column:school_deleted_at;index"`
}

func (SchoolModel) TableName() string { return "schools" }

func (m *SchoolModel) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolID == uuid.Nil {
		m.SchoolID = uuid.New()
	}
	return nil
}
