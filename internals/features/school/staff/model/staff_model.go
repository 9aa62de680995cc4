package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffModel struct {
	StaffID       uuid.UUID `json:"staff_id" gorm:"column:staff_id;type:uuid;primaryKey"`
	StaffSchoolID uuid.UUID `json:"staff_school_id" gorm:"column:staff_school_id;type:uuid;not null;index:idx_staff_school"`

	StaffName    string  `json:"staff_name" gorm:"column:staff_name;type:varchar(120);not null"`
	StaffNo      string  `json:"staff_no" gorm:"column:staff_no;type:varchar(30);not null;index:idx_staff_no"`
	StaffTSCNo   *string `json:"staff_tsc_no,omitempty" gorm:"column:staff_tsc_no;type:varchar(30)"`
	StaffPhone   *string `json:"staff_phone,omitempty" gorm:"column:staff_phone;type:varchar(20)"`
	StaffEmail   *string `json:"staff_email,omitempty" gorm:"column:staff_email;type:varchar(160)"`
	StaffRole    string  `json:"staff_role" gorm:"column:staff_role;type:varchar(40);not null;default:teacher"`
	StaffIsActive bool   `json:"staff_is_active" gorm:"column:staff_is_active;not null;default:true"`

	StaffCreatedAt time.Time      `json:"staff_created_at" gorm:"column:staff_created_at;not null;autoCreateTime"`
	StaffUpdatedAt time.Time      `json:"staff_updated_at" gorm:"column:staff_updated_at;not null;autoUpdateTime"`
	StaffDeletedAt gorm.DeletedAt `json:"staff_deleted_at,omitempty" gorm:"column:staff_deleted_at;index"`
}

func (StaffModel) TableName() string { return "staff" }

func (m *StaffModel) BeforeCreate(tx *gorm.DB) error {
	if m.StaffID == uuid.Nil {
		m.StaffID = uuid.New()
	}
	return nil
}
