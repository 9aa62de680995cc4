package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	// PK
	UserID uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`

	// Tenant (nil only for the platform owner)
	UserSchoolID *uuid.UUID `json:"user_school_id,omitempty" gorm:"column:user_school_id;type:uuid;index:idx_users_school"`

	UserName     string `json:"user_name" gorm:"column:user_name;type:varchar(120);not null"`
	UserEmail    string `json:"user_email" gorm:"column:user_email;type:varchar(160);not null;uniqueIndex:uq_users_email"`
	UserPassword string `json:"-" gorm:"column:user_password;type:varchar(100)"`
	UserRole     string `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:teacher"`
	UserIsActive bool   `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	UserCreatedAt time.Time      `json:"user_created_at" gorm:"column:user_created_at;not null;autoCreateTime"`
	UserUpdatedAt time.Time      `json:"user_updated_at" gorm:"column:user_updated_at;not null;autoUpdateTime"`
	UserDeletedAt gorm.DeletedAt `json:"user_deleted_at,omitempty" gorm:"column:user_deleted_at;index"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
