package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Learner statuses
const (
	StatusActive      = "active"
	StatusTransferred = "transferred"
	StatusGraduated   = "graduated"
)

type LearnerModel struct {
	// PK
	LearnerID uuid.UUID `json:"learner_id" gorm:"column:learner_id;type:uuid;primaryKey"`

	// Tenant
	LearnerSchoolID uuid.UUID `json:"learner_school_id" gorm:"column:learner_school_id;type:uuid;not null;index:idx_learners_school"`

	LearnerFirstName string  `json:"learner_first_name" gorm:"column:learner_first_name;type:varchar(80);not null"`
	LearnerLastName  string  `json:"learner_last_name" gorm:"column:learner_last_name;type:varchar(80);not null"`
	LearnerGender    string  `json:"learner_gender" gorm:"column:learner_gender;type:varchar(10)"`
	LearnerDOB       *time.Time `json:"learner_dob,omitempty" gorm:"column:learner_dob"`

	// Government UPI is referenced, not validated, per NEMIS practice
	LearnerUPI         *string `json:"learner_upi,omitempty" gorm:"column:learner_upi;type:varchar(30);index:idx_learners_upi"`
	LearnerAdmissionNo string  `json:"learner_admission_no" gorm:"column:learner_admission_no;type:varchar(30);not null;index:idx_learners_admission"`

	LearnerStatus      string     `json:"learner_status" gorm:"column:learner_status;type:varchar(20);not null;default:active"`
	LearnerClassroomID *uuid.UUID `json:"learner_classroom_id,omitempty" gorm:"column:learner_classroom_id;type:uuid;index:idx_learners_classroom"`
	LearnerRouteID     *uuid.UUID `json:"learner_route_id,omitempty" gorm:"column:learner_route_id;type:uuid;index:idx_learners_route"`

	LearnerCreatedAt time.Time      `json:"learner_created_at" gorm:"column:learner_created_at;not null;autoCreateTime"`
	LearnerUpdatedAt time.Time      `json:"learner_updated_at" gorm:"column:learner_updated_at;not null;autoUpdateTime"`
	LearnerDeletedAt gorm.DeletedAt `json:"learner_deleted_at,omitempty" gorm:"column:learner_deleted_at;index"`

	Guardians []GuardianModel `json:"guardians" gorm:"foreignKey:GuardianLearnerID;references:LearnerID"`
}

func (LearnerModel) TableName() string { return "learners" }

func (m *LearnerModel) BeforeCreate(tx *gorm.DB) error {
	if m.LearnerID == uuid.Nil {
		m.LearnerID = uuid.New()
	}
	return nil
}

func (m *LearnerModel) FullName() string {
	return m.LearnerFirstName + " " + m.LearnerLastName
}
