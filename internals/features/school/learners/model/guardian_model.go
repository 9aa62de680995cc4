package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GuardianModel struct {
	GuardianID        uuid.UUID `json:"guardian_id" gorm:"column:guardian_id;type:uuid;primaryKey"`
	GuardianSchoolID  uuid.UUID `json:"guardian_school_id" gorm:"column:guardian_school_id;type:uuid;not null;index:idx_guardians_school"`
	GuardianLearnerID uuid.UUID `json:"guardian_learner_id" gorm:"column:guardian_learner_id;type:uuid;not null;index:idx_guardians_learner"`

	GuardianName         string  `json:"guardian_name" gorm:"column:guardian_name;type:varchar(120);not null"`
	GuardianRelationship string  `json:"guardian_relationship" gorm:"column:guardian_relationship;type:varchar(40)"`
	GuardianPhone        string  `json:"guardian_phone" gorm:"column:guardian_phone;type:varchar(20)"`
	GuardianEmail        *string `json:"guardian_email,omitempty" gorm:"column:guardian_email;type:varchar(160)"`

	// Consent records (photo use, trips, data sharing) as a JSON document.
	GuardianConsents datatypes.JSON `json:"guardian_consents,omitempty" gorm:"column:guardian_consents"`

	GuardianCreatedAt time.Time `json:"guardian_created_at" gorm:"column:guardian_created_at;not null;autoCreateTime"`
	GuardianUpdatedAt time.Time `json:"guardian_updated_at" gorm:"column:guardian_updated_at;not null;autoUpdateTime"`
}

func (GuardianModel) TableName() string { return "guardians" }

func (m *GuardianModel) BeforeCreate(tx *gorm.DB) error {
	if m.GuardianID == uuid.Nil {
		m.GuardianID = uuid.New()
	}
	return nil
}
