package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoanModel struct {
	LoanID       uuid.UUID `json:"loan_id" gorm:"column:loan_id;type:uuid;primaryKey"`
	LoanSchoolID uuid.UUID `json:"loan_school_id" gorm:"column:loan_school_id;type:uuid;not null;index:idx_loans_school"`

	LoanBookID    uuid.UUID `json:"loan_book_id" gorm:"column:loan_book_id;type:uuid;not null;index:idx_loans_book"`
	LoanLearnerID uuid.UUID `json:"loan_learner_id" gorm:"column:loan_learner_id;type:uuid;not null;index:idx_loans_learner"`

	LoanIssuedAt   time.Time  `json:"loan_issued_at" gorm:"column:loan_issued_at;not null"`
	LoanDueAt      time.Time  `json:"loan_due_at" gorm:"column:loan_due_at;not null"`
	LoanReturnedAt *time.Time `json:"loan_returned_at,omitempty" gorm:"column:loan_returned_at"`

	LoanCreatedAt time.Time `json:"loan_created_at" gorm:"column:loan_created_at;not null;autoCreateTime"`
	LoanUpdatedAt time.Time `json:"loan_updated_at" gorm:"column:loan_updated_at;not null;autoUpdateTime"`
}

func (LoanModel) TableName() string { return "library_loans" }

func (m *LoanModel) BeforeCreate(tx *gorm.DB) error {
	if m.LoanID == uuid.Nil {
		m.LoanID = uuid.New()
	}
	return nil
}
