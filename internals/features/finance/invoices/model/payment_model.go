package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodMpesa  = "mpesa"
	PaymentMethodCash   = "cash"
	PaymentMethodBank   = "bank"
	PaymentMethodCheque = "cheque"
)

type FeePaymentModel struct {
	PaymentID       uuid.UUID `json:"payment_id" gorm:"column:payment_id;type:uuid;primaryKey"`
	PaymentSchoolID uuid.UUID `json:"payment_school_id" gorm:"column:payment_school_id;type:uuid;not null;index:idx_payments_school"`

	PaymentInvoiceID uuid.UUID `json:"payment_invoice_id" gorm:"column:payment_invoice_id;type:uuid;not null;index:idx_payments_invoice"`

	PaymentAmount int64  `json:"payment_amount" gorm:"column:payment_amount;not null"`
	PaymentMethod string `json:"payment_method" gorm:"column:payment_method;type:varchar(10);not null;default:cash"`

	// M-PESA receipt number or manual reference.
	PaymentReference *string `json:"payment_reference,omitempty" gorm:"column:payment_reference;type:varchar(60)"`

	PaymentCreatedAt time.Time      `json:"payment_created_at" gorm:"column:payment_created_at;not null;autoCreateTime"`
	PaymentDeletedAt gorm.DeletedAt `json:"payment_deleted_at,omitempty" gorm:"column:payment_deleted_at;index"`
}

func (FeePaymentModel) TableName() string { return "fee_payments" }

func (m *FeePaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}
