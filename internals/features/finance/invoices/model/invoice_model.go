package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// LineItem is one charge on an invoice. Amounts are whole Kenyan shillings.
type LineItem struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

type FeeInvoiceModel struct {
	InvoiceID       uuid.UUID `json:"invoice_id" gorm:"column:invoice_id;type:uuid;primaryKey"`
	InvoiceSchoolID uuid.UUID `json:"invoice_school_id" gorm:"column:invoice_school_id;type:uuid;not null;index:idx_invoices_school"`

	InvoiceLearnerID uuid.UUID `json:"invoice_learner_id" gorm:"column:invoice_learner_id;type:uuid;not null;index:idx_invoices_learner"`

	// Human-facing reference, e.g. INV-2026-3F2A91B4. Assigned on create.
	InvoiceNumber string `json:"invoice_number" gorm:"column:invoice_number;type:varchar(30);not null;index:idx_invoices_number"`

	InvoiceTerm  int    `json:"invoice_term" gorm:"column:invoice_term;not null;default:1"`
	InvoiceYear  int    `json:"invoice_year" gorm:"column:invoice_year;not null"`
	InvoiceNotes string `json:"invoice_notes" gorm:"column:invoice_notes;type:text"`

	InvoiceLineItems datatypes.JSON `json:"invoice_line_items" gorm:"column:invoice_line_items;not null"`

	InvoiceTotal   int64  `json:"invoice_total" gorm:"column:invoice_total;not null"`
	InvoiceBalance int64  `json:"invoice_balance" gorm:"column:invoice_balance;not null"`
	InvoiceStatus  string `json:"invoice_status" gorm:"column:invoice_status;type:varchar(10);not null;default:unpaid"`

	InvoiceDueDate *time.Time `json:"invoice_due_date,omitempty" gorm:"column:invoice_due_date"`

	InvoiceCreatedAt time.Time      `json:"invoice_created_at" gorm:"column:invoice_created_at;not null;autoCreateTime"`
	InvoiceUpdatedAt time.Time      `json:"invoice_updated_at" gorm:"column:invoice_updated_at;not null;autoUpdateTime"`
	InvoiceDeletedAt gorm.DeletedAt `json:"invoice_deleted_at,omitempty" gorm:"column:invoice_deleted_at;index"`
}

func (FeeInvoiceModel) TableName() string { return "fee_invoices" }

func (m *FeeInvoiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	if m.InvoiceNumber == "" {
		m.InvoiceNumber = fmt.Sprintf("INV-%d-%s", m.InvoiceYear, strings.ToUpper(m.InvoiceID.String()[:8]))
	}
	return nil
}
