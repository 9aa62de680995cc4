package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shuleni_backend/internals/events"
	model "shuleni_backend/internals/features/finance/invoices/model"
)

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrNoLineItems      = errors.New("invoice needs at least one line item")
	ErrBadAmount        = errors.New("payment amount must be positive")
	ErrOverPayment      = errors.New("payment exceeds outstanding balance")
	ErrInvoiceSettled   = errors.New("invoice already paid in full")
	ErrNegativeLineItem = errors.New("line item amount must be positive")
)

type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

type CreateInput struct {
	SchoolID  uuid.UUID
	LearnerID uuid.UUID
	Term      int
	Year      int
	Notes     string
	LineItems []model.LineItem
	DueDate   *time.Time
}

// Create builds the invoice from its line items: the total is their sum and
// the opening balance equals the total.
func (s *InvoiceService) Create(in CreateInput) (*model.FeeInvoiceModel, error) {
	if len(in.LineItems) == 0 {
		return nil, ErrNoLineItems
	}
	var total int64
	for _, li := range in.LineItems {
		if li.Amount <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrNegativeLineItem, li.Description)
		}
		total += li.Amount
	}
	raw, err := sonic.Marshal(in.LineItems)
	if err != nil {
		return nil, err
	}

	m := &model.FeeInvoiceModel{
		InvoiceSchoolID:  in.SchoolID,
		InvoiceLearnerID: in.LearnerID,
		InvoiceTerm:      in.Term,
		InvoiceYear:      in.Year,
		InvoiceNotes:     in.Notes,
		InvoiceLineItems: datatypes.JSON(raw),
		InvoiceTotal:     total,
		InvoiceBalance:   total,
		InvoiceStatus:    model.InvoiceStatusUnpaid,
		InvoiceDueDate:   in.DueDate,
	}
	if err := s.DB.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *InvoiceService) Get(schoolID, id uuid.UUID) (*model.FeeInvoiceModel, error) {
	var m model.FeeInvoiceModel
	if err := s.DB.Where("invoice_school_id = ?", schoolID).
		First(&m, "invoice_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &m, nil
}

// RecordPayment applies a payment to an invoice. The balance decreases by the
// amount; a zero balance flips the status to paid, anything above zero to
// partial. Over-payments are rejected rather than credited.
func (s *InvoiceService) RecordPayment(schoolID, invoiceID uuid.UUID, amount int64, method string, reference *string) (*model.FeeInvoiceModel, *model.FeePaymentModel, error) {
	if amount <= 0 {
		return nil, nil, ErrBadAmount
	}

	var inv model.FeeInvoiceModel
	var pay *model.FeePaymentModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_school_id = ?", schoolID).
			First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}
		if inv.InvoiceStatus == model.InvoiceStatusPaid {
			return ErrInvoiceSettled
		}
		if amount > inv.InvoiceBalance {
			return fmt.Errorf("%w: balance %d, got %d", ErrOverPayment, inv.InvoiceBalance, amount)
		}

		pay = &model.FeePaymentModel{
			PaymentSchoolID:  schoolID,
			PaymentInvoiceID: invoiceID,
			PaymentAmount:    amount,
			PaymentMethod:    method,
			PaymentReference: reference,
		}
		if err := tx.Create(pay).Error; err != nil {
			return err
		}

		inv.InvoiceBalance -= amount
		if inv.InvoiceBalance == 0 {
			inv.InvoiceStatus = model.InvoiceStatusPaid
		} else {
			inv.InvoiceStatus = model.InvoiceStatusPartial
		}
		return tx.Save(&inv).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &inv, pay, nil
}

func (s *InvoiceService) Payments(schoolID, invoiceID uuid.UUID) ([]model.FeePaymentModel, error) {
	var rows []model.FeePaymentModel
	err := s.DB.Where("payment_school_id = ? AND payment_invoice_id = ?", schoolID, invoiceID).
		Order("payment_created_at asc").Find(&rows).Error
	return rows, err
}

// RegisterSubscribers hooks finance cleanup to learner deletion: the
// learner's invoices and their payments go in the same transaction.
func RegisterSubscribers(bus *events.Bus) {
	bus.Subscribe(events.LearnerDeleted{}.EventName(), func(tx *gorm.DB, evt events.Event) error {
		e := evt.(events.LearnerDeleted)

		var ids []uuid.UUID
		if err := tx.Model(&model.FeeInvoiceModel{}).
			Where("invoice_school_id = ? AND invoice_learner_id = ?", e.SchoolID, e.LearnerID).
			Pluck("invoice_id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("payment_school_id = ? AND payment_invoice_id IN ?", e.SchoolID, ids).
			Delete(&model.FeePaymentModel{}).Error; err != nil {
			return err
		}
		return tx.Where("invoice_school_id = ? AND invoice_learner_id = ?", e.SchoolID, e.LearnerID).
			Delete(&model.FeeInvoiceModel{}).Error
	})
}
