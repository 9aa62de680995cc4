package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "shuleni_backend/internals/features/finance/invoices/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.FeeInvoiceModel{}, &model.FeePaymentModel{}))
	return db
}

func termInvoice(t *testing.T, svc *InvoiceService, schoolID uuid.UUID) *model.FeeInvoiceModel {
	t.Helper()
	inv, err := svc.Create(CreateInput{
		SchoolID:  schoolID,
		LearnerID: uuid.New(),
		Term:      2,
		Year:      2026,
		LineItems: []model.LineItem{
			{Description: "Tuition", Amount: 15000},
			{Description: "Transport", Amount: 4000},
			{Description: "Lunch programme", Amount: 1500},
		},
	})
	require.NoError(t, err)
	return inv
}

func TestCreateComputesTotalFromLineItems(t *testing.T) {
	svc := NewInvoiceService(newTestDB(t))
	inv := termInvoice(t, svc, uuid.New())

	assert.EqualValues(t, 20500, inv.InvoiceTotal)
	assert.EqualValues(t, 20500, inv.InvoiceBalance)
	assert.Equal(t, model.InvoiceStatusUnpaid, inv.InvoiceStatus)
	assert.Regexp(t, `^INV-2026-[0-9A-F]{8}$`, inv.InvoiceNumber)
}

func TestPaymentLifecycle(t *testing.T) {
	svc := NewInvoiceService(newTestDB(t))
	schoolID := uuid.New()
	inv := termInvoice(t, svc, schoolID)

	after, _, err := svc.RecordPayment(schoolID, inv.InvoiceID, 12000, model.PaymentMethodMpesa, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 8500, after.InvoiceBalance)
	assert.Equal(t, model.InvoiceStatusPartial, after.InvoiceStatus)

	after, _, err = svc.RecordPayment(schoolID, inv.InvoiceID, 8500, model.PaymentMethodCash, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, after.InvoiceBalance)
	assert.Equal(t, model.InvoiceStatusPaid, after.InvoiceStatus)

	payments, err := svc.Payments(schoolID, inv.InvoiceID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	// a settled invoice takes no more payments
	_, _, err = svc.RecordPayment(schoolID, inv.InvoiceID, 1, model.PaymentMethodCash, nil)
	assert.ErrorIs(t, err, ErrInvoiceSettled)
}

func TestOverPaymentRejected(t *testing.T) {
	svc := NewInvoiceService(newTestDB(t))
	schoolID := uuid.New()
	inv := termInvoice(t, svc, schoolID)

	_, _, err := svc.RecordPayment(schoolID, inv.InvoiceID, 25000, model.PaymentMethodMpesa, nil)
	assert.ErrorIs(t, err, ErrOverPayment)

	// balance untouched after the rejection
	got, err := svc.Get(schoolID, inv.InvoiceID)
	require.NoError(t, err)
	assert.EqualValues(t, 20500, got.InvoiceBalance)
	assert.Equal(t, model.InvoiceStatusUnpaid, got.InvoiceStatus)
}

func TestRecordPaymentValidation(t *testing.T) {
	svc := NewInvoiceService(newTestDB(t))
	schoolID := uuid.New()
	inv := termInvoice(t, svc, schoolID)

	_, _, err := svc.RecordPayment(schoolID, inv.InvoiceID, 0, model.PaymentMethodCash, nil)
	assert.ErrorIs(t, err, ErrBadAmount)

	_, _, err = svc.RecordPayment(schoolID, uuid.New(), 100, model.PaymentMethodCash, nil)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	_, err = svc.Create(CreateInput{SchoolID: schoolID, LearnerID: uuid.New(), Term: 1, Year: 2026})
	assert.ErrorIs(t, err, ErrNoLineItems)
}
