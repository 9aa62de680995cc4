package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shuleni_backend/internals/features/finance/invoices/model"
	service "shuleni_backend/internals/features/finance/invoices/service"
	helper "shuleni_backend/internals/helpers"
)

type InvoiceController struct {
	DB      *gorm.DB
	Service *service.InvoiceService
}

var validate = validator.New()

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db, Service: service.NewInvoiceService(db)}
}

type lineItemRequest struct {
	Description string `json:"description" validate:"required,min=2,max=120"`
	Amount      int64  `json:"amount" validate:"required,min=1"`
}

type invoiceCreateRequest struct {
	LearnerID uuid.UUID         `json:"learner_id" validate:"required"`
	Term      int               `json:"term" validate:"required,min=1,max=3"`
	Year      int               `json:"year" validate:"required,min=2000,max=2100"`
	Notes     string            `json:"notes" validate:"omitempty,max=500"`
	LineItems []lineItemRequest `json:"line_items" validate:"required,min=1,dive"`
	DueDate   *time.Time        `json:"due_date"`
}

type paymentRequest struct {
	Amount    int64   `json:"amount" validate:"required,min=1"`
	Method    string  `json:"method" validate:"required,oneof=mpesa cash bank cheque"`
	Reference *string `json:"reference"`
}

func (h *InvoiceController) Create(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req invoiceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	items := make([]model.LineItem, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		items = append(items, model.LineItem{
			Description: strings.TrimSpace(li.Description),
			Amount:      li.Amount,
		})
	}

	inv, err := h.Service.Create(service.CreateInput{
		SchoolID:  schoolID,
		LearnerID: req.LearnerID,
		Term:      req.Term,
		Year:      req.Year,
		Notes:     strings.TrimSpace(req.Notes),
		LineItems: items,
		DueDate:   req.DueDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoLineItems) || errors.Is(err, service.ErrNegativeLineItem) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("[ERROR] create invoice: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create invoice")
	}
	return helper.JsonCreated(c, "Invoice created", inv)
}

func (h *InvoiceController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	q := h.DB.Model(&model.FeeInvoiceModel{}).Where("invoice_school_id = ?", schoolID)
	if s := strings.TrimSpace(c.Query("learner_id")); s != "" {
		if lid, err := uuid.Parse(s); err == nil {
			q = q.Where("invoice_learner_id = ?", lid)
		}
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("invoice_status = ?", s)
	}

	p := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count invoices")
	}
	var rows []model.FeeInvoiceModel
	if err := q.Order("invoice_created_at desc").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list invoices")
	}
	return helper.JsonList(c, "Invoices", rows, helper.BuildPagination(total, p.Page, p.PerPage))
}

func (h *InvoiceController) Detail(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	inv, err := h.Service.Get(schoolID, id)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load invoice")
	}
	payments, err := h.Service.Payments(schoolID, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load payments")
	}
	return helper.JsonOK(c, "Invoice detail", fiber.Map{
		"invoice":  inv,
		"payments": payments,
	})
}

func (h *InvoiceController) RecordPayment(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	inv, pay, err := h.Service.RecordPayment(schoolID, id, req.Amount, req.Method, req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrBadAmount),
			errors.Is(err, service.ErrOverPayment),
			errors.Is(err, service.ErrInvoiceSettled):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("[ERROR] record payment: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record payment")
		}
	}
	return helper.JsonCreated(c, "Payment recorded", fiber.Map{
		"invoice": inv,
		"payment": pay,
	})
}

func (h *InvoiceController) Delete(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_school_id = ? AND payment_invoice_id = ?", schoolID, id).
			Delete(&model.FeePaymentModel{}).Error; err != nil {
			return err
		}
		return tx.Where("invoice_school_id = ?", schoolID).
			Delete(&model.FeeInvoiceModel{}, "invoice_id = ?", id).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete invoice")
	}
	return helper.JsonDeleted(c, "Invoice deleted", fiber.Map{"invoice_id": id})
}
