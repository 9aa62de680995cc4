package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	invoiceModel "shuleni_backend/internals/features/finance/invoices/model"
	invoiceService "shuleni_backend/internals/features/finance/invoices/service"
	service "shuleni_backend/internals/features/finance/mpesa/service"
	helper "shuleni_backend/internals/helpers"
)

type MpesaController struct {
	DB       *gorm.DB
	Invoices *invoiceService.InvoiceService
}

var validate = validator.New()

func NewMpesaController(db *gorm.DB) *MpesaController {
	return &MpesaController{DB: db, Invoices: invoiceService.NewInvoiceService(db)}
}

type stkInitiateRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" validate:"required"`
	Phone     string    `json:"phone" validate:"required"`
	Amount    int64     `json:"amount" validate:"required,min=1"`
}

// InitiateSTK sends an STK push for an invoice and stores the checkout
// session so the callback can find its way back.
func (h *MpesaController) InitiateSTK(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	var req stkInitiateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	msisdn, err := helper.NormalizeMsisdn(req.Phone)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid phone number")
	}

	inv, err := h.Invoices.Get(schoolID, req.InvoiceID)
	if err != nil {
		if errors.Is(err, invoiceService.ErrInvoiceNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load invoice")
	}
	if inv.InvoiceStatus == invoiceModel.InvoiceStatusPaid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invoice already paid in full")
	}
	if req.Amount > inv.InvoiceBalance {
		return helper.JsonError(c, fiber.StatusBadRequest, "Amount exceeds outstanding balance")
	}

	resp, err := service.Daraja.STKPush(c.Context(), msisdn, req.Amount,
		inv.InvoiceID.String(), "School fees")
	if err != nil {
		if errors.Is(err, service.ErrDarajaNotConfigured) {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "M-PESA is not configured")
		}
		log.Printf("[ERROR] stk push: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "M-PESA request failed")
	}

	if err := service.SaveCheckoutSession(c.Context(), resp.CheckoutRequestID, inv.InvoiceID); err != nil {
		log.Printf("[ERROR] save checkout session: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to track checkout")
	}

	return helper.JsonOK(c, "STK push sent", fiber.Map{
		"checkout_request_id": resp.CheckoutRequestID,
		"customer_message":    resp.CustomerMessage,
	})
}

// Daraja callback body. Metadata items arrive as loosely-typed name/value
// pairs.
type stkCallbackBody struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// Callback receives Daraja's payment result. Safaricom expects a 200 with
// ResultCode 0 regardless of our own processing outcome, otherwise it
// retries the delivery.
func (h *MpesaController) Callback(c *fiber.Ctx) error {
	ack := fiber.Map{"ResultCode": 0, "ResultDesc": "Accepted"}

	var body stkCallbackBody
	if err := c.BodyParser(&body); err != nil {
		log.Printf("[ERROR] mpesa callback parse: %v", err)
		return c.Status(fiber.StatusOK).JSON(ack)
	}
	cb := body.Body.StkCallback

	if cb.ResultCode != 0 {
		log.Printf("[INFO] mpesa checkout %s failed: %s", cb.CheckoutRequestID, cb.ResultDesc)
		service.ResolveCheckoutSession(c.Context(), cb.CheckoutRequestID)
		return c.Status(fiber.StatusOK).JSON(ack)
	}

	invoiceID, err := service.ResolveCheckoutSession(c.Context(), cb.CheckoutRequestID)
	if err != nil {
		log.Printf("[ERROR] mpesa callback session %s: %v", cb.CheckoutRequestID, err)
		return c.Status(fiber.StatusOK).JSON(ack)
	}

	var amount int64
	var receipt string
	for _, item := range cb.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			if f, ok := item.Value.(float64); ok {
				amount = int64(f)
			}
		case "MpesaReceiptNumber":
			if s, ok := item.Value.(string); ok {
				receipt = s
			}
		}
	}
	if amount <= 0 {
		log.Printf("[ERROR] mpesa callback %s: missing amount", cb.CheckoutRequestID)
		return c.Status(fiber.StatusOK).JSON(ack)
	}

	var inv invoiceModel.FeeInvoiceModel
	if err := h.DB.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		log.Printf("[ERROR] mpesa callback invoice %s: %v", invoiceID, err)
		return c.Status(fiber.StatusOK).JSON(ack)
	}

	var ref *string
	if receipt != "" {
		ref = &receipt
	}
	if _, _, err := h.Invoices.RecordPayment(inv.InvoiceSchoolID, invoiceID, amount,
		invoiceModel.PaymentMethodMpesa, ref); err != nil {
		log.Printf("[ERROR] mpesa callback payment %s: %v", invoiceID, err)
		return c.Status(fiber.StatusOK).JSON(ack)
	}

	log.Printf("[INFO] mpesa payment applied: invoice=%s amount=%d receipt=%s", invoiceID, amount, receipt)
	return c.Status(fiber.StatusOK).JSON(ack)
}
