package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"shuleni_backend/internals/constants"
	invoiceController "shuleni_backend/internals/features/finance/invoices/controller"
	mpesaController "shuleni_backend/internals/features/finance/mpesa/controller"
	authMw "shuleni_backend/internals/middlewares/auth"
)

// RegisterFinanceRoutes mounts invoicing, payments and the STK push
// initiator. The M-PESA callback itself is public and lives under /api/hooks.
func RegisterFinanceRoutes(r fiber.Router, db *gorm.DB, mpesa *mpesaController.MpesaController) {
	financeOnly := authMw.OnlyRoles("Finance access required", constants.FinanceRoles...)

	invoices := invoiceController.NewInvoiceController(db)
	r.Post("/invoices", financeOnly, invoices.Create)
	r.Get("/invoices", financeOnly, invoices.List)
	r.Get("/invoices/:id", financeOnly, invoices.Detail)
	r.Post("/invoices/:id/payments", financeOnly, invoices.RecordPayment)
	r.Delete("/invoices/:id", financeOnly, invoices.Delete)

	r.Post("/mpesa/stkpush", financeOnly, mpesa.InitiateSTK)
}
